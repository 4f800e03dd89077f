package commands

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/cockroachdb/errors"

	"github.com/TrevorS/dbscan"
)

// Output formats accepted by --format.
const (
	formatCSV  = "csv"
	formatJSON = "json"
	formatText = "text"
)

type clusterOutput struct {
	NumClusters int    `json:"num_clusters"`
	Algorithm   string `json:"algorithm"`
	Labels      []int  `json:"labels"`
	Core        []bool `json:"core"`
}

type estimateOutput struct {
	K            int       `json:"k"`
	SuggestedEps float64   `json:"suggested_eps"`
	Distances    []float64 `json:"distances,omitempty"`
}

// writeClusterResult prints one row per point (csv) or a single document
// (json).
func writeClusterResult(w io.Writer, format string, res *dbscan.Result) error {
	switch format {
	case "", formatCSV:
		cw := csv.NewWriter(w)
		if err := cw.Write([]string{"index", "label", "core"}); err != nil {
			return errors.Wrap(err, "failed to write CSV header")
		}
		for i, label := range res.Labels {
			rec := []string{strconv.Itoa(i), strconv.Itoa(label), strconv.FormatBool(res.Core[i])}
			if err := cw.Write(rec); err != nil {
				return errors.Wrapf(err, "failed to write row %d", i)
			}
		}
		cw.Flush()
		return errors.Wrap(cw.Error(), "failed to flush CSV")
	case formatJSON:
		return writeJSON(w, clusterOutput{
			NumClusters: res.NumClusters,
			Algorithm:   string(res.Algorithm),
			Labels:      res.Labels,
			Core:        res.Core,
		})
	default:
		return errors.Newf("unknown format %q (want %s or %s)", format, formatCSV, formatJSON)
	}
}

func writeEstimate(w io.Writer, format string, kd *dbscan.KDistances, withDistances bool) error {
	out := estimateOutput{K: kd.K, SuggestedEps: kd.SuggestedEps}
	if withDistances {
		out.Distances = kd.Distances
	}

	switch format {
	case "", formatText:
		if _, err := io.WriteString(w, "k="+strconv.Itoa(out.K)+" suggested_eps="+formatFloat(out.SuggestedEps)+"\n"); err != nil {
			return errors.Wrap(err, "failed to write estimate")
		}
		for i, d := range out.Distances {
			if _, err := io.WriteString(w, strconv.Itoa(i)+","+formatFloat(d)+"\n"); err != nil {
				return errors.Wrapf(err, "failed to write distance %d", i)
			}
		}
		return nil
	case formatJSON:
		return writeJSON(w, out)
	default:
		return errors.Newf("unknown format %q (want %s or %s)", format, formatText, formatJSON)
	}
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(v), "failed to encode JSON")
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
