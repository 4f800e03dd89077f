package commands

import (
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/TrevorS/dbscan"
)

var clusterFlags = []string{"eps", "min-pts", "metric", "p", "algorithm", "normalize"}

func newClusterCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cluster [file]",
		Short: "Cluster CSV points and print one label per point",
		Long: `Cluster points with DBSCAN and print, for every input point, its cluster
label (-1 for noise) and whether it is a core point.

Reads from stdin when no file (or "-") is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := bindFlags(a.v, cmd.Flags(), clusterFlags...); err != nil {
				return err
			}
			if err := bindFormat(a.v, cmd.Flags(), cmd.Name()); err != nil {
				return err
			}
			s, err := loadSettings(a.v, cmd.Name())
			if err != nil {
				return err
			}

			data, err := loadData(cmd, args, s.Normalize)
			if err != nil {
				return err
			}

			cfg, err := s.clusterConfig(a.logger)
			if err != nil {
				return err
			}
			res, err := dbscan.Cluster(data, cfg)
			if err != nil {
				return errors.Wrap(err, "clustering failed")
			}
			a.logger.Info("clustering complete",
				zap.Int("points", len(data)),
				zap.Int("clusters", res.NumClusters),
				zap.String("algorithm", string(res.Algorithm)))

			return writeClusterResult(cmd.OutOrStdout(), s.Format, res)
		},
	}

	def := dbscan.DefaultConfig()
	f := cmd.Flags()
	f.Float64("eps", def.Eps, "neighbourhood radius")
	f.Int("min-pts", def.MinPts, "points (self included) a neighbourhood needs for a core point")
	f.String("metric", "euclidean", "distance metric: euclidean, manhattan, minkowski, cosine, chebyshev")
	f.Float64("p", 2, "Minkowski exponent (with --metric minkowski)")
	f.String("algorithm", string(def.Algorithm), "neighbourhood strategy: auto, brute, kdtree, balltree")
	f.String("normalize", normalizeNone, "normalize coordinates first: none, minmax, zscore")
	f.String("format", formatCSV, "output format: csv, json")
	return cmd
}

// loadData reads points from the command input and normalizes them.
func loadData(cmd *cobra.Command, args []string, mode string) ([][]float64, error) {
	in, err := openInput(cmd, args)
	if err != nil {
		return nil, err
	}
	defer in.Close()

	data, err := readPoints(in)
	if err != nil {
		return nil, err
	}
	if err := normalize(mode, data); err != nil {
		return nil, errors.Wrap(err, "normalization failed")
	}
	return data, nil
}
