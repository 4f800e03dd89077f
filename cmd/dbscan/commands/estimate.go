package commands

import (
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/TrevorS/dbscan"
)

var estimateFlags = []string{"k", "normalize", "distances"}

func newEstimateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "estimate [file]",
		Short: "Suggest an eps from the k-distance distribution",
		Long: `Compute every point's Euclidean distance to its k-th nearest neighbour and
suggest the 95th percentile as eps. A common choice is k = min-pts - 1.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := bindFlags(a.v, cmd.Flags(), estimateFlags...); err != nil {
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

			kd, err := dbscan.EstimateEps(data, s.K)
			if err != nil {
				return errors.Wrap(err, "estimation failed")
			}
			a.logger.Info("estimate complete",
				zap.Int("points", len(data)),
				zap.Int("k", kd.K),
				zap.Float64("suggested_eps", kd.SuggestedEps))

			return writeEstimate(cmd.OutOrStdout(), s.Format, kd, s.Distances)
		},
	}

	f := cmd.Flags()
	f.IntP("k", "k", dbscan.DefaultConfig().MinPts-1, "neighbour rank, in [1, points-1]")
	f.String("normalize", normalizeNone, "normalize coordinates first: none, minmax, zscore")
	f.String("format", formatText, "output format: text, json")
	f.Bool("distances", false, "also print every point's k-distance")
	return cmd
}
