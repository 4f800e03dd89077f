package commands

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/TrevorS/dbscan"
)

// Settings is the resolved configuration of one command run.
type Settings struct {
	Eps       float64 `mapstructure:"eps"`
	MinPts    int     `mapstructure:"min_pts"`
	Metric    string  `mapstructure:"metric"`
	P         float64 `mapstructure:"p"`
	Algorithm string  `mapstructure:"algorithm"`
	Normalize string  `mapstructure:"normalize"`
	Format    string  `mapstructure:"-"`
	K         int     `mapstructure:"k"`
	Distances bool    `mapstructure:"distances"`
}

// Normalization modes accepted by --normalize.
const (
	normalizeNone   = "none"
	normalizeMinMax = "minmax"
	normalizeZScore = "zscore"
)

// setDefaults seeds viper with the library defaults so that config files
// and environment variables only need to name what they change.
func setDefaults(v *viper.Viper) {
	def := dbscan.DefaultConfig()
	v.SetDefault("eps", def.Eps)
	v.SetDefault("min_pts", def.MinPts)
	v.SetDefault("metric", "euclidean")
	v.SetDefault("p", 2.0)
	v.SetDefault("algorithm", string(def.Algorithm))
	v.SetDefault("normalize", normalizeNone)
	v.SetDefault("k", def.MinPts-1)
	v.SetDefault("distances", false)
}

// formatKey is the viper key of a command's --format. Commands accept
// different formats, so each gets its own key: cluster.format in a config
// file, DBSCAN_CLUSTER_FORMAT in the environment.
func formatKey(command string) string {
	return command + ".format"
}

func loadSettings(v *viper.Viper, command string) (*Settings, error) {
	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal settings")
	}
	s.Format = v.GetString(formatKey(command))
	s.Metric = strings.ToLower(strings.TrimSpace(s.Metric))
	s.Algorithm = strings.ToLower(strings.TrimSpace(s.Algorithm))
	s.Normalize = strings.ToLower(strings.TrimSpace(s.Normalize))
	s.Format = strings.ToLower(strings.TrimSpace(s.Format))
	return &s, nil
}

// clusterConfig converts the settings into a library Config. Range checks
// are left to the library.
func (s *Settings) clusterConfig(logger *zap.Logger) (dbscan.Config, error) {
	metric, err := dbscan.ParseMetric(s.Metric, s.P)
	if err != nil {
		return dbscan.Config{}, err
	}
	return dbscan.Config{
		Eps:       s.Eps,
		MinPts:    s.MinPts,
		Metric:    metric,
		Algorithm: dbscan.Algorithm(s.Algorithm),
		Logger:    logger,
	}, nil
}

// normalize rescales data in place according to mode.
func normalize(mode string, data [][]float64) error {
	switch mode {
	case "", normalizeNone:
		return nil
	case normalizeMinMax:
		return dbscan.NormalizeMinMax(data)
	case normalizeZScore:
		return dbscan.NormalizeZScore(data)
	default:
		return errors.Newf("unknown normalization %q (want %s, %s or %s)",
			mode, normalizeNone, normalizeMinMax, normalizeZScore)
	}
}
