// Package commands implements the dbscan command-line interface.
package commands

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// envPrefix namespaces environment overrides, e.g. DBSCAN_MIN_PTS=4.
const envPrefix = "DBSCAN"

// app is the state shared by all subcommands of one invocation.
type app struct {
	v      *viper.Viper
	logger *zap.Logger
}

// Execute runs the dbscan command line with os.Args.
func Execute(version string) error {
	return NewRootCmd(version).Execute()
}

// NewRootCmd builds the command tree. Each call returns an independent tree
// with its own configuration, so tests can run commands in isolation.
func NewRootCmd(version string) *cobra.Command {
	a := &app{v: newViper(), logger: zap.NewNop()}

	var configFile string
	root := &cobra.Command{
		Use:   "dbscan",
		Short: "Density-based clustering of CSV point data",
		Long: `dbscan clusters points with DBSCAN.

Points are read as CSV, one point per line, one coordinate per column. A
non-numeric first line is treated as a header; lines starting with # are
ignored.

Settings come from flags, DBSCAN_* environment variables, and an optional
config file (--config, toml/yaml/json), in that order of precedence.
Output formats are set per command (cluster.format, estimate.format).

Examples:
  dbscan cluster --eps 0.3 --min-pts 4 points.csv
  dbscan cluster --metric manhattan --normalize zscore --format json < points.csv
  dbscan estimate -k 3 points.csv`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if configFile != "" {
				a.v.SetConfigFile(configFile)
				if err := a.v.ReadInConfig(); err != nil {
					return errors.Wrapf(err, "failed to read config file %s", configFile)
				}
			}
			verbosity, err := cmd.Flags().GetCount("verbose")
			if err != nil {
				return errors.Wrap(err, "failed to read --verbose")
			}
			a.logger = newLogger(cmd.ErrOrStderr(), verbosity)
			if configFile != "" {
				a.logger.Debug("loaded config file", zap.String("path", a.v.ConfigFileUsed()))
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&configFile, "config", "", "config file (toml, yaml or json)")
	root.PersistentFlags().CountP("verbose", "v", "Increase log verbosity (-v info, -vv debug)")

	root.AddCommand(newClusterCmd(a))
	root.AddCommand(newEstimateCmd(a))
	return root
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

// bindFlags binds the named flags of the running command to viper keys.
// Binding happens at run time so that flags shared by several commands
// resolve to the command actually invoked.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet, names ...string) error {
	for _, name := range names {
		key := strings.ReplaceAll(name, "-", "_")
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			return errors.Wrapf(err, "failed to bind flag --%s", name)
		}
	}
	return nil
}

// bindFormat binds the running command's --format to its own key.
func bindFormat(v *viper.Viper, flags *pflag.FlagSet, command string) error {
	return errors.Wrap(v.BindPFlag(formatKey(command), flags.Lookup("format")), "failed to bind flag --format")
}
