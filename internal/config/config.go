// Package config loads dispatcher/scenario CLI settings through viper, the
// way onelittlenightmusic-MyWant wires its engine configuration: a settings
// file merged with environment variables, then overridden by whatever flags
// the command line actually set.
package config

import (
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Settings are the knobs a run/validate/export invocation needs, loadable
// from a YAML or JSON file and overridable by CLI flags.
type Settings struct {
	ScenarioPath string `mapstructure:"scenario"`
	ReportPath   string `mapstructure:"report_path"`
	LogDir       string `mapstructure:"log_dir"`
	LogLevel     string `mapstructure:"log_level"`
	TraceFlight  uint64 `mapstructure:"trace_flight"`
	PrintSummary bool   `mapstructure:"print_summary"`
}

// BindFlags registers the settings' flags on fs and binds each to v under
// the same key Load unmarshals into Settings, mirroring MyWant's
// viper.BindPFlag("server", rootCmd.PersistentFlags().Lookup("server"))
// pairing. Call this once per command before Load.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	fs.String("scenario", "", "path to a scenario JSON file")
	fs.String("report", "", "directory or file path to write the CSV flight report")
	fs.String("log-dir", "", "directory for rotated log files (default: stderr)")
	fs.String("log-level", "info", "log level: debug, info, warn, error")
	fs.Uint64("trace-flight", 0, "raise log verbosity to debug for this flight id")
	fs.Bool("print-summary", true, "print a console summary after the run")

	for key, flag := range map[string]string{
		"scenario":      "scenario",
		"report_path":   "report",
		"log_dir":       "log-dir",
		"log_level":     "log-level",
		"trace_flight":  "trace-flight",
		"print_summary": "print-summary",
	} {
		if err := v.BindPFlag(key, fs.Lookup(flag)); err != nil {
			return err
		}
	}
	return nil
}

// Load reads cfgFile (when non-empty) into v, layers AIRDISPATCH_-prefixed
// environment variables over it, and unmarshals the result. Flags already
// bound via BindFlags take precedence over both, per viper's normal
// precedence order.
func Load(v *viper.Viper, cfgFile string) (Settings, error) {
	v.SetEnvPrefix("AIRDISPATCH")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return Settings{}, err
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, err
	}
	return s, nil
}
