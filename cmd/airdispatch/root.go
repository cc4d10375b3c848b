package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"airdispatch/internal/config"
)

var (
	cfgFile string
	v       = viper.New()
)

var rootCmd = &cobra.Command{
	Use:   "airdispatch",
	Short: "Simulate an airline network's response to ground delay programs and departure-rate limits",
	Long: `airdispatch is an event-driven simulator of an airline network under
disruption: ground delay programs and departure-rate limits at individual
airports, worked through a dispatcher that reassigns aircraft and crew,
delays, or cancels flights to stay within each airport's capacity.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "settings file (YAML or JSON)")
	if err := config.BindFlags(v, rootCmd.PersistentFlags()); err != nil {
		panic(err)
	}

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(exportCmd)
}

func loadSettings() (config.Settings, error) {
	return config.Load(v, cfgFile)
}
