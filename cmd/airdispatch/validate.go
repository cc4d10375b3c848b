package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Load a scenario and report loader errors without simulating",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSettings()
		if err != nil {
			return err
		}

		loader, m, err := openScenario(s)
		if err != nil {
			return err
		}
		if _, err := loader.ReadDispatcher(m); err != nil {
			return err
		}

		fmt.Printf("scenario ok: %d airports, %d aircraft, %d crew, %d flights\n",
			len(m.Airports), len(m.Aircraft), len(m.Crews), len(m.Flights))
		return nil
	},
}
