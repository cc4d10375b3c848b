package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"airdispatch/export"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Load a scenario and run the dispatcher to completion",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSettings()
		if err != nil {
			return err
		}

		loader, m, err := openScenario(s)
		if err != nil {
			return err
		}

		stop := wireTelemetry(m, s)
		d, err := loader.ReadDispatcher(m)
		if err != nil {
			_ = stop()
			return err
		}

		fmt.Printf("run id: %s\n", d.RunID)
		d.Run()

		if err := stop(); err != nil {
			return fmt.Errorf("telemetry processor: %w", err)
		}

		if s.ReportPath != "" {
			outPath, err := export.WriteFlightsCSV(s.ReportPath, m)
			if err != nil {
				return err
			}
			fmt.Printf("wrote report: %s\n", outPath)
		}

		if s.PrintSummary {
			export.PrintConsoleSummary(m, export.Summarize(m))
		}
		return nil
	},
}
