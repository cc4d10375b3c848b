package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"airdispatch/export"
)

// exportCmd reruns a scenario and writes its CSV report, without the
// console summary or run id line of run; telemetry is still logged as in
// run. It exists mainly for symmetry with validate: a way to get the report
// artifact alone.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Re-run a scenario and write its CSV flight report",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSettings()
		if err != nil {
			return err
		}
		if s.ReportPath == "" {
			return fmt.Errorf("export requires --report (or the config file's \"report_path\" key)")
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
		d.Run()
		if err := stop(); err != nil {
			return fmt.Errorf("telemetry processor: %w", err)
		}

		outPath, err := export.WriteFlightsCSV(s.ReportPath, m)
		if err != nil {
			return err
		}
		fmt.Printf("wrote report: %s\n", outPath)
		return nil
	},
}
