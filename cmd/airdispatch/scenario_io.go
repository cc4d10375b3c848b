package main

import (
	"context"
	"fmt"
	"os"

	"airdispatch/internal/applog"
	"airdispatch/internal/config"
	"airdispatch/scenario"
	"airdispatch/simmodel"
	"airdispatch/telemetry"
)

// openScenario decodes the scenario file named by s.ScenarioPath into a
// Model, without wiring telemetry or building a Dispatcher — used by
// validate, which only wants to surface loader errors.
func openScenario(s config.Settings) (*scenario.JSONScenarioLoader, *simmodel.Model, error) {
	if s.ScenarioPath == "" {
		return nil, nil, fmt.Errorf("no scenario file given (set --scenario or the config file's \"scenario\" key)")
	}
	f, err := os.Open(s.ScenarioPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open scenario: %w", err)
	}
	defer f.Close()

	loader, err := scenario.NewJSONScenarioLoader(f)
	if err != nil {
		return nil, nil, err
	}
	m, err := loader.ReadModel()
	if err != nil {
		return nil, nil, err
	}
	return loader, m, nil
}

// wireTelemetry replaces m.Telemetry with a channel publisher drained by a
// supervised Processor, and returns a function that closes the publisher and
// waits for the processor to finish draining.
func wireTelemetry(m *simmodel.Model, s config.Settings) (stop func() error) {
	logger := applog.New(s.LogDir, s.LogLevel)
	pub := telemetry.NewChannelPublisher(256)
	m.Telemetry = pub

	wait := telemetry.SuperviseTraced(context.Background(), logger, s.TraceFlight, pub.Events())
	return func() error {
		pub.Close()
		return wait()
	}
}
