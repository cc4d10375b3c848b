// Package scenario defines the ScenarioLoader interface the simulation core
// consumes to build a Model and its Dispatcher, plus a reference JSON-backed
// implementation. A persisted scenario store (the analog of
// original_source's SqliteScenarioLoader) is out of scope; any real backing
// store can be wired in by implementing ScenarioLoader itself.
package scenario

import (
	"fmt"

	"airdispatch/dispatch"
	"airdispatch/simmodel"
)

// ScenarioLoader builds a Model and its Dispatcher from some external
// representation of a scenario.
type ScenarioLoader interface {
	ReadModel() (*simmodel.Model, error)
	ReadDispatcher(m *simmodel.Model) (*dispatch.Dispatcher, error)
}

// LoaderError distinguishes the ways a scenario can fail to load, mirroring
// original_source's ScenarioLoaderError enum.
type LoaderError struct {
	Stage string
	Err   error
}

func (e *LoaderError) Error() string {
	return fmt.Sprintf("scenario: %s: %v", e.Stage, e.Err)
}

func (e *LoaderError) Unwrap() error { return e.Err }

func wrapErr(stage string, err error) error {
	if err == nil {
		return nil
	}
	return &LoaderError{Stage: stage, Err: err}
}
