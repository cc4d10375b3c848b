// Package strategy implements the pluggable aircraft/crew selection
// strategies the Dispatcher consults when its own gates cannot resolve an
// assignment: a give-up reference implementation for both resource kinds,
// and a cached depth-first aircraft rerouting strategy.
package strategy

import (
	"airdispatch/airtime"
	"airdispatch/flightplan"
	"airdispatch/simmodel"
)

// AircraftSelection is an aircraft strategy's answer: the tail to assign to
// the flight it was asked about, plus a batch of reassignments for other
// not-yet-departed flights to apply in the same step.
type AircraftSelection struct {
	Tail          airtime.Tail
	Reassignments map[airtime.FlightID]airtime.Tail
}

// AircraftStrategy picks an aircraft for a flight whose assigned aircraft
// cannot serve it within tolerance (the dispatcher's own fallback runs only
// when no strategy is configured), and reacts to cancellations and departures so
// it can track which aircraft are available for reassignment.
type AircraftStrategy interface {
	Select(m *simmodel.Model, flight *flightplan.Flight) (AircraftSelection, bool)
	OnFlightCancel(m *simmodel.Model, flight *flightplan.Flight)
	OnFlightDepart(m *simmodel.Model, flight *flightplan.Flight)
}

// CrewStrategy is AircraftStrategy's crew-side counterpart.
type CrewStrategy interface {
	Select(m *simmodel.Model, flight *flightplan.Flight) ([]airtime.CrewID, bool)
	OnFlightCancel(m *simmodel.Model, flight *flightplan.Flight)
	OnFlightDepart(m *simmodel.Model, flight *flightplan.Flight)
}

// GiveUpAircraft never finds an aircraft; the dispatcher's own gate logic
// then waits or cancels depending on configuration.
type GiveUpAircraft struct{}

func (GiveUpAircraft) Select(*simmodel.Model, *flightplan.Flight) (AircraftSelection, bool) {
	return AircraftSelection{}, false
}
func (GiveUpAircraft) OnFlightCancel(*simmodel.Model, *flightplan.Flight) {}
func (GiveUpAircraft) OnFlightDepart(*simmodel.Model, *flightplan.Flight) {}

// GiveUpCrew is GiveUpAircraft's crew-side counterpart.
type GiveUpCrew struct{}

func (GiveUpCrew) Select(*simmodel.Model, *flightplan.Flight) ([]airtime.CrewID, bool) {
	return nil, false
}
func (GiveUpCrew) OnFlightCancel(*simmodel.Model, *flightplan.Flight) {}
func (GiveUpCrew) OnFlightDepart(*simmodel.Model, *flightplan.Flight) {}

// ForAircraftKey resolves a scenario's configured selector name to an
// AircraftStrategy, mirroring the scenario format's selector column.
func ForAircraftKey(name string) (AircraftStrategy, bool) {
	switch name {
	case "", "give_up":
		return GiveUpAircraft{}, true
	case "depth_first":
		return NewDepthFirstAircraft(), true
	default:
		return nil, false
	}
}

// ForCrewKey is ForAircraftKey's crew-side counterpart. Crew reassignment has
// only the give-up reference implementation; the dispatcher's own fallback
// selector covers earliest-available reassignment when enabled.
func ForCrewKey(name string) (CrewStrategy, bool) {
	switch name {
	case "", "give_up":
		return GiveUpCrew{}, true
	default:
		return nil, false
	}
}
