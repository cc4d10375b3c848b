// Package telemetry defines the outbound event stream the simulation
// publishes: simulation lifecycle markers, per-flight delay/departure/
// arrival/cancellation events, and assignment-change notices. It also
// supplies the one off-thread component the core talks to, a channel-backed
// processor that drains and logs the stream.
package telemetry

import (
	"time"

	"github.com/google/uuid"

	"airdispatch/airtime"
)

// Event is the marker interface every telemetry payload implements, mirroring
// the teacher's event-struct-per-variant pattern (see sim/events.go in the
// reference bus simulator this was adapted from).
type Event interface {
	isModelEvent()
}

type SimulationStarted struct {
	Time  time.Time
	RunID uuid.UUID
}

func (SimulationStarted) isModelEvent() {}

type SimulationComplete struct {
	Time  time.Time
	RunID uuid.UUID
}

func (SimulationComplete) isModelEvent() {}

type FlightDepartureDelayed struct {
	Time     time.Time
	Flight   airtime.FlightID
	Duration time.Duration
	Reason   DelayReason
}

func (FlightDepartureDelayed) isModelEvent() {}

type FlightArrivalDelayed struct {
	Time     time.Time
	Flight   airtime.FlightID
	Duration time.Duration
	Reason   DelayReason
}

func (FlightArrivalDelayed) isModelEvent() {}

type FlightDeparted struct {
	Time   time.Time
	Flight airtime.FlightID
}

func (FlightDeparted) isModelEvent() {}

type FlightArrived struct {
	Time   time.Time
	Flight airtime.FlightID
}

func (FlightArrived) isModelEvent() {}

type FlightCancelled struct {
	Time   time.Time
	Flight airtime.FlightID
	Reason CancelReason
}

func (FlightCancelled) isModelEvent() {}

type AircraftTurnedAround struct {
	Time            time.Time
	Tail            airtime.Tail
	PriorGroundCode airtime.AirportCode
	Dwell           time.Duration
}

func (AircraftTurnedAround) isModelEvent() {}

type CrewAssignmentChanged struct {
	Time    time.Time
	Flight  airtime.FlightID
	NewCrew []airtime.CrewID
}

func (CrewAssignmentChanged) isModelEvent() {}

type AircraftAssignmentChanged struct {
	Time    time.Time
	Flight  airtime.FlightID
	NewTail airtime.Tail
}

func (AircraftAssignmentChanged) isModelEvent() {}

type CrewSelection struct {
	Time        time.Time
	Flight      airtime.FlightID
	Unavailable []airtime.CrewID
}

func (CrewSelection) isModelEvent() {}

type AircraftSelection struct {
	Time      time.Time
	Flight    airtime.FlightID
	PriorTail *airtime.Tail
}

func (AircraftSelection) isModelEvent() {}
