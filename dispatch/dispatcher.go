// Package dispatch implements the Dispatcher: the single-threaded event loop
// that drives flights from their scheduled departure through the gates that
// can delay, reroute, or cancel them, to arrival.
package dispatch

import (
	"container/heap"
	"fmt"
	"time"

	"github.com/google/uuid"

	"airdispatch/airtime"
	"airdispatch/disruption"
	"airdispatch/flightplan"
	"airdispatch/simmodel"
	"airdispatch/strategy"
	"airdispatch/telemetry"
)

// ResourceWait is how long CheckDepart waits before retrying a gate that
// found no way to proceed and no strategy willing to resolve it.
const ResourceWait = 10 * time.Minute

// Settings configures the gating behavior the scenario loader supplies per
// spec: reassignment tolerances, whether deadheading crew are held to the
// same standard as the pilot, and whether the dispatcher's own
// earliest-available fallback selectors are enabled.
type Settings struct {
	AircraftTolerance        time.Duration
	CrewTolerance            time.Duration
	WaitForDeadheaders       bool
	FallbackAircraftSelector bool
	FallbackCrewSelector     bool
}

// DelayComponent is one published reason behind a departure delay, paired
// with the slice of the total delay it accounts for.
type DelayComponent struct {
	Reason   telemetry.DelayReason
	Duration time.Duration
}

// Dispatcher owns the priority queue of pending departure/arrival checks and
// drives the Model's clock forward one event at a time.
type Dispatcher struct {
	Model            *simmodel.Model
	AircraftStrategy strategy.AircraftStrategy
	CrewStrategy     strategy.CrewStrategy
	Settings         Settings
	RunID            uuid.UUID

	queue    updateQueue
	started  bool
	finished bool
}

// New builds a Dispatcher over an already-populated Model. Either strategy
// may be nil, in which case the dispatcher's fallback selectors (if enabled)
// or its plain wait/cancel behavior apply instead.
func New(m *simmodel.Model, aircraft strategy.AircraftStrategy, crew strategy.CrewStrategy, settings Settings) *Dispatcher {
	d := &Dispatcher{Model: m, AircraftStrategy: aircraft, CrewStrategy: crew, Settings: settings, RunID: uuid.New()}
	heap.Init(&d.queue)
	return d
}

// InitFlightUpdates enqueues one CheckDepart per flight at its scheduled
// departure time.
func (d *Dispatcher) InitFlightUpdates() {
	for id, f := range d.Model.Flights {
		heap.Push(&d.queue, update{Time: f.SchedDepart, Flight: id, Kind: CheckDepart})
	}
}

// Step pops and dispatches one update, asserting the clock only ever moves
// forward. It returns false once the queue is empty, leaving the model at
// rest. Tests exercise the gating state machine as a deterministic sequence
// of Step calls (or through Run, which only loops Step), so interleavings
// stay reproducible.
func (d *Dispatcher) Step() bool {
	if d.finished {
		return false
	}
	if !d.started {
		d.started = true
		d.Model.Telemetry.Publish(telemetry.SimulationStarted{Time: d.Model.Now(), RunID: d.RunID})
	}

	if d.queue.Len() == 0 {
		d.finished = true
		d.Model.Telemetry.Publish(telemetry.SimulationComplete{Time: d.Model.Now(), RunID: d.RunID})
		return false
	}

	next := heap.Pop(&d.queue).(update)
	if next.Time.Before(d.Model.Now()) {
		panic(fmt.Sprintf("dispatch: update for flight %d at %s precedes clock %s",
			next.Flight, airtime.FormatTime(next.Time), airtime.FormatTime(d.Model.Now())))
	}
	d.Model.Advance(next.Time)

	switch next.Kind {
	case CheckDepart:
		d.checkDepart(next.Flight)
	case CheckArrive:
		d.checkArrive(next.Flight)
	}
	return true
}

// Run drives Step to completion.
func (d *Dispatcher) Run() {
	for d.Step() {
	}
}

func (d *Dispatcher) requeueDepart(id airtime.FlightID, t time.Time) {
	heap.Push(&d.queue, update{Time: t, Flight: id, Kind: CheckDepart})
}

func (d *Dispatcher) requeueArrive(id airtime.FlightID, t time.Time) {
	heap.Push(&d.queue, update{Time: t, Flight: id, Kind: CheckArrive})
}

// checkDepart runs the full departure gate chain: time, aircraft, crew,
// disruption, airport. Any gate failure re-queues (or cancels) and returns;
// only when every gate passes does the flight actually depart.
func (d *Dispatcher) checkDepart(id airtime.FlightID) {
	flight := d.Model.Flights[id]
	now := d.Model.Now()

	if flight.SchedDepart.After(now) {
		d.requeueDepart(id, flight.SchedDepart)
		return
	}

	if !d.aircraftGate(flight) {
		return
	}
	if !d.crewGate(flight) {
		return
	}

	clearance, reasons, ok := d.Model.RequestDeparture(flight)
	if !ok {
		d.cancelFlight(flight, telemetry.NewDelayTimedOut())
		return
	}
	if clearance.Kind != disruption.Cleared {
		components := make([]DelayComponent, len(reasons))
		for i, r := range reasons {
			components[i] = DelayComponent{Reason: telemetry.NewDisrupted(r.Disruption.Describe()), Duration: r.Delay}
		}
		d.delayDeparture(flight, clearance.Time.Sub(now), components)
		return
	}

	origin := d.Model.Airports[flight.OriginCode]
	airportTime := origin.DepartTime(now)
	if airportTime.After(now) {
		d.delayDeparture(flight, airportTime.Sub(now), []DelayComponent{
			{Reason: telemetry.NewRateLimited(flight.OriginCode), Duration: airportTime.Sub(now)},
		})
		return
	}

	d.Model.DepartFlight(id)
	if d.AircraftStrategy != nil {
		d.AircraftStrategy.OnFlightDepart(d.Model, flight)
	}
	if d.CrewStrategy != nil {
		d.CrewStrategy.OnFlightDepart(d.Model, flight)
	}
	d.requeueArrive(id, flight.ActArriveTime())
}

// checkArrive runs the arrival gate chain: elapsed flight time, disruption,
// destination airport rate.
func (d *Dispatcher) checkArrive(id airtime.FlightID) {
	flight := d.Model.Flights[id]
	now := d.Model.Now()

	arrive := flight.ActArriveTime()
	if arrive.After(now) {
		d.requeueArrive(id, arrive)
		return
	}

	clearance, reasons, ok := d.Model.RequestArrival(flight)
	if !ok {
		panic(fmt.Sprintf("dispatch: arrival reservation for flight %d produced no solution", id))
	}
	if clearance.Kind != disruption.Cleared {
		for _, r := range reasons {
			d.Model.Telemetry.Publish(telemetry.FlightArrivalDelayed{
				Time: now, Flight: id, Duration: r.Delay, Reason: telemetry.NewDisrupted(r.Disruption.Describe()),
			})
		}
		flight.DelayArrival(clearance.Time.Sub(now))
		d.requeueArrive(id, clearance.Time)
		return
	}

	dest := d.Model.Airports[flight.DestCode]
	arriveAt := dest.ArriveTime(now)
	if arriveAt.After(now) {
		d.Model.Telemetry.Publish(telemetry.FlightArrivalDelayed{
			Time: now, Flight: id, Duration: arriveAt.Sub(now), Reason: telemetry.NewRateLimited(flight.DestCode),
		})
		flight.DelayArrival(arriveAt.Sub(now))
		d.requeueArrive(id, arriveAt)
		return
	}

	d.Model.ArriveFlight(id)
}

// delayDeparture is the shared requeue-or-cancel decision: if the total
// delay would push the flight past its scheduled departure plus the
// model's max delay, it cancels with DelayTimedOut; otherwise it publishes
// one FlightDepartureDelayed per component, accumulates the total onto the
// flight, and re-queues CheckDepart at now + duration.
func (d *Dispatcher) delayDeparture(flight *flightplan.Flight, total time.Duration, components []DelayComponent) {
	now := d.Model.Now()
	if now.Add(total).After(flight.SchedDepart.Add(d.Model.Config.MaxDelay)) {
		d.cancelFlight(flight, telemetry.NewDelayTimedOut())
		return
	}
	for _, c := range components {
		d.Model.Telemetry.Publish(telemetry.FlightDepartureDelayed{Time: now, Flight: flight.FlightID, Duration: c.Duration, Reason: c.Reason})
	}
	flight.DelayDeparture(total)
	d.requeueDepart(flight.FlightID, now.Add(total))
}

func (d *Dispatcher) cancelFlight(flight *flightplan.Flight, reason telemetry.CancelReason) {
	d.Model.CancelFlight(flight.FlightID, reason)
	if d.AircraftStrategy != nil {
		d.AircraftStrategy.OnFlightCancel(d.Model, flight)
	}
	if d.CrewStrategy != nil {
		d.CrewStrategy.OnFlightCancel(d.Model, flight)
	}
}
