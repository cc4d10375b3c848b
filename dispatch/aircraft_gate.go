package dispatch

import (
	"time"

	"airdispatch/airtime"
	"airdispatch/flightplan"
	"airdispatch/strategy"
	"airdispatch/telemetry"
)

// aircraftGate resolves whether flight's assigned aircraft can serve it.
// Returns false if it queued a requeue or a cancellation; true only when the
// flight may proceed to the crew gate in this same pass.
func (d *Dispatcher) aircraftGate(flight *flightplan.Flight) bool {
	now := d.Model.Now()

	var avail time.Time
	var ok bool
	if flight.AircraftTail != nil {
		if aircraft, present := d.Model.Aircraft[*flight.AircraftTail]; present {
			avail, ok = aircraft.AvailableTime(d.Model, flight, d.Model.Config.AircraftTurnaroundTime)
		}
	}

	if !ok || avail.After(now.Add(d.Settings.AircraftTolerance)) {
		d.Model.Telemetry.Publish(telemetry.AircraftSelection{Time: now, Flight: flight.FlightID, PriorTail: flight.AircraftTail})

		if d.AircraftStrategy != nil {
			if sel, found := d.AircraftStrategy.Select(d.Model, flight); found {
				d.applyAircraftSelection(flight, sel)
				d.requeueDepart(flight.FlightID, now)
				return false
			}
			d.delayDeparture(flight, ResourceWait, []DelayComponent{
				{Reason: telemetry.NewAircraftShortage(flight.AircraftTail), Duration: ResourceWait},
			})
			return false
		}

		if d.Settings.FallbackAircraftSelector {
			if tail, found := d.fallbackAircraft(flight); found {
				d.applyAircraftSelection(flight, strategy.AircraftSelection{Tail: tail})
				d.requeueDepart(flight.FlightID, now)
				return false
			}
		}

		d.delayDeparture(flight, ResourceWait, []DelayComponent{
			{Reason: telemetry.NewAircraftShortage(flight.AircraftTail), Duration: ResourceWait},
		})
		return false
	}

	if avail.After(now) {
		d.Model.Aircraft[*flight.AircraftTail].Claim(flight.FlightID)
		d.delayDeparture(flight, avail.Sub(now), []DelayComponent{
			{Reason: telemetry.NewAircraftShortage(flight.AircraftTail), Duration: avail.Sub(now)},
		})
		return false
	}

	return true
}

// applyAircraftSelection reassigns flight to sel's tail and applies any
// batch suggestions the strategy returned for other not-yet-departed,
// not-cancelled flights.
func (d *Dispatcher) applyAircraftSelection(flight *flightplan.Flight, sel strategy.AircraftSelection) {
	d.reassignAircraft(flight, sel.Tail)
	for fid, tail := range sel.Reassignments {
		other, present := d.Model.Flights[fid]
		if !present || other.Cancelled || other.DepartTime != nil {
			continue
		}
		d.reassignAircraft(other, tail)
	}
}

// reassignAircraft swaps flight onto tail, claiming the new aircraft and
// publishing the change. A no-op reassignment (the same tail it already had)
// still claims the aircraft but skips the event, mirroring the original
// dispatcher's reassign_aircraft, which reports no change in that case.
func (d *Dispatcher) reassignAircraft(flight *flightplan.Flight, tail airtime.Tail) {
	unchanged := flight.AircraftTail != nil && *flight.AircraftTail == tail
	flight.ReassignAircraft(tail)
	if aircraft, ok := d.Model.Aircraft[tail]; ok {
		aircraft.Claim(flight.FlightID)
	}
	if unchanged {
		return
	}
	d.Model.Telemetry.Publish(telemetry.AircraftAssignmentChanged{Time: d.Model.Now(), Flight: flight.FlightID, NewTail: tail})
}

// fallbackAircraft is the dispatcher's own reassignment when no strategy is
// configured: the earliest-available unclaimed aircraft that can serve
// flight at all.
func (d *Dispatcher) fallbackAircraft(flight *flightplan.Flight) (airtime.Tail, bool) {
	var bestTail airtime.Tail
	var bestTime time.Time
	found := false
	for tail, aircraft := range d.Model.Aircraft {
		if aircraft.NextClaimed != nil {
			continue
		}
		avail, ok := aircraft.AvailableTime(d.Model, flight, d.Model.Config.AircraftTurnaroundTime)
		if !ok {
			continue
		}
		if !found || avail.Before(bestTime) {
			bestTail, bestTime, found = tail, avail, true
		}
	}
	return bestTail, found
}
