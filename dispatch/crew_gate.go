package dispatch

import (
	"time"

	"airdispatch/airtime"
	"airdispatch/flightplan"
	"airdispatch/telemetry"
)

type crewWait struct {
	id   airtime.CrewID
	wait time.Duration
	ok   bool
}

// crewGate classifies every assigned crew member by how long until they can
// serve flight, reassigns or waits out the critical ones that can't, and
// finally strips any deadheader that remains unavailable.
func (d *Dispatcher) crewGate(flight *flightplan.Flight) bool {
	if len(flight.Crew) == 0 {
		return true
	}

	now := d.Model.Now()
	waits := make([]crewWait, len(flight.Crew))
	for i, cid := range flight.Crew {
		crew := d.Model.Crews[cid]
		w, ok := crew.TimeUntilAvailableFor(d.Model, flight, d.Model.Config.CrewTurnaroundTime)
		waits[i] = crewWait{id: cid, wait: w, ok: ok}
	}

	critical := waits
	if !d.Settings.WaitForDeadheaders {
		critical = waits[:1]
	}

	var needsReassign []airtime.CrewID
	for _, w := range critical {
		if !w.ok || w.wait > d.Settings.CrewTolerance {
			needsReassign = append(needsReassign, w.id)
		}
	}

	if len(needsReassign) > 0 {
		d.Model.Telemetry.Publish(telemetry.CrewSelection{Time: now, Flight: flight.FlightID, Unavailable: needsReassign})

		if d.CrewStrategy != nil {
			if crews, found := d.CrewStrategy.Select(d.Model, flight); found {
				d.reassignCrew(flight, crews)
				d.requeueDepart(flight.FlightID, now)
				return false
			}
			d.cancelFlight(flight, telemetry.NewHeavyExpectedDelay(telemetry.NewCrewShortage(needsReassign)))
			return false
		}

		if d.Settings.FallbackCrewSelector {
			if crews, found := d.fallbackCrew(flight, needsReassign); found {
				d.reassignCrew(flight, crews)
				d.requeueDepart(flight.FlightID, now)
				return false
			}
		}

		d.delayDeparture(flight, ResourceWait, []DelayComponent{
			{Reason: telemetry.NewCrewShortage(needsReassign), Duration: ResourceWait},
		})
		return false
	}

	var maxWait time.Duration
	for _, w := range critical {
		if w.wait > maxWait {
			maxWait = w.wait
		}
	}
	if maxWait > 0 {
		d.delayDeparture(flight, maxWait, []DelayComponent{
			{Reason: telemetry.NewCrewShortage(nil), Duration: maxWait},
		})
		return false
	}

	kept := append([]airtime.CrewID{}, flight.Crew[0])
	for i := 1; i < len(waits); i++ {
		if waits[i].ok && waits[i].wait <= 0 {
			kept = append(kept, waits[i].id)
		}
	}
	flight.ReassignCrew(kept)
	return true
}

func (d *Dispatcher) reassignCrew(flight *flightplan.Flight, crews []airtime.CrewID) {
	for _, cid := range crews {
		if crew, ok := d.Model.Crews[cid]; ok {
			crew.Claim(flight.FlightID)
		}
	}
	flight.ReassignCrew(crews)
	d.Model.Telemetry.Publish(telemetry.CrewAssignmentChanged{Time: d.Model.Now(), Flight: flight.FlightID, NewCrew: crews})
}

// fallbackCrew is the dispatcher's own reassignment when no crew strategy is
// configured: for each crew member that needs replacing, the earliest
// available crew member (on the ground at the flight's origin, or in flight
// towards it) not already assigned to it.
func (d *Dispatcher) fallbackCrew(flight *flightplan.Flight, needsReassign []airtime.CrewID) ([]airtime.CrewID, bool) {
	used := make(map[airtime.CrewID]bool, len(flight.Crew))
	for _, cid := range flight.Crew {
		used[cid] = true
	}
	replacement := make(map[airtime.CrewID]airtime.CrewID, len(needsReassign))

	for _, old := range needsReassign {
		var bestID airtime.CrewID
		var bestWait time.Duration
		found := false
		for cid, crew := range d.Model.Crews {
			if used[cid] || crew.NextClaimed != nil {
				continue
			}
			wait, ok := crew.TimeUntilAvailableFor(d.Model, flight, d.Model.Config.CrewTurnaroundTime)
			if !ok {
				continue
			}
			if !found || wait < bestWait {
				bestID, bestWait, found = cid, wait, true
			}
		}
		if !found {
			return nil, false
		}
		replacement[old] = bestID
		used[bestID] = true
	}

	newCrew := make([]airtime.CrewID, len(flight.Crew))
	for i, cid := range flight.Crew {
		if r, ok := replacement[cid]; ok {
			newCrew[i] = r
		} else {
			newCrew[i] = cid
		}
	}
	return newCrew, true
}
