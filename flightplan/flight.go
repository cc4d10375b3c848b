// Package flightplan holds the Flight and PassengerGroup types: flight-level
// state (assignments, schedule, accumulated delay, cancellation) mutated only
// through the transition methods below, as driven by the simulation model.
package flightplan

import (
	"fmt"
	"time"

	"airdispatch/airtime"
)

// Flight is one scheduled operation of a flight number between two airports.
// Entity mutation is restricted to the methods below; callers outside this
// package read fields directly but never assign them.
type Flight struct {
	FlightID     airtime.FlightID
	Number       string
	AircraftTail *airtime.Tail
	// Crew holds the assigned crew ids; index 0 is the pilot, the rest deadhead.
	Crew       []airtime.CrewID
	Passengers []PassengerGroup
	OriginCode airtime.AirportCode
	DestCode   airtime.AirportCode
	Cancelled  bool

	DepartTime *time.Time
	ArriveTime *time.Time

	DepDelay   time.Duration
	AccumDelay *time.Duration

	SchedDepart time.Time
	SchedArrive time.Time
}

// ID implements disruption.FlightView.
func (f *Flight) ID() airtime.FlightID { return f.FlightID }

// Origin implements disruption.FlightView.
func (f *Flight) Origin() airtime.AirportCode { return f.OriginCode }

// Dest implements disruption.FlightView.
func (f *Flight) Dest() airtime.AirportCode { return f.DestCode }

// EstDuration is the scheduled block time.
func (f *Flight) EstDuration() time.Duration {
	return f.SchedArrive.Sub(f.SchedDepart)
}

// EstArriveTime projects an arrival time from a hypothetical departure at
// depart, using the scheduled block time.
func (f *Flight) EstArriveTime(depart time.Time) time.Time {
	return depart.Add(f.EstDuration())
}

// ActArriveTime is the flight's best-known arrival estimate: the actual
// arrival if it has landed, else a projection from its actual departure, else
// the scheduled arrival.
func (f *Flight) ActArriveTime() time.Time {
	if f.ArriveTime != nil {
		return *f.ArriveTime
	}
	if f.DepartTime != nil {
		return f.DepartTime.Add(f.EstDuration())
	}
	return f.SchedArrive
}

// DepartedAt returns the flight's actual departure time. Callers must only
// call this once the flight has departed.
func (f *Flight) DepartedAt() time.Time {
	if f.DepartTime == nil {
		panic(fmt.Sprintf("flight %s: DepartedAt called before takeoff", f.Number))
	}
	return *f.DepartTime
}

// IsFerry reports whether the flight carries no revenue passengers.
func (f *Flight) IsFerry() bool { return len(f.Passengers) == 0 }

// Equal compares two flights by flight number, per the spec's equality rule.
func (f *Flight) Equal(other *Flight) bool {
	if other == nil {
		return false
	}
	return f.Number == other.Number
}

// Pilot returns the pilot crew id, the first entry in Crew.
func (f *Flight) Pilot() (airtime.CrewID, bool) {
	if len(f.Crew) == 0 {
		return 0, false
	}
	return f.Crew[0], true
}

// Deadheads returns every crew id beyond the pilot.
func (f *Flight) Deadheads() []airtime.CrewID {
	if len(f.Crew) <= 1 {
		return nil
	}
	return f.Crew[1:]
}

// Takeoff records the actual departure time. It is a contract violation to
// call this on a flight that has already departed.
func (f *Flight) Takeoff(t time.Time) {
	if f.DepartTime != nil {
		panic(fmt.Sprintf("flight %s: takeoff called twice", f.Number))
	}
	f.DepartTime = &t
}

// Land records the actual arrival time. It is a contract violation to call
// this on a flight that has not yet departed, or that has already arrived.
func (f *Flight) Land(t time.Time) {
	if f.DepartTime == nil {
		panic(fmt.Sprintf("flight %s: land called before takeoff", f.Number))
	}
	if f.ArriveTime != nil {
		panic(fmt.Sprintf("flight %s: land called twice", f.Number))
	}
	f.ArriveTime = &t
}

// DelayDeparture accumulates a departure delay.
func (f *Flight) DelayDeparture(d time.Duration) {
	f.DepDelay += d
}

// DelayArrival accumulates an arrival delay.
func (f *Flight) DelayArrival(d time.Duration) {
	if f.AccumDelay == nil {
		var zero time.Duration
		f.AccumDelay = &zero
	}
	*f.AccumDelay += d
}

// ReassignAircraft swaps the assigned tail. A no-op reassignment (same tail)
// is still applied; callers should check for equality first to avoid
// publishing a spurious assignment-change event.
func (f *Flight) ReassignAircraft(tail airtime.Tail) {
	f.AircraftTail = &tail
}

// ReassignCrew replaces the assigned crew list wholesale.
func (f *Flight) ReassignCrew(crew []airtime.CrewID) {
	f.Crew = crew
}

// Cancel marks the flight cancelled. A cancelled flight cannot later depart
// or arrive.
func (f *Flight) Cancel() {
	f.Cancelled = true
}
