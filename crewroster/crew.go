package crewroster

import (
	"fmt"
	"time"

	"airdispatch/airtime"
)

// DutyHours is the maximum time a crew member may spend piloting within a
// rolling 24-hour window.
const DutyHours = 10 * time.Hour

// CandidateFlight is the minimal view of a flight Crew.RemainingAfter and
// Crew.TimeUntilAvailableFor need. flightplan.Flight satisfies this.
type CandidateFlight interface {
	Origin() airtime.AirportCode
	EstDuration() time.Duration
	ID() airtime.FlightID
}

// Clock exposes the simulation's current time and flight lookup.
// simmodel.Model satisfies this.
type Clock interface {
	Now() time.Time
	LookupFlight(id airtime.FlightID) (airtime.FlightRef, bool)
}

// Crew is one roster member.
type Crew struct {
	CrewID      airtime.CrewID
	Loc         Location
	DutyLog     []airtime.FlightID // append-only; flights piloted, in order
	NextClaimed *airtime.FlightID
}

// RemainingAfter returns the crew's remaining legal duty time after flying
// flight, given the time already logged as pilot within the rolling window
// ending now and starting 24h before now plus the flight's own duration.
func (c *Crew) RemainingAfter(clock Clock, flight CandidateFlight) time.Duration {
	d := flight.EstDuration()
	now := clock.Now()
	windowStart := now.Add(-24*time.Hour + d)

	logged := d
	for _, fid := range c.DutyLog {
		ref, ok := clock.LookupFlight(fid)
		if !ok {
			continue
		}
		start := ref.DepartedAt()
		if start.Before(windowStart) {
			start = windowStart
		}
		end := ref.ActArriveTime()
		if end.After(now) {
			end = now
		}
		if end.After(start) {
			logged += end.Sub(start)
		}
	}
	return DutyHours - logged
}

// TimeUntilAvailableFor returns how long until this crew can begin serving
// flight, or false if it cannot serve it at all: claimed for another flight,
// would go into duty-time debt, or location rules fail. A claim held for
// flight itself does not block it.
func (c *Crew) TimeUntilAvailableFor(clock Clock, flight CandidateFlight, turnaround time.Duration) (time.Duration, bool) {
	if c.NextClaimed != nil && *c.NextClaimed != flight.ID() {
		return 0, false
	}
	if c.RemainingAfter(clock, flight) < 0 {
		return 0, false
	}

	switch c.Loc.Kind {
	case Ground:
		if c.Loc.Code != flight.Origin() {
			return 0, false
		}
		wait := c.Loc.Since.Add(turnaround).Sub(clock.Now())
		if wait < 0 {
			wait = 0
		}
		return wait, true
	case InFlight:
		ongoing, ok := clock.LookupFlight(c.Loc.Flight)
		if !ok || ongoing.Dest() != flight.Origin() {
			return 0, false
		}
		wait := ongoing.ActArriveTime().Add(turnaround).Sub(clock.Now())
		return wait, true
	default:
		return 0, false
	}
}

// Takeoff records flight in the duty log iff isPilot, and clears any claim.
func (c *Crew) Takeoff(flight airtime.FlightID, isPilot bool) {
	if isPilot {
		c.DutyLog = append(c.DutyLog, flight)
	}
	c.NextClaimed = nil
}

// Land transitions the crew member to Ground at code as of t.
func (c *Crew) Land(code airtime.AirportCode, t time.Time) {
	c.Loc = GroundAt(code, t)
}

// Claim records f as the only flight permitted to select this crew member.
func (c *Crew) Claim(f airtime.FlightID) {
	if c.NextClaimed != nil {
		panic(fmt.Sprintf("crew %d: claim called while already claimed for %d", c.CrewID, *c.NextClaimed))
	}
	c.NextClaimed = &f
}

// Unclaim clears NextClaimed iff it currently equals f.
func (c *Crew) Unclaim(f airtime.FlightID) {
	if c.NextClaimed != nil && *c.NextClaimed == f {
		c.NextClaimed = nil
	}
}
