package disruption

import (
	"fmt"
	"time"

	"airdispatch/airtime"
	"airdispatch/slotmgr"
)

// GroundDelayProgram throttles arrivals at Site by slotting a flight's
// estimated arrival time into an hourly bucket and handing back the
// departure time that realizes it.
type GroundDelayProgram struct {
	BaseDisruption
	Site   airtime.AirportCode
	Slots  *slotmgr.Manager[airtime.FlightID]
	Reason string
}

func (g *GroundDelayProgram) Describe() string {
	if g.Reason != "" {
		return fmt.Sprintf("ground delay program at %s (%s)", g.Site, g.Reason)
	}
	return fmt.Sprintf("ground delay program at %s", g.Site)
}

func (g *GroundDelayProgram) DepartureAirportsAffected() []airtime.AirportCode { return nil }

func (g *GroundDelayProgram) ArrivalAirportsAffected() []airtime.AirportCode {
	return []airtime.AirportCode{g.Site}
}

// RequestDepart applies only when the flight's destination matches this
// program's site. It slots the flight's estimated arrival time and converts
// any resulting delay back into a departure-time clearance.
func (g *GroundDelayProgram) RequestDepart(flight FlightView, clock Clock, t time.Time) Clearance {
	if flight.Dest() != g.Site {
		return ClearedNow
	}
	arrive := flight.EstArriveTime(t)
	if !g.Slots.Contains(arrive) {
		return ClearedNow
	}
	if g.Slots.SlottedAt(arrive, flight.ID()) {
		return ClearedNow
	}
	edct, ok := g.Slots.AllocateSlot(arrive, flight.ID())
	if !ok {
		return NewDeferred(g.Slots.End().Add(-flight.EstDuration()))
	}
	resolved := edct
	if clock.Now().After(resolved) {
		resolved = clock.Now()
	}
	return NewEDCT(resolved.Add(-flight.EstDuration()))
}

// VoidDepartClearance drops the reservation at the bucket containing the
// flight's estimated arrival time as of t.
func (g *GroundDelayProgram) VoidDepartClearance(flight FlightView, t time.Time) {
	g.Slots.DropSlot(flight.EstArriveTime(t), flight.ID())
}
