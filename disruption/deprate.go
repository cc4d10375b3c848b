package disruption

import (
	"fmt"
	"time"

	"airdispatch/airtime"
	"airdispatch/slotmgr"
)

// DepartureRateLimit throttles departures from Site within its window by
// slotting the flight's proposed departure time into an hourly bucket.
type DepartureRateLimit struct {
	BaseDisruption
	Site   airtime.AirportCode
	Slots  *slotmgr.Manager[airtime.FlightID]
	Reason string
}

func (d *DepartureRateLimit) Describe() string {
	if d.Reason != "" {
		return fmt.Sprintf("departure rate limit at %s (%s)", d.Site, d.Reason)
	}
	return fmt.Sprintf("departure rate limit at %s", d.Site)
}

func (d *DepartureRateLimit) DepartureAirportsAffected() []airtime.AirportCode {
	return []airtime.AirportCode{d.Site}
}

func (d *DepartureRateLimit) ArrivalAirportsAffected() []airtime.AirportCode { return nil }

// RequestDepart applies when the flight originates at this program's site
// and t falls within the program window.
func (d *DepartureRateLimit) RequestDepart(flight FlightView, clock Clock, t time.Time) Clearance {
	if flight.Origin() != d.Site {
		return ClearedNow
	}
	if !d.Slots.Contains(t) {
		return ClearedNow
	}
	if d.Slots.SlottedAt(t, flight.ID()) {
		return ClearedNow
	}
	edct, ok := d.Slots.AllocateSlot(t, flight.ID())
	if !ok {
		if d.Slots.IsFinalBucket(t) {
			return ClearedNow
		}
		return NewDeferred(d.Slots.End())
	}
	now := clock.Now()
	if !edct.After(now) {
		return ClearedNow
	}
	resolved := edct
	if now.After(resolved) {
		resolved = now
	}
	return NewEDCT(resolved)
}

// VoidDepartClearance drops the reservation at the bucket containing t.
func (d *DepartureRateLimit) VoidDepartClearance(flight FlightView, t time.Time) {
	d.Slots.DropSlot(t, flight.ID())
}
