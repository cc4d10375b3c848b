package simmodel

import (
	"time"

	"airdispatch/disruption"
	"airdispatch/flightplan"
)

// ReserveReason is one component of a reservation walk's delay breakdown:
// the disruption responsible, and how much additional delay it imposed over
// the time the walk had reached before consulting it.
type ReserveReason struct {
	Disruption disruption.Disruption
	Delay      time.Duration
}

// reserveEarliest walks every applicable disruption's request function,
// looking for a time every disruption simultaneously clears. Each time a
// disruption returns a timed clearance later than the walk's current time,
// every disruption already cleared in this walk is voided (since it was
// cleared for a time that's no longer being proposed), the walk's time jumps
// to the new clearance, and the whole set is re-offered at the new time.
// Returns the settled time, the ordered delay breakdown, and false if the
// walk exceeded the model's max delay before settling.
func (m *Model) reserveEarliest(
	disruptions []disruption.Disruption,
	request func(d disruption.Disruption, t time.Time) disruption.Clearance,
	void func(d disruption.Disruption, t time.Time),
) (time.Time, []ReserveReason, bool) {
	now := m.NowTime
	deadline := now.Add(m.Config.MaxDelay)
	t := now
	slotted := make(map[disruption.Disruption]bool, len(disruptions))
	var reasons []ReserveReason

	for {
		restarted := false
		for _, d := range disruptions {
			if slotted[d] {
				continue
			}
			clearance := request(d, t)
			if clearance.Kind == disruption.Cleared || !clearance.Time.After(t) {
				slotted[d] = true
				continue
			}

			for prior := range slotted {
				void(prior, t)
			}
			slotted = map[disruption.Disruption]bool{d: true}
			reasons = append(reasons, ReserveReason{Disruption: d, Delay: clearance.Time.Sub(t)})
			t = clearance.Time

			if !t.Before(deadline) {
				return time.Time{}, nil, false
			}

			restarted = true
			break
		}
		if !restarted {
			return t, reasons, true
		}
	}
}

// RequestDeparture runs the reservation walk for flight's departure against
// every disruption the index considers applicable. The returned Clearance is
// Cleared if the settled time is not after now, else an EDCT for the settled
// time.
func (m *Model) RequestDeparture(flight *flightplan.Flight) (disruption.Clearance, []ReserveReason, bool) {
	applicable := m.Disruptions.Lookup(flight)
	t, reasons, ok := m.reserveEarliest(applicable,
		func(d disruption.Disruption, t time.Time) disruption.Clearance {
			return d.RequestDepart(flight, m, t)
		},
		func(d disruption.Disruption, t time.Time) {
			d.VoidDepartClearance(flight, t)
		},
	)
	if !ok {
		return disruption.Clearance{}, nil, false
	}
	if !t.After(m.NowTime) {
		return disruption.ClearedNow, reasons, true
	}
	return disruption.NewEDCT(t), reasons, true
}

// RequestArrival is RequestDeparture's arrival-side counterpart.
func (m *Model) RequestArrival(flight *flightplan.Flight) (disruption.Clearance, []ReserveReason, bool) {
	applicable := m.Disruptions.Lookup(flight)
	t, reasons, ok := m.reserveEarliest(applicable,
		func(d disruption.Disruption, t time.Time) disruption.Clearance {
			return d.RequestArrive(flight, m, t)
		},
		func(d disruption.Disruption, t time.Time) {
			d.VoidArriveClearance(flight, t)
		},
	)
	if !ok {
		return disruption.Clearance{}, nil, false
	}
	if !t.After(m.NowTime) {
		return disruption.ClearedNow, reasons, true
	}
	return disruption.NewEDCT(t), reasons, true
}
