package strategy

import (
	"time"

	"airdispatch/airtime"
	"airdispatch/flightplan"
	"airdispatch/simmodel"
)

// surplusAircraft is one tail the strategy considers free to reroute: where
// it sits and when it is next available, seeded by OnFlightCancel.
type surplusAircraft struct {
	Tail          airtime.Tail
	Code          airtime.AirportCode
	AvailableFrom time.Time
}

type reservation struct {
	flight     *flightplan.Flight
	accumDelay time.Duration
}

// DepthFirstAircraft explores bounded-length chains of unfulfilled flights
// reachable from each surplus aircraft's location, and assigns the longest
// chain it finds (ties broken toward the smaller accumulated delay). It
// recomputes at most once per RecomputeEvery of simulated time; in between,
// it answers Select calls from the cached assignment table.
type DepthFirstAircraft struct {
	MaxPathLen     int
	RecomputeEvery time.Duration

	ran         bool
	lastRun     time.Time
	surplus     []surplusAircraft
	unfulfilled map[airtime.AirportCode][]*flightplan.Flight
	seen        map[airtime.FlightID]bool
	assignments map[airtime.FlightID]airtime.Tail
}

// NewDepthFirstAircraft builds a strategy with the spec's defaults: paths of
// at most 5 flights, recomputed at most every 15 simulated minutes.
func NewDepthFirstAircraft() *DepthFirstAircraft {
	return &DepthFirstAircraft{
		MaxPathLen:     5,
		RecomputeEvery: 15 * time.Minute,
		unfulfilled:    make(map[airtime.AirportCode][]*flightplan.Flight),
		seen:           make(map[airtime.FlightID]bool),
		assignments:    make(map[airtime.FlightID]airtime.Tail),
	}
}

func (d *DepthFirstAircraft) registerUnfulfilled(flight *flightplan.Flight) {
	if d.seen[flight.FlightID] {
		return
	}
	d.seen[flight.FlightID] = true
	d.unfulfilled[flight.OriginCode] = append(d.unfulfilled[flight.OriginCode], flight)
}

func (d *DepthFirstAircraft) removeUnfulfilled(flight *flightplan.Flight) {
	if !d.seen[flight.FlightID] {
		return
	}
	delete(d.seen, flight.FlightID)
	list := d.unfulfilled[flight.OriginCode]
	for i, f := range list {
		if f.FlightID == flight.FlightID {
			d.unfulfilled[flight.OriginCode] = append(list[:i], list[i+1:]...)
			break
		}
	}
}

// Select answers with the cached assignment for flight, if the current run
// produced one, recomputing first if the cache has gone stale.
func (d *DepthFirstAircraft) Select(m *simmodel.Model, flight *flightplan.Flight) (AircraftSelection, bool) {
	d.registerUnfulfilled(flight)

	if !d.ran || m.Now().Sub(d.lastRun) >= d.RecomputeEvery {
		d.recompute(m)
		d.lastRun = m.Now()
		d.ran = true
	}

	tail, ok := d.assignments[flight.FlightID]
	if !ok {
		return AircraftSelection{}, false
	}
	delete(d.assignments, flight.FlightID)

	batch := make(map[airtime.FlightID]airtime.Tail)
	for fid, t := range d.assignments {
		if t == tail {
			batch[fid] = t
			delete(d.assignments, fid)
		}
	}
	return AircraftSelection{Tail: tail, Reassignments: batch}, true
}

// OnFlightCancel returns the flight's previously assigned aircraft, if any,
// to the surplus pool at the cancelled flight's origin, available from now.
func (d *DepthFirstAircraft) OnFlightCancel(m *simmodel.Model, flight *flightplan.Flight) {
	if flight.AircraftTail == nil {
		return
	}
	d.surplus = append(d.surplus, surplusAircraft{
		Tail:          *flight.AircraftTail,
		Code:          flight.OriginCode,
		AvailableFrom: m.Now(),
	})
}

// OnFlightDepart drops the flight from the unfulfilled registry and retires
// its aircraft from the surplus pool: it's in the air now, not free to
// reroute.
func (d *DepthFirstAircraft) OnFlightDepart(m *simmodel.Model, flight *flightplan.Flight) {
	d.removeUnfulfilled(flight)
	if flight.AircraftTail == nil {
		return
	}
	tail := *flight.AircraftTail
	kept := d.surplus[:0]
	for _, sa := range d.surplus {
		if sa.Tail != tail {
			kept = append(kept, sa)
		}
	}
	d.surplus = kept
}

func (d *DepthFirstAircraft) recompute(m *simmodel.Model) {
	d.assignments = make(map[airtime.FlightID]airtime.Tail)
	for _, sa := range d.surplus {
		used := make(map[airtime.FlightID]bool)
		path := d.explore(m, sa.Code, sa.AvailableFrom, nil, used, 0)
		for _, r := range path {
			if _, taken := d.assignments[r.flight.FlightID]; !taken {
				d.assignments[r.flight.FlightID] = sa.Tail
			}
		}
	}
}

// explore depth-first searches chains of unfulfilled flights departing from
// code no earlier than available, respecting the spec's window (an aircraft
// may arrive up to 2h after a flight's delayed departure, but must not be
// so late that it would itself exceed max_delay), and returns the longest
// chain found (ties broken toward less accumulated delay).
func (d *DepthFirstAircraft) explore(m *simmodel.Model, code airtime.AirportCode, available time.Time, path []reservation, used map[airtime.FlightID]bool, depth int) []reservation {
	if depth >= d.MaxPathLen {
		return path
	}

	var best []reservation
	for _, f := range d.unfulfilled[code] {
		if used[f.FlightID] || f.Cancelled || f.AircraftTail != nil {
			continue
		}
		slack := available.Sub(f.SchedDepart.Add(f.DepDelay))
		if slack > 2*time.Hour {
			continue
		}
		if slack >= m.Config.MaxDelay {
			continue
		}

		dep := f.SchedDepart
		if available.After(dep) {
			dep = available
		}
		arrive := dep.Add(f.EstDuration())
		nextAvailable := arrive.Add(m.Config.AircraftTurnaroundTime)

		accum := slack
		if accum < 0 {
			accum = 0
		}

		used[f.FlightID] = true
		candidate := append(append([]reservation{}, path...), reservation{flight: f, accumDelay: accum})
		deeper := d.explore(m, f.DestCode, nextAvailable, candidate, used, depth+1)
		delete(used, f.FlightID)

		if betterPath(deeper, best) {
			best = deeper
		}
	}

	if len(best) == 0 {
		return path
	}
	return best
}

func betterPath(candidate, best []reservation) bool {
	if len(candidate) != len(best) {
		return len(candidate) > len(best)
	}
	return totalDelay(candidate) < totalDelay(best)
}

func totalDelay(path []reservation) time.Duration {
	var sum time.Duration
	for _, r := range path {
		sum += r.accumDelay
	}
	return sum
}
