// Package airport implements the Airport entity: per-airport hourly
// departure/arrival rate counters, the on-ground rosters of aircraft and
// crew, and the passenger demand queue that flights load from and offload
// into at this station.
package airport

import (
	"fmt"
	"time"

	"airdispatch/airtime"
	"airdispatch/flightplan"
)

// Airport owns one station's ground rosters, rate counters, and passenger
// demand queue.
type Airport struct {
	Code airtime.AirportCode

	OnGroundAircraft map[airtime.Tail]struct{}
	OnGroundCrew     map[airtime.CrewID]struct{}

	Demands []flightplan.PassengerGroup

	DepCap int
	ArrCap int

	depWindowStart time.Time
	depCount       int
	arrWindowStart time.Time
	arrCount       int
}

// New builds an empty Airport with the rate windows opened at start.
func New(code airtime.AirportCode, depCap, arrCap int, start time.Time) *Airport {
	return &Airport{
		Code:             code,
		OnGroundAircraft: make(map[airtime.Tail]struct{}),
		OnGroundCrew:     make(map[airtime.CrewID]struct{}),
		DepCap:           depCap,
		ArrCap:           arrCap,
		depWindowStart:   start,
		arrWindowStart:   start,
	}
}

// DepartTime returns t if the current hourly departure window is stale or
// under cap, else the next hour boundary.
func (a *Airport) DepartTime(t time.Time) time.Time {
	if t.Sub(a.depWindowStart) >= time.Hour || a.depCount < a.DepCap {
		return t
	}
	return a.depWindowStart.Add(time.Hour)
}

// ArriveTime is DepartTime's symmetric counterpart for arrivals.
func (a *Airport) ArriveTime(t time.Time) time.Time {
	if t.Sub(a.arrWindowStart) >= time.Hour || a.arrCount < a.ArrCap {
		return t
	}
	return a.arrWindowStart.Add(time.Hour)
}

// MarkDeparture records one departure at t against the rate window, removes
// the flight's aircraft and crew from the on-ground rosters, and loads
// passengers bound for the flight's destination up to capacity (the
// departing aircraft's seat count).
func (a *Airport) MarkDeparture(t time.Time, flight *flightplan.Flight, capacity int) {
	a.bumpWindow(t, &a.depWindowStart, &a.depCount)

	if flight.AircraftTail == nil {
		panic(fmt.Sprintf("airport %s: mark departure for flight %s with no assigned aircraft", a.Code, flight.Number))
	}
	if _, ok := a.OnGroundAircraft[*flight.AircraftTail]; !ok {
		panic(fmt.Sprintf("airport %s: aircraft %s not on ground for departure", a.Code, *flight.AircraftTail))
	}
	delete(a.OnGroundAircraft, *flight.AircraftTail)
	for _, crew := range flight.Crew {
		delete(a.OnGroundCrew, crew)
	}

	a.loadPassengers(flight, capacity)
}

// MarkArrival records one arrival at t against the rate window, returns the
// flight's aircraft and crew to the on-ground rosters, and offloads
// passengers that have not yet reached their terminus.
func (a *Airport) MarkArrival(t time.Time, flight *flightplan.Flight) {
	a.bumpWindow(t, &a.arrWindowStart, &a.arrCount)

	if flight.AircraftTail != nil {
		a.OnGroundAircraft[*flight.AircraftTail] = struct{}{}
	}
	for _, crew := range flight.Crew {
		a.OnGroundCrew[crew] = struct{}{}
	}

	a.offloadPassengers(flight)
}

func (a *Airport) bumpWindow(t time.Time, windowStart *time.Time, count *int) {
	if t.Sub(*windowStart) >= time.Hour {
		*windowStart = t
		*count = 1
	} else {
		*count++
	}
}

// loadPassengers scans demands in order, splitting off groups bound for
// flight's destination until capacity is exhausted, then drops any demand
// left with a zero count.
func (a *Airport) loadPassengers(flight *flightplan.Flight, capacity int) {
	remaining := capacity
	kept := a.Demands[:0]
	for i := range a.Demands {
		demand := &a.Demands[i]
		if remaining > 0 {
			next, ok := demand.NextDest(a.Code)
			if ok && next == flight.DestCode {
				take := demand.Count
				if take > remaining {
					take = remaining
				}
				if take > 0 {
					group := demand.SplitOff(take, flight.FlightID)
					flight.Passengers = append(flight.Passengers, group)
					remaining -= take
				}
			}
		}
		if demand.Count > 0 {
			kept = append(kept, *demand)
		}
	}
	a.Demands = kept
}

// offloadPassengers appends every passenger group whose itinerary does not
// terminate here to this airport's demand queue. Groups that have reached
// their terminus disappear.
func (a *Airport) offloadPassengers(flight *flightplan.Flight) {
	for _, group := range flight.Passengers {
		if group.Terminus() == a.Code {
			continue
		}
		a.Demands = append(a.Demands, group)
	}
}
