// Package simmodel implements the Model aggregate: the simulation clock,
// entity tables, the disruption index, and the flight lifecycle transitions
// (depart/arrive/cancel) and the earliest-clearance reservation walk that the
// Dispatcher drives but never bypasses.
package simmodel

import (
	"fmt"
	"time"

	"airdispatch/airport"
	"airdispatch/airtime"
	"airdispatch/crewroster"
	"airdispatch/disruption"
	"airdispatch/fleet"
	"airdispatch/flightplan"
	"airdispatch/telemetry"
)

// Config holds the scenario-wide durations the Model enforces.
type Config struct {
	CrewTurnaroundTime     time.Duration
	AircraftTurnaroundTime time.Duration
	MaxDelay               time.Duration
}

// Model is the aggregate root: the monotonic clock, every entity keyed by
// its natural id, the disruption index, and the telemetry publisher.
type Model struct {
	NowTime time.Time
	EndTime time.Time

	Flights  map[airtime.FlightID]*flightplan.Flight
	Aircraft map[airtime.Tail]*fleet.Aircraft
	Crews    map[airtime.CrewID]*crewroster.Crew
	Airports map[airtime.AirportCode]*airport.Airport

	Disruptions *disruption.Index
	Telemetry   telemetry.Publisher

	Config Config
}

// New builds an empty Model over [start, end).
func New(start, end time.Time, cfg Config, publisher telemetry.Publisher) *Model {
	return &Model{
		NowTime:     start,
		EndTime:     end,
		Flights:     make(map[airtime.FlightID]*flightplan.Flight),
		Aircraft:    make(map[airtime.Tail]*fleet.Aircraft),
		Crews:       make(map[airtime.CrewID]*crewroster.Crew),
		Airports:    make(map[airtime.AirportCode]*airport.Airport),
		Disruptions: disruption.NewIndex(),
		Telemetry:   publisher,
		Config:      cfg,
	}
}

// Now returns the simulation clock. Satisfies disruption.Clock,
// fleet.Clock, and crewroster.Clock.
func (m *Model) Now() time.Time { return m.NowTime }

// End returns the scenario's end time.
func (m *Model) End() time.Time { return m.EndTime }

// Advance moves the clock forward to t. It is a contract violation to move
// it backward.
func (m *Model) Advance(t time.Time) {
	if t.Before(m.NowTime) {
		panic(fmt.Sprintf("model: clock moved backward from %s to %s", airtime.FormatTime(m.NowTime), airtime.FormatTime(t)))
	}
	m.NowTime = t
}

// LookupFlight satisfies fleet.Clock and crewroster.Clock: a read-only view
// of any flight by id.
func (m *Model) LookupFlight(id airtime.FlightID) (airtime.FlightRef, bool) {
	f, ok := m.Flights[id]
	if !ok {
		return nil, false
	}
	return f, true
}

func (m *Model) mustFlight(id airtime.FlightID) *flightplan.Flight {
	f, ok := m.Flights[id]
	if !ok {
		panic(fmt.Sprintf("model: unknown flight %d", id))
	}
	return f
}

func (m *Model) mustAircraft(tail airtime.Tail) *fleet.Aircraft {
	a, ok := m.Aircraft[tail]
	if !ok {
		panic(fmt.Sprintf("model: unknown aircraft %s", tail))
	}
	return a
}

func (m *Model) mustCrew(id airtime.CrewID) *crewroster.Crew {
	c, ok := m.Crews[id]
	if !ok {
		panic(fmt.Sprintf("model: unknown crew %d", id))
	}
	return c
}

func (m *Model) mustAirport(code airtime.AirportCode) *airport.Airport {
	a, ok := m.Airports[code]
	if !ok {
		panic(fmt.Sprintf("model: unknown airport %s", code))
	}
	return a
}

// DepartFlight runs the full departure transition: aircraft takeoff, crew
// takeoff, the flight's own takeoff bookkeeping, and the origin airport's
// departure accounting (which loads passengers).
func (m *Model) DepartFlight(id airtime.FlightID) {
	flight := m.mustFlight(id)
	if flight.AircraftTail == nil {
		panic(fmt.Sprintf("model: departing flight %s with no assigned aircraft", flight.Number))
	}
	aircraft := m.mustAircraft(*flight.AircraftTail)

	priorCode := aircraft.Loc.Code
	dwell := aircraft.Takeoff(id, m.NowTime)
	m.Telemetry.Publish(telemetry.AircraftTurnedAround{
		Time:            m.NowTime,
		Tail:            aircraft.Tail(),
		PriorGroundCode: priorCode,
		Dwell:           dwell,
	})

	for i, cid := range flight.Crew {
		m.mustCrew(cid).Takeoff(id, i == 0)
	}

	flight.Takeoff(m.NowTime)

	origin := m.mustAirport(flight.OriginCode)
	origin.MarkDeparture(m.NowTime, flight, aircraft.Type.Capacity)

	m.Telemetry.Publish(telemetry.FlightDeparted{Time: m.NowTime, Flight: id})
}

// ArriveFlight runs the full arrival transition: aircraft landing, crew
// landing, the flight's own landing bookkeeping, and the destination
// airport's arrival accounting (which offloads passengers).
func (m *Model) ArriveFlight(id airtime.FlightID) {
	flight := m.mustFlight(id)
	if flight.AircraftTail == nil {
		panic(fmt.Sprintf("model: arriving flight %s with no assigned aircraft", flight.Number))
	}
	aircraft := m.mustAircraft(*flight.AircraftTail)
	aircraft.Land(flight.DestCode, m.NowTime)

	for _, cid := range flight.Crew {
		m.mustCrew(cid).Land(flight.DestCode, m.NowTime)
	}

	flight.Land(m.NowTime)

	dest := m.mustAirport(flight.DestCode)
	dest.MarkArrival(m.NowTime, flight)

	m.Telemetry.Publish(telemetry.FlightArrived{Time: m.NowTime, Flight: id})
}

// CancelFlight marks the flight cancelled and releases any claimed crew or
// aircraft.
func (m *Model) CancelFlight(id airtime.FlightID, reason telemetry.CancelReason) {
	flight := m.mustFlight(id)
	flight.Cancel()

	for _, cid := range flight.Crew {
		if crew, ok := m.Crews[cid]; ok {
			crew.Unclaim(id)
		}
	}
	if flight.AircraftTail != nil {
		if ac, ok := m.Aircraft[*flight.AircraftTail]; ok {
			ac.Unclaim(id)
		}
	}

	m.Telemetry.Publish(telemetry.FlightCancelled{Time: m.NowTime, Flight: id, Reason: reason})
}
