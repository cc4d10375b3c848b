package simmodel

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"airdispatch/airport"
	"airdispatch/airtime"
	"airdispatch/crewroster"
	"airdispatch/disruption"
	"airdispatch/fleet"
	"airdispatch/flightplan"
	"airdispatch/slotmgr"
	"airdispatch/telemetry"
)

func mustCode(s string) airtime.AirportCode { return airtime.MustAirportCode(s) }

type recordingPublisher struct {
	events []telemetry.Event
}

func (r *recordingPublisher) Publish(e telemetry.Event) { r.events = append(r.events, e) }

func newTestModel(now time.Time) (*Model, *recordingPublisher) {
	pub := &recordingPublisher{}
	cfg := Config{
		CrewTurnaroundTime:     30 * time.Minute,
		AircraftTurnaroundTime: 45 * time.Minute,
		MaxDelay:               6 * time.Hour,
	}
	m := New(now, now.Add(24*time.Hour), cfg, pub)
	return m, pub
}

func baseFlight(id airtime.FlightID, origin, dest airtime.AirportCode, depart time.Time, dur time.Duration, tail airtime.Tail, crew []airtime.CrewID) *flightplan.Flight {
	t := tail
	return &flightplan.Flight{
		FlightID:     id,
		Number:       "AD100",
		AircraftTail: &t,
		Crew:         crew,
		OriginCode:   origin,
		DestCode:     dest,
		SchedDepart:  depart,
		SchedArrive:  depart.Add(dur),
	}
}

func TestAdvancePanicsOnBackwardClock(t *testing.T) {
	m, _ := newTestModel(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	assert.Panics(t, func() { m.Advance(m.NowTime.Add(-time.Minute)) })
}

func TestLookupFlightMissingReturnsFalse(t *testing.T) {
	m, _ := newTestModel(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	_, ok := m.LookupFlight(99)
	assert.False(t, ok)
}

func TestDepartFlightFullTransition(t *testing.T) {
	now := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	m, pub := newTestModel(now)

	den, jfk := mustCode("DEN"), mustCode("JFK")
	tail := airtime.Tail("N100AD")
	m.Airports[den] = airport.New(den, 100, 100, now.Add(-time.Hour))
	m.Airports[jfk] = airport.New(jfk, 100, 100, now.Add(-time.Hour))
	m.Airports[den].OnGroundAircraft[tail] = struct{}{}
	m.Airports[den].OnGroundCrew[1] = struct{}{}

	m.Aircraft[tail] = &fleet.Aircraft{
		TailCode: tail,
		Type:     fleet.AircraftType{Name: "737", Capacity: 150},
		Loc:      fleet.GroundAt(den, now.Add(-time.Hour)),
	}
	m.Crews[1] = &crewroster.Crew{CrewID: 1, Loc: crewroster.GroundAt(den, now.Add(-time.Hour))}

	flight := baseFlight(1, den, jfk, now, 3*time.Hour, tail, []airtime.CrewID{1})
	m.Flights[1] = flight

	m.DepartFlight(1)

	assert.Equal(t, fleet.InFlight, m.Aircraft[tail].Loc.Kind)
	assert.Equal(t, airtime.FlightID(1), m.Aircraft[tail].Loc.Flight)
	assert.Equal(t, []airtime.FlightID{1}, m.Crews[1].DutyLog)
	require.NotNil(t, flight.DepartTime)
	assert.True(t, flight.DepartTime.Equal(now))
	_, stillGround := m.Airports[den].OnGroundAircraft[tail]
	assert.False(t, stillGround)

	var sawTurn, sawDeparted bool
	for _, e := range pub.events {
		switch e.(type) {
		case telemetry.AircraftTurnedAround:
			sawTurn = true
		case telemetry.FlightDeparted:
			sawDeparted = true
		}
	}
	assert.True(t, sawTurn)
	assert.True(t, sawDeparted)
}

func TestArriveFlightFullTransition(t *testing.T) {
	now := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	m, pub := newTestModel(now)

	den, jfk := mustCode("DEN"), mustCode("JFK")
	tail := airtime.Tail("N100AD")
	m.Airports[jfk] = airport.New(jfk, 100, 100, now.Add(-time.Hour))

	m.Aircraft[tail] = &fleet.Aircraft{
		TailCode: tail,
		Type:     fleet.AircraftType{Name: "737", Capacity: 150},
		Loc:      fleet.InFlightOn(1),
	}
	m.Crews[1] = &crewroster.Crew{CrewID: 1, Loc: crewroster.InFlightOn(1)}

	depart := now.Add(-3 * time.Hour)
	flight := baseFlight(1, den, jfk, depart, 3*time.Hour, tail, []airtime.CrewID{1})
	flight.Takeoff(depart)
	m.Flights[1] = flight

	m.ArriveFlight(1)

	assert.Equal(t, fleet.Ground, m.Aircraft[tail].Loc.Kind)
	assert.Equal(t, jfk, m.Aircraft[tail].Loc.Code)
	assert.Equal(t, crewroster.Ground, m.Crews[1].Loc.Kind)
	require.NotNil(t, flight.ArriveTime)
	assert.True(t, flight.ArriveTime.Equal(now))
	_, onGround := m.Airports[jfk].OnGroundAircraft[tail]
	assert.True(t, onGround)

	var sawArrived bool
	for _, e := range pub.events {
		if _, ok := e.(telemetry.FlightArrived); ok {
			sawArrived = true
		}
	}
	assert.True(t, sawArrived)
}

func TestCancelFlightReleasesClaims(t *testing.T) {
	now := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	m, pub := newTestModel(now)

	den, jfk := mustCode("DEN"), mustCode("JFK")
	tail := airtime.Tail("N100AD")
	flight := baseFlight(1, den, jfk, now, 3*time.Hour, tail, []airtime.CrewID{1})
	m.Flights[1] = flight
	m.Aircraft[tail] = &fleet.Aircraft{TailCode: tail, Loc: fleet.GroundAt(den, now)}
	m.Aircraft[tail].Claim(1)
	m.Crews[1] = &crewroster.Crew{CrewID: 1, Loc: crewroster.GroundAt(den, now)}
	m.Crews[1].Claim(1)

	m.CancelFlight(1, telemetry.NewDelayTimedOut())

	assert.True(t, flight.Cancelled)
	assert.Nil(t, m.Aircraft[tail].NextClaimed)
	assert.Nil(t, m.Crews[1].NextClaimed)

	var sawCancel bool
	for _, e := range pub.events {
		if _, ok := e.(telemetry.FlightCancelled); ok {
			sawCancel = true
		}
	}
	assert.True(t, sawCancel)
}

func TestRequestDepartureClearedWithNoDisruptions(t *testing.T) {
	now := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	m, _ := newTestModel(now)
	den, jfk := mustCode("DEN"), mustCode("JFK")
	flight := baseFlight(1, den, jfk, now, 3*time.Hour, "N1", nil)

	clearance, reasons, ok := m.RequestDeparture(flight)
	require.True(t, ok)
	assert.Equal(t, disruption.Cleared, clearance.Kind)
	assert.Empty(t, reasons)
}

func TestRequestDepartureAppliesDepartureRateLimit(t *testing.T) {
	now := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	m, _ := newTestModel(now)
	den, jfk := mustCode("DEN"), mustCode("JFK")

	drl := &disruption.DepartureRateLimit{
		Site:  den,
		Slots: slotmgr.New[airtime.FlightID](now, []int{1, 1, 1}),
	}
	m.Disruptions.Add(drl)

	first := baseFlight(1, den, jfk, now, 3*time.Hour, "N1", nil)
	second := baseFlight(2, den, jfk, now, 3*time.Hour, "N2", nil)

	c1, _, ok1 := m.RequestDeparture(first)
	require.True(t, ok1)
	assert.Equal(t, disruption.Cleared, c1.Kind)

	c2, reasons, ok2 := m.RequestDeparture(second)
	require.True(t, ok2)
	assert.Equal(t, disruption.EDCT, c2.Kind)
	assert.True(t, c2.Time.After(now))
	require.Len(t, reasons, 1)
	assert.Equal(t, disruption.Disruption(drl), reasons[0].Disruption)
}

func TestRequestDepartureUnsolvableExceedsMaxDelay(t *testing.T) {
	now := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	m, _ := newTestModel(now)
	m.Config.MaxDelay = 30 * time.Minute
	den, jfk := mustCode("DEN"), mustCode("JFK")

	drl := &disruption.DepartureRateLimit{
		Site:  den,
		Slots: slotmgr.New[airtime.FlightID](now, []int{0, 0, 0}),
	}
	m.Disruptions.Add(drl)

	flight := baseFlight(1, den, jfk, now, 3*time.Hour, "N1", nil)
	_, _, ok := m.RequestDeparture(flight)
	assert.False(t, ok)
}

func TestRequestArrivalClearedWithNoDisruptions(t *testing.T) {
	now := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	m, _ := newTestModel(now)
	den, jfk := mustCode("DEN"), mustCode("JFK")
	flight := baseFlight(1, den, jfk, now, 3*time.Hour, "N1", nil)

	clearance, _, ok := m.RequestArrival(flight)
	require.True(t, ok)
	assert.Equal(t, disruption.Cleared, clearance.Kind)
}
