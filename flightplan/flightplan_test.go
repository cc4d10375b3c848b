package flightplan

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"airdispatch/airtime"
)

func TestPassengerGroupNextDest(t *testing.T) {
	g := PassengerGroup{Path: []airtime.AirportCode{
		airtime.MustAirportCode("DEN"),
		airtime.MustAirportCode("ORD"),
		airtime.MustAirportCode("BOS"),
	}, Count: 10}

	next, ok := g.NextDest(airtime.MustAirportCode("DEN"))
	require.True(t, ok)
	assert.Equal(t, airtime.MustAirportCode("ORD"), next)

	_, ok = g.NextDest(airtime.MustAirportCode("BOS"))
	assert.False(t, ok, "terminus has no next destination")

	_, ok = g.NextDest(airtime.MustAirportCode("LAX"))
	assert.False(t, ok, "airport not on path has no next destination")
}

func TestPassengerGroupSplitOff(t *testing.T) {
	g := PassengerGroup{
		Path:  []airtime.AirportCode{airtime.MustAirportCode("DEN"), airtime.MustAirportCode("ORD")},
		Count: 10,
		Taken: []airtime.FlightID{7},
	}
	split := g.SplitOff(4, 42)

	assert.Equal(t, 6, g.Count, "remaining count decremented")
	assert.Equal(t, 4, split.Count)
	assert.Equal(t, g.Path, split.Path)
	assert.Equal(t, []airtime.FlightID{7, 42}, split.Taken)
	assert.Equal(t, []airtime.FlightID{7}, g.Taken, "original taken history unmodified")
}

func TestFlightEqualityByNumber(t *testing.T) {
	a := &Flight{FlightID: 1, Number: "AA100"}
	b := &Flight{FlightID: 2, Number: "AA100"}
	c := &Flight{FlightID: 3, Number: "AA200"}

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}

func TestFlightTakeoffAndLand(t *testing.T) {
	depart := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	f := &Flight{
		FlightID:    1,
		Number:      "AA100",
		SchedDepart: depart,
		SchedArrive: depart.Add(2 * time.Hour),
	}

	f.Takeoff(depart)
	require.NotNil(t, f.DepartTime)
	assert.True(t, f.DepartTime.Equal(depart))

	arrive := depart.Add(2*time.Hour + 10*time.Minute)
	f.Land(arrive)
	require.NotNil(t, f.ArriveTime)
	assert.True(t, f.ArriveTime.Equal(arrive))
	assert.True(t, f.ActArriveTime().Equal(arrive))
}

func TestFlightTakeoffTwicePanics(t *testing.T) {
	f := &Flight{Number: "AA100"}
	t0 := time.Now()
	f.Takeoff(t0)
	assert.Panics(t, func() { f.Takeoff(t0) })
}

func TestFlightLandBeforeTakeoffPanics(t *testing.T) {
	f := &Flight{Number: "AA100"}
	assert.Panics(t, func() { f.Land(time.Now()) })
}

func TestFlightActArriveTimeFallsBackToSchedule(t *testing.T) {
	depart := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	f := &Flight{SchedDepart: depart, SchedArrive: depart.Add(time.Hour)}
	assert.True(t, f.ActArriveTime().Equal(f.SchedArrive))
}

func TestFlightDelayAccumulation(t *testing.T) {
	f := &Flight{Number: "AA100"}
	f.DelayDeparture(10 * time.Minute)
	f.DelayDeparture(5 * time.Minute)
	assert.Equal(t, 15*time.Minute, f.DepDelay)

	f.DelayArrival(3 * time.Minute)
	require.NotNil(t, f.AccumDelay)
	assert.Equal(t, 3*time.Minute, *f.AccumDelay)
}

func TestFlightIsFerryWithNoPassengers(t *testing.T) {
	f := &Flight{}
	assert.True(t, f.IsFerry())
	f.Passengers = []PassengerGroup{{Count: 1}}
	assert.False(t, f.IsFerry())
}

func TestFlightPilotAndDeadheads(t *testing.T) {
	f := &Flight{Crew: []airtime.CrewID{1, 2, 3}}
	pilot, ok := f.Pilot()
	require.True(t, ok)
	assert.Equal(t, airtime.CrewID(1), pilot)
	assert.Equal(t, []airtime.CrewID{2, 3}, f.Deadheads())

	empty := &Flight{}
	_, ok = empty.Pilot()
	assert.False(t, ok)
	assert.Nil(t, empty.Deadheads())
}
