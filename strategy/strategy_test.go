package strategy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"airdispatch/airtime"
	"airdispatch/flightplan"
	"airdispatch/simmodel"
	"airdispatch/telemetry"
)

func mustCode(s string) airtime.AirportCode { return airtime.MustAirportCode(s) }

func newModel(now time.Time) *simmodel.Model {
	return simmodel.New(now, now.Add(48*time.Hour), simmodel.Config{
		CrewTurnaroundTime:     30 * time.Minute,
		AircraftTurnaroundTime: 45 * time.Minute,
		MaxDelay:               6 * time.Hour,
	}, telemetry.NoopPublisher{})
}

func flight(id airtime.FlightID, origin, dest airtime.AirportCode, depart time.Time, dur time.Duration) *flightplan.Flight {
	return &flightplan.Flight{
		FlightID:    id,
		Number:      "AD1",
		OriginCode:  origin,
		DestCode:    dest,
		SchedDepart: depart,
		SchedArrive: depart.Add(dur),
	}
}

func TestGiveUpAircraftAlwaysDeclines(t *testing.T) {
	m := newModel(time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC))
	f := flight(1, mustCode("DEN"), mustCode("ORD"), m.NowTime, 2*time.Hour)
	_, ok := (GiveUpAircraft{}).Select(m, f)
	assert.False(t, ok)
}

func TestGiveUpCrewAlwaysDeclines(t *testing.T) {
	m := newModel(time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC))
	f := flight(1, mustCode("DEN"), mustCode("ORD"), m.NowTime, 2*time.Hour)
	_, ok := (GiveUpCrew{}).Select(m, f)
	assert.False(t, ok)
}

func TestDepthFirstAircraftAssignsSurplusToSingleUnfulfilledFlight(t *testing.T) {
	now := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	m := newModel(now)
	den, ord := mustCode("DEN"), mustCode("ORD")

	strat := NewDepthFirstAircraft()
	cancelled := flight(1, den, ord, now, 2*time.Hour)
	tail := airtime.Tail("N1AD")
	cancelled.AircraftTail = &tail
	strat.OnFlightCancel(m, cancelled)

	f2 := flight(2, den, ord, now, 2*time.Hour)
	sel, ok := strat.Select(m, f2)
	require.True(t, ok)
	assert.Equal(t, tail, sel.Tail)
}

func TestDepthFirstAircraftChainsThroughTwoFlights(t *testing.T) {
	now := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	m := newModel(now)
	den, ord, jfk := mustCode("DEN"), mustCode("ORD"), mustCode("JFK")

	strat := NewDepthFirstAircraft()
	tail := airtime.Tail("N1AD")
	priorFlight := flight(0, den, ord, now, 2*time.Hour)
	priorFlight.AircraftTail = &tail
	strat.OnFlightCancel(m, priorFlight)

	leg1 := flight(1, den, ord, now, 2*time.Hour)
	leg2 := flight(2, ord, jfk, now.Add(3*time.Hour), 3*time.Hour)

	// The first Select call triggers an immediate recompute (cache starts
	// empty) before leg2 has registered itself as unfulfilled, so it can
	// only discover the single-flight chain. Advancing the clock past the
	// strategy's recompute interval forces a fresh run once both flights are
	// known, which is when the two-flight chain becomes visible.
	_, ok1 := strat.Select(m, leg1)
	require.True(t, ok1)
	m.Advance(now.Add(20 * time.Minute))
	sel2, ok2 := strat.Select(m, leg2)
	require.True(t, ok2)
	assert.Equal(t, tail, sel2.Tail)
}

func TestDepthFirstAircraftDoesNotReuseDepartedAircraft(t *testing.T) {
	now := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	m := newModel(now)
	den, ord := mustCode("DEN"), mustCode("ORD")

	strat := NewDepthFirstAircraft()
	tail := airtime.Tail("N1AD")
	priorFlight := flight(0, den, ord, now, 2*time.Hour)
	priorFlight.AircraftTail = &tail
	strat.OnFlightCancel(m, priorFlight)

	f1 := flight(1, den, ord, now, 2*time.Hour)
	f1.AircraftTail = &tail
	strat.OnFlightDepart(m, f1)

	f2 := flight(2, den, ord, now, 2*time.Hour)
	_, ok := strat.Select(m, f2)
	assert.False(t, ok)
}

func TestDepthFirstAircraftRejectsTooLateArrival(t *testing.T) {
	now := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	m := newModel(now)
	m.Config.MaxDelay = time.Hour
	den, ord := mustCode("DEN"), mustCode("ORD")

	strat := NewDepthFirstAircraft()
	tail := airtime.Tail("N1AD")
	priorFlight := flight(0, den, ord, now, 2*time.Hour)
	priorFlight.AircraftTail = &tail
	strat.OnFlightCancel(m, priorFlight)

	f2 := flight(2, den, ord, now.Add(-5*time.Hour), 2*time.Hour)
	_, ok := strat.Select(m, f2)
	assert.False(t, ok)
}
