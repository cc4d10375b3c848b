package scenario

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"airdispatch/airtime"
)

const fixtureJSON = `{
  "start_time": "2026-01-01 08:00:00",
  "end_time": "2026-01-02 08:00:00",
  "crew_turnaround_minutes": 30,
  "aircraft_turnaround_minutes": 45,
  "max_delay_minutes": 360,
  "airports": [
    {"code": "DEN", "max_dep_per_hour": 10, "max_arr_per_hour": 10},
    {"code": "ORD", "max_dep_per_hour": 10, "max_arr_per_hour": 10}
  ],
  "aircraft": [
    {"tail": "N1AD", "location": "DEN", "type_name": "737", "capacity": 150}
  ],
  "crew": [
    {"id": 1, "location": "DEN"}
  ],
  "flights": [
    {
      "id": 1,
      "flight_number": "AD100",
      "aircraft": "N1AD",
      "origin": "DEN",
      "dest": "ORD",
      "pilot": 1,
      "sched_depart": "2026-01-01 09:00:00",
      "sched_arrive": "2026-01-01 11:00:00"
    }
  ],
  "demand": [
    {"path": ["DEN", "ORD"], "count": 120}
  ],
  "disruptions": [
    {"airport": "DEN", "start": "2026-01-01 09:00:00", "end": "2026-01-01 10:00:00", "hourly_rate": 1, "type": "dep", "reason": "weather"},
    {"airport": "DEN", "start": "2026-01-01 10:00:00", "end": "2026-01-01 11:00:00", "hourly_rate": 1, "type": "dep", "reason": "weather"}
  ],
  "dispatcher": {
    "aircraft_selector": "give_up",
    "crew_selector": "give_up",
    "wait_for_deadheaders": false,
    "aircraft_reassign_tolerance_minutes": 30,
    "crew_reassign_tolerance_minutes": 30,
    "fallback_aircraft_selector": false,
    "fallback_crew_selector": false
  }
}`

func TestJSONScenarioLoaderReadModelBuildsEntities(t *testing.T) {
	l, err := NewJSONScenarioLoader(strings.NewReader(fixtureJSON))
	require.NoError(t, err)

	m, err := l.ReadModel()
	require.NoError(t, err)

	assert.Len(t, m.Airports, 2)
	assert.Len(t, m.Aircraft, 1)
	assert.Len(t, m.Crews, 1)
	require.Len(t, m.Flights, 1)

	f := m.Flights[1]
	assert.Equal(t, "AD100", f.Number)
	require.NotNil(t, f.AircraftTail)
	assert.Equal(t, airtime.Tail("N1AD"), *f.AircraftTail)
	require.Len(t, f.Crew, 1)
	assert.Equal(t, airtime.CrewID(1), f.Crew[0])

	den := m.Airports[airtime.MustAirportCode("DEN")]
	require.Len(t, den.Demands, 1)
	assert.Equal(t, 120, den.Demands[0].Count)
}

func TestJSONScenarioLoaderCoalescesContiguousDisruptionRows(t *testing.T) {
	l, err := NewJSONScenarioLoader(strings.NewReader(fixtureJSON))
	require.NoError(t, err)

	m, err := l.ReadModel()
	require.NoError(t, err)

	den := airtime.MustAirportCode("DEN")
	applicable := m.Disruptions.ForDeparture(den)
	require.Len(t, applicable, 1)
	assert.Contains(t, applicable[0].Describe(), "weather")
}

func TestJSONScenarioLoaderReadDispatcherBuildsQueue(t *testing.T) {
	l, err := NewJSONScenarioLoader(strings.NewReader(fixtureJSON))
	require.NoError(t, err)

	m, err := l.ReadModel()
	require.NoError(t, err)

	d, err := l.ReadDispatcher(m)
	require.NoError(t, err)
	require.NotNil(t, d)
}

func TestJSONScenarioLoaderRejectsUnknownSelector(t *testing.T) {
	bad := strings.Replace(fixtureJSON, `"aircraft_selector": "give_up"`, `"aircraft_selector": "nonexistent"`, 1)
	l, err := NewJSONScenarioLoader(strings.NewReader(bad))
	require.NoError(t, err)

	m, err := l.ReadModel()
	require.NoError(t, err)

	_, err = l.ReadDispatcher(m)
	assert.Error(t, err)
}

func TestJSONScenarioLoaderRejectsMalformedJSON(t *testing.T) {
	_, err := NewJSONScenarioLoader(strings.NewReader("{not json"))
	assert.Error(t, err)
}
