package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"airdispatch/airtime"
	"airdispatch/flightplan"
	"airdispatch/simmodel"
	"airdispatch/telemetry"
)

func newTestModel(now time.Time) *simmodel.Model {
	cfg := simmodel.Config{
		CrewTurnaroundTime:     30 * time.Minute,
		AircraftTurnaroundTime: 45 * time.Minute,
		MaxDelay:               6 * time.Hour,
	}
	return simmodel.New(now, now.Add(48*time.Hour), cfg, telemetry.NoopPublisher{})
}

func mustCode(s string) airtime.AirportCode { return airtime.MustAirportCode(s) }

func TestWriteFlightsCSVColumnsAndRows(t *testing.T) {
	now := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	m := newTestModel(now)
	den, ord := mustCode("DEN"), mustCode("ORD")

	depart := now.Add(time.Hour)
	arrive := depart.Add(2 * time.Hour)
	tail := airtime.Tail("N1AD")

	departed := &flightplan.Flight{
		FlightID:     1,
		Number:       "AD100",
		AircraftTail: &tail,
		Crew:         []airtime.CrewID{1, 2},
		Passengers:   []flightplan.PassengerGroup{{Path: []airtime.AirportCode{den, ord}, Count: 120}, {Path: []airtime.AirportCode{den, ord}, Count: 30}},
		OriginCode:   den,
		DestCode:     ord,
		SchedDepart:  depart,
		SchedArrive:  arrive,
		DepartTime:   &depart,
		ArriveTime:   &arrive,
	}
	cancelled := &flightplan.Flight{
		FlightID:    2,
		Number:      "AD200",
		OriginCode:  ord,
		DestCode:    den,
		SchedDepart: depart,
		SchedArrive: arrive,
		Cancelled:   true,
	}
	m.Flights[1] = departed
	m.Flights[2] = cancelled

	dir := t.TempDir()
	outPath, err := WriteFlightsCSV(dir, m)
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(outPath) || filepath.Dir(outPath) == dir)

	f, err := os.Open(outPath)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, flightColumns, rows[0])

	depRow := rows[1]
	assert.Equal(t, "1", depRow[0])
	assert.Equal(t, "AD100", depRow[1])
	assert.Equal(t, "N1AD", depRow[2])
	assert.Equal(t, "1,2", depRow[3])
	assert.Equal(t, "150", depRow[4])
	assert.Equal(t, "DEN", depRow[5])
	assert.Equal(t, "ORD", depRow[6])
	assert.Equal(t, "0", depRow[7])
	assert.Equal(t, airtime.FormatTime(depart), depRow[8])
	assert.Equal(t, airtime.FormatTime(arrive), depRow[9])

	cxRow := rows[2]
	assert.Equal(t, "2", cxRow[0])
	assert.Equal(t, "", cxRow[2])
	assert.Equal(t, "", cxRow[3])
	assert.Equal(t, "0", cxRow[4])
	assert.Equal(t, "1", cxRow[7])
	assert.Equal(t, "", cxRow[8])
	assert.Equal(t, "", cxRow[9])
}

func TestWriteFlightsCSVSuffixesFilePath(t *testing.T) {
	m := newTestModel(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	dir := t.TempDir()
	target := filepath.Join(dir, "report.csv")

	outPath, err := WriteFlightsCSV(target, m)
	require.NoError(t, err)
	assert.NotEqual(t, target, outPath)
	assert.Contains(t, filepath.Base(outPath), "report-")
}

func TestSummarizeCountsCancelledAndDelay(t *testing.T) {
	now := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	m := newTestModel(now)
	den, ord := mustCode("DEN"), mustCode("ORD")

	onTime := &flightplan.Flight{FlightID: 1, OriginCode: den, DestCode: ord, SchedDepart: now, SchedArrive: now.Add(time.Hour), DepartTime: &now}
	delayed := &flightplan.Flight{FlightID: 2, OriginCode: den, DestCode: ord, SchedDepart: now, SchedArrive: now.Add(time.Hour), DepDelay: 45 * time.Minute}
	cancelled := &flightplan.Flight{FlightID: 3, OriginCode: den, DestCode: ord, SchedDepart: now, SchedArrive: now.Add(time.Hour), Cancelled: true}

	m.Flights[1] = onTime
	m.Flights[2] = delayed
	m.Flights[3] = cancelled

	s := Summarize(m)
	assert.Equal(t, 3, s.TotalFlights)
	assert.Equal(t, 1, s.Cancelled)
	assert.Equal(t, 1, s.Departed)
	assert.Equal(t, 45*time.Minute, s.MaxDepartDelay)
}
