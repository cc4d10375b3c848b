// Package export writes a finished Model's flight outcomes to CSV, the way
// the teacher's sim.WriteCSVReport writes its own end-of-run report.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"airdispatch/airtime"
	"airdispatch/flightplan"
	"airdispatch/simmodel"
)

// flightColumns is the exact column set original_source's export.rs writes.
var flightColumns = []string{
	"id", "flight_number", "tail", "crew", "passengers",
	"origin", "dest", "cancelled", "dep_time", "arr_time",
	"sched_dep", "sched_arr",
}

// WriteFlightsCSV writes one row per flight in m to reportPath. If
// reportPath names a directory, a timestamped file is created inside it; if
// it names a file, a timestamp is suffixed before the extension, matching
// the teacher's WriteCSVReport path handling. Returns the path actually
// written.
func WriteFlightsCSV(reportPath string, m *simmodel.Model) (string, error) {
	ts := time.Now().Format("20060102-150405")
	outPath := reportPath
	if fi, err := os.Stat(outPath); err == nil && fi.IsDir() {
		outPath = filepath.Join(outPath, fmt.Sprintf("flights-%s.csv", ts))
	} else {
		ext := filepath.Ext(outPath)
		base := strings.TrimSuffix(outPath, ext)
		outPath = fmt.Sprintf("%s-%s%s", base, ts, ext)
	}

	f, err := os.Create(outPath)
	if err != nil {
		return "", fmt.Errorf("export: create %s: %w", outPath, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(flightColumns); err != nil {
		return "", fmt.Errorf("export: write header: %w", err)
	}

	ids := make([]airtime.FlightID, 0, len(m.Flights))
	for id := range m.Flights {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		if err := w.Write(flightRow(m.Flights[id])); err != nil {
			return "", fmt.Errorf("export: write flight %d: %w", id, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("export: flush: %w", err)
	}
	return outPath, nil
}

func flightRow(f *flightplan.Flight) []string {
	tail := ""
	if f.AircraftTail != nil {
		tail = string(*f.AircraftTail)
	}

	crewStrs := make([]string, len(f.Crew))
	for i, c := range f.Crew {
		crewStrs[i] = strconv.FormatUint(uint64(c), 10)
	}

	passengers := 0
	for _, p := range f.Passengers {
		passengers += p.Count
	}

	cancelled := "0"
	if f.Cancelled {
		cancelled = "1"
	}

	depTime, arrTime := "", ""
	if f.DepartTime != nil {
		depTime = airtime.FormatTime(*f.DepartTime)
	}
	if f.ArriveTime != nil {
		arrTime = airtime.FormatTime(*f.ArriveTime)
	}

	return []string{
		strconv.FormatUint(uint64(f.FlightID), 10),
		f.Number,
		tail,
		strings.Join(crewStrs, ","),
		strconv.Itoa(passengers),
		f.OriginCode.String(),
		f.DestCode.String(),
		cancelled,
		depTime,
		arrTime,
		airtime.FormatTime(f.SchedDepart),
		airtime.FormatTime(f.SchedArrive),
	}
}
