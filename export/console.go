package export

import (
	"fmt"
	"time"

	"airdispatch/simmodel"
)

// Summary holds end-of-run counters for the console report, the dispatch
// analog of the teacher's ReportSummary.
type Summary struct {
	TotalFlights     int
	Cancelled        int
	Departed         int
	TotalDepartDelay time.Duration
	MaxDepartDelay   time.Duration
}

// Summarize walks m.Flights once to build a Summary.
func Summarize(m *simmodel.Model) Summary {
	var s Summary
	for _, f := range m.Flights {
		s.TotalFlights++
		if f.Cancelled {
			s.Cancelled++
			continue
		}
		if f.DepartTime != nil {
			s.Departed++
		}
		s.TotalDepartDelay += f.DepDelay
		if f.DepDelay > s.MaxDepartDelay {
			s.MaxDepartDelay = f.DepDelay
		}
	}
	return s
}

// PrintConsoleSummary prints a human-readable end-of-run report to stdout.
func PrintConsoleSummary(m *simmodel.Model, s Summary) {
	fmt.Println("=== Simulation Report ===")
	fmt.Printf("Flights scheduled: %d\n", s.TotalFlights)
	fmt.Printf("Flights departed: %d\n", s.Departed)
	fmt.Printf("Flights cancelled: %d\n", s.Cancelled)
	if s.TotalFlights-s.Cancelled > 0 {
		avg := s.TotalDepartDelay / time.Duration(s.TotalFlights-s.Cancelled)
		fmt.Printf("Average departure delay: %s\n", avg)
	}
	fmt.Printf("Max departure delay: %s\n", s.MaxDepartDelay)
}
