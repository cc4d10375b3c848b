// Package airtime holds the small identity and time types shared across the
// simulation: airport codes, flight/crew/aircraft identifiers, and the UTC
// timestamp format used by scenario data.
package airtime

import (
	"fmt"
	"strings"
	"time"
)

// TimeFormat is the wire format for scenario timestamps, e.g. "2024-01-01 10:00:00".
const TimeFormat = "2006-01-02 15:04:05"

// ParseTime parses a scenario timestamp as UTC.
func ParseTime(s string) (time.Time, error) {
	t, err := time.Parse(TimeFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse time %q: %w", s, err)
	}
	return t.UTC(), nil
}

// FormatTime renders a timestamp in the scenario wire format.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeFormat)
}

// AirportCode is a fixed-width 3-byte identifier, compared by value.
type AirportCode [3]byte

// NewAirportCode builds a code from a 3-character string.
func NewAirportCode(s string) (AirportCode, error) {
	var c AirportCode
	if len(s) != 3 {
		return c, fmt.Errorf("airport code %q must be exactly 3 characters", s)
	}
	copy(c[:], strings.ToUpper(s))
	return c, nil
}

// MustAirportCode is NewAirportCode for trusted literals (tests, fixtures).
func MustAirportCode(s string) AirportCode {
	c, err := NewAirportCode(s)
	if err != nil {
		panic(err)
	}
	return c
}

func (c AirportCode) String() string {
	return string(c[:])
}

// FlightID identifies a flight for the lifetime of a scenario.
type FlightID uint64

// CrewID identifies a crew member.
type CrewID uint32

// Tail identifies an aircraft by registration.
type Tail string

// FlightRef is the minimal read-only flight view shared by the fleet and
// crewroster packages: enough to tell where an in-flight resource is headed
// and when it actually left and is expected to arrive. flightplan.Flight
// satisfies this; it lives here, rather than in flightplan, so that fleet and
// crewroster can reference one identical type without importing flightplan.
type FlightRef interface {
	Dest() AirportCode
	DepartedAt() time.Time
	ActArriveTime() time.Time
}
