// Package fleet implements the Aircraft entity: its ground/in-flight location
// state machine, availability computation for a candidate flight, and the
// single-claim protocol that keeps pending flights from racing for the same
// tail.
package fleet

import (
	"time"

	"airdispatch/airtime"
)

// LocationKind tags a Location's variant.
type LocationKind int

const (
	// Ground means the aircraft is parked at an airport.
	Ground LocationKind = iota
	// InFlight means the aircraft is operating a flight.
	InFlight
)

// Location is the aircraft's tagged ground/in-flight state.
type Location struct {
	Kind  LocationKind
	Code  airtime.AirportCode // valid when Kind == Ground
	Since time.Time           // valid when Kind == Ground
	Flight airtime.FlightID   // valid when Kind == InFlight
}

// GroundAt builds a Ground location.
func GroundAt(code airtime.AirportCode, since time.Time) Location {
	return Location{Kind: Ground, Code: code, Since: since}
}

// InFlightOn builds an InFlight location.
func InFlightOn(flight airtime.FlightID) Location {
	return Location{Kind: InFlight, Flight: flight}
}
