// Package crewroster implements the Crew entity: its ground/in-flight
// location state machine, rolling duty-time accounting, availability for a
// candidate flight, and the claim protocol shared with the fleet.
package crewroster

import (
	"time"

	"airdispatch/airtime"
)

// LocationKind tags a Location's variant.
type LocationKind int

const (
	// Ground means the crew member is at an airport.
	Ground LocationKind = iota
	// InFlight means the crew member is operating or deadheading a flight.
	InFlight
)

// Location is the crew member's tagged ground/in-flight state.
type Location struct {
	Kind   LocationKind
	Code   airtime.AirportCode // valid when Kind == Ground
	Since  time.Time           // valid when Kind == Ground
	Flight airtime.FlightID    // valid when Kind == InFlight
}

// GroundAt builds a Ground location.
func GroundAt(code airtime.AirportCode, since time.Time) Location {
	return Location{Kind: Ground, Code: code, Since: since}
}

// InFlightOn builds an InFlight location.
func InFlightOn(flight airtime.FlightID) Location {
	return Location{Kind: InFlight, Flight: flight}
}
