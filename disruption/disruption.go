// Package disruption implements the clearance protocol that throttles flight
// departures and arrivals: ground delay programs and departure rate limits,
// indexed per airport so the dispatcher can look up what applies to a given
// flight.
package disruption

import (
	"time"

	"airdispatch/airtime"
)

// FlightView is the minimal read-only view of a flight a Disruption needs to
// decide on a clearance. flightplan.Flight satisfies this.
type FlightView interface {
	ID() airtime.FlightID
	Origin() airtime.AirportCode
	Dest() airtime.AirportCode
	EstArriveTime(depart time.Time) time.Time
	EstDuration() time.Duration
}

// Clock exposes the simulation's current time. simmodel.Model satisfies this.
type Clock interface {
	Now() time.Time
}

// Disruption is the clearance protocol every disruption kind implements.
type Disruption interface {
	RequestDepart(flight FlightView, clock Clock, t time.Time) Clearance
	RequestArrive(flight FlightView, clock Clock, t time.Time) Clearance
	VoidDepartClearance(flight FlightView, t time.Time)
	VoidArriveClearance(flight FlightView, t time.Time)
	Describe() string
	DepartureAirportsAffected() []airtime.AirportCode
	ArrivalAirportsAffected() []airtime.AirportCode
}

// BaseDisruption implements the default RequestArrive/VoidArriveClearance
// (Cleared, no-op) that most departure-side disruptions share, mirroring the
// "default Cleared" callout in the spec's Disruption interface.
type BaseDisruption struct{}

func (BaseDisruption) RequestArrive(FlightView, Clock, time.Time) Clearance { return ClearedNow }
func (BaseDisruption) VoidArriveClearance(FlightView, time.Time)            {}
