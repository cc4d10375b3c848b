package disruption

import "airdispatch/airtime"

// Index maps each airport to the disruptions that apply to departures from,
// or arrivals into, that airport. The dispatcher looks up the applicable set
// for a flight's origin and destination once per gate check rather than
// scanning every disruption in the model.
type Index struct {
	departures map[airtime.AirportCode][]Disruption
	arrivals   map[airtime.AirportCode][]Disruption
}

// NewIndex builds an empty Index.
func NewIndex() *Index {
	return &Index{
		departures: make(map[airtime.AirportCode][]Disruption),
		arrivals:   make(map[airtime.AirportCode][]Disruption),
	}
}

// Add registers d under every airport it declares itself affecting.
func (idx *Index) Add(d Disruption) {
	for _, code := range d.DepartureAirportsAffected() {
		idx.departures[code] = append(idx.departures[code], d)
	}
	for _, code := range d.ArrivalAirportsAffected() {
		idx.arrivals[code] = append(idx.arrivals[code], d)
	}
}

// ForDeparture returns the disruptions registered against origin for
// departure checks.
func (idx *Index) ForDeparture(origin airtime.AirportCode) []Disruption {
	return idx.departures[origin]
}

// ForArrival returns the disruptions registered against dest for arrival
// checks.
func (idx *Index) ForArrival(dest airtime.AirportCode) []Disruption {
	return idx.arrivals[dest]
}

// Lookup returns every disruption relevant to flight: those registered
// against its origin for departure, followed by those registered against its
// destination for arrival. Callers that only need one side should use
// ForDeparture/ForArrival directly.
func (idx *Index) Lookup(flight FlightView) []Disruption {
	out := make([]Disruption, 0, len(idx.departures[flight.Origin()])+len(idx.arrivals[flight.Dest()]))
	out = append(out, idx.departures[flight.Origin()]...)
	out = append(out, idx.arrivals[flight.Dest()]...)
	return out
}
