package flightplan

import "airdispatch/airtime"

// PassengerGroup is a block of passengers sharing an itinerary: an ordered
// path of airport codes, a count, and the flights already taken toward the
// terminus. The same type is used both for demand queued at an airport and
// for passengers loaded onto a flight.
type PassengerGroup struct {
	Path  []airtime.AirportCode
	Count int
	Taken []airtime.FlightID
}

// NextDest returns the airport that follows here in the group's path, or
// false if here is the terminus or not on the path at all.
func (g PassengerGroup) NextDest(here airtime.AirportCode) (airtime.AirportCode, bool) {
	for i, code := range g.Path {
		if code != here {
			continue
		}
		if i == len(g.Path)-1 {
			return airtime.AirportCode{}, false
		}
		return g.Path[i+1], true
	}
	return airtime.AirportCode{}, false
}

// Terminus reports the last airport in the group's path.
func (g PassengerGroup) Terminus() airtime.AirportCode {
	return g.Path[len(g.Path)-1]
}

// SplitOff removes k from g.Count and returns a new group with the same
// path, count k, and flight appended to its taken-flights history.
func (g *PassengerGroup) SplitOff(k int, flight airtime.FlightID) PassengerGroup {
	g.Count -= k
	path := make([]airtime.AirportCode, len(g.Path))
	copy(path, g.Path)
	taken := make([]airtime.FlightID, len(g.Taken), len(g.Taken)+1)
	copy(taken, g.Taken)
	taken = append(taken, flight)
	return PassengerGroup{Path: path, Count: k, Taken: taken}
}
