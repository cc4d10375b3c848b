package scenario

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"airdispatch/airport"
	"airdispatch/airtime"
	"airdispatch/crewroster"
	"airdispatch/disruption"
	"airdispatch/dispatch"
	"airdispatch/fleet"
	"airdispatch/flightplan"
	"airdispatch/simmodel"
	"airdispatch/slotmgr"
	"airdispatch/strategy"
	"airdispatch/telemetry"
)

// JSONScenarioLoader reads a scenario from a single JSON document: the
// reference ScenarioLoader implementation, reading from a fixture instead of
// the persisted store original_source's SqliteScenarioLoader used.
type JSONScenarioLoader struct {
	raw rawScenario
}

// NewJSONScenarioLoader decodes r into a loader ready to build a Model.
func NewJSONScenarioLoader(r io.Reader) (*JSONScenarioLoader, error) {
	dec := json.NewDecoder(r)
	var raw rawScenario
	if err := dec.Decode(&raw); err != nil {
		return nil, wrapErr("decode", err)
	}
	return &JSONScenarioLoader{raw: raw}, nil
}

// ReadModel builds a Model from the decoded scenario: config and window,
// then airports, aircraft, crew, flights, demand, and disruptions in that
// order, mirroring original_source's read_model call sequence.
func (l *JSONScenarioLoader) ReadModel() (*simmodel.Model, error) {
	start, err := airtime.ParseTime(l.raw.StartTime)
	if err != nil {
		return nil, wrapErr("start_time", err)
	}
	end, err := airtime.ParseTime(l.raw.EndTime)
	if err != nil {
		return nil, wrapErr("end_time", err)
	}

	cfg := simmodel.Config{
		CrewTurnaroundTime:     time.Duration(l.raw.CrewTurnaroundMinutes) * time.Minute,
		AircraftTurnaroundTime: time.Duration(l.raw.AircraftTurnaroundMinutes) * time.Minute,
		MaxDelay:               time.Duration(l.raw.MaxDelayMinutes) * time.Minute,
	}

	// Telemetry is wired by the caller (cmd/airdispatch) once the Model
	// exists, since the publisher needs the CLI's logger; the loader builds
	// a model with a NoopPublisher placeholder that callers are expected to
	// replace before running the dispatcher.
	m := simmodel.New(start, end, cfg, telemetry.NoopPublisher{})

	if err := l.readAirports(m); err != nil {
		return nil, err
	}
	if err := l.readAircraft(m); err != nil {
		return nil, err
	}
	if err := l.readCrew(m); err != nil {
		return nil, err
	}
	if err := l.readFlights(m); err != nil {
		return nil, err
	}
	if err := l.readDemand(m); err != nil {
		return nil, err
	}
	if err := l.readDisruptions(m); err != nil {
		return nil, err
	}

	return m, nil
}

func (l *JSONScenarioLoader) readAirports(m *simmodel.Model) error {
	for _, a := range l.raw.Airports {
		code, err := airtime.NewAirportCode(a.Code)
		if err != nil {
			return wrapErr("airports", err)
		}
		m.Airports[code] = airport.New(code, a.MaxDepPerHour, a.MaxArrPerHour, m.Now())
	}
	return nil
}

func (l *JSONScenarioLoader) readAircraft(m *simmodel.Model) error {
	for _, a := range l.raw.Aircraft {
		code, err := airtime.NewAirportCode(a.Location)
		if err != nil {
			return wrapErr("aircraft", err)
		}
		tail := airtime.Tail(a.Tail)
		m.Aircraft[tail] = &fleet.Aircraft{
			TailCode: tail,
			Type:     fleet.AircraftType{Name: a.TypeName, Capacity: a.Capacity},
			Loc:      fleet.GroundAt(code, m.Now()),
		}
		ap, ok := m.Airports[code]
		if !ok {
			return wrapErr("aircraft", fmt.Errorf("tail %s: unknown location %s", a.Tail, a.Location))
		}
		ap.OnGroundAircraft[tail] = struct{}{}
	}
	return nil
}

func (l *JSONScenarioLoader) readCrew(m *simmodel.Model) error {
	for _, c := range l.raw.Crew {
		code, err := airtime.NewAirportCode(c.Location)
		if err != nil {
			return wrapErr("crew", err)
		}
		id := airtime.CrewID(c.ID)
		m.Crews[id] = &crewroster.Crew{CrewID: id, Loc: crewroster.GroundAt(code, m.Now())}
		ap, ok := m.Airports[code]
		if !ok {
			return wrapErr("crew", fmt.Errorf("crew %d: unknown location %s", c.ID, c.Location))
		}
		ap.OnGroundCrew[id] = struct{}{}
	}
	return nil
}

func (l *JSONScenarioLoader) readFlights(m *simmodel.Model) error {
	for _, f := range l.raw.Flights {
		origin, err := airtime.NewAirportCode(f.Origin)
		if err != nil {
			return wrapErr("flights", err)
		}
		dest, err := airtime.NewAirportCode(f.Dest)
		if err != nil {
			return wrapErr("flights", err)
		}
		depart, err := airtime.ParseTime(f.SchedDepart)
		if err != nil {
			return wrapErr("flights", err)
		}
		arrive, err := airtime.ParseTime(f.SchedArrive)
		if err != nil {
			return wrapErr("flights", err)
		}

		var crew []airtime.CrewID
		if f.Pilot != nil {
			crew = append(crew, airtime.CrewID(*f.Pilot))
		}
		for _, dh := range f.Deadheaders {
			crew = append(crew, airtime.CrewID(dh))
		}

		var tail *airtime.Tail
		if f.Aircraft != "" {
			t := airtime.Tail(f.Aircraft)
			tail = &t
		}

		id := airtime.FlightID(f.ID)
		m.Flights[id] = &flightplan.Flight{
			FlightID:     id,
			Number:       f.Number,
			AircraftTail: tail,
			Crew:         crew,
			OriginCode:   origin,
			DestCode:     dest,
			SchedDepart:  depart,
			SchedArrive:  arrive,
		}
	}
	return nil
}

func (l *JSONScenarioLoader) readDemand(m *simmodel.Model) error {
	for _, d := range l.raw.Demand {
		if d.Count <= 0 || len(d.Path) == 0 {
			continue
		}
		path := make([]airtime.AirportCode, len(d.Path))
		for i, s := range d.Path {
			code, err := airtime.NewAirportCode(s)
			if err != nil {
				return wrapErr("demand", err)
			}
			path[i] = code
		}
		ap, ok := m.Airports[path[0]]
		if !ok {
			return wrapErr("demand", fmt.Errorf("demand path starts at unknown airport %s", d.Path[0]))
		}
		ap.Demands = append(ap.Demands, flightplan.PassengerGroup{Path: path, Count: d.Count})
	}
	return nil
}

// readDisruptions coalesces contiguous hourly rows for the same
// (airport, type) into a single SlotManager-backed disruption, exactly as
// original_source's read_disruptions accumulates ongoing_rates until the
// site/type/contiguity breaks.
func (l *JSONScenarioLoader) readDisruptions(m *simmodel.Model) error {
	rows := make([]rawDisruptionRow, len(l.raw.Disruptions))
	copy(rows, l.raw.Disruptions)
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Airport != rows[j].Airport {
			return rows[i].Airport < rows[j].Airport
		}
		if rows[i].Type != rows[j].Type {
			return rows[i].Type < rows[j].Type
		}
		return rows[i].Start < rows[j].Start
	})

	var group []rawDisruptionRow
	flush := func() error {
		if len(group) == 0 {
			return nil
		}
		d, err := buildDisruption(group)
		if err != nil {
			return wrapErr("disruptions", err)
		}
		m.Disruptions.Add(d)
		group = nil
		return nil
	}

	var prevEnd time.Time
	for _, row := range rows {
		start, err := airtime.ParseTime(row.Start)
		if err != nil {
			return wrapErr("disruptions", err)
		}
		end, err := airtime.ParseTime(row.End)
		if err != nil {
			return wrapErr("disruptions", err)
		}

		contiguous := len(group) > 0 &&
			group[len(group)-1].Airport == row.Airport &&
			group[len(group)-1].Type == row.Type &&
			start.Equal(prevEnd)

		if len(group) > 0 && !contiguous {
			if err := flush(); err != nil {
				return err
			}
		}
		group = append(group, row)
		prevEnd = end
	}
	return flush()
}

func buildDisruption(rows []rawDisruptionRow) (disruption.Disruption, error) {
	code, err := airtime.NewAirportCode(rows[0].Airport)
	if err != nil {
		return nil, err
	}
	start, err := airtime.ParseTime(rows[0].Start)
	if err != nil {
		return nil, err
	}
	rates := make([]int, len(rows))
	for i, r := range rows {
		rates[i] = r.HourlyRate
	}
	slots := slotmgr.New[airtime.FlightID](start, rates)

	switch rows[0].Type {
	case "gdp":
		return &disruption.GroundDelayProgram{Site: code, Slots: slots, Reason: rows[0].Reason}, nil
	case "dep":
		return &disruption.DepartureRateLimit{Site: code, Slots: slots, Reason: rows[0].Reason}, nil
	default:
		return nil, fmt.Errorf("unknown disruption type %q", rows[0].Type)
	}
}

// ReadDispatcher builds a Dispatcher over m from the scenario's dispatcher
// settings block.
func (l *JSONScenarioLoader) ReadDispatcher(m *simmodel.Model) (*dispatch.Dispatcher, error) {
	ds := l.raw.Dispatcher

	aircraftStrat, ok := strategy.ForAircraftKey(ds.AircraftSelector)
	if !ok {
		return nil, wrapErr("dispatcher", fmt.Errorf("unknown aircraft selector %q", ds.AircraftSelector))
	}
	crewStrat, ok := strategy.ForCrewKey(ds.CrewSelector)
	if !ok {
		return nil, wrapErr("dispatcher", fmt.Errorf("unknown crew selector %q", ds.CrewSelector))
	}

	settings := dispatch.Settings{
		AircraftTolerance:        time.Duration(ds.AircraftReassignToleranceMinutes) * time.Minute,
		CrewTolerance:            time.Duration(ds.CrewReassignToleranceMinutes) * time.Minute,
		WaitForDeadheaders:       ds.WaitForDeadheaders,
		FallbackAircraftSelector: ds.FallbackAircraftSelector,
		FallbackCrewSelector:     ds.FallbackCrewSelector,
	}

	d := dispatch.New(m, aircraftStrat, crewStrat, settings)
	d.InitFlightUpdates()
	return d, nil
}
