package scenario

// rawScenario is the JSON document shape a JSONScenarioLoader reads: one
// file holding the simulation window and config, the initial entity tables,
// passenger demand, standing disruptions, and the dispatcher's settings.
// Field layout mirrors the column names original_source's SqliteScenarioLoader
// reads, just folded into one document instead of scattered across tables.
type rawScenario struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`

	CrewTurnaroundMinutes     int `json:"crew_turnaround_minutes"`
	AircraftTurnaroundMinutes int `json:"aircraft_turnaround_minutes"`
	MaxDelayMinutes           int `json:"max_delay_minutes"`

	Airports []rawAirport `json:"airports"`
	Aircraft []rawAircraft `json:"aircraft"`
	Crew     []rawCrew     `json:"crew"`
	Flights  []rawFlight   `json:"flights"`
	Demand   []rawDemand   `json:"demand"`

	Disruptions []rawDisruptionRow `json:"disruptions"`

	Dispatcher rawDispatcherSettings `json:"dispatcher"`
}

type rawAirport struct {
	Code          string `json:"code"`
	MaxDepPerHour int    `json:"max_dep_per_hour"`
	MaxArrPerHour int    `json:"max_arr_per_hour"`
}

type rawAircraft struct {
	Tail     string `json:"tail"`
	Location string `json:"location"`
	TypeName string `json:"type_name"`
	Capacity int    `json:"capacity"`
}

type rawCrew struct {
	ID       uint32 `json:"id"`
	Location string `json:"location"`
}

type rawFlight struct {
	ID          uint64   `json:"id"`
	Number      string   `json:"flight_number"`
	Aircraft    string   `json:"aircraft"`
	Origin      string   `json:"origin"`
	Dest        string   `json:"dest"`
	Pilot       *uint32  `json:"pilot"`
	Deadheaders []uint32 `json:"deadheaders"`
	SchedDepart string   `json:"sched_depart"`
	SchedArrive string   `json:"sched_arrive"`
}

// rawDemand is one block of passengers sharing an itinerary, queued at
// path[0] when the file is loaded.
type rawDemand struct {
	Path  []string `json:"path"`
	Count int      `json:"count"`
}

// rawDisruptionRow is one hourly row of a standing disruption; contiguous
// rows for the same (airport, type) coalesce into a single SlotManager, as
// original_source's read_disruptions does for its SQL rows.
type rawDisruptionRow struct {
	Airport    string `json:"airport"`
	Start      string `json:"start"`
	End        string `json:"end"`
	HourlyRate int    `json:"hourly_rate"`
	Type       string `json:"type"` // "gdp" or "dep"
	Reason     string `json:"reason"`
}

// rawDispatcherSettings is the scenario's dispatcher config, the JSON
// analog of original_source's scenarios table columns consumed by
// read_dispatcher.
type rawDispatcherSettings struct {
	AircraftSelector            string `json:"aircraft_selector"`
	CrewSelector                string `json:"crew_selector"`
	WaitForDeadheaders          bool   `json:"wait_for_deadheaders"`
	AircraftReassignToleranceMinutes int `json:"aircraft_reassign_tolerance_minutes"`
	CrewReassignToleranceMinutes     int `json:"crew_reassign_tolerance_minutes"`
	FallbackAircraftSelector    bool   `json:"fallback_aircraft_selector"`
	FallbackCrewSelector        bool   `json:"fallback_crew_selector"`
}
