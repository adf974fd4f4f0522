package view

// Circle is the derived view state for one visible station. Circles are
// keyed by the station's short code so that re-binding on a filter change
// preserves identity; every attribute here is recomputed from the current
// aggregates and viewport, never stored independently.
type Circle struct {
	Key          string  `json:"key"`
	X            float64 `json:"x"`
	Y            float64 `json:"y"`
	Radius       float64 `json:"radius"`
	FlowStep     float64 `json:"flow_step"`
	Departures   int     `json:"departures"`
	Arrivals     int     `json:"arrivals"`
	TotalTraffic int     `json:"total_traffic"`
	Tooltip      string  `json:"tooltip"`
}

// Scene is a snapshot of everything the map client draws on top of the
// base map: the circle layer plus the slider readout.
type Scene struct {
	Circles       []Circle `json:"circles"`
	FilterMinutes int      `json:"filter_minutes"`
	AnyTime       bool     `json:"any_time"`
	TimeLabel     string   `json:"time_label"`
	Viewport      Viewport `json:"viewport"`
}

// Reconciliation is the outcome of one keyed re-bind of the circle set:
// which keys entered, which were updated in place, and which exited and
// were removed from the screen. With a fixed global station list the exit
// path never fires in practice, but it is computed explicitly rather than
// assumed away.
type Reconciliation struct {
	Entered []string
	Updated []string
	Exited  []string
}
