package flightstore

// FlightRecord is one immutable historical flight fact. Field names mirror
// the raw data source's column contract.
type FlightRecord struct {
	Year              int
	Month             int
	DayofMonth        int
	DayOfWeek         int
	Carrier           string
	OriginAirportID   int
	OriginAirportName string
	OriginCity        string
	OriginState       string
	DestAirportID     int
	DestAirportName   string
	DestCity          string
	DestState         string
	CRSDepTime        int
	DepDelay          int
	DepDel15          int
	CRSArrTime        int
	ArrDelay          int
	ArrDel15          int
	Cancelled         int
}

// Airport is a directory entry keyed by a stable numeric id. The name is the
// external-facing join key for prediction requests.
type Airport struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	City  string `json:"city"`
	State string `json:"state"`
}

// RouteDay identifies the population of flight records relevant to one
// delay estimate.
type RouteDay struct {
	Origin      string
	Destination string
	DayOfWeek   int
}

// DelayAggregate summarizes non-cancelled flights for a route and weekday.
type DelayAggregate struct {
	TotalFlights    int
	DelayedFlights  int
	DelayPercentage float64
}
