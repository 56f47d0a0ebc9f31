package testsupport

import (
	"context"
	"testing"

	"skycast/internal/config"
	"skycast/internal/flightstore"
)

// MustOpenStore opens a flightstore.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *flightstore.Store {
	t.Helper()

	store, err := flightstore.Open(cfg)
	if err != nil {
		t.Fatalf("flightstore.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// SeedFlights inserts the provided records as one batch.
func SeedFlights(t testing.TB, store *flightstore.Store, records []flightstore.FlightRecord) {
	t.Helper()

	if err := store.InsertFlightBatch(context.Background(), records); err != nil {
		t.Fatalf("store.InsertFlightBatch: %v", err)
	}
}

// Flight builds a non-cancelled flight record for the given route and
// weekday, delayed when delayed is true.
func Flight(origin, destination string, dayOfWeek int, delayed bool) flightstore.FlightRecord {
	record := flightstore.FlightRecord{
		Year:              2013,
		Month:             4,
		DayofMonth:        19,
		DayOfWeek:         dayOfWeek,
		Carrier:           "DL",
		OriginAirportID:   10397,
		OriginAirportName: origin,
		OriginCity:        "Atlanta, GA",
		OriginState:       "GA",
		DestAirportID:     12892,
		DestAirportName:   destination,
		DestCity:          "Los Angeles, CA",
		DestState:         "CA",
		CRSDepTime:        905,
		CRSArrTime:        1127,
	}
	if delayed {
		record.DepDelay = 25
		record.DepDel15 = 1
		record.ArrDelay = 33
		record.ArrDel15 = 1
	}
	return record
}
