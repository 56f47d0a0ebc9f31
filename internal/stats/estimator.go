// Package stats derives delay estimates from the historical flight store.
package stats

import (
	"context"

	"skycast/internal/flightstore"
)

// Confidence qualifies an estimate by its sample size.
type Confidence string

const (
	ConfidenceHigh   Confidence = "High"
	ConfidenceMedium Confidence = "Medium"
	ConfidenceLow    Confidence = "Low"
	ConfidenceNoData Confidence = "No data"
)

// Sample-size thresholds for confidence classification.
const (
	highConfidenceFlights   = 100
	mediumConfidenceFlights = 50
)

// Estimate is a delay probability derived from historical observations.
type Estimate struct {
	TotalFlights    int
	DelayedFlights  int
	DelayPercentage float64
	Confidence      Confidence
}

// Estimator computes delay estimates for route/day keys. It is a pure view
// over the store's aggregate query and holds no state of its own.
type Estimator struct {
	store *flightstore.Store
}

// NewEstimator builds an estimator over the given store.
func NewEstimator(store *flightstore.Store) *Estimator {
	return &Estimator{store: store}
}

// Estimate returns the delay probability and sample-size confidence for the
// given route and weekday.
func (e *Estimator) Estimate(ctx context.Context, key flightstore.RouteDay) (Estimate, error) {
	aggregate, err := e.store.AggregateDelay(ctx, key)
	if err != nil {
		return Estimate{}, err
	}
	return Estimate{
		TotalFlights:    aggregate.TotalFlights,
		DelayedFlights:  aggregate.DelayedFlights,
		DelayPercentage: aggregate.DelayPercentage,
		Confidence:      classify(aggregate.TotalFlights),
	}, nil
}

func classify(totalFlights int) Confidence {
	switch {
	case totalFlights >= highConfidenceFlights:
		return ConfidenceHigh
	case totalFlights >= mediumConfidenceFlights:
		return ConfidenceMedium
	case totalFlights >= 1:
		return ConfidenceLow
	default:
		return ConfidenceNoData
	}
}
