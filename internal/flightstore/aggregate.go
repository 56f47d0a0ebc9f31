package flightstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
)

// AggregateDelay summarizes non-cancelled flights for a route and weekday.
// Delayed means the arrival-delay flag was set. When no flights match, all
// fields are zero.
func (s *Store) AggregateDelay(ctx context.Context, key RouteDay) (DelayAggregate, error) {
	ctx = ensureContext(ctx)

	var aggregate DelayAggregate
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(arr_del15), 0)
         FROM flights
         WHERE origin_airport_name = ?
           AND dest_airport_name = ?
           AND day_of_week = ?
           AND cancelled = 0`,
		key.Origin, key.Destination, key.DayOfWeek,
	).Scan(&aggregate.TotalFlights, &aggregate.DelayedFlights)
	if err != nil {
		return DelayAggregate{}, fmt.Errorf("%w: aggregate delay: %w", ErrQuery, err)
	}

	if aggregate.TotalFlights > 0 {
		aggregate.DelayPercentage = roundTwo(float64(aggregate.DelayedFlights) * 100 / float64(aggregate.TotalFlights))
	}
	return aggregate, nil
}

func roundTwo(value float64) float64 {
	return math.Round(value*100) / 100
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
