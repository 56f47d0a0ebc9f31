package flightstore

import (
	"context"
	"fmt"
)

// RecordCount returns the total number of stored flight records.
func (s *Store) RecordCount(ctx context.Context) (int, error) {
	ctx = ensureContext(ctx)
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM flights").Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: count flights: %w", ErrQuery, err)
	}
	return count, nil
}

const insertFlightSQL = `INSERT INTO flights (
    year, month, day_of_month, day_of_week, carrier,
    origin_airport_id, origin_airport_name, origin_city, origin_state,
    dest_airport_id, dest_airport_name, dest_city, dest_state,
    crs_dep_time, dep_delay, dep_del15, crs_arr_time, arr_delay, arr_del15,
    cancelled
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// InsertFlightBatch writes a bounded set of flight records as one atomic
// transaction. On any row failure the whole batch is rolled back; no partial
// batch is ever visible to readers.
func (s *Store) InsertFlightBatch(ctx context.Context, batch []FlightRecord) error {
	if len(batch) == 0 {
		return nil
	}
	ctx = ensureContext(ctx)

	return retryOnBusy(ctx, func() error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin flight batch tx: %w", err)
		}
		defer func() { _ = tx.Rollback() }()

		stmt, err := tx.PrepareContext(ctx, insertFlightSQL)
		if err != nil {
			return fmt.Errorf("prepare flight insert: %w", err)
		}
		defer stmt.Close()

		for i, record := range batch {
			if _, err := stmt.ExecContext(ctx,
				record.Year,
				record.Month,
				record.DayofMonth,
				record.DayOfWeek,
				record.Carrier,
				record.OriginAirportID,
				record.OriginAirportName,
				record.OriginCity,
				record.OriginState,
				record.DestAirportID,
				record.DestAirportName,
				record.DestCity,
				record.DestState,
				record.CRSDepTime,
				record.DepDelay,
				record.DepDel15,
				record.CRSArrTime,
				record.ArrDelay,
				record.ArrDel15,
				record.Cancelled,
			); err != nil {
				return fmt.Errorf("insert flight %d of %d: %w", i+1, len(batch), err)
			}
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit flight batch: %w", err)
		}
		return nil
	})
}
