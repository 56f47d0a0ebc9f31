package flightstore

import (
	"context"
	"fmt"
	"strings"
)

// searchResultCap bounds airport directory search results.
const searchResultCap = 20

// InsertAirports writes airport directory rows, ignoring rows whose id
// already exists. First write wins; the call never errors on duplicates.
func (s *Store) InsertAirports(ctx context.Context, airports []Airport) error {
	if len(airports) == 0 {
		return nil
	}
	ctx = ensureContext(ctx)

	return retryOnBusy(ctx, func() error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin airport tx: %w", err)
		}
		defer func() { _ = tx.Rollback() }()

		stmt, err := tx.PrepareContext(ctx,
			`INSERT OR IGNORE INTO airports (id, name, city, state) VALUES (?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("prepare airport insert: %w", err)
		}
		defer stmt.Close()

		for _, airport := range airports {
			if _, err := stmt.ExecContext(ctx, airport.ID, airport.Name, airport.City, airport.State); err != nil {
				return fmt.Errorf("insert airport %d: %w", airport.ID, err)
			}
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit airports: %w", err)
		}
		return nil
	})
}

// AirportCount returns the number of directory entries.
func (s *Store) AirportCount(ctx context.Context) (int, error) {
	ctx = ensureContext(ctx)
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM airports").Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: count airports: %w", ErrQuery, err)
	}
	return count, nil
}

// SearchAirports returns directory entries whose name or city contains the
// query, case-insensitively, ordered by name and capped at 20 results. An
// empty query matches everything up to the cap.
func (s *Store) SearchAirports(ctx context.Context, query string) ([]Airport, error) {
	ctx = ensureContext(ctx)
	pattern := "%" + strings.ToLower(strings.TrimSpace(query)) + "%"

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, city, state FROM airports
         WHERE LOWER(name) LIKE ? OR LOWER(city) LIKE ?
         ORDER BY name LIMIT ?`,
		pattern, pattern, searchResultCap,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: search airports: %w", ErrQuery, err)
	}
	defer rows.Close()

	var airports []Airport
	for rows.Next() {
		var airport Airport
		if err := rows.Scan(&airport.ID, &airport.Name, &airport.City, &airport.State); err != nil {
			return nil, fmt.Errorf("%w: scan airport: %w", ErrQuery, err)
		}
		airports = append(airports, airport)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate airports: %w", ErrQuery, err)
	}
	return airports, nil
}

// GetAirportByName fetches a directory entry by its display name.
func (s *Store) GetAirportByName(ctx context.Context, name string) (*Airport, error) {
	ctx = ensureContext(ctx)
	var airport Airport
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, city, state FROM airports WHERE name = ? LIMIT 1`, name,
	).Scan(&airport.ID, &airport.Name, &airport.City, &airport.State)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: get airport: %w", ErrQuery, err)
	}
	return &airport, nil
}
