package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"skycast/internal/flightstore"
)

// ErrDataSource marks a missing source file or a stream-parse failure while
// reading it. Fatal for the ingestion run; a server that skips ingestion
// because data already exists never sees it.
var ErrDataSource = errors.New("data source error")

// columns is the exact header contract with the external flight data source.
var columns = []string{
	"Year", "Month", "DayofMonth", "DayOfWeek", "Carrier",
	"OriginAirportID", "OriginAirportName", "OriginCity", "OriginState",
	"DestAirportID", "DestAirportName", "DestCity", "DestState",
	"CRSDepTime", "DepDelay", "DepDel15", "CRSArrTime", "ArrDelay", "ArrDel15",
	"Cancelled",
}

// Reader streams typed flight rows from a CSV source. It is a single-pass,
// non-restartable sequence: callers invoke Next until io.EOF.
type Reader struct {
	file    *os.File
	csv     *csv.Reader
	indexes map[string]int
}

// OpenReader opens the CSV source and consumes its header row.
func OpenReader(path string) (*Reader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open source %q: %w", ErrDataSource, path, err)
	}

	cr := csv.NewReader(file)
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("%w: read header: %w", ErrDataSource, err)
	}

	indexes := make(map[string]int, len(header))
	for i, name := range header {
		indexes[strings.TrimSpace(name)] = i
	}
	for _, name := range columns {
		if _, ok := indexes[name]; !ok {
			_ = file.Close()
			return nil, fmt.Errorf("%w: source missing column %q", ErrDataSource, name)
		}
	}

	return &Reader{file: file, csv: cr, indexes: indexes}, nil
}

// Next returns the next flight record, or io.EOF when the source is
// exhausted. Unparseable numeric fields coerce to 0 and missing text fields
// to the empty string; no row is rejected outright.
func (r *Reader) Next() (flightstore.FlightRecord, error) {
	row, err := r.csv.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return flightstore.FlightRecord{}, io.EOF
		}
		return flightstore.FlightRecord{}, fmt.Errorf("%w: parse row: %w", ErrDataSource, err)
	}

	return flightstore.FlightRecord{
		Year:              r.intField(row, "Year"),
		Month:             r.intField(row, "Month"),
		DayofMonth:        r.intField(row, "DayofMonth"),
		DayOfWeek:         r.intField(row, "DayOfWeek"),
		Carrier:           r.textField(row, "Carrier"),
		OriginAirportID:   r.intField(row, "OriginAirportID"),
		OriginAirportName: r.textField(row, "OriginAirportName"),
		OriginCity:        r.textField(row, "OriginCity"),
		OriginState:       r.textField(row, "OriginState"),
		DestAirportID:     r.intField(row, "DestAirportID"),
		DestAirportName:   r.textField(row, "DestAirportName"),
		DestCity:          r.textField(row, "DestCity"),
		DestState:         r.textField(row, "DestState"),
		CRSDepTime:        r.intField(row, "CRSDepTime"),
		DepDelay:          r.intField(row, "DepDelay"),
		DepDel15:          r.intField(row, "DepDel15"),
		CRSArrTime:        r.intField(row, "CRSArrTime"),
		ArrDelay:          r.intField(row, "ArrDelay"),
		ArrDel15:          r.intField(row, "ArrDel15"),
		Cancelled:         r.intField(row, "Cancelled"),
	}, nil
}

// Close releases the underlying source file.
func (r *Reader) Close() error {
	if r == nil || r.file == nil {
		return nil
	}
	return r.file.Close()
}

func (r *Reader) textField(row []string, name string) string {
	idx := r.indexes[name]
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func (r *Reader) intField(row []string, name string) int {
	return coerceInt(r.textField(row, name))
}

// coerceInt parses integers permissively: plain integers first, then
// float-formatted values such as "1.00", falling back to 0.
func coerceInt(value string) int {
	if value == "" {
		return 0
	}
	if parsed, err := strconv.Atoi(value); err == nil {
		return parsed
	}
	if parsed, err := strconv.ParseFloat(value, 64); err == nil {
		return int(parsed)
	}
	return 0
}
