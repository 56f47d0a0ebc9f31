package ingest

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"
	"time"

	"skycast/internal/config"
	"skycast/internal/flightstore"
	"skycast/internal/logging"
)

// Pipeline performs the one-shot load of historical flight data into the
// store. It is idempotent: a store that already holds records is left alone.
type Pipeline struct {
	store     *flightstore.Store
	source    string
	batchSize int
	logger    *slog.Logger
}

// Summary reports what an ingestion run did.
type Summary struct {
	Skipped  bool
	Records  int
	Airports int
	Batches  int
	Duration time.Duration
}

// NewPipeline builds an ingestion pipeline from configuration.
func NewPipeline(cfg *config.Config, store *flightstore.Store, logger *slog.Logger) *Pipeline {
	batchSize := cfg.Ingest.BatchSize
	if batchSize <= 0 {
		batchSize = 1000
	}
	return &Pipeline{
		store:     store,
		source:    cfg.Ingest.SourcePath,
		batchSize: batchSize,
		logger:    logging.NewComponentLogger(logger, "ingest"),
	}
}

// Run streams the source, deduplicates referenced airports, and writes
// airports then flight records in bounded transactional batches. A store
// that already holds records short-circuits the whole run.
func (p *Pipeline) Run(ctx context.Context) (Summary, error) {
	start := time.Now()

	existing, err := p.store.RecordCount(ctx)
	if err != nil {
		return Summary{}, err
	}
	if existing > 0 {
		p.logger.Info("flight data already loaded, skipping ingestion",
			logging.Int("records", existing))
		return Summary{Skipped: true, Records: existing, Duration: time.Since(start)}, nil
	}

	reader, err := OpenReader(p.source)
	if err != nil {
		return Summary{}, err
	}
	defer reader.Close()

	p.logger.Info("ingesting flight data", logging.String("source", p.source))

	var records []flightstore.FlightRecord
	airports := make(map[int]flightstore.Airport)
	for {
		if err := ctx.Err(); err != nil {
			return Summary{}, err
		}
		record, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Summary{}, err
		}
		collectAirport(airports, record.OriginAirportID, record.OriginAirportName, record.OriginCity, record.OriginState)
		collectAirport(airports, record.DestAirportID, record.DestAirportName, record.DestCity, record.DestState)
		records = append(records, record)
	}

	if err := p.store.InsertAirports(ctx, sortedAirports(airports)); err != nil {
		return Summary{}, err
	}

	batches := 0
	for offset := 0; offset < len(records); offset += p.batchSize {
		end := offset + p.batchSize
		if end > len(records) {
			end = len(records)
		}
		if err := p.store.InsertFlightBatch(ctx, records[offset:end]); err != nil {
			return Summary{}, err
		}
		batches++
	}

	summary := Summary{
		Records:  len(records),
		Airports: len(airports),
		Batches:  batches,
		Duration: time.Since(start),
	}
	p.logger.Info("flight data ingested",
		logging.Int("records", summary.Records),
		logging.Int("airports", summary.Airports),
		logging.Int("batches", summary.Batches),
		logging.Duration("elapsed", summary.Duration))
	return summary, nil
}

// collectAirport records the first occurrence of an airport id. Later rows
// referencing the same id never overwrite it.
func collectAirport(airports map[int]flightstore.Airport, id int, name, city, state string) {
	if _, seen := airports[id]; seen {
		return
	}
	airports[id] = flightstore.Airport{ID: id, Name: name, City: city, State: state}
}

func sortedAirports(airports map[int]flightstore.Airport) []flightstore.Airport {
	out := make([]flightstore.Airport, 0, len(airports))
	for _, airport := range airports {
		out = append(out, airport)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
