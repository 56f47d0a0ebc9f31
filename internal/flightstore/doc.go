// Package flightstore persists historical flight records and the derived
// airport directory in SQLite.
//
// The store supports concurrent readers and serializes writes through
// explicit transactions: flight records land in bounded atomic batches
// during ingestion and are never mutated afterward. Aggregate delay queries
// and airport search are the only supported read dimensions, backed by
// indexes on origin name, destination name, day of week, and the
// arrival-delay flag.
package flightstore
