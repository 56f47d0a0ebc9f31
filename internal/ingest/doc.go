// Package ingest loads historical flight records from a delimited source
// into the flight store.
//
// The load is one-shot and idempotent: a store that already contains records
// is skipped, and the recovery path for a partial load is deleting the
// database and rerunning. Rows stream through a single-pass reader with
// permissive field coercion, airports are deduplicated by id with
// first-occurrence-wins semantics, and flight records land in fixed-size
// transactional batches.
package ingest
