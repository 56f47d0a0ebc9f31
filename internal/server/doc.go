// Package server hosts the prediction HTTP API.
//
// It claims an exclusive lock on the data directory so only one process
// serves a given database, and exposes three read-only endpoints: a health
// summary, delay predictions, and airport directory search. Invalid input
// and storage failures are the only error responses; scorer outages never
// surface to callers.
package server
