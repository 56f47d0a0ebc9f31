// Package scorer is the HTTP client for the external ML scoring service.
//
// The service is opaque to skycast: it exposes a health probe, a model info
// endpoint, and a predict endpoint returning a 0-100 delay probability with
// a confidence label. Every call is bounded by a timeout, and any failure
// mode collapses to ErrUnavailable so the orchestrator can fall back to
// historical statistics.
package scorer
