// Package predictor orchestrates hybrid flight-delay predictions.
//
// Per request it prefers the external ML scorer when believed live and falls
// back to statistics computed from the historical store otherwise. Fallback
// is silent from the caller's point of view: a prediction only fails when
// the store itself does.
package predictor
