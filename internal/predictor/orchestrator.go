package predictor

import (
	"context"
	"log/slog"
	"sync/atomic"

	"skycast/internal/flightstore"
	"skycast/internal/logging"
	"skycast/internal/scorer"
	"skycast/internal/stats"
)

// Liveness is the orchestrator's belief about the external scorer.
type Liveness int32

const (
	LivenessUnknown Liveness = iota
	LivenessAvailable
	LivenessUnavailable
)

func (l Liveness) String() string {
	switch l {
	case LivenessAvailable:
		return "available"
	case LivenessUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// Scorer is the external scoring capability consumed by the orchestrator.
type Scorer interface {
	HealthCheck(ctx context.Context) (scorer.Health, error)
	Score(ctx context.Context, origin, destination string, dayOfWeek int) (*scorer.Prediction, error)
}

// Orchestrator decides per request whether to use the external scorer or
// historical statistics, and normalizes both into one response shape.
//
// A single failed scorer call flips liveness to unavailable for all
// subsequent requests until a later successful probe restores it. There is
// deliberately no retry or backoff here.
type Orchestrator struct {
	scorer    Scorer
	estimator *stats.Estimator
	logger    *slog.Logger

	// Liveness is shared across concurrent requests. A stale read is
	// acceptable and self-healing: the loser's own call fails and flips
	// the state again.
	state atomic.Int32
}

// NewOrchestrator builds an orchestrator. Liveness starts unknown; call
// Probe to establish it.
func NewOrchestrator(sc Scorer, estimator *stats.Estimator, logger *slog.Logger) *Orchestrator {
	return &Orchestrator{
		scorer:    sc,
		estimator: estimator,
		logger:    logging.NewComponentLogger(logger, "predictor"),
	}
}

// State reports the current scorer liveness belief.
func (o *Orchestrator) State() Liveness {
	return Liveness(o.state.Load())
}

// Probe health-checks the scorer and updates liveness. A reachable scorer
// without a loaded model counts as unavailable.
func (o *Orchestrator) Probe(ctx context.Context) Liveness {
	health, err := o.scorer.HealthCheck(ctx)
	switch {
	case err != nil:
		o.logger.Warn("scorer health probe failed", logging.Error(err))
		o.state.Store(int32(LivenessUnavailable))
	case !health.ModelLoaded:
		o.logger.Warn("scorer reachable but model not loaded")
		o.state.Store(int32(LivenessUnavailable))
	default:
		o.state.Store(int32(LivenessAvailable))
	}
	return o.State()
}

// Predict produces a delay prediction for the given route and weekday. The
// caller is assumed to have validated dayOfWeek to 1..7. Scorer failures
// degrade silently to the statistics path; only storage failures surface as
// errors.
func (o *Orchestrator) Predict(ctx context.Context, origin, destination string, dayOfWeek int) (Outcome, error) {
	if o.State() == LivenessAvailable {
		prediction, err := o.scorer.Score(ctx, origin, destination, dayOfWeek)
		if err == nil {
			return o.modelOutcome(origin, destination, dayOfWeek, prediction), nil
		}
		o.state.Store(int32(LivenessUnavailable))
		o.logger.Warn("scorer call failed, falling back to statistics",
			logging.String(logging.FieldOrigin, origin),
			logging.String(logging.FieldDestination, destination),
			logging.Error(err))
	}

	return o.statisticsOutcome(ctx, origin, destination, dayOfWeek)
}

func (o *Orchestrator) modelOutcome(origin, destination string, dayOfWeek int, prediction *scorer.Prediction) Outcome {
	message := prediction.Message
	if message == "" {
		message = RiskMessage(prediction.DelayProbability)
	}
	info := prediction.ModelInfo
	return Outcome{
		Origin:           origin,
		Destination:      destination,
		DayOfWeek:        DayName(dayOfWeek),
		DelayProbability: prediction.DelayProbability,
		Confidence:       prediction.Confidence,
		Source:           SourceModel,
		Message:          message,
		ModelInfo:        &info,
	}
}

func (o *Orchestrator) statisticsOutcome(ctx context.Context, origin, destination string, dayOfWeek int) (Outcome, error) {
	estimate, err := o.estimator.Estimate(ctx, flightstore.RouteDay{
		Origin:      origin,
		Destination: destination,
		DayOfWeek:   dayOfWeek,
	})
	if err != nil {
		return Outcome{}, err
	}

	outcome := Outcome{
		Origin:         origin,
		Destination:    destination,
		DayOfWeek:      DayName(dayOfWeek),
		TotalFlights:   estimate.TotalFlights,
		DelayedFlights: estimate.DelayedFlights,
		Confidence:     string(estimate.Confidence),
		Source:         SourceStatistics,
	}
	if estimate.TotalFlights == 0 {
		outcome.Message = "No historical data for this route; the prediction model may have better coverage"
		return outcome, nil
	}
	outcome.DelayProbability = estimate.DelayPercentage
	outcome.Message = RiskMessage(estimate.DelayPercentage)
	return outcome, nil
}
