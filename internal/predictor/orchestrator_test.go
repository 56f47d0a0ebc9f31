package predictor_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"skycast/internal/flightstore"
	"skycast/internal/logging"
	"skycast/internal/predictor"
	"skycast/internal/scorer"
	"skycast/internal/stats"
	"skycast/internal/testsupport"
)

type scorerFixture struct {
	modelLoaded bool
	failScore   bool
	scoreCalls  atomic.Int32
	probability float64
	message     string
}

func (f *scorerFixture) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"status": "OK", "model_loaded": f.modelLoaded})
	})
	mux.HandleFunc("/predict", func(w http.ResponseWriter, r *http.Request) {
		f.scoreCalls.Add(1)
		if f.failScore {
			http.Error(w, "model crashed", http.StatusInternalServerError)
			return
		}
		var req struct {
			Origin      string `json:"origin"`
			Destination string `json:"destination"`
			DayOfWeek   int    `json:"dayOfWeek"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"prediction": map[string]any{
				"origin":           req.Origin,
				"destination":      req.Destination,
				"dayOfWeek":        predictor.DayName(req.DayOfWeek),
				"delayProbability": f.probability,
				"confidence":       "High",
				"message":          f.message,
				"modelInfo":        map[string]any{"type": "GradientBoosting", "accuracy": 0.92},
				"dataAvailability": map[string]any{"originKnown": true, "destinationKnown": true},
			},
		})
	})
	return mux
}

func newOrchestrator(t *testing.T, fixture *scorerFixture) (*predictor.Orchestrator, *flightstore.Store) {
	t.Helper()
	server := httptest.NewServer(fixture.handler())
	t.Cleanup(server.Close)

	cfg := testsupport.NewConfig(t, testsupport.WithScorerURL(server.URL))
	store := testsupport.MustOpenStore(t, cfg)
	client := scorer.NewClient(cfg)
	return predictor.NewOrchestrator(client, stats.NewEstimator(store), logging.NewNop()), store
}

func TestProbeTransitions(t *testing.T) {
	t.Run("model loaded", func(t *testing.T) {
		orch, _ := newOrchestrator(t, &scorerFixture{modelLoaded: true})
		if state := orch.Probe(context.Background()); state != predictor.LivenessAvailable {
			t.Fatalf("expected available, got %v", state)
		}
	})

	t.Run("model not loaded", func(t *testing.T) {
		orch, _ := newOrchestrator(t, &scorerFixture{modelLoaded: false})
		if state := orch.Probe(context.Background()); state != predictor.LivenessUnavailable {
			t.Fatalf("expected unavailable, got %v", state)
		}
	})

	t.Run("unreachable", func(t *testing.T) {
		server := httptest.NewServer(http.NotFoundHandler())
		url := server.URL
		server.Close()

		cfg := testsupport.NewConfig(t, testsupport.WithScorerURL(url))
		store := testsupport.MustOpenStore(t, cfg)
		orch := predictor.NewOrchestrator(scorer.NewClient(cfg), stats.NewEstimator(store), logging.NewNop())
		if state := orch.Probe(context.Background()); state != predictor.LivenessUnavailable {
			t.Fatalf("expected unavailable, got %v", state)
		}
	})
}

func TestPredictUsesModelWhenAvailable(t *testing.T) {
	fixture := &scorerFixture{modelLoaded: true, probability: 42.57, message: "High likelihood of delay"}
	orch, _ := newOrchestrator(t, fixture)
	orch.Probe(context.Background())

	outcome, err := orch.Predict(context.Background(), "Atlanta Intl", "LAX", 3)
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	if outcome.Source != predictor.SourceModel {
		t.Fatalf("expected model source, got %q", outcome.Source)
	}
	if outcome.DelayProbability != 42.57 {
		t.Fatalf("probability should be copied unchanged, got %v", outcome.DelayProbability)
	}
	if outcome.Confidence != "High" || outcome.Message != "High likelihood of delay" {
		t.Fatalf("scorer fields should pass through verbatim: %+v", outcome)
	}
	if outcome.DayOfWeek != "Wednesday" {
		t.Fatalf("expected Wednesday label, got %q", outcome.DayOfWeek)
	}
	if outcome.ModelInfo == nil || outcome.ModelInfo.Type != "GradientBoosting" {
		t.Fatalf("expected model info, got %+v", outcome.ModelInfo)
	}
}

func TestPredictFallsBackOnScorerFailure(t *testing.T) {
	fixture := &scorerFixture{modelLoaded: true, failScore: true}
	orch, store := newOrchestrator(t, fixture)
	testsupport.SeedFlights(t, store, []flightstore.FlightRecord{
		testsupport.Flight("Origin A", "Dest B", 1, true),
		testsupport.Flight("Origin A", "Dest B", 1, false),
	})

	orch.Probe(context.Background())
	if orch.State() != predictor.LivenessAvailable {
		t.Fatal("probe should mark scorer available")
	}

	outcome, err := orch.Predict(context.Background(), "Origin A", "Dest B", 1)
	if err != nil {
		t.Fatalf("Predict should degrade silently, got error: %v", err)
	}
	if outcome.Source != predictor.SourceStatistics {
		t.Fatalf("expected statistics fallback, got %q", outcome.Source)
	}
	if outcome.TotalFlights != 2 || outcome.DelayProbability != 50.00 {
		t.Fatalf("unexpected fallback outcome: %+v", outcome)
	}
	if orch.State() != predictor.LivenessUnavailable {
		t.Fatal("failed call should flip liveness to unavailable")
	}

	// Subsequent requests go straight to statistics without touching the scorer.
	if _, err := orch.Predict(context.Background(), "Origin A", "Dest B", 1); err != nil {
		t.Fatalf("second Predict failed: %v", err)
	}
	if calls := fixture.scoreCalls.Load(); calls != 1 {
		t.Fatalf("expected exactly one scorer call, got %d", calls)
	}
}

func TestPredictSkipsScorerWhenLivenessUnknown(t *testing.T) {
	fixture := &scorerFixture{modelLoaded: true, probability: 10}
	orch, store := newOrchestrator(t, fixture)
	testsupport.SeedFlights(t, store, []flightstore.FlightRecord{
		testsupport.Flight("Origin A", "Dest B", 2, false),
	})

	outcome, err := orch.Predict(context.Background(), "Origin A", "Dest B", 2)
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	if outcome.Source != predictor.SourceStatistics {
		t.Fatalf("unknown liveness should use statistics, got %q", outcome.Source)
	}
	if calls := fixture.scoreCalls.Load(); calls != 0 {
		t.Fatalf("scorer should not be called before a probe, got %d calls", calls)
	}
}

func TestPredictNoData(t *testing.T) {
	orch, _ := newOrchestrator(t, &scorerFixture{})

	outcome, err := orch.Predict(context.Background(), "Nowhere", "Elsewhere", 5)
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	if outcome.Confidence != "No data" || outcome.DelayProbability != 0 {
		t.Fatalf("expected no-data outcome, got %+v", outcome)
	}
	if outcome.Source != predictor.SourceStatistics {
		t.Fatalf("expected statistics source, got %q", outcome.Source)
	}
	if outcome.Message == "" {
		t.Fatal("no-data outcome should carry a message")
	}
}

func TestRiskMessageThresholds(t *testing.T) {
	cases := []struct {
		probability float64
		expected    string
	}{
		{31, "High likelihood of delay"},
		{30, "Moderate delay risk"},
		{16, "Moderate delay risk"},
		{15, "Low delay risk"},
		{10, "Low delay risk"},
	}
	for _, tc := range cases {
		if got := predictor.RiskMessage(tc.probability); got != tc.expected {
			t.Errorf("RiskMessage(%.0f) = %q, want %q", tc.probability, got, tc.expected)
		}
	}
}

func TestDayName(t *testing.T) {
	if predictor.DayName(1) != "Monday" || predictor.DayName(7) != "Sunday" {
		t.Fatal("unexpected day labels")
	}
	if predictor.DayName(0) != "" || predictor.DayName(8) != "" {
		t.Fatal("out-of-range days should yield empty labels")
	}
}
