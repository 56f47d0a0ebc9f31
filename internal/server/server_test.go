package server_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"skycast/internal/config"
	"skycast/internal/flightstore"
	"skycast/internal/logging"
	"skycast/internal/predictor"
	"skycast/internal/scorer"
	"skycast/internal/server"
	"skycast/internal/stats"
	"skycast/internal/testsupport"
)

func newTestServer(t *testing.T) (*server.Server, *flightstore.Store, *config.Config) {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	orchestrator := predictor.NewOrchestrator(scorer.NewClient(cfg), stats.NewEstimator(store), logging.NewNop())
	srv, err := server.New(cfg, store, orchestrator, logging.NewNop())
	if err != nil {
		t.Fatalf("server.New failed: %v", err)
	}
	t.Cleanup(func() { srv.Close() })
	return srv, store, cfg
}

func getJSON(t *testing.T, handler http.Handler, url string, out any) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if out != nil && rec.Code == http.StatusOK {
		if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
			t.Fatalf("decode response: %v", err)
		}
	}
	return rec.Code
}

func TestHandleHealth(t *testing.T) {
	srv, store, _ := newTestServer(t)
	testsupport.SeedFlights(t, store, []flightstore.FlightRecord{
		testsupport.Flight("Origin A", "Dest B", 1, false),
	})

	var health struct {
		Status        string `json:"status"`
		Scorer        string `json:"scorer"`
		FlightRecords int    `json:"flightRecords"`
	}
	if code := getJSON(t, srv.Handler(), "/api/health", &health); code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if health.Status != "ok" || health.FlightRecords != 1 {
		t.Fatalf("unexpected health: %+v", health)
	}
	if health.Scorer != "unknown" {
		t.Fatalf("expected unknown scorer state before probe, got %q", health.Scorer)
	}
}

func TestHandlePredictValidation(t *testing.T) {
	srv, _, _ := newTestServer(t)

	cases := []string{
		"/api/predict",
		"/api/predict?origin=A&dayOfWeek=1",
		"/api/predict?origin=A&destination=B",
		"/api/predict?origin=A&destination=B&dayOfWeek=0",
		"/api/predict?origin=A&destination=B&dayOfWeek=8",
		"/api/predict?origin=A&destination=B&dayOfWeek=soon",
	}
	for _, url := range cases {
		if code := getJSON(t, srv.Handler(), url, nil); code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", url, code)
		}
	}
}

func TestHandlePredictStatisticsPath(t *testing.T) {
	srv, store, _ := newTestServer(t)
	testsupport.SeedFlights(t, store, []flightstore.FlightRecord{
		testsupport.Flight("Origin A", "Dest B", 1, true),
		testsupport.Flight("Origin A", "Dest B", 1, false),
	})

	var outcome predictor.Outcome
	code := getJSON(t, srv.Handler(), "/api/predict?origin=Origin+A&destination=Dest+B&dayOfWeek=1", &outcome)
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if outcome.Source != predictor.SourceStatistics || outcome.DelayProbability != 50.00 {
		t.Fatalf("unexpected outcome: %+v", outcome)
	}
	if outcome.DayOfWeek != "Monday" {
		t.Fatalf("expected Monday label, got %q", outcome.DayOfWeek)
	}
}

func TestHandleAirports(t *testing.T) {
	srv, store, _ := newTestServer(t)
	if err := store.InsertAirports(context.Background(), []flightstore.Airport{
		{ID: 1, Name: "Los Angeles International", City: "Los Angeles, CA", State: "CA"},
		{ID: 2, Name: "LaGuardia", City: "New York, NY", State: "NY"},
	}); err != nil {
		t.Fatalf("InsertAirports failed: %v", err)
	}

	var resp struct {
		Airports []struct {
			Name string `json:"name"`
		} `json:"airports"`
		Count int `json:"count"`
	}
	if code := getJSON(t, srv.Handler(), "/api/airports?q=guard", &resp); code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if resp.Count != 1 || resp.Airports[0].Name != "LaGuardia" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	srv, _, _ := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/api/predict", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
}

func TestSecondServerFailsLock(t *testing.T) {
	srv, store, cfg := newTestServer(t)
	_ = srv

	orchestrator := predictor.NewOrchestrator(scorer.NewClient(cfg), stats.NewEstimator(store), logging.NewNop())
	if _, err := server.New(cfg, store, orchestrator, logging.NewNop()); err == nil {
		t.Fatal("expected second server on same data dir to fail")
	}
}

func TestStartAndShutdown(t *testing.T) {
	srv, _, _ := newTestServer(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := srv.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if srv.Addr() == "" {
		t.Fatal("expected listener address after Start")
	}

	resp, err := http.Get("http://" + srv.Addr() + "/api/health")
	if err != nil {
		t.Fatalf("health request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	cancel()
}
