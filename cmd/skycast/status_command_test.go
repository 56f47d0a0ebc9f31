package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"skycast/internal/flightstore"
	"skycast/internal/testsupport"
)

func TestStatusReportsHealthyStore(t *testing.T) {
	scorerSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/health":
			w.Write([]byte(`{"status":"healthy","model_loaded":true}`))
		case "/model/info":
			w.Write([]byte(`{"success":true,"model_info":{"model_type":"GradientBoostingClassifier","roc_auc_score":0.71,"trained_on":"FlightDelays dataset"}}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer scorerSrv.Close()

	env := setupCLITestEnv(t, testsupport.WithScorerURL(scorerSrv.URL))
	store := testsupport.MustOpenStore(t, env.cfg)
	testsupport.SeedFlights(t, store, []flightstore.FlightRecord{
		testsupport.Flight("Hartsfield-Jackson Atlanta International", "Los Angeles International", 1, false),
	})

	out, _, err := runCLI(t, []string{"status"}, env.configPath)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	requireContains(t, out, "Database")
	requireContains(t, out, "available")
	requireContains(t, out, "GradientBoostingClassifier")

	out, _, err = runCLI(t, []string{"status", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("status --json: %v", err)
	}
	var payload struct {
		Database flightstore.DatabaseHealth `json:"database"`
		Scorer   struct {
			State string `json:"state"`
		} `json:"scorer"`
	}
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("decode status: %v\noutput: %s", err, out)
	}
	if payload.Database.FlightRecords != 1 {
		t.Fatalf("expected 1 flight record, got %d", payload.Database.FlightRecords)
	}
	if payload.Scorer.State != "available" {
		t.Fatalf("expected available scorer, got %q", payload.Scorer.State)
	}
}

func TestStatusReportsUnreachableScorer(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithScorerURL(closedScorerURL(t)))
	testsupport.MustOpenStore(t, env.cfg)

	out, _, err := runCLI(t, []string{"status"}, env.configPath)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	requireContains(t, out, "[ERROR]")
}
