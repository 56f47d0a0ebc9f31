// Command skycastd runs the flight-delay prediction server.
//
// Startup blocks on the one-shot ingestion of historical flight data, probes
// the external scorer once, and then serves the prediction API until
// interrupted.
package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"

	"skycast/internal/config"
	"skycast/internal/flightstore"
	"skycast/internal/ingest"
	"skycast/internal/logging"
	"skycast/internal/predictor"
	"skycast/internal/scorer"
	"skycast/internal/server"
	"skycast/internal/stats"
)

func main() {
	configPath := flag.String("config", "", "configuration file path")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, _, _, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}

	store, err := flightstore.Open(cfg)
	if err != nil {
		logger.Error("open flight store", logging.Error(err))
		return
	}
	defer store.Close()

	if cfg.Ingest.SourcePath == "" {
		logger.Warn("no ingest source configured, serving existing data only")
	} else {
		pipeline := ingest.NewPipeline(cfg, store, logger)
		if _, err := pipeline.Run(ctx); err != nil {
			logger.Error("ingest flight data", logging.Error(err))
			return
		}
	}

	orchestrator := predictor.NewOrchestrator(scorer.NewClient(cfg), stats.NewEstimator(store), logger)
	state := orchestrator.Probe(ctx)
	logger.Info("scorer probe complete", logging.String("state", state.String()))

	srv, err := server.New(cfg, store, orchestrator, logger)
	if err != nil {
		logger.Error("create server", logging.Error(err))
		return
	}
	defer srv.Close()

	if err := srv.Start(ctx); err != nil {
		logger.Error("start server", logging.Error(err))
		return
	}

	<-ctx.Done()
	logger.Info("skycastd shutting down")
}
