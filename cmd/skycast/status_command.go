package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"skycast/internal/config"
	"skycast/internal/flightstore"
	"skycast/internal/scorer"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show database and scoring-service health",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *flightstore.Store) error {
				health, healthErr := store.CheckHealth(cmd.Context())

				client := scorer.NewClient(cfg)
				scorerState := "unreachable"
				scorerDetail := ""
				var model *scorer.Metadata
				if sh, err := client.HealthCheck(cmd.Context()); err != nil {
					scorerDetail = err.Error()
				} else if sh.ModelLoaded {
					scorerState = "available"
					if info, err := client.Info(cmd.Context()); err == nil {
						model = &info
					}
				} else {
					scorerState = "model not loaded"
				}

				if jsonOutput {
					payload := map[string]any{
						"database": health,
						"scorer": map[string]any{
							"base_url": cfg.Scorer.BaseURL,
							"state":    scorerState,
						},
					}
					if model != nil {
						payload["model"] = model
					}
					return writeJSON(cmd, payload)
				}

				out := cmd.OutOrStdout()
				colorize := shouldColorize(out)
				printer := message.NewPrinter(language.English)

				fmt.Fprintln(out, renderStatusLine("Database", statusKindFor(healthErr == nil && health.IntegrityCheck), health.DBPath, colorize))
				fmt.Fprintln(out, renderStatusLine("Flight records", statusKindFor(health.FlightRecords > 0), printer.Sprintf("%d", health.FlightRecords), colorize))
				fmt.Fprintln(out, renderStatusLine("Airports", statusKindFor(health.Airports > 0), printer.Sprintf("%d", health.Airports), colorize))

				scorerKind := statusError
				if scorerState == "available" {
					scorerKind = statusOK
				} else if scorerState == "model not loaded" {
					scorerKind = statusWarn
				}
				var detail string
				if scorerDetail != "" {
					detail = fmt.Sprintf("%s: %s", cfg.Scorer.BaseURL, scorerDetail)
				} else {
					detail = fmt.Sprintf("%s (%s)", cfg.Scorer.BaseURL, scorerState)
				}
				fmt.Fprintln(out, renderStatusLine("Scoring service", scorerKind, detail, colorize))
				if model != nil {
					fmt.Fprintln(out, renderStatusLine("Model", statusOK,
						fmt.Sprintf("%s (ROC AUC %.2f, trained %s)", model.ModelType, model.ROCAUCScore, model.TrainedOn), colorize))
				}

				if healthErr != nil {
					fmt.Fprintln(out, renderStatusLine("Database error", statusError, healthErr.Error(), colorize))
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit status as JSON")
	return cmd
}

func statusKindFor(ok bool) statusKind {
	if ok {
		return statusOK
	}
	return statusWarn
}
