package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"skycast/internal/config"
	"skycast/internal/flightstore"
	"skycast/internal/logging"
	"skycast/internal/predictor"
	"skycast/internal/scorer"
	"skycast/internal/stats"
)

func newPredictCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "predict <origin> <destination> <day-of-week>",
		Short: "Predict delay likelihood for a route and day",
		Long: `Predict asks the external scoring service for a delay probability and
falls back to historical statistics when the service is unavailable.
Airports are matched by full name and day-of-week runs 1 (Monday)
through 7 (Sunday).`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			origin, destination := args[0], args[1]
			dayOfWeek, err := strconv.Atoi(args[2])
			if err != nil || dayOfWeek < 1 || dayOfWeek > 7 {
				return fmt.Errorf("day-of-week must be an integer between 1 and 7, got %q", args[2])
			}
			if origin == "" || destination == "" {
				return fmt.Errorf("origin and destination must not be empty")
			}

			return ctx.withStore(func(cfg *config.Config, store *flightstore.Store) error {
				orchestrator := predictor.NewOrchestrator(
					scorer.NewClient(cfg),
					stats.NewEstimator(store),
					logging.NewNop(),
				)
				orchestrator.Probe(cmd.Context())

				outcome, err := orchestrator.Predict(cmd.Context(), origin, destination, dayOfWeek)
				if err != nil {
					return fmt.Errorf("predict: %w", err)
				}

				if jsonOutput {
					return writeJSON(cmd, outcome)
				}
				renderOutcome(cmd, outcome)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the prediction as JSON")
	return cmd
}

func renderOutcome(cmd *cobra.Command, outcome predictor.Outcome) {
	rows := [][]string{
		{"Route", fmt.Sprintf("%s -> %s", outcome.Origin, outcome.Destination)},
		{"Day", outcome.DayOfWeek},
		{"Delay probability", fmt.Sprintf("%.2f%%", outcome.DelayProbability)},
		{"Confidence", outcome.Confidence},
		{"Source", string(outcome.Source)},
	}
	if outcome.Source == predictor.SourceStatistics {
		rows = append(rows,
			[]string{"Flights observed", strconv.Itoa(outcome.TotalFlights)},
			[]string{"Flights delayed", strconv.Itoa(outcome.DelayedFlights)},
		)
	}
	if outcome.ModelInfo != nil {
		rows = append(rows, []string{"Model", fmt.Sprintf("%s (accuracy %.2f)", outcome.ModelInfo.Type, outcome.ModelInfo.Accuracy)})
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, renderTable([]string{"Field", "Value"}, rows, []columnAlignment{alignLeft, alignLeft}))
	fmt.Fprintln(out, outcome.Message)
}
