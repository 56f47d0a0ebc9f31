package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"skycast/internal/config"
	"skycast/internal/flightstore"
)

func newAirportsCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "airports [query]",
		Short: "Search airports by name or city",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := ""
			if len(args) > 0 {
				query = args[0]
			}

			return ctx.withStore(func(cfg *config.Config, store *flightstore.Store) error {
				airports, err := store.SearchAirports(cmd.Context(), query)
				if err != nil {
					return fmt.Errorf("search airports: %w", err)
				}

				if jsonOutput {
					return writeJSON(cmd, map[string]any{
						"airports": airports,
						"count":    len(airports),
					})
				}

				out := cmd.OutOrStdout()
				if len(airports) == 0 {
					fmt.Fprintln(out, "No airports matched.")
					return nil
				}

				rows := make([][]string, 0, len(airports))
				for _, airport := range airports {
					rows = append(rows, []string{
						strconv.Itoa(airport.ID), airport.Name, airport.City, airport.State,
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"ID", "Name", "City", "State"},
					rows,
					[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft},
				))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit matches as JSON")
	return cmd
}
