package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"skycast/internal/config"
	"skycast/internal/flightstore"
	"skycast/internal/ingest"
	"skycast/internal/logging"
)

func newIngestCommand(ctx *commandContext) *cobra.Command {
	var sourcePath string

	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Load historical flight data into the local store",
		Long: `Ingest parses the configured flight-delay CSV export and loads airports
and flight records into the local database. The load runs once: a store
that already holds records is left untouched. Delete the database file
and rerun to load fresh data.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *flightstore.Store) error {
				if sourcePath != "" {
					cfg.Ingest.SourcePath = sourcePath
				}
				if cfg.Ingest.SourcePath == "" {
					return fmt.Errorf("no data source configured; set ingest.source_path or pass --source")
				}

				pipeline := ingest.NewPipeline(cfg, store, logging.NewNop())
				summary, err := pipeline.Run(cmd.Context())
				if err != nil {
					return fmt.Errorf("ingest: %w", err)
				}

				out := cmd.OutOrStdout()
				printer := message.NewPrinter(language.English)
				if summary.Skipped {
					count, err := store.RecordCount(cmd.Context())
					if err != nil {
						return err
					}
					printer.Fprintf(out, "Store already holds %d flight records; skipping ingest.\n", count)
					fmt.Fprintf(out, "Delete %s and rerun to reload.\n", store.Path())
					return nil
				}

				printer.Fprintf(out, "Loaded %d flight records in %d batches (%d airports) in %s\n",
					summary.Records, summary.Batches, summary.Airports, summary.Duration.Round(time.Millisecond))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&sourcePath, "source", "", "CSV source path (overrides ingest.source_path)")
	return cmd
}
