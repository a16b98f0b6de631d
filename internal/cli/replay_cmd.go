package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wayfarerhq/wayfarer/internal/cli/formatter"
)

func newReplayCmd(app *App) *cobra.Command {
	var trip, run string

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "List recorded simulation runs or replay one run's timeline",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			switch {
			case run != "":
				r, err := app.Runs.GetByID(ctx, run)
				if err != nil {
					return fmt.Errorf("loading run %s: %w", run, err)
				}
				events, err := app.Runs.ListEvents(ctx, run)
				if err != nil {
					return fmt.Errorf("loading events for run %s: %w", run, err)
				}
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatRunTimeline(r, events))
				return nil

			case trip != "":
				runs, err := app.Runs.ListByTrip(ctx, trip)
				if err != nil {
					return fmt.Errorf("listing runs for %s: %w", trip, err)
				}
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatRunList(runs))
				return nil

			default:
				return fmt.Errorf("either --trip or --run is required")
			}
		},
	}

	cmd.Flags().StringVar(&trip, "trip", "", "List runs recorded for this trip")
	cmd.Flags().StringVar(&run, "run", "", "Replay the full timeline of one run")

	return cmd
}
