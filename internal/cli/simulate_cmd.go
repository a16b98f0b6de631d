package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/wayfarerhq/wayfarer/internal/cli/formatter"
	"github.com/wayfarerhq/wayfarer/internal/domain"
	"github.com/wayfarerhq/wayfarer/internal/importer"
	"github.com/wayfarerhq/wayfarer/internal/repository"
	"github.com/wayfarerhq/wayfarer/internal/simulator"
)

func newSimulateCmd(app *App) *cobra.Command {
	var date, weather, energy string
	var seed int64
	var record, yes bool

	cmd := &cobra.Command{
		Use:   "simulate <itinerary.yml>",
		Short: "Run a seeded what-if simulation of one day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			itin, err := importer.Load(args[0])
			if err != nil {
				return err
			}

			if date == "" {
				date = itin.Days[0].Date
			}
			day := itin.DayByDate(date)
			if day == nil {
				return fmt.Errorf("itinerary has no day %s", date)
			}
			if seed == 0 {
				seed = time.Now().UnixNano() % 2147483647
			}

			sim := simulator.New(simulator.Config{
				Seed:    seed,
				Weather: domain.WeatherCondition(weather),
				Energy:  domain.EnergyLevel(energy),
			})
			res := sim.Run(day)

			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSimResult(&res))

			if !record {
				return nil
			}
			if !yes && app.IsInteractive() {
				var confirmed bool
				form := huh.NewForm(huh.NewGroup(
					huh.NewConfirm().
						Title(fmt.Sprintf("Record this run for %s?", date)).
						Affirmative("Yes").
						Negative("No").
						Value(&confirmed),
				))
				if err := form.Run(); err != nil {
					return err
				}
				if !confirmed {
					return nil
				}
			}

			run := repository.NewSimRun(uuid.NewString(), itin.TripID, date, &res, time.Now().UTC())
			if err := app.Runs.Create(context.Background(), run, res.Events); err != nil {
				return fmt.Errorf("recording run: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "recorded run %s\n", run.ID[:8])
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day to simulate (default: first day)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "PRNG seed; the same seed replays the same day")
	cmd.Flags().StringVar(&weather, "weather", "", "Weather condition (clear, cloudy, rain, heat, cold)")
	cmd.Flags().StringVar(&energy, "energy", "", "Traveler energy (low, normal, high)")
	cmd.Flags().BoolVar(&record, "record", false, "Persist the run and its event trace")
	cmd.Flags().BoolVar(&yes, "yes", false, "Skip the confirmation prompt")

	return cmd
}
