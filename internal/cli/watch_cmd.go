package cli

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/wayfarerhq/wayfarer/internal/engine"
	"github.com/wayfarerhq/wayfarer/internal/importer"
)

func newWatchCmd(app *App) *cobra.Command {
	var date string
	var speed int

	cmd := &cobra.Command{
		Use:   "watch <itinerary.yml>",
		Short: "Follow one day live on an interactive dashboard",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.IsInteractive() {
				return fmt.Errorf("watch needs an interactive terminal")
			}
			if speed < 1 {
				return fmt.Errorf("--speed must be at least 1")
			}

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

			// The simulated clock opens half an hour before the first slot.
			startMin := 8 * 60
			if len(day.Slots) > 0 {
				startMin = day.Slots[0].TimeRange.Start - 30
				if startMin < 0 {
					startMin = 0
				}
			}
			d, err := time.Parse("2006-01-02", date)
			if err != nil {
				return fmt.Errorf("parsing date %s: %w", date, err)
			}
			start := d.Add(time.Duration(startMin) * time.Minute)

			sess := engine.NewSession(itin)
			if err := sess.Start(date, start); err != nil {
				return err
			}

			model := newWatchModel(sess, start, speed)
			_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
			return err
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day to follow (default: first day)")
	cmd.Flags().IntVar(&speed, "speed", 5, "Simulated minutes per real second")

	return cmd
}
