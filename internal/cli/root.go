package cli

import (
	"github.com/spf13/cobra"

	"github.com/wayfarerhq/wayfarer/internal/repository"
)

// App holds the dependencies CLI commands run against.
type App struct {
	Runs          repository.RunRepo
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "wayfarer" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "wayfarer",
		Short: "Itinerary validator, day simulator, and live trip dashboard",
	}

	root.AddCommand(
		newValidateCmd(app),
		newSimulateCmd(app),
		newReplayCmd(app),
		newWatchCmd(app),
	)

	return root
}
