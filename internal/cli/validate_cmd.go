package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wayfarerhq/wayfarer/internal/cli/formatter"
	"github.com/wayfarerhq/wayfarer/internal/constraint"
	"github.com/wayfarerhq/wayfarer/internal/importer"
)

func newValidateCmd(app *App) *cobra.Command {
	var strict bool
	var noClusters, noWeather bool

	cmd := &cobra.Command{
		Use:   "validate <itinerary.yml>",
		Short: "Check an itinerary against all constraint layers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			itin, err := importer.Load(args[0])
			if err != nil {
				return err
			}

			cfg := constraint.DefaultConfig()
			cfg.StrictMode = strict
			if noClusters {
				cfg.RespectClusters = false
			}
			if noWeather {
				cfg.WeatherAware = false
			}

			perDay := make(map[string][]constraint.Violation, len(itin.Days))
			var all []constraint.Violation
			for i := range itin.Days {
				vs := constraint.ValidateDay(&itin.Days[i], cfg)
				perDay[itin.Days[i].Date] = vs
				all = append(all, vs...)
			}
			fa := constraint.Analyze(all, cfg)

			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatAnalysis(itin, perDay, fa.Feasible))
			if !fa.Feasible {
				return fmt.Errorf("itinerary is not feasible")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "Treat warnings as blocking")
	cmd.Flags().BoolVar(&noClusters, "no-clusters", false, "Skip the cluster-fragmentation check")
	cmd.Flags().BoolVar(&noWeather, "no-weather", false, "Skip weather-fragility notices")

	return cmd
}
