package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"
)

func newWireCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "wire",
		Aliases: []string{"alerts"},
		Short:   "Run one aggregation pass and print the ranked alert wire",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.output(cmd)

			ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
			defer cancel()

			snap := app.Terminal.RunPass(ctx, "")

			if output.IsJSON() {
				return output.JSON(snap)
			}

			output.Bold("INSTITUTIONAL WIRE · pass %d · %s", snap.Generation, snap.At.Format("15:04:05"))
			renderWire(output, snap.Wire.Records, snap.Wire.Degraded())
			return nil
		},
	}
}

func newHistoryCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show archived alerts from previous passes",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.output(cmd)

			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			alerts, err := app.Archive.RecentAlerts(ctx, limit)
			if err != nil {
				return err
			}

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{"alerts": alerts})
			}

			if len(alerts) == 0 {
				output.Dim("Archive is empty. Run 'terminal wire' to record a pass.")
				return nil
			}

			output.Bold("ALERT HISTORY (%d)", len(alerts))
			for _, a := range alerts {
				output.Printf("%s %s  %s %-22s %-12s %s\n",
					output.DimText(output.Date(a.OccurredOn)),
					output.SourceTag(a.Source),
					output.ColoredString(ColorBold, padTicker(a.Ticker)),
					truncate(a.ActorName, 22),
					a.Action,
					a.Detail,
				)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 50, "maximum alerts to show")
	return cmd
}
