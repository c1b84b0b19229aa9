package cli

import (
	"strings"
	"time"

	"github.com/spf13/cobra"

	"intel-terminal/internal/terminal"
	"intel-terminal/pkg/utils"
)

func newWatchCmd(app *App) *cobra.Command {
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "watch [TICKER]",
		Short: "Refresh the wire on an interval until interrupted",
		Long: `Watch runs aggregation passes on a fixed interval and re-renders
the wire after each one. With a ticker argument it also derives and
renders the analysis view every pass. Stop with Ctrl-C.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.output(cmd)

			selected := app.Config.Terminal.DefaultTicker
			if len(args) == 1 {
				selected = strings.ToUpper(strings.TrimSpace(args[0]))
			}
			if interval <= 0 {
				interval = app.Config.Terminal.RefreshInterval
			}

			output.Info("Watching · refresh every %s · market %s", interval, utils.GetMarketStatus())
			if utils.IsMarketOpen() {
				output.Dim("Session closes %s", utils.MarketClose().Format("15:04 MST"))
			} else {
				output.Dim("Next session opens %s", utils.NextMarketOpen().Format("Mon Jan 2 15:04 MST"))
			}

			app.Terminal.Watch(cmd.Context(), interval, selected, func(snap *terminal.Snapshot) {
				if output.IsJSON() {
					output.JSON(snap)
					return
				}
				output.Println()
				output.Bold("PASS %d · %s · %d tickers", snap.Generation, snap.At.Format("15:04:05"), len(snap.Portfolio))
				renderWire(output, snap.Wire.Records, snap.Wire.Degraded())
				if snap.Analysis != nil {
					output.Println()
					renderAnalysis(output, snap.Analysis)
				}
			})
			return nil
		},
	}

	cmd.Flags().DurationVarP(&interval, "interval", "i", 0, "refresh interval (default from config)")
	return cmd
}
