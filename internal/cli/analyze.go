package cli

import (
	"context"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"intel-terminal/internal/errors"
)

func newAnalyzeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze TICKER",
		Short: "Derive valuation, earnings, and alert context for one ticker",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.output(cmd)
			ticker := strings.ToUpper(strings.TrimSpace(args[0]))

			ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
			defer cancel()

			snap := app.Terminal.RunPass(ctx, ticker)

			if output.IsJSON() {
				return output.JSON(snap)
			}

			if snap.Analysis == nil {
				return errors.NewDataError("fundamentals", ticker, "no data available", nil)
			}

			renderAnalysis(output, snap.Analysis)
			return nil
		},
	}
}
