package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

func newPortfolioCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "portfolio",
		Aliases: []string{"pf"},
		Short:   "Manage the tracked ticker portfolio",
	}

	cmd.AddCommand(newPortfolioListCmd(app))
	cmd.AddCommand(newPortfolioAddCmd(app))
	cmd.AddCommand(newPortfolioRemoveCmd(app))

	return cmd
}

func newPortfolioListCmd(app *App) *cobra.Command {
	var showNames bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tracked tickers",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.output(cmd)
			tickers := app.Portfolio.Load()

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{"tickers": tickers})
			}

			output.Bold("PORTFOLIO (%d)", len(tickers))
			if !showNames {
				output.Println(strings.Join(tickers, "  "))
				return nil
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			for _, t := range tickers {
				name := app.Membership.Name(ctx, t)
				if name == "" {
					output.Printf("  %-6s\n", t)
					continue
				}
				output.Printf("  %-6s %s\n", t, output.DimText(name))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showNames, "names", false, "resolve company names from index membership")
	return cmd
}

func newPortfolioAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add TICKER...",
		Short: "Add tickers to the portfolio",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.output(cmd)
			for _, arg := range args {
				ticker := strings.ToUpper(strings.TrimSpace(arg))
				if err := app.Portfolio.Add(ticker); err != nil {
					return fmt.Errorf("adding %s: %w", ticker, err)
				}
				output.Success("Added %s", ticker)
			}
			return nil
		},
	}
}

func newPortfolioRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "remove TICKER...",
		Aliases: []string{"rm"},
		Short:   "Remove tickers from the portfolio",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.output(cmd)
			for _, arg := range args {
				ticker := strings.ToUpper(strings.TrimSpace(arg))
				if err := app.Portfolio.Remove(ticker); err != nil {
					return fmt.Errorf("removing %s: %w", ticker, err)
				}
				output.Success("Removed %s", ticker)
			}
			return nil
		},
	}
}
