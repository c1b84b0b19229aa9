package cli

import (
	"strings"

	"intel-terminal/internal/models"
	"intel-terminal/internal/terminal"
	"intel-terminal/pkg/utils"
)

// renderWire prints the ranked alert wire as a table.
func renderWire(output *Output, records []models.AlertRecord, degraded []string) {
	if len(records) == 0 {
		output.Dim("No alerts for the current portfolio.")
	}
	for _, rec := range records {
		output.Printf("%s %s  %s %-22s %-12s %s\n",
			output.DimText(output.Date(rec.OccurredOn)),
			output.SourceTag(rec.Source),
			output.ColoredString(ColorBold, padTicker(rec.Ticker)),
			truncate(rec.ActorName, 22),
			rec.Action,
			rec.Detail,
		)
	}
	if len(degraded) > 0 {
		output.Warning("Degraded feeds: %s", strings.Join(degraded, ", "))
	}
}

// renderAnalysis prints the derived view for the selected ticker.
func renderAnalysis(output *Output, a *terminal.Analysis) {
	header := a.Ticker
	if a.LongName != "" {
		header += " · " + a.LongName
	}
	output.Bold("%s", header)
	if a.Sector != "" {
		output.Printf("Sector: %s", a.Sector)
		if a.CEO != "" {
			output.Printf("   CEO: %s", a.CEO)
		}
		output.Println()
	}

	f := a.Fundamentals
	if f != nil {
		if f.CurrentPrice != nil {
			output.Printf("Price:  %s", utils.FormatOptional(f.CurrentPrice, "$%.2f"))
			if f.MarketCap != nil {
				output.Printf("   Mkt Cap: %s", utils.FormatMoney(*f.MarketCap))
			}
			output.Println()
		}
		if f.AnalystTarget != nil {
			output.Printf("Target: %s\n", utils.FormatOptional(f.AnalystTarget, "$%.2f"))
		}
	}

	v := a.Valuation
	output.Println()
	output.Bold("VALUATION")
	output.Printf("P/E: %-10s P/S: %-10s PEG: %s%s\n",
		utils.FormatOptional(v.PE, "%.2f"),
		utils.FormatOptional(v.PS, "%.2f"),
		utils.FormatOptional(v.PEG, "%.2f"),
		pegMarker(v),
	)
	if v.SectorRelativePEPct != nil {
		output.Printf("vs sector P/E: %s\n", utils.FormatSignedPct(*v.SectorRelativePEPct))
	}
	output.Printf("Rule of 40: %.1f%% (%s)\n", v.RuleOf40Pct, v.RuleOf40Class())
	if f != nil {
		output.Printf("  rev growth %s · EBITDA margin %s\n",
			utils.FormatPercent(f.RevenueGrowth*100),
			utils.FormatPercent(f.EBITDAMargin*100),
		)
	}

	output.Println()
	renderEarnings(output, a.Earnings)

	if len(a.TickerAlerts) > 0 {
		output.Println()
		output.Bold("ALERTS (%s)", a.Ticker)
		renderWire(output, a.TickerAlerts, nil)
	}

	if a.Chart != nil {
		renderChartSummary(output, a.Chart)
	}
}

func renderEarnings(output *Output, e models.EarningsProjection) {
	if !e.Known() {
		output.Printf("Next earnings: %s\n", utils.NA)
		return
	}
	output.Printf("Next earnings: %s %s\n",
		output.Date(e.Date),
		output.DimText("["+string(e.Confidence)+"]"),
	)
}

// renderChartSummary prints the latest values of the chart overlays.
func renderChartSummary(output *Output, c *terminal.ChartSeries) {
	if len(c.Candles) == 0 {
		return
	}
	output.Println()
	output.Bold("TECHNICALS")
	last := c.Candles[len(c.Candles)-1]
	output.Printf("Close: $%.2f (%s)\n", last.Close, output.Date(last.Date))
	if n := len(c.MA50); n > 0 {
		output.Printf("MA50:  $%.2f\n", c.MA50[n-1])
	}
	if n := len(c.MA200); n > 0 {
		output.Printf("MA200: $%.2f\n", c.MA200[n-1])
	}
	if n := len(c.RSI); n > 0 {
		output.Printf("RSI:   %.1f\n", c.RSI[n-1])
	}
}

func pegMarker(v models.ValuationSnapshot) string {
	if v.PEGDerived {
		return "*"
	}
	return ""
}

func padTicker(t string) string {
	for len(t) < 6 {
		t += " "
	}
	return t
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}
