// Package valuation derives secondary financial metrics from raw
// fundamentals and the static sector benchmark table.
package valuation

import (
	"math"

	"intel-terminal/internal/models"
)

// sectorBenchmarks is the static reference table (2026 context). Lookup
// is by exact sector name; an unmatched sector degrades the
// sector-relative metrics to unknown.
var sectorBenchmarks = map[string]models.SectorBenchmark{
	"Technology":             {PE: 30.0, PS: 7.0, Beta: 1.2, Growth: 14.0},
	"Financial Services":     {PE: 15.0, PS: 3.0, Beta: 1.1, Growth: 5.0},
	"Healthcare":             {PE: 25.0, PS: 5.0, Beta: 0.8, Growth: 8.0},
	"Energy":                 {PE: 12.0, PS: 2.0, Beta: 1.1, Growth: 3.0},
	"Consumer Cyclical":      {PE: 25.0, PS: 2.5, Beta: 1.2, Growth: 7.0},
	"Real Estate":            {PE: 35.0, PS: 6.0, Beta: 0.9, Growth: 4.0},
	"Communication Services": {PE: 20.0, PS: 4.0, Beta: 1.0, Growth: 9.0},
}

// Benchmark returns the sector benchmark for an exact sector name.
func Benchmark(sector string) (models.SectorBenchmark, bool) {
	b, ok := sectorBenchmarks[sector]
	return b, ok
}

// Sectors returns the names of all benchmarked sectors.
func Sectors() []string {
	names := make([]string, 0, len(sectorBenchmarks))
	for name := range sectorBenchmarks {
		names = append(names, name)
	}
	return names
}

// Derive computes a ValuationSnapshot from one ticker's fundamentals.
// Every missing optional input degrades to an unknown marker; no input
// combination is fatal.
func Derive(f *models.Fundamentals) models.ValuationSnapshot {
	snap := models.ValuationSnapshot{
		PE:  f.TrailingPE,
		PS:  f.PriceToSales,
		PEG: f.PEGRatio,
	}

	// PEG fallback: derive from PE and the growth estimate when the
	// provider omits PEG. A zero growth estimate leaves PEG unknown
	// rather than dividing by zero.
	if snap.PEG == nil && f.TrailingPE != nil {
		if growth := f.GrowthEstimate(); growth != nil && *growth != 0 {
			peg := round2(*f.TrailingPE / (*growth * 100))
			snap.PEG = &peg
			snap.PEGDerived = true
		}
	}

	if bench, ok := Benchmark(f.Sector); ok && f.TrailingPE != nil {
		rel := (*f.TrailingPE - bench.PE) / bench.PE * 100
		snap.SectorRelativePEPct = &rel
	}

	// Inputs are fractional; the score is in percent.
	snap.RuleOf40Pct = (f.RevenueGrowth + f.EBITDAMargin) * 100

	return snap
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
