package models

// SectorBenchmark holds reference valuation multiples for one sector.
// The benchmark table is a static, read-only data asset.
type SectorBenchmark struct {
	PE     float64
	PS     float64
	Beta   float64
	Growth float64
}

// RuleOf40Elite is the exact classification boundary: scores at or above
// it are "Elite", everything below is "Sub-40".
const RuleOf40Elite = 40.0

// ValuationSnapshot holds derived valuation metrics for one ticker.
// Recomputed on every analysis request; never cached.
type ValuationSnapshot struct {
	PE  *float64
	PS  *float64
	PEG *float64
	// PEGDerived is true when PEG was computed from PE and a growth
	// estimate rather than supplied upstream.
	PEGDerived bool
	// SectorRelativePEPct is the signed deviation of PE from the sector
	// benchmark, in percent. Nil when the sector has no benchmark or PE
	// is missing.
	SectorRelativePEPct *float64
	RuleOf40Pct         float64
}

// RuleOf40Class returns the growth-efficiency classification.
func (v *ValuationSnapshot) RuleOf40Class() string {
	if v.RuleOf40Pct >= RuleOf40Elite {
		return "Elite"
	}
	return "Sub-40"
}
