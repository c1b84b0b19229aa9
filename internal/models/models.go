// Package models defines the core data types shared across the terminal.
package models

import "time"

// SourceKind identifies the intelligence feed a record came from.
type SourceKind string

const (
	SourceWhale     SourceKind = "WHALE"
	SourcePolitical SourceKind = "POLITICAL"
	SourceSECFiling SourceKind = "SEC_FILING"
	SourceInsider   SourceKind = "INSIDER_TRADE"
)

// AlertRecord is one cross-source intelligence event. Records are value
// types and are never mutated after construction.
type AlertRecord struct {
	Source        SourceKind
	Ticker        string // always uppercase, non-empty
	ActorName     string
	Action        string // free-text move: "ADD", "NEW BUY", filing type, etc.
	Detail        string
	OccurredOn    time.Time // calendar date, no time component
	ReferenceLink string    // empty for static records
}

// Candle represents one bar of daily price history.
type Candle struct {
	Date  time.Time
	Open  float64
	High  float64
	Low   float64
	Close float64
}

// Officer represents one entry from a company's officer list.
type Officer struct {
	Name  string
	Title string
}

// Fundamentals is a typed view of one point-in-time quote/fundamentals
// response. Optional upstream fields are pointers; nil means the provider
// did not supply the field, which downstream code must surface as "N/A"
// rather than a zero that could pass for real data.
type Fundamentals struct {
	Ticker        string
	LongName      string
	Sector        string
	CurrentPrice  *float64
	MarketCap     *float64
	TrailingPE    *float64
	PriceToSales  *float64
	PEGRatio      *float64
	Beta          *float64
	AnalystTarget *float64
	ForwardEPS    *float64

	// Growth estimates in PEG-fallback priority order.
	EarningsGrowth          *float64
	EarningsQuarterlyGrowth *float64
	ForwardEPSGrowth        *float64

	// Fractional; 0.15 means 15%. Missing upstream values default to 0.
	RevenueGrowth float64
	EBITDAMargin  float64

	Officers        []Officer
	BusinessSummary string
}

// GrowthEstimate returns the first present earnings-growth estimate,
// trying annual, then quarterly, then forward EPS growth.
func (f *Fundamentals) GrowthEstimate() *float64 {
	for _, g := range []*float64{f.EarningsGrowth, f.EarningsQuarterlyGrowth, f.ForwardEPSGrowth} {
		if g != nil {
			return g
		}
	}
	return nil
}

// EarningsReport is one row of a ticker's earnings history.
type EarningsReport struct {
	Estimate    *float64
	Actual      *float64
	SurprisePct *float64
}

// Float64Ptr returns a pointer to v. Convenience for building Fundamentals.
func Float64Ptr(v float64) *float64 { return &v }
