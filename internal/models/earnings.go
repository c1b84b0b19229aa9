package models

import "time"

// EarningsConfidence labels how an earnings date was resolved so a
// consumer never treats a projection as a confirmed date.
type EarningsConfidence string

const (
	ConfidenceConfirmed EarningsConfidence = "CONFIRMED"
	ConfidenceCalendar  EarningsConfidence = "CALENDAR"
	ConfidenceProjected EarningsConfidence = "PROJECTED"
	ConfidenceHardcoded EarningsConfidence = "HARDCODED"
	ConfidenceUnknown   EarningsConfidence = "UNKNOWN"
)

// EarningsProjection is the resolved next earnings date for a ticker.
// When Confidence is UNKNOWN the Date is the zero time.
type EarningsProjection struct {
	Date       time.Time
	Confidence EarningsConfidence
}

// Known reports whether a date was resolved at all.
func (p EarningsProjection) Known() bool {
	return p.Confidence != ConfidenceUnknown
}
