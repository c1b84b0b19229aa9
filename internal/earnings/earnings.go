// Package earnings resolves the next earnings date for a ticker under a
// ranked fallback policy.
package earnings

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"intel-terminal/internal/models"
)

// projectionOffsetDays is the forward projection applied to the most
// recent past report when no future-dated calendar entry exists. Policy
// constant; quarterly reporters land close enough for display purposes.
const projectionOffsetDays = 90

// CalendarEntry is one date from an earnings-calendar source.
type CalendarEntry struct {
	Date time.Time
	// Confirmed distinguishes company-confirmed dates from the
	// provider's estimated calendar slots.
	Confirmed bool
}

// CalendarSource supplies earnings-calendar dates for a ticker. A nil
// source means no calendar is configured and the tier never resolves.
type CalendarSource interface {
	EarningsDates(ctx context.Context, ticker string) ([]CalendarEntry, error)
}

// Resolver resolves the next earnings date with a confidence label. A
// resolver invocation never returns an error: an upstream failure means
// that tier did not resolve and the next tier is tried.
type Resolver struct {
	overrides map[string]string // ticker -> ISO date, curated data asset
	calendar  CalendarSource
	logger    zerolog.Logger
	now       func() time.Time
}

// NewResolver creates a resolver. overrides may be nil; calendar may be
// nil when no calendar source is configured.
func NewResolver(overrides map[string]string, calendar CalendarSource, logger zerolog.Logger) *Resolver {
	return &Resolver{
		overrides: overrides,
		calendar:  calendar,
		logger:    logger.With().Str("component", "earnings").Logger(),
		now:       time.Now,
	}
}

// Resolve returns exactly one of the four outcomes: HARDCODED override,
// CONFIRMED/CALENDAR future date, PROJECTED past report + 90 days, or
// UNKNOWN.
func (r *Resolver) Resolve(ctx context.Context, ticker string) models.EarningsProjection {
	// Tier 1: curated per-ticker override, used when upstream calendar
	// data is known to be wrong or missing.
	if iso, ok := r.overrides[ticker]; ok {
		if d, err := time.Parse("2006-01-02", iso); err == nil {
			return models.EarningsProjection{Date: d, Confidence: models.ConfidenceHardcoded}
		}
		r.logger.Warn().Str("ticker", ticker).Str("date", iso).Msg("Unparseable earnings override, falling through")
	}

	if r.calendar == nil {
		return models.EarningsProjection{Confidence: models.ConfidenceUnknown}
	}

	entries, err := r.calendar.EarningsDates(ctx, ticker)
	if err != nil {
		// Tier did not resolve.
		r.logger.Warn().Str("ticker", ticker).Err(err).Msg("Calendar source failed")
		return models.EarningsProjection{Confidence: models.ConfidenceUnknown}
	}

	today := truncateToDay(r.now())

	// Tier 2: nearest future calendar date.
	if next, ok := nearestFuture(entries, today); ok {
		confidence := models.ConfidenceCalendar
		if next.Confirmed {
			confidence = models.ConfidenceConfirmed
		}
		return models.EarningsProjection{Date: next.Date, Confidence: confidence}
	}

	// Tier 3: project forward from the most recent past report.
	if last, ok := latestPast(entries, today); ok {
		projected := last.Date.AddDate(0, 0, projectionOffsetDays)
		return models.EarningsProjection{Date: projected, Confidence: models.ConfidenceProjected}
	}

	// Tier 4: explicit unknown.
	return models.EarningsProjection{Confidence: models.ConfidenceUnknown}
}

func nearestFuture(entries []CalendarEntry, today time.Time) (CalendarEntry, bool) {
	var best CalendarEntry
	found := false
	for _, e := range entries {
		if e.Date.Before(today) {
			continue
		}
		if !found || e.Date.Before(best.Date) {
			best = e
			found = true
		}
	}
	return best, found
}

func latestPast(entries []CalendarEntry, today time.Time) (CalendarEntry, bool) {
	var best CalendarEntry
	found := false
	for _, e := range entries {
		if !e.Date.Before(today) {
			continue
		}
		if !found || e.Date.After(best.Date) {
			best = e
			found = true
		}
	}
	return best, found
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
