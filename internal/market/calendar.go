package market

import (
	"context"
	"time"

	"intel-terminal/internal/earnings"
	apperrors "intel-terminal/internal/errors"
)

// YahooCalendar adapts the quote API's calendar and report-history
// modules into an earnings calendar source.
type YahooCalendar struct {
	client *YahooClient
}

// NewYahooCalendar wraps a quote client as a calendar source.
func NewYahooCalendar(client *YahooClient) *YahooCalendar {
	return &YahooCalendar{client: client}
}

// EarningsDates returns upcoming calendar slots plus past report dates.
// Upcoming slots carry the provider's estimate flag; past reports are
// always confirmed.
func (c *YahooCalendar) EarningsDates(ctx context.Context, ticker string) ([]earnings.CalendarEntry, error) {
	resp, err := c.client.fetchSummary(ctx, ticker, "calendarEvents,earningsHistory")
	if err != nil {
		return nil, apperrors.NewDataError("earnings_calendar", ticker, "fetch failed", err)
	}

	if len(resp.QuoteSummary.Result) == 0 {
		return nil, apperrors.ErrDataNotFound
	}
	r := resp.QuoteSummary.Result[0]

	var entries []earnings.CalendarEntry

	if r.CalendarEvents != nil {
		estimate := r.CalendarEvents.Earnings.IsEarningsDateEstimate
		for _, d := range r.CalendarEvents.Earnings.EarningsDate {
			if d.Raw == nil {
				continue
			}
			entries = append(entries, earnings.CalendarEntry{
				Date:      time.Unix(int64(*d.Raw), 0).UTC().Truncate(24 * time.Hour),
				Confirmed: !estimate,
			})
		}
	}

	if r.EarningsHistory != nil {
		for _, h := range r.EarningsHistory.History {
			if h.Quarter.Raw == nil {
				continue
			}
			entries = append(entries, earnings.CalendarEntry{
				Date:      time.Unix(int64(*h.Quarter.Raw), 0).UTC().Truncate(24 * time.Hour),
				Confirmed: true,
			})
		}
	}

	return entries, nil
}
