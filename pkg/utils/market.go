package utils

import (
	"time"
)

// MarketStatus represents the current US equities session state.
type MarketStatus string

const (
	MarketOpen      MarketStatus = "OPEN"
	MarketPreMarket MarketStatus = "PRE_MARKET"
	MarketClosed    MarketStatus = "CLOSED"
)

// NewYorkLocation is the timezone for US equity markets.
var NewYorkLocation *time.Location

func init() {
	var err error
	NewYorkLocation, err = time.LoadLocation("America/New_York")
	if err != nil {
		// Fallback to UTC-5
		NewYorkLocation = time.FixedZone("EST", -5*60*60)
	}
}

// GetMarketStatus returns the current market status.
func GetMarketStatus() MarketStatus {
	return marketStatusAt(time.Now())
}

func marketStatusAt(t time.Time) MarketStatus {
	now := t.In(NewYorkLocation)

	// Check if weekend
	if now.Weekday() == time.Saturday || now.Weekday() == time.Sunday {
		return MarketClosed
	}

	timeMinutes := now.Hour()*60 + now.Minute()

	// Pre-market: 4:00 - 9:30
	if timeMinutes >= 240 && timeMinutes < 570 {
		return MarketPreMarket
	}

	// Regular session: 9:30 - 16:00
	if timeMinutes >= 570 && timeMinutes < 960 {
		return MarketOpen
	}

	return MarketClosed
}

// IsMarketOpen returns true if the regular session is in progress.
func IsMarketOpen() bool {
	return GetMarketStatus() == MarketOpen
}

// NextMarketOpen returns the next regular-session opening time.
func NextMarketOpen() time.Time {
	now := time.Now().In(NewYorkLocation)

	// Start with today at 9:30
	next := time.Date(now.Year(), now.Month(), now.Day(), 9, 30, 0, 0, NewYorkLocation)

	// If already past today's open, move to tomorrow
	if now.After(next) {
		next = next.AddDate(0, 0, 1)
	}

	// Skip weekends
	for next.Weekday() == time.Saturday || next.Weekday() == time.Sunday {
		next = next.AddDate(0, 0, 1)
	}

	return next
}

// MarketClose returns today's regular-session close time.
func MarketClose() time.Time {
	now := time.Now().In(NewYorkLocation)
	return time.Date(now.Year(), now.Month(), now.Day(), 16, 0, 0, 0, NewYorkLocation)
}
