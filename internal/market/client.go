// Package market supplies point-in-time quote/fundamentals data and the
// index membership lookup.
package market

import (
	"context"
	"strings"

	"intel-terminal/internal/models"
)

// Client supplies quote and fundamentals data for a ticker.
type Client interface {
	// GetFundamentals returns the point-in-time fundamentals view.
	// Missing optional fields are nil pointers, never zeroes.
	GetFundamentals(ctx context.Context, ticker string) (*models.Fundamentals, error)
	// GetHistory returns daily candles for the given period (e.g. "1y").
	GetHistory(ctx context.Context, ticker, period string) ([]models.Candle, error)
	// GetEarningsHistory returns past report rows, oldest first.
	GetEarningsHistory(ctx context.Context, ticker string) ([]models.EarningsReport, error)
}

// ResolveCEO returns the chief executive's name from the officer list,
// preferring the curated per-ticker override when present. Returns ""
// when unresolvable.
func ResolveCEO(f *models.Fundamentals, overrides map[string]string) string {
	if name, ok := overrides[f.Ticker]; ok {
		return name
	}
	for _, o := range f.Officers {
		title := strings.ToUpper(o.Title)
		if strings.Contains(title, "CEO") || strings.Contains(title, "CHIEF EXECUTIVE") {
			return o.Name
		}
	}
	return ""
}
