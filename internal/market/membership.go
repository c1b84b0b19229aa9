package market

import (
	"context"
	"encoding/csv"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// fallbackMembership is served when the index constituents fetch fails.
var fallbackMembership = map[string]string{
	"AAPL": "Apple",
	"AMZN": "Amazon",
	"NVDA": "NVIDIA",
}

// Membership is the index-membership lookup (ticker → display name) used
// by the market search box. Constituents are fetched on a long interval;
// a failed refresh serves the previous snapshot, or the hardcoded
// fallback when nothing was ever fetched.
type Membership struct {
	url       string
	userAgent string
	ttl       time.Duration
	client    *http.Client
	logger    zerolog.Logger

	mu        sync.RWMutex
	byTicker  map[string]string
	fetchedAt time.Time
}

// NewMembership creates a membership lookup backed by a constituents CSV
// endpoint with columns Symbol,Name.
func NewMembership(url, userAgent string, ttl time.Duration, timeout time.Duration, logger zerolog.Logger) *Membership {
	return &Membership{
		url:       url,
		userAgent: userAgent,
		ttl:       ttl,
		client:    &http.Client{Timeout: timeout},
		logger:    logger.With().Str("component", "membership").Logger(),
	}
}

// Lookup returns the full ticker→name map, refreshing when stale.
func (m *Membership) Lookup(ctx context.Context) map[string]string {
	m.mu.RLock()
	fresh := m.byTicker != nil && time.Since(m.fetchedAt) < m.ttl
	snapshot := m.byTicker
	m.mu.RUnlock()

	if fresh {
		return snapshot
	}

	fetched, err := m.fetch(ctx)
	if err != nil {
		m.logger.Warn().Err(err).Msg("Constituents fetch failed, serving fallback")
		if snapshot != nil {
			return snapshot
		}
		return fallbackMembership
	}

	m.mu.Lock()
	m.byTicker = fetched
	m.fetchedAt = time.Now()
	m.mu.Unlock()

	return fetched
}

// Name returns the display name for a ticker, or "" when unknown.
func (m *Membership) Name(ctx context.Context, ticker string) string {
	return m.Lookup(ctx)[ticker]
}

func (m *Membership) fetch(ctx context.Context) (map[string]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", m.userAgent)

	resp, err := m.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("constituents endpoint returned status %d", resp.StatusCode)
	}

	reader := csv.NewReader(resp.Body)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("constituents list empty")
	}

	byTicker := make(map[string]string, len(rows)-1)
	for _, row := range rows[1:] { // skip header
		if len(row) < 2 || row[0] == "" {
			continue
		}
		byTicker[row[0]] = row[1]
	}
	return byTicker, nil
}
