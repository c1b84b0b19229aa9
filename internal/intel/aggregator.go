// Package intel merges the intelligence feeds into one ranked wire for
// the current portfolio.
package intel

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"intel-terminal/internal/feeds"
	"intel-terminal/internal/logging"
	"intel-terminal/internal/models"
)

// DefaultDisplayLimit caps the ranked wire when no limit is configured.
const DefaultDisplayLimit = 15

// Wire is the result of one aggregation pass: the ranked records plus
// per-source fetch outcomes for observability. An empty Records slice
// means "show the neutral empty state", never an error.
type Wire struct {
	Records []models.AlertRecord
	Sources []feeds.FeedResult
}

// Aggregator produces a single ranked feed combining all adapter outputs
// for the current portfolio only. The aggregator itself performs no I/O
// and cannot fail; adapter failures have already been absorbed per feed.
type Aggregator struct {
	sources      []feeds.AlertSource
	displayLimit int
	logger       zerolog.Logger
}

// NewAggregator creates an aggregator over the given sources. A
// non-positive displayLimit falls back to the default.
func NewAggregator(sources []feeds.AlertSource, displayLimit int, logger zerolog.Logger) *Aggregator {
	if displayLimit <= 0 {
		displayLimit = DefaultDisplayLimit
	}
	return &Aggregator{
		sources:      sources,
		displayLimit: displayLimit,
		logger:       logger.With().Str("component", "aggregator").Logger(),
	}
}

// Collect fans out to every source concurrently, waits for all results,
// and ranks the merged wire. Independent network calls share no state, so
// the fan-out needs no ordering; the merge waits for every source before
// ranking.
func (a *Aggregator) Collect(ctx context.Context, portfolio []string) Wire {
	results := make([]feeds.FeedResult, len(a.sources))

	var wg sync.WaitGroup
	for i, src := range a.sources {
		wg.Add(1)
		go func(i int, src feeds.AlertSource) {
			defer wg.Done()
			start := time.Now()
			results[i] = src.Fetch(ctx, portfolio)
			logging.LogFeedFetch(a.logger, src.Name(), len(results[i].Records), time.Since(start), results[i].Err)
		}(i, src)
	}
	wg.Wait()

	return Wire{
		Records: Rank(results, portfolio, a.displayLimit),
		Sources: results,
	}
}

// Rank filters, merges, sorts, and truncates adapter outputs. Whale and
// political records are filtered to portfolio membership; the regulatory
// and insider feeds are already portfolio-scoped by construction. Sorting
// is by occurrence date descending and stable, so records sharing a date
// keep source-collection order.
func Rank(results []feeds.FeedResult, portfolio []string, limit int) []models.AlertRecord {
	held := make(map[string]bool, len(portfolio))
	for _, t := range portfolio {
		held[t] = true
	}

	merged := []models.AlertRecord{}
	for _, res := range results {
		for _, rec := range res.Records {
			if needsPortfolioFilter(rec.Source) && !held[rec.Ticker] {
				continue
			}
			merged = append(merged, rec)
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].OccurredOn.After(merged[j].OccurredOn)
	})

	if len(merged) > limit {
		merged = merged[:limit]
	}
	return merged
}

// needsPortfolioFilter reports whether a source's records are globally
// scoped and must be narrowed to the portfolio.
func needsPortfolioFilter(kind models.SourceKind) bool {
	return kind == models.SourceWhale || kind == models.SourcePolitical
}

// ForTicker returns the wire entries for a single ticker, preserving
// rank order. Used by the analysis pane's alert sidebar.
func (w Wire) ForTicker(ticker string) []models.AlertRecord {
	var hits []models.AlertRecord
	for _, rec := range w.Records {
		if rec.Ticker == ticker {
			hits = append(hits, rec)
		}
	}
	return hits
}

// Degraded returns the names of sources whose fetch failed this pass.
func (w Wire) Degraded() []string {
	var names []string
	for _, res := range w.Sources {
		if res.Status == feeds.StatusFailed {
			names = append(names, res.Feed)
		}
	}
	return names
}
