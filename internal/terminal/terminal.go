// Package terminal orchestrates refresh passes: portfolio → feeds →
// ranked wire → per-ticker analysis, producing display-ready snapshots
// for the rendering layer.
package terminal

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"intel-terminal/internal/analysis/indicators"
	"intel-terminal/internal/earnings"
	"intel-terminal/internal/intel"
	"intel-terminal/internal/logging"
	"intel-terminal/internal/market"
	"intel-terminal/internal/models"
	"intel-terminal/internal/portfolio"
	"intel-terminal/internal/store"
	"intel-terminal/internal/valuation"
)

// ChartSeries holds the overlay series for the analysis chart. Slices
// are aligned with Candles; leading positions before an indicator's
// warm-up period are zero.
type ChartSeries struct {
	Candles []models.Candle
	MA50    []float64
	MA200   []float64
	RSI     []float64
}

// Analysis is the derived view of one selected ticker.
type Analysis struct {
	Ticker       string
	LongName     string
	Sector       string
	CEO          string
	Fundamentals *models.Fundamentals
	Valuation    models.ValuationSnapshot
	Earnings     models.EarningsProjection
	TickerAlerts []models.AlertRecord
	Chart        *ChartSeries
}

// Snapshot is the display-ready result of one refresh pass.
type Snapshot struct {
	Generation uint64
	At         time.Time
	Portfolio  []string
	Wire       intel.Wire
	// Analysis is nil when no ticker is selected or the fundamentals
	// fetch failed for this pass.
	Analysis *Analysis
}

// Terminal runs refresh passes over the configured components.
type Terminal struct {
	portfolio  *portfolio.Store
	aggregator *intel.Aggregator
	quotes     market.Client
	resolver   *earnings.Resolver
	archive    store.AlertArchive
	ceoByTick  map[string]string
	period     string
	logger     zerolog.Logger

	generation atomic.Uint64

	mu     sync.RWMutex
	latest *Snapshot
}

// New creates a terminal. archive may be store.NopArchive{}.
func New(p *portfolio.Store, agg *intel.Aggregator, quotes market.Client, resolver *earnings.Resolver, archive store.AlertArchive, ceoOverrides map[string]string, historyPeriod string, logger zerolog.Logger) *Terminal {
	return &Terminal{
		portfolio:  p,
		aggregator: agg,
		quotes:     quotes,
		resolver:   resolver,
		archive:    archive,
		ceoByTick:  ceoOverrides,
		period:     historyPeriod,
		logger:     logger.With().Str("component", "terminal").Logger(),
	}
}

// RunPass executes one refresh pass. The pass always completes and
// returns a snapshot built from whatever subset of sources succeeded;
// nothing in a pass is fatal. A pass superseded by a newer one is
// discarded rather than published (last-write-wins).
func (t *Terminal) RunPass(ctx context.Context, selected string) *Snapshot {
	gen := t.generation.Add(1)
	start := time.Now()

	tickers := t.portfolio.Load()
	wire := t.aggregator.Collect(ctx, tickers)

	if err := t.archive.SavePass(ctx, gen, start, wire.Records); err != nil {
		t.logger.Warn().Err(err).Msg("Alert archive write failed")
	}

	snap := &Snapshot{
		Generation: gen,
		At:         start,
		Portfolio:  tickers,
		Wire:       wire,
	}

	if selected != "" {
		snap.Analysis = t.analyze(ctx, selected, wire)
	}

	t.publish(snap)
	logging.LogPass(t.logger, gen, len(tickers), len(wire.Records), time.Since(start))
	return snap
}

// analyze builds the derived view for one ticker. Fundamentals failure
// degrades to a nil analysis; history failure degrades to a nil chart.
func (t *Terminal) analyze(ctx context.Context, ticker string, wire intel.Wire) *Analysis {
	logger := logging.WithTicker(t.logger, ticker)

	f, err := t.quotes.GetFundamentals(ctx, ticker)
	if err != nil {
		logger.Warn().Err(err).Msg("Fundamentals unavailable")
		return nil
	}

	a := &Analysis{
		Ticker:       ticker,
		LongName:     f.LongName,
		Sector:       f.Sector,
		CEO:          market.ResolveCEO(f, t.ceoByTick),
		Fundamentals: f,
		Valuation:    valuation.Derive(f),
		Earnings:     t.resolver.Resolve(ctx, ticker),
		TickerAlerts: wire.ForTicker(ticker),
	}

	candles, err := t.quotes.GetHistory(ctx, ticker, t.period)
	if err != nil {
		logger.Warn().Err(err).Msg("History unavailable, skipping chart")
		return a
	}
	a.Chart = buildChart(candles)

	return a
}

// buildChart computes the overlay series. Indicators that lack warm-up
// data are simply omitted.
func buildChart(candles []models.Candle) *ChartSeries {
	if len(candles) == 0 {
		return nil
	}

	chart := &ChartSeries{Candles: candles}

	if ma, err := indicators.NewSMA(50).Calculate(candles); err == nil {
		chart.MA50 = ma
	}
	if ma, err := indicators.NewSMA(200).Calculate(candles); err == nil {
		chart.MA200 = ma
	}
	if rsi, err := indicators.NewRSI(14).Calculate(candles); err == nil {
		chart.RSI = rsi
	}

	return chart
}

// publish installs a snapshot unless a newer pass already published.
func (t *Terminal) publish(snap *Snapshot) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.latest != nil && t.latest.Generation > snap.Generation {
		return
	}
	t.latest = snap
}

// Latest returns the most recently published snapshot, or nil before the
// first pass.
func (t *Terminal) Latest() *Snapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.latest
}

// Watch runs passes on the given interval until the context is
// cancelled. onPass receives each published snapshot.
func (t *Terminal) Watch(ctx context.Context, interval time.Duration, selected string, onPass func(*Snapshot)) {
	run := func() {
		snap := t.RunPass(ctx, selected)
		if onPass != nil {
			onPass(snap)
		}
	}

	run()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			run()
		}
	}
}
