package terminal

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"intel-terminal/internal/earnings"
	"intel-terminal/internal/feeds"
	"intel-terminal/internal/intel"
	"intel-terminal/internal/models"
	"intel-terminal/internal/portfolio"
	"intel-terminal/internal/store"
)

type fakeQuotes struct {
	fundamentals map[string]*models.Fundamentals
	candles      []models.Candle
	historyErr   error
}

func (f *fakeQuotes) GetFundamentals(ctx context.Context, ticker string) (*models.Fundamentals, error) {
	if fd, ok := f.fundamentals[ticker]; ok {
		return fd, nil
	}
	return nil, errors.New("symbol not found")
}

func (f *fakeQuotes) GetHistory(ctx context.Context, ticker, period string) ([]models.Candle, error) {
	if f.historyErr != nil {
		return nil, f.historyErr
	}
	return f.candles, nil
}

func (f *fakeQuotes) GetEarningsHistory(ctx context.Context, ticker string) ([]models.EarningsReport, error) {
	return nil, nil
}

type fixedSource struct {
	records []models.AlertRecord
}

func (s fixedSource) Name() string { return "fixed" }

func (s fixedSource) Fetch(ctx context.Context, p []string) feeds.FeedResult {
	return feeds.FeedResult{Feed: "fixed", Status: feeds.StatusOK, Records: s.records}
}

func testCandles(n int) []models.Candle {
	out := make([]models.Candle, n)
	day := time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC)
	for i := range out {
		price := 100 + float64(i%7)
		out[i] = models.Candle{Date: day.AddDate(0, 0, i), Open: price, High: price + 1, Low: price - 1, Close: price}
	}
	return out
}

func newTestTerminal(t *testing.T, quotes *fakeQuotes, records []models.AlertRecord) *Terminal {
	t.Helper()

	pf := portfolio.NewStore(filepath.Join(t.TempDir(), "portfolio.json"), zerolog.Nop())
	agg := intel.NewAggregator([]feeds.AlertSource{fixedSource{records: records}}, 15, zerolog.Nop())
	resolver := earnings.NewResolver(map[string]string{"META": "2026-04-29"}, nil, zerolog.Nop())

	return New(pf, agg, quotes, resolver, store.NopArchive{}, map[string]string{"SOFI": "Anthony Noto"}, "1y", zerolog.Nop())
}

func metaRecord() models.AlertRecord {
	return models.AlertRecord{
		Source:     models.SourceWhale,
		Ticker:     "META",
		ActorName:  "Pershing Square (Ackman)",
		Action:     "NEW BUY",
		OccurredOn: time.Date(2026, time.February, 11, 0, 0, 0, 0, time.UTC),
	}
}

func TestRunPassWithoutSelection(t *testing.T) {
	term := newTestTerminal(t, &fakeQuotes{}, []models.AlertRecord{metaRecord()})

	snap := term.RunPass(context.Background(), "")

	if snap.Generation != 1 {
		t.Errorf("generation = %d, want 1", snap.Generation)
	}
	if snap.Analysis != nil {
		t.Error("analysis built with no ticker selected")
	}
	if len(snap.Wire.Records) != 1 {
		t.Errorf("wire records = %d, want 1", len(snap.Wire.Records))
	}
	if got := term.Latest(); got != snap {
		t.Error("pass not published as latest")
	}
}

func TestRunPassAnalyzesSelectedTicker(t *testing.T) {
	quotes := &fakeQuotes{
		fundamentals: map[string]*models.Fundamentals{
			"META": {
				Ticker:         "META",
				LongName:       "Meta Platforms, Inc.",
				Sector:         "Communication Services",
				TrailingPE:     models.Float64Ptr(30.0),
				EarningsGrowth: models.Float64Ptr(0.15),
				RevenueGrowth:  0.22,
				EBITDAMargin:   0.28,
			},
		},
		candles: testCandles(250),
	}
	term := newTestTerminal(t, quotes, []models.AlertRecord{metaRecord()})

	snap := term.RunPass(context.Background(), "META")

	a := snap.Analysis
	if a == nil {
		t.Fatal("expected analysis for selected ticker")
	}
	if a.LongName != "Meta Platforms, Inc." {
		t.Errorf("long name = %q", a.LongName)
	}
	if a.Valuation.PEG == nil || !a.Valuation.PEGDerived {
		t.Error("expected derived PEG in valuation")
	}
	if a.Valuation.RuleOf40Class() != "Elite" {
		t.Errorf("rule of 40 class = %s, want Elite", a.Valuation.RuleOf40Class())
	}
	if a.Earnings.Confidence != models.ConfidenceHardcoded {
		t.Errorf("earnings confidence = %s, want HARDCODED override", a.Earnings.Confidence)
	}
	if len(a.TickerAlerts) != 1 {
		t.Errorf("ticker alerts = %d, want 1", len(a.TickerAlerts))
	}
	if a.Chart == nil {
		t.Fatal("expected chart series")
	}
	if len(a.Chart.MA200) == 0 || len(a.Chart.RSI) == 0 {
		t.Error("chart overlays missing despite sufficient history")
	}
}

func TestRunPassDegradesOnFundamentalsFailure(t *testing.T) {
	term := newTestTerminal(t, &fakeQuotes{}, nil)

	snap := term.RunPass(context.Background(), "ZZZZ")

	if snap.Analysis != nil {
		t.Error("analysis built despite fundamentals failure")
	}
	if term.Latest() == nil {
		t.Error("degraded pass must still publish")
	}
}

func TestRunPassDegradesOnHistoryFailure(t *testing.T) {
	quotes := &fakeQuotes{
		fundamentals: map[string]*models.Fundamentals{
			"SOFI": {Ticker: "SOFI", Sector: "Financial Services"},
		},
		historyErr: errors.New("chart endpoint down"),
	}
	term := newTestTerminal(t, quotes, nil)

	snap := term.RunPass(context.Background(), "SOFI")

	if snap.Analysis == nil {
		t.Fatal("analysis dropped on history failure")
	}
	if snap.Analysis.Chart != nil {
		t.Error("chart built despite history failure")
	}
	if snap.Analysis.CEO != "Anthony Noto" {
		t.Errorf("CEO = %q, want override", snap.Analysis.CEO)
	}
}

func TestPublishLastWriteWins(t *testing.T) {
	term := newTestTerminal(t, &fakeQuotes{}, nil)

	newer := &Snapshot{Generation: 5, At: time.Now()}
	older := &Snapshot{Generation: 3, At: time.Now()}

	term.publish(newer)
	term.publish(older)

	if got := term.Latest(); got != newer {
		t.Errorf("latest generation = %d, want 5", got.Generation)
	}
}

func TestWatchStopsOnContextCancel(t *testing.T) {
	term := newTestTerminal(t, &fakeQuotes{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	passes := 0
	done := make(chan struct{})

	go func() {
		term.Watch(ctx, 10*time.Millisecond, "", func(*Snapshot) {
			passes++
			if passes >= 2 {
				cancel()
			}
		})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Watch did not stop after cancel")
	}
	if passes < 2 {
		t.Errorf("passes = %d, want at least 2", passes)
	}
}
