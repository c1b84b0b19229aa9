package intel

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"intel-terminal/internal/feeds"
	"intel-terminal/internal/models"
)

type stubSource struct {
	name   string
	result feeds.FeedResult
	delay  time.Duration
}

func (s stubSource) Name() string { return s.name }

func (s stubSource) Fetch(ctx context.Context, portfolio []string) feeds.FeedResult {
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	return s.result
}

func rec(source models.SourceKind, ticker string, day int) models.AlertRecord {
	return models.AlertRecord{
		Source:     source,
		Ticker:     ticker,
		ActorName:  "Actor",
		Action:     "BUY",
		OccurredOn: time.Date(2026, time.February, day, 0, 0, 0, 0, time.UTC),
	}
}

func TestCollectMergesAllSources(t *testing.T) {
	sources := []feeds.AlertSource{
		stubSource{name: "whale", result: feeds.FeedResult{
			Feed: "whale", Status: feeds.StatusOK,
			Records: []models.AlertRecord{rec(models.SourceWhale, "META", 10)},
		}},
		stubSource{name: "insider", delay: 10 * time.Millisecond, result: feeds.FeedResult{
			Feed: "insider", Status: feeds.StatusOK,
			Records: []models.AlertRecord{rec(models.SourceInsider, "SOFI", 12)},
		}},
	}

	agg := NewAggregator(sources, 15, zerolog.Nop())
	wire := agg.Collect(context.Background(), []string{"META", "SOFI"})

	if len(wire.Records) != 2 {
		t.Fatalf("records = %d, want 2", len(wire.Records))
	}
	if len(wire.Sources) != 2 {
		t.Fatalf("source results = %d, want 2", len(wire.Sources))
	}
	// Source results keep registration order regardless of completion order.
	if wire.Sources[0].Feed != "whale" || wire.Sources[1].Feed != "insider" {
		t.Errorf("source order = %s, %s", wire.Sources[0].Feed, wire.Sources[1].Feed)
	}
}

func TestRankFiltersWhaleAndPoliticalToPortfolio(t *testing.T) {
	results := []feeds.FeedResult{
		{Feed: "whale", Status: feeds.StatusOK, Records: []models.AlertRecord{
			rec(models.SourceWhale, "META", 10),
			rec(models.SourceWhale, "NVDA", 11),
			rec(models.SourcePolitical, "TSLA", 12),
		}},
		// Portfolio-scoped feeds pass through even for untracked tickers.
		{Feed: "sec", Status: feeds.StatusOK, Records: []models.AlertRecord{
			rec(models.SourceSECFiling, "NVDA", 13),
		}},
	}

	ranked := Rank(results, []string{"META"}, 15)

	if len(ranked) != 2 {
		t.Fatalf("ranked = %d, want 2", len(ranked))
	}
	for _, r := range ranked {
		if (r.Source == models.SourceWhale || r.Source == models.SourcePolitical) && r.Ticker != "META" {
			t.Errorf("untracked %s record for %s survived the filter", r.Source, r.Ticker)
		}
	}
}

func TestRankSortsDescendingAndTruncates(t *testing.T) {
	results := []feeds.FeedResult{
		{Feed: "whale", Status: feeds.StatusOK, Records: []models.AlertRecord{
			rec(models.SourceWhale, "META", 3),
			rec(models.SourceWhale, "META", 17),
			rec(models.SourceWhale, "META", 9),
			rec(models.SourceWhale, "META", 14),
		}},
	}

	ranked := Rank(results, []string{"META"}, 3)

	if len(ranked) != 3 {
		t.Fatalf("ranked = %d, want truncation to 3", len(ranked))
	}
	if !sort.SliceIsSorted(ranked, func(i, j int) bool {
		return ranked[i].OccurredOn.After(ranked[j].OccurredOn)
	}) {
		t.Error("ranked wire is not sorted by date descending")
	}
	if ranked[0].OccurredOn.Day() != 17 {
		t.Errorf("newest record day = %d, want 17", ranked[0].OccurredOn.Day())
	}
}

func TestRankStableOnEqualDates(t *testing.T) {
	a := rec(models.SourceWhale, "META", 10)
	a.ActorName = "First"
	b := rec(models.SourceWhale, "META", 10)
	b.ActorName = "Second"

	results := []feeds.FeedResult{
		{Feed: "whale", Status: feeds.StatusOK, Records: []models.AlertRecord{a, b}},
	}

	ranked := Rank(results, []string{"META"}, 15)
	if ranked[0].ActorName != "First" || ranked[1].ActorName != "Second" {
		t.Errorf("equal-date records reordered: %s, %s", ranked[0].ActorName, ranked[1].ActorName)
	}
}

func TestRankEmptyInputs(t *testing.T) {
	if ranked := Rank(nil, []string{"META"}, 15); ranked == nil || len(ranked) != 0 {
		t.Errorf("ranked = %v, want empty non-nil slice", ranked)
	}
}

func TestCollectSurfacesDegradedSources(t *testing.T) {
	partial := rec(models.SourceSECFiling, "META", 10)
	sources := []feeds.AlertSource{
		stubSource{name: "sec", result: feeds.FeedResult{
			Feed: "sec", Status: feeds.StatusFailed,
			Records: []models.AlertRecord{partial},
			Err:     errors.New("edgar timeout"),
		}},
	}

	agg := NewAggregator(sources, 15, zerolog.Nop())
	wire := agg.Collect(context.Background(), []string{"META"})

	if got := wire.Degraded(); len(got) != 1 || got[0] != "sec" {
		t.Errorf("degraded = %v, want [sec]", got)
	}
	// Partial records from a failed source still rank.
	if len(wire.Records) != 1 {
		t.Errorf("records = %d, want partial record ranked", len(wire.Records))
	}
}

func TestWireForTicker(t *testing.T) {
	w := Wire{Records: []models.AlertRecord{
		rec(models.SourceWhale, "META", 10),
		rec(models.SourceInsider, "SOFI", 11),
		rec(models.SourceSECFiling, "META", 12),
	}}

	hits := w.ForTicker("META")
	if len(hits) != 2 {
		t.Fatalf("hits = %d, want 2", len(hits))
	}
	for _, h := range hits {
		if h.Ticker != "META" {
			t.Errorf("hit for %s leaked in", h.Ticker)
		}
	}
}
