package feeds

import (
	"context"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"intel-terminal/internal/models"
)

// StaticWhaleAdapter serves the curated whale/political wire: large
// disclosed institutional moves and congressional trades. The table is an
// in-memory data asset refreshed with releases; no network I/O, never
// fails.
type StaticWhaleAdapter struct {
	wire []models.AlertRecord
}

// wireEntry is one row of the optional YAML wire file.
type wireEntry struct {
	Source string `yaml:"source"` // WHALE or POLITICAL
	Ticker string `yaml:"ticker"`
	Actor  string `yaml:"actor"`
	Action string `yaml:"action"`
	Detail string `yaml:"detail"`
	Date   string `yaml:"date"` // ISO date
}

type wireFile struct {
	Wire []wireEntry `yaml:"wire"`
}

// NewStaticWhaleAdapter returns an adapter backed by the built-in wire.
func NewStaticWhaleAdapter() *StaticWhaleAdapter {
	return &StaticWhaleAdapter{wire: builtinWire()}
}

// NewStaticWhaleAdapterFromFile loads the wire from a YAML file, falling
// back to the built-in table if the file is absent or malformed.
func NewStaticWhaleAdapterFromFile(path string) (*StaticWhaleAdapter, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return NewStaticWhaleAdapter(), err
	}

	var wf wireFile
	if err := yaml.Unmarshal(b, &wf); err != nil {
		return NewStaticWhaleAdapter(), err
	}

	records := make([]models.AlertRecord, 0, len(wf.Wire))
	for _, e := range wf.Wire {
		d, err := time.Parse("2006-01-02", e.Date)
		if err != nil {
			return NewStaticWhaleAdapter(), fmt.Errorf("wire entry %s: bad date %q: %w", e.Ticker, e.Date, err)
		}
		kind := models.SourceWhale
		if e.Source == string(models.SourcePolitical) {
			kind = models.SourcePolitical
		}
		records = append(records, models.AlertRecord{
			Source:     kind,
			Ticker:     e.Ticker,
			ActorName:  e.Actor,
			Action:     e.Action,
			Detail:     e.Detail,
			OccurredOn: d,
		})
	}

	return &StaticWhaleAdapter{wire: records}, nil
}

func (a *StaticWhaleAdapter) Name() string { return "whale-wire" }

// Fetch returns the full wire. Portfolio filtering of whale/political
// records happens in the aggregator, which also serves the global
// discovery view from the unfiltered table.
func (a *StaticWhaleAdapter) Fetch(_ context.Context, _ []string) FeedResult {
	records := make([]models.AlertRecord, len(a.wire))
	copy(records, a.wire)
	return okResult(a.Name(), records)
}

// All returns the unfiltered wire for the global discovery view.
func (a *StaticWhaleAdapter) All() []models.AlertRecord {
	records := make([]models.AlertRecord, len(a.wire))
	copy(records, a.wire)
	return records
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// builtinWire is the confirmed Feb 2026 institutional wire.
func builtinWire() []models.AlertRecord {
	return []models.AlertRecord{
		{
			Source:     models.SourceWhale,
			Ticker:     "AMZN",
			ActorName:  "Altimeter (Brad Gerstner)",
			Action:     "ADD",
			Detail:     "Increased stake (Feb 13F)",
			OccurredOn: date(2026, time.February, 14),
		},
		{
			Source:     models.SourceWhale,
			Ticker:     "AVGO",
			ActorName:  "Altimeter (Brad Gerstner)",
			Action:     "NEW BUY",
			Detail:     "Initiated $228M position",
			OccurredOn: date(2026, time.February, 14),
		},
		{
			Source:     models.SourceWhale,
			Ticker:     "META",
			ActorName:  "Pershing Square (Ackman)",
			Action:     "NEW BUY",
			Detail:     "2.8M shares ($2.0B Stake)",
			OccurredOn: date(2026, time.February, 11),
		},
		{
			Source:     models.SourcePolitical,
			Ticker:     "AMZN",
			ActorName:  "Nancy Pelosi",
			Action:     "EXERCISE",
			Detail:     "5,000 shares ($150 Strike)",
			OccurredOn: date(2026, time.January, 16),
		},
		{
			Source:     models.SourceWhale,
			Ticker:     "SOFI",
			ActorName:  "ARK Invest (Wood)",
			Action:     "BUY",
			Detail:     "2.4M shares Add",
			OccurredOn: date(2026, time.February, 17),
		},
	}
}
