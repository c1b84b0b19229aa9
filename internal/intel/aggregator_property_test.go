package intel

import (
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"intel-terminal/internal/feeds"
	"intel-terminal/internal/models"
)

var propTickers = []string{"META", "AMZN", "SOFI", "BMNR", "NVDA", "TSLA", "AVGO", "OPEN"}

var propSources = []models.SourceKind{
	models.SourceWhale,
	models.SourcePolitical,
	models.SourceSECFiling,
	models.SourceInsider,
}

// genRecords produces a feed result worth of records with arbitrary
// tickers, sources, and dates.
func genRecords() gopter.Gen {
	recordGen := gopter.CombineGens(
		gen.IntRange(0, len(propSources)-1),
		gen.IntRange(0, len(propTickers)-1),
		gen.IntRange(0, 365),
	).Map(func(vals []interface{}) models.AlertRecord {
		return models.AlertRecord{
			Source:     propSources[vals[0].(int)],
			Ticker:     propTickers[vals[1].(int)],
			ActorName:  "Actor",
			Action:     "MOVE",
			OccurredOn: time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, vals[2].(int)),
		}
	})
	return gen.SliceOf(recordGen)
}

func genResults() gopter.Gen {
	return gen.SliceOf(genRecords().Map(func(records []models.AlertRecord) feeds.FeedResult {
		return feeds.FeedResult{Feed: "gen", Status: feeds.StatusOK, Records: records}
	}))
}

// TestProperty_RankedWireSortedDescending checks that for any adapter
// outputs, the ranked wire is ordered newest first.
func TestProperty_RankedWireSortedDescending(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	properties.Property("ranked wire sorted by date descending", prop.ForAll(
		func(results []feeds.FeedResult) bool {
			ranked := Rank(results, propTickers, DefaultDisplayLimit)
			for i := 1; i < len(ranked); i++ {
				if ranked[i].OccurredOn.After(ranked[i-1].OccurredOn) {
					return false
				}
			}
			return true
		},
		genResults(),
	))

	properties.TestingRun(t)
}

// TestProperty_RankedWireRespectsLimit checks that the ranked wire never
// exceeds the display limit for any input size.
func TestProperty_RankedWireRespectsLimit(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	properties.Property("ranked wire length bounded by limit", prop.ForAll(
		func(results []feeds.FeedResult, limit int) bool {
			ranked := Rank(results, propTickers, limit)
			return len(ranked) <= limit
		},
		genResults(),
		gen.IntRange(1, 50),
	))

	properties.TestingRun(t)
}

// TestProperty_GlobalFeedsFilteredToPortfolio checks that whale and
// political records for untracked tickers never reach the wire, while
// portfolio-scoped feeds pass through untouched.
func TestProperty_GlobalFeedsFilteredToPortfolio(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	portfolio := []string{"META", "SOFI"}
	held := map[string]bool{"META": true, "SOFI": true}

	properties.Property("whale/political records belong to portfolio", prop.ForAll(
		func(results []feeds.FeedResult) bool {
			ranked := Rank(results, portfolio, 10000)
			for _, r := range ranked {
				if (r.Source == models.SourceWhale || r.Source == models.SourcePolitical) && !held[r.Ticker] {
					return false
				}
			}
			return true
		},
		genResults(),
	))

	properties.TestingRun(t)
}
