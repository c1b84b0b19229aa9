package feeds

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	apperrors "intel-terminal/internal/errors"
	"intel-terminal/internal/logging"
	"intel-terminal/internal/models"
)

// significantForms are the filing-type substrings that qualify an entry
// for the wire: ownership disclosures and material events. Form 4 titles
// lead with the bare form number and are matched by prefix instead, so
// that S-4 registrations do not slip through on a substring.
var significantForms = []string{"13D", "13G", "SC 13", "8-K", "FORM 4"}

// RegulatoryFeedAdapter queries the regulatory filings Atom feed per
// registry identifier (CIK) and keeps only significant filings. A fetch
// failure for one ticker skips that ticker; partial results are fine.
type RegulatoryFeedAdapter struct {
	baseURL   string
	userAgent string
	cikByTick map[string]string
	client    *http.Client
	logger    zerolog.Logger
}

// NewRegulatoryFeedAdapter creates an adapter for the given ticker→CIK
// mapping. Tickers without a mapping are silently not covered.
func NewRegulatoryFeedAdapter(baseURL, userAgent string, cikByTicker map[string]string, timeout time.Duration, logger zerolog.Logger) *RegulatoryFeedAdapter {
	return &RegulatoryFeedAdapter{
		baseURL:   baseURL,
		userAgent: userAgent,
		cikByTick: cikByTicker,
		client:    &http.Client{Timeout: timeout},
		logger:    logging.WithFeed(logger, "regulatory"),
	}
}

func (a *RegulatoryFeedAdapter) Name() string { return "regulatory" }

// atomFeed mirrors the subset of the Atom schema the feed uses.
type atomFeed struct {
	Entries []atomEntry `xml:"entry"`
}

type atomEntry struct {
	Title   string   `xml:"title"`
	Updated string   `xml:"updated"`
	Link    atomLink `xml:"link"`
}

type atomLink struct {
	Href string `xml:"href,attr"`
}

// Fetch queries the feed for every portfolio ticker with a known CIK.
func (a *RegulatoryFeedAdapter) Fetch(ctx context.Context, portfolio []string) FeedResult {
	records := []models.AlertRecord{}
	var lastErr error

	for _, ticker := range portfolio {
		cik, ok := a.cikByTick[ticker]
		if !ok {
			continue
		}

		entries, err := a.fetchCIK(ctx, cik)
		if err != nil {
			// Skip this ticker, keep the pass going.
			lastErr = apperrors.NewFeedError(a.Name(), ticker, err)
			a.logger.Warn().Str("ticker", ticker).Err(err).Msg("Filing fetch failed, skipping ticker")
			continue
		}

		for _, entry := range entries {
			rec, ok := normalizeFiling(ticker, entry)
			if !ok {
				continue
			}
			records = append(records, rec)
		}
	}

	if lastErr != nil {
		return failedResult(a.Name(), records, lastErr)
	}
	return okResult(a.Name(), records)
}

func (a *RegulatoryFeedAdapter) fetchCIK(ctx context.Context, cik string) ([]atomEntry, error) {
	q := url.Values{}
	q.Set("action", "getcompany")
	q.Set("CIK", cik)
	q.Set("type", "")
	q.Set("owner", "include")
	q.Set("count", "40")
	q.Set("output", "atom")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", a.userAgent)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("filing feed returned status %d", resp.StatusCode)
	}

	var feed atomFeed
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, err
	}
	return feed.Entries, nil
}

// normalizeFiling converts one feed entry into an alert record, or
// reports false when the filing type is not significant.
func normalizeFiling(ticker string, entry atomEntry) (models.AlertRecord, bool) {
	if !isSignificantFiling(entry.Title) {
		return models.AlertRecord{}, false
	}

	occurred, ok := parseFeedDate(entry.Updated)
	if !ok {
		return models.AlertRecord{}, false
	}

	return models.AlertRecord{
		Source:        models.SourceSECFiling,
		Ticker:        ticker,
		ActorName:     "SEC EDGAR",
		Action:        filingType(entry.Title),
		Detail:        entry.Title,
		OccurredOn:    occurred,
		ReferenceLink: entry.Link.Href,
	}, true
}

func isSignificantFiling(title string) bool {
	upper := strings.ToUpper(strings.TrimSpace(title))
	// "4 - Statement of changes in beneficial ownership of securities"
	// and its amendments.
	if upper == "4" || upper == "4/A" ||
		strings.HasPrefix(upper, "4 ") || strings.HasPrefix(upper, "4/A ") {
		return true
	}
	for _, form := range significantForms {
		if strings.Contains(upper, form) {
			return true
		}
	}
	return false
}

// filingType is the text before the title's separator, or the whole
// title when no separator is present.
func filingType(title string) string {
	if idx := strings.Index(title, " - "); idx >= 0 {
		return strings.TrimSpace(title[:idx])
	}
	return strings.TrimSpace(title)
}

// parseFeedDate takes the ISO date prefix (first 10 characters) of the
// feed-provided timestamp.
func parseFeedDate(updated string) (time.Time, bool) {
	if len(updated) < 10 {
		return time.Time{}, false
	}
	t, err := time.Parse("2006-01-02", updated[:10])
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
