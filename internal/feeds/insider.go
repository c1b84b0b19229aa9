package feeds

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	apperrors "intel-terminal/internal/errors"
	"intel-terminal/internal/logging"
	"intel-terminal/internal/models"
	"intel-terminal/pkg/utils"
)

// InsiderTradeAdapter queries a trade-disclosure endpoint per portfolio
// ticker, keeping only acquisition-type transactions. With no API key
// configured it returns an empty result set: a known, user-visible state,
// not an error.
type InsiderTradeAdapter struct {
	baseURL   string
	apiKey    string
	perTicker int
	client    *http.Client
	logger    zerolog.Logger
}

// NewInsiderTradeAdapter creates an adapter. perTicker caps the most
// recent qualifying records kept per ticker.
func NewInsiderTradeAdapter(baseURL, apiKey string, perTicker int, timeout time.Duration, logger zerolog.Logger) *InsiderTradeAdapter {
	return &InsiderTradeAdapter{
		baseURL:   baseURL,
		apiKey:    apiKey,
		perTicker: perTicker,
		client:    &http.Client{Timeout: timeout},
		logger:    logging.WithFeed(logger, "insider"),
	}
}

func (a *InsiderTradeAdapter) Name() string { return "insider" }

// insiderTransaction mirrors one raw disclosure record.
type insiderTransaction struct {
	ReportingName      string  `json:"reportingName"`
	TypeOfOwner        string  `json:"typeOfOwner"`
	TransactionType    string  `json:"transactionType"`
	AcquisitionFlag    string  `json:"acquistionOrDisposition"` // upstream's spelling
	SecuritiesAmount   float64 `json:"securitiesTransacted"`
	Price              float64 `json:"price"`
	TransactionDate    string  `json:"transactionDate"`
}

// Fetch queries disclosures per portfolio ticker. Per-ticker failures are
// skipped; the remaining tickers still contribute.
func (a *InsiderTradeAdapter) Fetch(ctx context.Context, portfolio []string) FeedResult {
	if a.apiKey == "" {
		a.logger.Debug().Err(apperrors.ErrNoAPIKey).Msg("Insider feed disabled")
		return emptyResult(a.Name())
	}

	records := []models.AlertRecord{}
	var lastErr error

	for _, ticker := range portfolio {
		txs, err := a.fetchTicker(ctx, ticker)
		if err != nil {
			lastErr = apperrors.NewFeedError(a.Name(), ticker, err)
			a.logger.Warn().Str("ticker", ticker).Err(err).Msg("Insider fetch failed, skipping ticker")
			continue
		}

		records = append(records, normalizeInsiderTrades(ticker, txs, a.perTicker)...)
	}

	if lastErr != nil {
		return failedResult(a.Name(), records, lastErr)
	}
	return okResult(a.Name(), records)
}

func (a *InsiderTradeAdapter) fetchTicker(ctx context.Context, ticker string) ([]insiderTransaction, error) {
	q := url.Values{}
	q.Set("symbol", ticker)
	q.Set("page", "0")
	q.Set("apikey", a.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("insider feed returned status %d", resp.StatusCode)
	}

	var txs []insiderTransaction
	if err := json.NewDecoder(resp.Body).Decode(&txs); err != nil {
		return nil, err
	}
	return txs, nil
}

// normalizeInsiderTrades filters to acquisitions, keeps the cap most
// recent, and derives the trade value as shares times price.
func normalizeInsiderTrades(ticker string, txs []insiderTransaction, limit int) []models.AlertRecord {
	qualifying := make([]insiderTransaction, 0, len(txs))
	for _, tx := range txs {
		if isAcquisition(tx) {
			qualifying = append(qualifying, tx)
		}
	}

	// Most recent first; the raw feed is usually but not always ordered.
	sort.SliceStable(qualifying, func(i, j int) bool {
		return qualifying[i].TransactionDate > qualifying[j].TransactionDate
	})

	if len(qualifying) > limit {
		qualifying = qualifying[:limit]
	}

	records := make([]models.AlertRecord, 0, len(qualifying))
	for _, tx := range qualifying {
		occurred, ok := parseFeedDate(tx.TransactionDate)
		if !ok {
			continue
		}

		value := tx.SecuritiesAmount * tx.Price
		records = append(records, models.AlertRecord{
			Source:     models.SourceInsider,
			Ticker:     ticker,
			ActorName:  tx.ReportingName,
			Action:     "INSIDER BUY",
			Detail:     fmt.Sprintf("%s: %.0f shares @ $%.2f (%s)", tx.TypeOfOwner, tx.SecuritiesAmount, tx.Price, utils.FormatMoney(value)),
			OccurredOn: occurred,
		})
	}
	return records
}

// isAcquisition keeps records with an explicit acquisition disposition
// flag or a transaction-type label containing a purchase marker.
func isAcquisition(tx insiderTransaction) bool {
	if strings.EqualFold(tx.AcquisitionFlag, "A") {
		return true
	}
	return strings.Contains(strings.ToUpper(tx.TransactionType), "PURCHASE")
}
