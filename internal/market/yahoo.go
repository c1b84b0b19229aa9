package market

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	apperrors "intel-terminal/internal/errors"
	"intel-terminal/internal/logging"
	"intel-terminal/internal/models"
	"intel-terminal/pkg/utils"
)

const (
	quoteSummaryURL = "https://query1.finance.yahoo.com/v10/finance/quoteSummary"
	chartURL        = "https://query1.finance.yahoo.com/v8/finance/chart"
)

// YahooClient implements Client against the Yahoo quote API.
type YahooClient struct {
	userAgent string
	client    *http.Client
	retry     utils.RetryConfig
	logger    zerolog.Logger
}

// NewYahooClient creates a quote client with per-call timeout.
func NewYahooClient(userAgent string, timeout time.Duration, logger zerolog.Logger) *YahooClient {
	retry := utils.DefaultRetryConfig()
	retry.Retryable = isTransient

	return &YahooClient{
		userAgent: userAgent,
		client:    &http.Client{Timeout: timeout},
		retry:     retry,
		logger:    logger.With().Str("component", "quotes").Logger(),
	}
}

// isTransient reports whether a quote call is worth retrying inside the
// same pass. Rate limiting and transport failures are; provider errors
// and unknown symbols are not.
func isTransient(err error) bool {
	if errors.Is(err, apperrors.ErrRateLimited) ||
		errors.Is(err, apperrors.ErrConnectionFailed) ||
		errors.Is(err, apperrors.ErrTimeout) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// rawValue is the provider's {raw, fmt} number wrapper. A missing field
// decodes to a nil Raw, which maps to a nil Fundamentals pointer.
type rawValue struct {
	Raw *float64 `json:"raw"`
}

type quoteSummaryResponse struct {
	QuoteSummary struct {
		Result []struct {
			Price *struct {
				LongName           string   `json:"longName"`
				RegularMarketPrice rawValue `json:"regularMarketPrice"`
				MarketCap          rawValue `json:"marketCap"`
			} `json:"price"`
			SummaryDetail *struct {
				TrailingPE   rawValue `json:"trailingPE"`
				Beta         rawValue `json:"beta"`
				PriceToSales rawValue `json:"priceToSalesTrailing12Months"`
			} `json:"summaryDetail"`
			KeyStatistics *struct {
				PEGRatio                rawValue `json:"pegRatio"`
				ForwardEPS              rawValue `json:"forwardEps"`
				EarningsQuarterlyGrowth rawValue `json:"earningsQuarterlyGrowth"`
			} `json:"defaultKeyStatistics"`
			FinancialData *struct {
				EarningsGrowth  rawValue `json:"earningsGrowth"`
				RevenueGrowth   rawValue `json:"revenueGrowth"`
				EBITDAMargins   rawValue `json:"ebitdaMargins"`
				TargetMeanPrice rawValue `json:"targetMeanPrice"`
			} `json:"financialData"`
			AssetProfile *struct {
				Sector          string `json:"sector"`
				LongSummary     string `json:"longBusinessSummary"`
				CompanyOfficers []struct {
					Name  string `json:"name"`
					Title string `json:"title"`
				} `json:"companyOfficers"`
			} `json:"assetProfile"`
			EarningsHistory *struct {
				History []struct {
					EPSEstimate rawValue `json:"epsEstimate"`
					EPSActual   rawValue `json:"epsActual"`
					SurprisePct rawValue `json:"surprisePercent"`
					Quarter     rawValue `json:"quarter"`
				} `json:"history"`
			} `json:"earningsHistory"`
			CalendarEvents *struct {
				Earnings struct {
					EarningsDate           []rawValue `json:"earningsDate"`
					IsEarningsDateEstimate bool       `json:"isEarningsDateEstimate"`
				} `json:"earnings"`
			} `json:"calendarEvents"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteSummary"`
}

// GetFundamentals fetches the fundamentals modules for one ticker.
func (c *YahooClient) GetFundamentals(ctx context.Context, ticker string) (*models.Fundamentals, error) {
	modules := "price,summaryDetail,defaultKeyStatistics,financialData,assetProfile"
	resp, err := c.fetchSummary(ctx, ticker, modules)
	if err != nil {
		return nil, apperrors.NewDataError("fundamentals", ticker, "fetch failed", err)
	}

	if len(resp.QuoteSummary.Result) == 0 {
		return nil, apperrors.NewDataError("fundamentals", ticker, "empty result", apperrors.ErrSymbolNotFound)
	}
	r := resp.QuoteSummary.Result[0]

	f := &models.Fundamentals{Ticker: ticker}

	if r.Price != nil {
		f.LongName = r.Price.LongName
		f.CurrentPrice = r.Price.RegularMarketPrice.Raw
		f.MarketCap = r.Price.MarketCap.Raw
	}
	if r.SummaryDetail != nil {
		f.TrailingPE = r.SummaryDetail.TrailingPE.Raw
		f.Beta = r.SummaryDetail.Beta.Raw
		f.PriceToSales = r.SummaryDetail.PriceToSales.Raw
	}
	if r.KeyStatistics != nil {
		f.PEGRatio = r.KeyStatistics.PEGRatio.Raw
		f.ForwardEPS = r.KeyStatistics.ForwardEPS.Raw
		f.EarningsQuarterlyGrowth = r.KeyStatistics.EarningsQuarterlyGrowth.Raw
	}
	if r.FinancialData != nil {
		f.EarningsGrowth = r.FinancialData.EarningsGrowth.Raw
		f.AnalystTarget = r.FinancialData.TargetMeanPrice.Raw
		if r.FinancialData.RevenueGrowth.Raw != nil {
			f.RevenueGrowth = *r.FinancialData.RevenueGrowth.Raw
		}
		if r.FinancialData.EBITDAMargins.Raw != nil {
			f.EBITDAMargin = *r.FinancialData.EBITDAMargins.Raw
		}
	}
	if r.AssetProfile != nil {
		f.Sector = r.AssetProfile.Sector
		f.BusinessSummary = r.AssetProfile.LongSummary
		for _, o := range r.AssetProfile.CompanyOfficers {
			f.Officers = append(f.Officers, models.Officer{Name: o.Name, Title: o.Title})
		}
	}

	return f, nil
}

// GetEarningsHistory fetches past report rows for one ticker.
func (c *YahooClient) GetEarningsHistory(ctx context.Context, ticker string) ([]models.EarningsReport, error) {
	resp, err := c.fetchSummary(ctx, ticker, "earningsHistory")
	if err != nil {
		return nil, apperrors.NewDataError("earnings_history", ticker, "fetch failed", err)
	}

	if len(resp.QuoteSummary.Result) == 0 || resp.QuoteSummary.Result[0].EarningsHistory == nil {
		return []models.EarningsReport{}, nil
	}

	history := resp.QuoteSummary.Result[0].EarningsHistory.History
	reports := make([]models.EarningsReport, 0, len(history))
	for _, h := range history {
		reports = append(reports, models.EarningsReport{
			Estimate:    h.EPSEstimate.Raw,
			Actual:      h.EPSActual.Raw,
			SurprisePct: h.SurprisePct.Raw,
		})
	}
	return reports, nil
}

func (c *YahooClient) fetchSummary(ctx context.Context, ticker, modules string) (*quoteSummaryResponse, error) {
	q := url.Values{}
	q.Set("modules", modules)
	endpoint := fmt.Sprintf("%s/%s?%s", quoteSummaryURL, url.PathEscape(ticker), q.Encode())

	return utils.RetryWithResult(ctx, c.retry, func() (*quoteSummaryResponse, error) {
		var parsed quoteSummaryResponse
		if err := c.getJSON(ctx, endpoint, &parsed); err != nil {
			return nil, err
		}
		if e := parsed.QuoteSummary.Error; e != nil {
			return nil, fmt.Errorf("provider error [%s]: %s", e.Code, e.Description)
		}
		return &parsed, nil
	})
}

type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open  []*float64 `json:"open"`
					High  []*float64 `json:"high"`
					Low   []*float64 `json:"low"`
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
	} `json:"chart"`
}

// GetHistory fetches daily candles for the given period.
func (c *YahooClient) GetHistory(ctx context.Context, ticker, period string) ([]models.Candle, error) {
	q := url.Values{}
	q.Set("range", period)
	q.Set("interval", "1d")
	endpoint := fmt.Sprintf("%s/%s?%s", chartURL, url.PathEscape(ticker), q.Encode())

	parsed, err := utils.RetryWithResult(ctx, c.retry, func() (*chartResponse, error) {
		var cr chartResponse
		if err := c.getJSON(ctx, endpoint, &cr); err != nil {
			return nil, err
		}
		return &cr, nil
	})
	if err != nil {
		return nil, apperrors.NewDataError("history", ticker, "fetch failed", err)
	}

	if len(parsed.Chart.Result) == 0 || len(parsed.Chart.Result[0].Indicators.Quote) == 0 {
		return []models.Candle{}, nil
	}

	r := parsed.Chart.Result[0]
	quote := r.Indicators.Quote[0]

	candles := make([]models.Candle, 0, len(r.Timestamp))
	for i, ts := range r.Timestamp {
		// Skip bars with holes; the provider nulls halted sessions.
		if i >= len(quote.Close) || quote.Close[i] == nil {
			continue
		}
		candle := models.Candle{
			Date:  time.Unix(ts, 0).UTC(),
			Close: *quote.Close[i],
		}
		if i < len(quote.Open) && quote.Open[i] != nil {
			candle.Open = *quote.Open[i]
		}
		if i < len(quote.High) && quote.High[i] != nil {
			candle.High = *quote.High[i]
		}
		if i < len(quote.Low) && quote.Low[i] != nil {
			candle.Low = *quote.Low[i]
		}
		candles = append(candles, candle)
	}
	return candles, nil
}

func (c *YahooClient) getJSON(ctx context.Context, endpoint string, target interface{}) error {
	start := time.Now()
	err := c.doJSON(ctx, endpoint, target)
	logging.LogAPICall(c.logger, http.MethodGet, endpoint, time.Since(start), err)
	return err
}

func (c *YahooClient) doJSON(ctx context.Context, endpoint string, target interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			return fmt.Errorf("%w: %v", apperrors.ErrTimeout, err)
		}
		return fmt.Errorf("%w: %v", apperrors.ErrConnectionFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return apperrors.ErrRateLimited
	}
	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("%w: quote API returned status %d", apperrors.ErrConnectionFailed, resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("quote API returned status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(target)
}
