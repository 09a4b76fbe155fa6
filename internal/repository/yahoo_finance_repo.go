package repository

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"time"

	"stockdash/config"
	"stockdash/internal/dto"
	"stockdash/pkg/cache"
	"stockdash/pkg/httpclient"
	"stockdash/pkg/logger"
	"stockdash/pkg/utils"
)

type HistoryRepository interface {
	GetDailySeries(ctx context.Context, param dto.GetDailySeriesParam) (dto.PriceSeries, error)
}

// yahooHistoryRepository fetches daily OHLCV bars from the Yahoo Finance chart API.
type yahooHistoryRepository struct {
	httpClient httpclient.HTTPClient
	cfg        *config.Config
	cache      cache.Cache
	logger     *logger.Logger
}

// NewYahooHistoryRepository creates a new instance of yahooHistoryRepository.
func NewYahooHistoryRepository(cfg *config.Config, inmemoryCache cache.Cache, log *logger.Logger) HistoryRepository {
	return &yahooHistoryRepository{
		httpClient: httpclient.New(cfg.YahooFinance.ChartBaseURL, cfg.YahooFinance.Timeout),
		cfg:        cfg,
		cache:      inmemoryCache,
		logger:     log,
	}
}

func yahooHeaders() map[string]string {
	return map[string]string{
		"User-Agent":      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 Chrome/120.0.0.0 Safari/537.36",
		"Accept":          "application/json, text/plain, */*",
		"Accept-Language": "en-US,en;q=0.9",
		"Accept-Encoding": "gzip, deflate, br",
		"Connection":      "keep-alive",
		"Referer":         "https://finance.yahoo.com/",
	}
}

func (r *yahooHistoryRepository) GetDailySeries(ctx context.Context, param dto.GetDailySeriesParam) (dto.PriceSeries, error) {
	cacheKey := fmt.Sprintf("history:%s:%s:%s",
		param.Ticker, utils.FormatDate(param.Start), utils.FormatDate(param.End))
	if series, found := cache.GetTyped[dto.PriceSeries](r.cache, cacheKey); found {
		return series, nil
	}

	endpoint := "/" + param.Ticker

	// The end of the range is exclusive, same as the chart API's period2.
	queryParams := map[string]string{
		"period1":        fmt.Sprintf("%d", param.Start.Unix()),
		"period2":        fmt.Sprintf("%d", param.End.Unix()),
		"interval":       "1d",
		"includePrePost": "false",
		"events":         "div,split",
	}

	var yahooResp dto.YahooChartResponse
	resp, err := r.httpClient.Get(ctx, endpoint, queryParams, yahooHeaders(), &yahooResp)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch data from yahoo finance: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		r.logger.ErrorContext(ctx, "Yahoo Finance chart API returned Non-OK status",
			logger.IntField("status_code", resp.StatusCode),
			logger.StringField("body", string(resp.Body)))
		return nil, fmt.Errorf("yahoo finance chart api returned status: %d", resp.StatusCode)
	}

	if yahooResp.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo finance chart api error: %v", yahooResp.Chart.Error)
	}

	// An empty range is a valid answer, not a failure.
	if len(yahooResp.Chart.Result) == 0 {
		return dto.PriceSeries{}, nil
	}

	result := yahooResp.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return dto.PriceSeries{}, nil
	}

	quote := result.Indicators.Quote[0]

	series := make(dto.PriceSeries, 0, len(result.Timestamp))
	for i, timestamp := range result.Timestamp {
		// Skip if any required data is missing
		if i >= len(quote.Open) || i >= len(quote.High) || i >= len(quote.Low) ||
			i >= len(quote.Close) || i >= len(quote.Volume) {
			continue
		}

		// Skip if any value is 0 (missing data)
		if quote.Open[i] == 0 || quote.High[i] == 0 || quote.Low[i] == 0 ||
			quote.Close[i] == 0 || quote.Volume[i] == 0 {
			continue
		}

		day := time.Unix(timestamp, 0).UTC().Truncate(24 * time.Hour)
		series = append(series, dto.PriceBar{
			Date:   day,
			Open:   quote.Open[i],
			High:   quote.High[i],
			Low:    quote.Low[i],
			Close:  quote.Close[i],
			Volume: quote.Volume[i],
		})
	}

	series = normalizeSeries(series)

	r.cache.Set(cacheKey, series, r.cfg.Cache.SeriesExpiration)

	return series, nil
}

// normalizeSeries sorts bars ascending by date and keeps the latest bar for
// any duplicated day, such as the in-progress session row the chart API
// appends alongside the daily bar.
func normalizeSeries(series dto.PriceSeries) dto.PriceSeries {
	if len(series) == 0 {
		return series
	}

	sort.SliceStable(series, func(i, j int) bool {
		return series[i].Date.Before(series[j].Date)
	})

	out := series[:0]
	for _, bar := range series {
		if len(out) > 0 && out[len(out)-1].Date.Equal(bar.Date) {
			out[len(out)-1] = bar
			continue
		}
		out = append(out, bar)
	}
	return out
}
