package repository

import (
	"context"
	"fmt"
	"net/http"

	"stockdash/config"
	"stockdash/internal/dto"
	"stockdash/pkg/cache"
	"stockdash/pkg/httpclient"
	"stockdash/pkg/logger"
)

type QuoteRepository interface {
	GetSnapshot(ctx context.Context, ticker string) (*dto.QuoteSnapshot, error)
}

// yahooQuoteRepository fetches live quote snapshots from the Yahoo Finance quote API.
type yahooQuoteRepository struct {
	httpClient httpclient.HTTPClient
	cfg        *config.Config
	cache      cache.Cache
	logger     *logger.Logger
}

// NewYahooQuoteRepository creates a new instance of yahooQuoteRepository.
func NewYahooQuoteRepository(cfg *config.Config, inmemoryCache cache.Cache, log *logger.Logger) QuoteRepository {
	return &yahooQuoteRepository{
		httpClient: httpclient.New(cfg.YahooFinance.QuoteBaseURL, cfg.YahooFinance.Timeout),
		cfg:        cfg,
		cache:      inmemoryCache,
		logger:     log,
	}
}

func (r *yahooQuoteRepository) GetSnapshot(ctx context.Context, ticker string) (*dto.QuoteSnapshot, error) {
	cacheKey := "quote:" + ticker
	if snapshot, found := cache.GetTyped[*dto.QuoteSnapshot](r.cache, cacheKey); found {
		return snapshot, nil
	}

	queryParams := map[string]string{
		"symbols": ticker,
		"fields":  "marketState,regularMarketTime,regularMarketPrice,regularMarketVolume,fiftyTwoWeekHigh",
	}

	var yahooResp dto.YahooQuoteResponse
	resp, err := r.httpClient.Get(ctx, "", queryParams, yahooHeaders(), &yahooResp)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch quote from yahoo finance: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		r.logger.ErrorContext(ctx, "Yahoo Finance quote API returned Non-OK status",
			logger.IntField("status_code", resp.StatusCode),
			logger.StringField("body", string(resp.Body)))
		return nil, fmt.Errorf("yahoo finance quote api returned status: %d", resp.StatusCode)
	}

	if yahooResp.QuoteResponse.Error != nil {
		return nil, fmt.Errorf("yahoo finance quote api error: %v", yahooResp.QuoteResponse.Error)
	}

	if len(yahooResp.QuoteResponse.Result) == 0 {
		return nil, fmt.Errorf("no quote returned for symbol: %s", ticker)
	}

	result := yahooResp.QuoteResponse.Result[0]
	snapshot := &dto.QuoteSnapshot{
		Ticker:        result.Symbol,
		MarketState:   result.MarketState,
		LastTradeTime: result.RegularMarketTime,
		Price:         result.RegularMarketPrice,
		Volume:        result.RegularMarketVolume,
		Week52High:    result.FiftyTwoWeekHigh,
	}

	r.cache.Set(cacheKey, snapshot, r.cfg.Cache.QuoteExpiration)

	return snapshot, nil
}
