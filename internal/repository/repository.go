package repository

import (
	"stockdash/config"
	"stockdash/pkg/cache"
	"stockdash/pkg/logger"
)

type Repository struct {
	HistoryRepo HistoryRepository
	QuoteRepo   QuoteRepository
}

func NewRepository(cfg *config.Config, inmemoryCache cache.Cache, log *logger.Logger) *Repository {
	return &Repository{
		HistoryRepo: NewYahooHistoryRepository(cfg, inmemoryCache, log),
		QuoteRepo:   NewYahooQuoteRepository(cfg, inmemoryCache, log),
	}
}
