package popular

import (
	"context"
	"fmt"

	"stockpulse/business/recommend"
	"stockpulse/domain"
)

// SearchHistoryRepository aggregates search history into a popularity
// ranking.
type SearchHistoryRepository interface {
	GetPopularSymbols(ctx context.Context, days, limit int) ([]domain.PopularStock, error)
}

type Service struct {
	searchRepo  SearchHistoryRepository
	defaultDays int
}

const defaultWindowDays = 30

func NewService(searchRepo SearchHistoryRepository) *Service {
	return &Service{
		searchRepo:  searchRepo,
		defaultDays: defaultWindowDays,
	}
}

// GetGlobalPopularStocks uses the default 30-day window. It is the shape
// the recommendation engine consumes.
func (s *Service) GetGlobalPopularStocks(ctx context.Context, limit int) ([]domain.PopularStock, error) {
	return s.GetPopularStocks(ctx, s.defaultDays, limit)
}

// GetPopularStocks returns the most searched symbols across all users in
// the window. An empty history falls back to the static default list so
// the pool is never empty on a fresh install.
func (s *Service) GetPopularStocks(ctx context.Context, days, limit int) ([]domain.PopularStock, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if days <= 0 {
		days = s.defaultDays
	}
	if limit <= 0 {
		limit = 20
	}

	stocks, err := s.searchRepo.GetPopularSymbols(ctx, days, limit)
	if err != nil {
		return nil, fmt.Errorf("load popular symbols: %w", err)
	}

	for i := range stocks {
		if stocks[i].Market == "" {
			stocks[i].Market = recommend.ClassifyMarket(stocks[i].Symbol)
		}
	}

	if len(stocks) == 0 {
		stocks = DefaultPopularStocks()
		if len(stocks) > limit {
			stocks = stocks[:limit]
		}
	}

	return stocks, nil
}

// GetPopularStocksByMarket filters the global ranking down to one market.
// The underlying query is oversampled so the filtered list still fills the
// limit for the common case.
func (s *Service) GetPopularStocksByMarket(ctx context.Context, market domain.Market, days, limit int) ([]domain.PopularStock, error) {
	if limit <= 0 {
		limit = 20
	}

	all, err := s.GetPopularStocks(ctx, days, limit*2)
	if err != nil {
		return nil, err
	}

	filtered := make([]domain.PopularStock, 0, limit)
	for _, stock := range all {
		if stock.Market != market {
			continue
		}
		filtered = append(filtered, stock)
		if len(filtered) == limit {
			break
		}
	}
	return filtered, nil
}

// DefaultPopularStocks is the seed list used when there is no search
// history yet.
func DefaultPopularStocks() []domain.PopularStock {
	return []domain.PopularStock{
		{Symbol: "AAPL", CompanyName: "Apple Inc.", Market: domain.MarketUS},
		{Symbol: "MSFT", CompanyName: "Microsoft Corporation", Market: domain.MarketUS},
		{Symbol: "GOOGL", CompanyName: "Alphabet Inc.", Market: domain.MarketUS},
		{Symbol: "AMZN", CompanyName: "Amazon.com Inc.", Market: domain.MarketUS},
		{Symbol: "TSLA", CompanyName: "Tesla Inc.", Market: domain.MarketUS},
		{Symbol: "META", CompanyName: "Meta Platforms Inc.", Market: domain.MarketUS},
		{Symbol: "NVDA", CompanyName: "NVIDIA Corporation", Market: domain.MarketUS},
		{Symbol: "NFLX", CompanyName: "Netflix Inc.", Market: domain.MarketUS},
		{Symbol: "AMD", CompanyName: "Advanced Micro Devices Inc.", Market: domain.MarketUS},
		{Symbol: "INTC", CompanyName: "Intel Corporation", Market: domain.MarketUS},
		{Symbol: "2330.TW", CompanyName: "台積電", Market: domain.MarketTW},
		{Symbol: "2317.TW", CompanyName: "鴻海", Market: domain.MarketTW},
		{Symbol: "2454.TW", CompanyName: "聯發科", Market: domain.MarketTW},
		{Symbol: "2412.TW", CompanyName: "中華電", Market: domain.MarketTW},
		{Symbol: "2882.TW", CompanyName: "國泰金", Market: domain.MarketTW},
	}
}
