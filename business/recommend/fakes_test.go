package recommend

import (
	"context"
	"time"

	"stockpulse/domain"
)

// In-memory fakes for the repository interfaces. Each fake returns its
// fixed data or its injected error.

type fakeBehaviorRepo struct {
	behaviors []domain.UserBehavior
	err       error
}

func (f *fakeBehaviorRepo) GetUserBehavior(_ context.Context, _ uint) ([]domain.UserBehavior, error) {
	return f.behaviors, f.err
}

func (f *fakeBehaviorRepo) GetUserBehaviorSince(_ context.Context, _ uint, since time.Time) ([]domain.UserBehavior, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []domain.UserBehavior
	for _, b := range f.behaviors {
		if !b.LastViewedAt.Before(since) {
			out = append(out, b)
		}
	}
	return out, nil
}

type fakeWatchlistRepo struct {
	entries []domain.Watchlist
	err     error
}

func (f *fakeWatchlistRepo) GetWatchlist(_ context.Context, _ uint) ([]domain.Watchlist, error) {
	return f.entries, f.err
}

type fakePortfolioRepo struct {
	holdings []domain.Portfolio
	err      error
}

func (f *fakePortfolioRepo) GetPortfolio(_ context.Context, _ uint) ([]domain.Portfolio, error) {
	return f.holdings, f.err
}

type fakePopularRepo struct {
	pool []domain.PopularStock
	err  error
}

func (f *fakePopularRepo) GetGlobalPopularStocks(_ context.Context, limit int) ([]domain.PopularStock, error) {
	if f.err != nil {
		return nil, f.err
	}
	if limit > len(f.pool) {
		limit = len(f.pool)
	}
	return f.pool[:limit], nil
}

type fakeMetaRepo struct {
	metas map[string]domain.StockMeta
	err   error
}

func (f *fakeMetaRepo) GetMeta(_ context.Context, symbols []string) (map[string]domain.StockMeta, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make(map[string]domain.StockMeta)
	for _, s := range symbols {
		if m, ok := f.metas[s]; ok {
			out[s] = m
		}
	}
	return out, nil
}

type fakeReasonGenerator struct {
	reason string
	err    error
}

func (f *fakeReasonGenerator) GenerateReason(_ context.Context, _ *UserProfile, _ []string) (string, error) {
	return f.reason, f.err
}

type fakeCache struct {
	stored map[uint]domain.RecommendationResult
	getErr error
	setErr error
}

func newFakeCache() *fakeCache {
	return &fakeCache{stored: make(map[uint]domain.RecommendationResult)}
}

func (f *fakeCache) Get(_ context.Context, userID uint) (*domain.RecommendationResult, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if result, ok := f.stored[userID]; ok {
		return &result, nil
	}
	return nil, nil
}

func (f *fakeCache) Set(_ context.Context, userID uint, result domain.RecommendationResult) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.stored[userID] = result
	return nil
}

type serviceFakes struct {
	behavior  *fakeBehaviorRepo
	watchlist *fakeWatchlistRepo
	portfolio *fakePortfolioRepo
	popular   *fakePopularRepo
	meta      *fakeMetaRepo
}

func newTestService() (*RecommendService, *serviceFakes) {
	fakes := &serviceFakes{
		behavior:  &fakeBehaviorRepo{},
		watchlist: &fakeWatchlistRepo{},
		portfolio: &fakePortfolioRepo{},
		popular:   &fakePopularRepo{},
		meta:      &fakeMetaRepo{},
	}

	svc := NewRecommendService(
		fakes.behavior,
		fakes.watchlist,
		fakes.portfolio,
		fakes.popular,
		fakes.meta,
		nil,
		nil,
	)
	return svc, fakes
}
