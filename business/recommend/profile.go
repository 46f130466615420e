package recommend

import (
	"context"
	"fmt"

	"stockpulse/domain"
	"stockpulse/pkg/logger"

	"golang.org/x/sync/errgroup"
)

// UserProfile is the behavioral picture of one user, rebuilt from storage
// on every request and discarded afterwards.
type UserProfile struct {
	ViewedSymbols    map[string]struct{}
	PortfolioSymbols map[string]struct{}
	FavoriteSymbols  map[string]struct{}
	Preferences      Preferences
}

type Preferences struct {
	Markets       map[domain.Market]int
	Sectors       map[string]int
	AvgViewCount  float64
	AvgViewTime   float64
	FavoriteRatio float64
}

// HasSeen reports whether the symbol appears in any of the user's sets.
func (p *UserProfile) HasSeen(symbol string) bool {
	if _, ok := p.ViewedSymbols[symbol]; ok {
		return true
	}
	if _, ok := p.PortfolioSymbols[symbol]; ok {
		return true
	}
	_, ok := p.FavoriteSymbols[symbol]
	return ok
}

// DominantMarket returns the market with the highest view tally, if any
// views were recorded at all.
func (p *UserProfile) DominantMarket() (domain.Market, bool) {
	var best domain.Market
	bestCount := 0
	for market, count := range p.Preferences.Markets {
		if count > bestCount || (count == bestCount && market == domain.MarketUS) {
			best = market
			bestCount = count
		}
	}
	return best, bestCount > 0
}

// AnalyzeUserProfile builds the profile from behavior, portfolio and
// watchlist records. The three fetches are independent and run in
// parallel. A user with no history gets a well-formed zero profile, not an
// error. Missing sector metadata for individual symbols is skipped from
// the tallies.
func (s *RecommendService) AnalyzeUserProfile(ctx context.Context, userID uint) (*UserProfile, error) {
	var (
		behaviors []domain.UserBehavior
		holdings  []domain.Portfolio
		favorites []domain.Watchlist
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		behaviors, err = s.behaviorRepo.GetUserBehavior(gctx, userID)
		if err != nil {
			return fmt.Errorf("load user behavior: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		holdings, err = s.portfolioRepo.GetPortfolio(gctx, userID)
		if err != nil {
			return fmt.Errorf("load portfolio: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		favorites, err = s.watchlistRepo.GetWatchlist(gctx, userID)
		if err != nil {
			return fmt.Errorf("load watchlist: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDataUnavailable, err)
	}

	profile := &UserProfile{
		ViewedSymbols:    make(map[string]struct{}, len(behaviors)),
		PortfolioSymbols: make(map[string]struct{}, len(holdings)),
		FavoriteSymbols:  make(map[string]struct{}, len(favorites)),
		Preferences: Preferences{
			Markets: make(map[domain.Market]int),
			Sectors: make(map[string]int),
		},
	}

	var totalViewCount int
	var totalViewTime int64

	for _, b := range behaviors {
		profile.ViewedSymbols[b.Symbol] = struct{}{}
		profile.Preferences.Markets[ClassifyMarket(b.Symbol)]++
		totalViewCount += b.ViewCount
		totalViewTime += b.TotalViewTime
	}
	for _, h := range holdings {
		profile.PortfolioSymbols[h.Symbol] = struct{}{}
	}
	for _, f := range favorites {
		profile.FavoriteSymbols[f.Symbol] = struct{}{}
	}

	if len(behaviors) > 0 {
		profile.Preferences.AvgViewCount = float64(totalViewCount) / float64(len(behaviors))
		profile.Preferences.AvgViewTime = float64(totalViewTime) / float64(len(behaviors))
		profile.Preferences.FavoriteRatio = float64(len(profile.FavoriteSymbols)) / float64(len(profile.ViewedSymbols))
	}

	s.tallySectors(ctx, profile)

	return profile, nil
}

// tallySectors fills the sector preference counts from stock metadata.
// Metadata is best-effort: a failed lookup or a symbol without a sector
// degrades the tally, never the profile.
func (s *RecommendService) tallySectors(ctx context.Context, profile *UserProfile) {
	if s.metaRepo == nil || len(profile.ViewedSymbols) == 0 {
		return
	}

	symbols := make([]string, 0, len(profile.ViewedSymbols))
	for symbol := range profile.ViewedSymbols {
		symbols = append(symbols, symbol)
	}

	metas, err := s.metaRepo.GetMeta(ctx, symbols)
	if err != nil {
		logger.Debug("stock metadata lookup failed, skipping sector tally", "error", err)
		return
	}

	for _, symbol := range symbols {
		meta, ok := metas[symbol]
		if !ok || meta.Sector == "" {
			continue
		}
		profile.Preferences.Sectors[meta.Sector]++
	}
}
