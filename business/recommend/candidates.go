package recommend

import (
	"context"
	"fmt"
	"sort"

	"stockpulse/domain"
)

// GetCandidateStocks returns up to limit unseen symbols from the global
// popular pool, ranked by the user's market preference and then by the
// pool's own popularity order. The result is always disjoint from the
// profile's viewed/portfolio/favorite sets; an empty result means the user
// has seen the whole pool and the orchestrator must fall back.
func (s *RecommendService) GetCandidateStocks(ctx context.Context, profile *UserProfile, limit int) ([]string, error) {
	if profile == nil {
		return nil, fmt.Errorf("%w: profile is required", ErrInvalidInput)
	}
	if limit <= 0 {
		return nil, fmt.Errorf("%w: limit must be positive, got %d", ErrInvalidInput, limit)
	}

	pool, err := s.popularRepo.GetGlobalPopularStocks(ctx, candidatePoolSize)
	if err != nil {
		return nil, fmt.Errorf("%w: load popular stocks: %w", ErrDataUnavailable, err)
	}

	candidates := make([]domain.PopularStock, 0, len(pool))
	for _, stock := range pool {
		if profile.HasSeen(stock.Symbol) {
			continue
		}
		candidates = append(candidates, stock)
	}

	// Preferred-market candidates first; ties keep the pool's popularity
	// order (search count descending, already sorted by the repository).
	sort.SliceStable(candidates, func(i, j int) bool {
		pi := profile.Preferences.Markets[marketOf(candidates[i])]
		pj := profile.Preferences.Markets[marketOf(candidates[j])]
		if pi != pj {
			return pi > pj
		}
		return candidates[i].SearchCount > candidates[j].SearchCount
	})

	if limit > len(candidates) {
		limit = len(candidates)
	}

	out := make([]string, 0, limit)
	for _, stock := range candidates[:limit] {
		out = append(out, stock.Symbol)
	}
	return out, nil
}

func marketOf(stock domain.PopularStock) domain.Market {
	if stock.Market != "" {
		return stock.Market
	}
	return ClassifyMarket(stock.Symbol)
}
