package recommend

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"stockpulse/domain"
	"stockpulse/pkg/logger"
)

// Scoring weights for the history-based recommendation list. Signals are
// log1p-normalized so a handful of obsessive views cannot drown the rest.
const (
	personalWeightViewCount   = 0.3
	personalWeightSearchCount = 0.2
	personalWeightViewTime    = 0.25
	personalWeightFavorite    = 0.25

	personalDecayDays = 30.0
	personalMinDecay  = 0.1

	personalMinActivity        = 1
	personalMaxRecommendations = 6

	longDwellThresholdMS = 5 * 60 * 1000
)

// GetPersonalizedRecommendations scores the stocks the user has already
// interacted with and returns the ones their behavior says they care about
// most, freshest first. Unlike GetAIRecommendations this list deliberately
// stays inside the user's own history.
func (s *RecommendService) GetPersonalizedRecommendations(ctx context.Context, userID uint) ([]domain.RecommendedStock, error) {
	behaviors, err := s.behaviorRepo.GetUserBehavior(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: load user behavior: %w", ErrDataUnavailable, err)
	}
	if len(behaviors) == 0 {
		return []domain.RecommendedStock{}, nil
	}

	favorites, err := s.watchlistRepo.GetWatchlist(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: load watchlist: %w", ErrDataUnavailable, err)
	}

	favoriteSymbols := make(map[string]struct{}, len(favorites))
	for _, f := range favorites {
		favoriteSymbols[f.Symbol] = struct{}{}
	}

	now := time.Now()
	recs := make([]domain.RecommendedStock, 0, len(behaviors))
	for _, b := range behaviors {
		if b.ViewCount+b.SearchCount < personalMinActivity {
			continue
		}

		_, isFavorite := favoriteSymbols[b.Symbol]
		recs = append(recs, domain.RecommendedStock{
			Symbol:        b.Symbol,
			Score:         personalScore(b, isFavorite, now),
			Reason:        personalReason(b, isFavorite),
			ViewCount:     b.ViewCount,
			SearchCount:   b.SearchCount,
			TotalViewTime: b.TotalViewTime,
			IsFavorite:    isFavorite,
			LastViewedAt:  b.LastViewedAt,
		})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Score > recs[j].Score
	})
	if len(recs) > personalMaxRecommendations {
		recs = recs[:personalMaxRecommendations]
	}

	logger.Debug("personalized recommendations generated",
		"trace_id", TraceIDFromContext(ctx), "user_id", userID, "count", len(recs))

	return recs, nil
}

func personalScore(b domain.UserBehavior, isFavorite bool, now time.Time) float64 {
	viewTimeMinutes := float64(b.TotalViewTime) / (60 * 1000)

	favoriteScore := 0.0
	if isFavorite {
		favoriteScore = 1.0
	}

	base := math.Log1p(float64(b.ViewCount))*personalWeightViewCount +
		math.Log1p(float64(b.SearchCount))*personalWeightSearchCount +
		math.Log1p(viewTimeMinutes)*personalWeightViewTime +
		favoriteScore*personalWeightFavorite

	return base * personalDecay(b.LastViewedAt, now)
}

// personalDecay weighs recency with a 30-day exponential, clamped so very
// old favorites do not vanish entirely.
func personalDecay(lastViewedAt, now time.Time) float64 {
	days := now.Sub(lastViewedAt).Hours() / 24
	if days < 0 {
		days = 0
	}
	decay := math.Exp(-days / personalDecayDays)
	return math.Max(decay, personalMinDecay)
}

func personalReason(b domain.UserBehavior, isFavorite bool) string {
	var reasons []string

	if isFavorite {
		reasons = append(reasons, "您已收藏此股票")
	}
	if b.ViewCount >= 5 {
		reasons = append(reasons, "您經常查看此股票")
	} else if b.ViewCount >= 3 {
		reasons = append(reasons, "您多次查看此股票")
	}
	if b.SearchCount >= 3 {
		reasons = append(reasons, "您多次搜尋此股票")
	}
	if b.TotalViewTime >= longDwellThresholdMS {
		reasons = append(reasons, "您在此股票停留時間較長")
	}

	if len(reasons) == 0 {
		reasons = append(reasons, "基於您的瀏覽記錄")
	}

	return strings.Join(reasons, "，")
}
