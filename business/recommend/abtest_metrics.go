package recommend

import (
	"context"
	"fmt"
	"math"
	"time"

	"stockpulse/domain"
)

// Winner weighting. CTR dominates, view time is converted to minutes so
// the three terms live on comparable scales.
const (
	winnerWeightCTR      = 0.4
	winnerWeightViewTime = 0.3
	winnerWeightFavorite = 0.3
	winnerTieThreshold   = 0.05
)

// CalculateABTestMetrics aggregates a user's behavior and watchlist into
// per-variant engagement rates. All rates are zero-safe: with no
// recommendations every rate is exactly 0, never NaN.
func (s *RecommendService) CalculateABTestMetrics(ctx context.Context, userID uint, startDate *time.Time) (domain.ABTestMetrics, error) {
	variant := GetUserABTestVariant(userID).Variant

	var behaviors []domain.UserBehavior
	var err error
	if startDate != nil {
		behaviors, err = s.behaviorRepo.GetUserBehaviorSince(ctx, userID, *startDate)
	} else {
		behaviors, err = s.behaviorRepo.GetUserBehavior(ctx, userID)
	}
	if err != nil {
		return domain.ABTestMetrics{}, fmt.Errorf("%w: load user behavior: %w", ErrDataUnavailable, err)
	}

	favorites, err := s.watchlistRepo.GetWatchlist(ctx, userID)
	if err != nil {
		return domain.ABTestMetrics{}, fmt.Errorf("%w: load watchlist: %w", ErrDataUnavailable, err)
	}

	favoriteSymbols := make(map[string]struct{}, len(favorites))
	for _, f := range favorites {
		favoriteSymbols[f.Symbol] = struct{}{}
	}

	metrics := domain.ABTestMetrics{
		Variant:              variant,
		TotalRecommendations: len(behaviors),
	}

	var totalViewTime int64
	for _, b := range behaviors {
		if b.ViewCount > 0 {
			metrics.ClickedRecommendations++
		}
		totalViewTime += b.TotalViewTime
		if _, ok := favoriteSymbols[b.Symbol]; ok {
			metrics.FavoritedRecommendations++
		}
	}

	if metrics.TotalRecommendations > 0 {
		metrics.ClickThroughRate = float64(metrics.ClickedRecommendations) / float64(metrics.TotalRecommendations)
		metrics.FavoriteRate = float64(metrics.FavoritedRecommendations) / float64(metrics.TotalRecommendations)
	}
	if metrics.ClickedRecommendations > 0 {
		metrics.AverageViewTime = float64(totalViewTime) / float64(metrics.ClickedRecommendations)
	}

	return metrics, nil
}

// CompareABTestMetrics weighs two variants against each other. Diffs are
// B minus A; a weighted-score gap under the tie threshold is a tie.
func CompareABTestMetrics(a, b domain.ABTestMetrics) domain.ABTestComparison {
	return domain.ABTestComparison{
		ClickThroughRateDiff: b.ClickThroughRate - a.ClickThroughRate,
		AverageViewTimeDiff:  b.AverageViewTime - a.AverageViewTime,
		FavoriteRateDiff:     b.FavoriteRate - a.FavoriteRate,
		Winner:               determineWinner(a, b),
	}
}

func weightedScore(m domain.ABTestMetrics) float64 {
	return m.ClickThroughRate*winnerWeightCTR +
		(m.AverageViewTime/60)*winnerWeightViewTime +
		m.FavoriteRate*winnerWeightFavorite
}

func determineWinner(a, b domain.ABTestMetrics) string {
	scoreA := weightedScore(a)
	scoreB := weightedScore(b)

	if math.Abs(scoreA-scoreB) < winnerTieThreshold {
		return "tie"
	}
	if scoreA > scoreB {
		return VariantA
	}
	return VariantB
}
