package recommend

import (
	"context"
	"fmt"
	"time"

	"stockpulse/domain"
	"stockpulse/pkg/logger"
)

// ---- Repository interfaces ----

type BehaviorRepository interface {
	GetUserBehavior(ctx context.Context, userID uint) ([]domain.UserBehavior, error)
	GetUserBehaviorSince(ctx context.Context, userID uint, since time.Time) ([]domain.UserBehavior, error)
}

type WatchlistRepository interface {
	GetWatchlist(ctx context.Context, userID uint) ([]domain.Watchlist, error)
}

type PortfolioRepository interface {
	GetPortfolio(ctx context.Context, userID uint) ([]domain.Portfolio, error)
}

// PopularityRepository yields the global candidate pool, most searched
// first.
type PopularityRepository interface {
	GetGlobalPopularStocks(ctx context.Context, limit int) ([]domain.PopularStock, error)
}

// StockMetaRepository looks up per-symbol metadata. Missing symbols are
// simply absent from the returned map.
type StockMetaRepository interface {
	GetMeta(ctx context.Context, symbols []string) (map[string]domain.StockMeta, error)
}

// ReasonGenerator phrases the recommendation rationale for the
// personalized path. Implementations may call an LLM; failures must be
// returned, the service falls back to a static reason.
type ReasonGenerator interface {
	GenerateReason(ctx context.Context, profile *UserProfile, symbols []string) (string, error)
}

// ResultCache holds recent recommendation results per user. A nil cache
// disables caching; cache failures are tolerated.
type ResultCache interface {
	Get(ctx context.Context, userID uint) (*domain.RecommendationResult, error)
	Set(ctx context.Context, userID uint, result domain.RecommendationResult) error
}

// ---- Service ----

type RecommendService struct {
	behaviorRepo  BehaviorRepository
	watchlistRepo WatchlistRepository
	portfolioRepo PortfolioRepository
	popularRepo   PopularityRepository
	metaRepo      StockMetaRepository
	reasons       ReasonGenerator
	cache         ResultCache
}

func NewRecommendService(
	behaviorRepo BehaviorRepository,
	watchlistRepo WatchlistRepository,
	portfolioRepo PortfolioRepository,
	popularRepo PopularityRepository,
	metaRepo StockMetaRepository,
	reasons ReasonGenerator,
	cache ResultCache,
) *RecommendService {
	return &RecommendService{
		behaviorRepo:  behaviorRepo,
		watchlistRepo: watchlistRepo,
		portfolioRepo: portfolioRepo,
		popularRepo:   popularRepo,
		metaRepo:      metaRepo,
		reasons:       reasons,
		cache:         cache,
	}
}

// Reason strings per orchestration path. The welcome phrasing is what
// distinguishes the cold-start path for the UI and for tests.
const (
	welcomeReason   = "歡迎使用股票投資分析平台！這些是目前全站最熱門的股票，您可以從這裡開始探索。"
	exhaustedReason = "您已經查看了許多優質股票！這些是目前全站最熱門的其他股票，或許能為您帶來新的投資靈感。"
	genericReason   = "根據您的投資偏好和瀏覽歷史，我們為您推薦這些您尚未查看過的優質股票。"
)

// candidatePoolSize is how many popular stocks feed the candidate filter.
const candidatePoolSize = 50

// GetAIRecommendations composes profile, candidate pool and fallback policy
// into the final recommendation set.
//
// Three terminal states, evaluated in order:
//  1. cold-start: no viewing history at all → global popular + welcome
//  2. personalized: unseen candidates exist → ranked candidates + reason
//  3. exhausted-candidates: history covers the whole pool → global popular
//     without re-filtering, so the panel is never empty
func (s *RecommendService) GetAIRecommendations(ctx context.Context, userID uint, count int) (domain.RecommendationResult, error) {
	if count <= 0 {
		return domain.RecommendationResult{}, fmt.Errorf("%w: count must be positive, got %d", ErrInvalidInput, count)
	}

	tid := TraceIDFromContext(ctx)

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, userID); err != nil {
			logger.Warn("recommendation cache read failed", "trace_id", tid, "user_id", userID, "error", err)
		} else if cached != nil {
			RecommendationsServedTotal.WithLabelValues(pathCache, GetUserABTestVariant(userID).Variant).Inc()
			return *cached, nil
		}
	}

	profile, err := s.AnalyzeUserProfile(ctx, userID)
	if err != nil {
		return domain.RecommendationResult{}, fmt.Errorf("%w: %w", ErrRecommendationUnavailable, err)
	}

	variant := GetUserABTestVariant(userID).Variant

	// cold-start: nothing viewed yet
	if len(profile.ViewedSymbols) == 0 {
		popular, err := s.popularRepo.GetGlobalPopularStocks(ctx, count)
		if err != nil {
			return domain.RecommendationResult{}, fmt.Errorf("%w: %w: %w", ErrRecommendationUnavailable, ErrDataUnavailable, err)
		}

		result := domain.RecommendationResult{
			Recommendations: popularSymbols(popular, count),
			Reason:          welcomeReason,
		}
		s.storeResult(ctx, userID, result)
		RecommendationsServedTotal.WithLabelValues(pathColdStart, variant).Inc()

		logger.Debug("recommendations served",
			"trace_id", tid, "user_id", userID, "path", pathColdStart, "count", len(result.Recommendations))
		return result, nil
	}

	candidates, err := s.GetCandidateStocks(ctx, profile, count*3)
	if err != nil {
		return domain.RecommendationResult{}, fmt.Errorf("%w: %w", ErrRecommendationUnavailable, err)
	}

	// exhausted-candidates: the user has seen the entire pool. Serve the
	// popular list unfiltered rather than an empty panel. This knowingly
	// re-surfaces seen symbols.
	if len(candidates) == 0 {
		popular, err := s.popularRepo.GetGlobalPopularStocks(ctx, count)
		if err != nil {
			return domain.RecommendationResult{}, fmt.Errorf("%w: %w: %w", ErrRecommendationUnavailable, ErrDataUnavailable, err)
		}

		result := domain.RecommendationResult{
			Recommendations: popularSymbols(popular, count),
			Reason:          exhaustedReason,
		}
		s.storeResult(ctx, userID, result)
		RecommendationsServedTotal.WithLabelValues(pathFallback, variant).Inc()

		logger.Debug("recommendations served",
			"trace_id", tid, "user_id", userID, "path", pathFallback, "count", len(result.Recommendations))
		return result, nil
	}

	if len(candidates) > count {
		candidates = candidates[:count]
	}

	result := domain.RecommendationResult{
		Recommendations: candidates,
		Reason:          s.personalizedReason(ctx, profile, candidates),
	}
	s.storeResult(ctx, userID, result)
	RecommendationsServedTotal.WithLabelValues(pathPersonalized, variant).Inc()

	logger.Debug("recommendations served",
		"trace_id", tid, "user_id", userID, "path", pathPersonalized, "count", len(result.Recommendations))
	return result, nil
}

// personalizedReason asks the advisor for a phrased rationale and falls
// back to a static one referencing the dominant market preference.
func (s *RecommendService) personalizedReason(ctx context.Context, profile *UserProfile, symbols []string) string {
	if s.reasons != nil {
		reason, err := s.reasons.GenerateReason(ctx, profile, symbols)
		if err == nil && reason != "" {
			return reason
		}
		if err != nil {
			logger.Warn("reason generation failed, using static reason", "error", err)
		}
	}

	if market, ok := profile.DominantMarket(); ok {
		name := "美股"
		if market == domain.MarketTW {
			name = "台股"
		}
		return fmt.Sprintf("根據您對%s市場的瀏覽偏好，我們為您推薦這些您尚未查看過的優質股票。", name)
	}

	return genericReason
}

func (s *RecommendService) storeResult(ctx context.Context, userID uint, result domain.RecommendationResult) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, userID, result); err != nil {
		logger.Warn("recommendation cache write failed", "user_id", userID, "error", err)
	}
}

func popularSymbols(pool []domain.PopularStock, limit int) []string {
	if limit > len(pool) {
		limit = len(pool)
	}
	out := make([]string, 0, limit)
	for _, stock := range pool[:limit] {
		out = append(out, stock.Symbol)
	}
	return out
}
