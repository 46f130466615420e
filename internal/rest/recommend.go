package rest

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"time"

	"stockpulse/business/recommend"
	"stockpulse/domain"
	"stockpulse/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	RecommendHandler struct {
		validate         *validator.Validate
		recommendService RecommendService
	}

	RecommendService interface {
		GetAIRecommendations(ctx context.Context, userID uint, count int) (domain.RecommendationResult, error)
		GetPersonalizedRecommendations(ctx context.Context, userID uint) ([]domain.RecommendedStock, error)
		AnalyzeUserProfile(ctx context.Context, userID uint) (*recommend.UserProfile, error)
		CalculateABTestMetrics(ctx context.Context, userID uint, startDate *time.Time) (domain.ABTestMetrics, error)
	}

	RecommendQuery struct {
		N int `query:"n"`
	}

	ABTestMetricsQuery struct {
		Start string `query:"start" validate:"omitempty,datetime=2006-01-02"`
	}

	ABTestCompareRequest struct {
		VariantA domain.ABTestMetrics `json:"variant_a"`
		VariantB domain.ABTestMetrics `json:"variant_b"`
	}

	// ProfileResponse is the diagnostics view of the internal profile
	// sets.
	ProfileResponse struct {
		ViewedSymbols    []string       `json:"viewed_symbols"`
		PortfolioSymbols []string       `json:"portfolio_symbols"`
		FavoriteSymbols  []string       `json:"favorite_symbols"`
		Markets          map[string]int `json:"markets"`
		Sectors          map[string]int `json:"sectors"`
		AvgViewCount     float64        `json:"avg_view_count"`
		AvgViewTime      float64        `json:"avg_view_time"`
		FavoriteRatio    float64        `json:"favorite_ratio"`
	}
)

func NewRecommendHandler(svc RecommendService) *RecommendHandler {
	return &RecommendHandler{
		validate:         validator.New(),
		recommendService: svc,
	}
}

const defaultRecommendationCount = 5

// GET /api/v1/recommendations?n=5
func (h *RecommendHandler) Recommend(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var q RecommendQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if q.N <= 0 {
		q.N = defaultRecommendationCount
	}

	result, err := h.recommendService.GetAIRecommendations(c.Request().Context(), userID, q.N)
	if err != nil {
		if errors.Is(err, recommend.ErrInvalidInput) {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		logger.Error("Failed to build recommendations", "user_id", userID, "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(result))
}

// GET /api/v1/recommendations/personal
func (h *RecommendHandler) Personal(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	stocks, err := h.recommendService.GetPersonalizedRecommendations(c.Request().Context(), userID)
	if err != nil {
		logger.Error("Failed to build personalized recommendations", "user_id", userID, "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(stocks))
}

// GET /api/v1/recommendations/profile
func (h *RecommendHandler) Profile(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	profile, err := h.recommendService.AnalyzeUserProfile(c.Request().Context(), userID)
	if err != nil {
		logger.Error("Failed to analyze user profile", "user_id", userID, "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(profileResponse(profile)))
}

// GET /api/v1/recommendations/abtest
func (h *RecommendHandler) Variant(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(recommend.GetUserABTestVariant(userID)))
}

// GET /api/v1/recommendations/abtest/metrics?start=2025-01-01
func (h *RecommendHandler) Metrics(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var q ABTestMetricsQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	var startDate *time.Time
	if q.Start != "" {
		parsed, err := time.Parse("2006-01-02", q.Start)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid start date"})
		}
		startDate = &parsed
	}

	metrics, err := h.recommendService.CalculateABTestMetrics(c.Request().Context(), userID, startDate)
	if err != nil {
		logger.Error("Failed to calculate A/B metrics", "user_id", userID, "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(metrics))
}

// POST /api/v1/recommendations/abtest/compare
func (h *RecommendHandler) Compare(c echo.Context) error {
	var req ABTestCompareRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	comparison := recommend.CompareABTestMetrics(req.VariantA, req.VariantB)
	return c.JSON(http.StatusOK, fres.Response.StatusOK(comparison))
}

func profileResponse(profile *recommend.UserProfile) ProfileResponse {
	markets := make(map[string]int, len(profile.Preferences.Markets))
	for market, count := range profile.Preferences.Markets {
		markets[string(market)] = count
	}

	return ProfileResponse{
		ViewedSymbols:    sortedKeys(profile.ViewedSymbols),
		PortfolioSymbols: sortedKeys(profile.PortfolioSymbols),
		FavoriteSymbols:  sortedKeys(profile.FavoriteSymbols),
		Markets:          markets,
		Sectors:          profile.Preferences.Sectors,
		AvgViewCount:     profile.Preferences.AvgViewCount,
		AvgViewTime:      profile.Preferences.AvgViewTime,
		FavoriteRatio:    profile.Preferences.FavoriteRatio,
	}
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
