package rest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"stockpulse/business/recommend"
	"stockpulse/domain"

	"github.com/labstack/echo/v4"
)

type fakeRecommendService struct {
	result domain.RecommendationResult
	gotN   int
}

func (f *fakeRecommendService) GetAIRecommendations(_ context.Context, _ uint, count int) (domain.RecommendationResult, error) {
	f.gotN = count
	return f.result, nil
}

func (f *fakeRecommendService) GetPersonalizedRecommendations(_ context.Context, _ uint) ([]domain.RecommendedStock, error) {
	return nil, nil
}

func (f *fakeRecommendService) AnalyzeUserProfile(_ context.Context, _ uint) (*recommend.UserProfile, error) {
	return &recommend.UserProfile{
		ViewedSymbols:    map[string]struct{}{},
		PortfolioSymbols: map[string]struct{}{},
		FavoriteSymbols:  map[string]struct{}{},
		Preferences:      recommend.Preferences{Markets: map[domain.Market]int{}},
	}, nil
}

func (f *fakeRecommendService) CalculateABTestMetrics(_ context.Context, userID uint, _ *time.Time) (domain.ABTestMetrics, error) {
	return domain.ABTestMetrics{Variant: recommend.GetUserABTestVariant(userID).Variant}, nil
}

func TestRecommendHandler_Unauthorized(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/recommendations", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := NewRecommendHandler(&fakeRecommendService{})
	if err := handler.Recommend(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401 without user_id", rec.Code)
	}
}

func TestRecommendHandler_DefaultCount(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/recommendations", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", uint(1))

	svc := &fakeRecommendService{result: domain.RecommendationResult{
		Recommendations: []string{"AAPL"},
		Reason:          "測試",
	}}
	handler := NewRecommendHandler(svc)

	if err := handler.Recommend(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if svc.gotN != defaultRecommendationCount {
		t.Errorf("count = %d, want the %d default", svc.gotN, defaultRecommendationCount)
	}
	if !strings.Contains(rec.Body.String(), "AAPL") {
		t.Errorf("body %q missing recommendations", rec.Body.String())
	}
}

func TestRecommendHandler_MetricsRejectsBadDate(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/recommendations/abtest/metrics?start=not-a-date", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", uint(1))

	handler := NewRecommendHandler(&fakeRecommendService{})
	if err := handler.Metrics(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for a malformed start date", rec.Code)
	}
}
