package recommend

import (
	"context"
	"errors"
	"testing"

	"stockpulse/domain"
)

func testPool() []domain.PopularStock {
	return []domain.PopularStock{
		{Symbol: "AAPL", SearchCount: 100, Market: domain.MarketUS},
		{Symbol: "2330.TW", SearchCount: 90, Market: domain.MarketTW},
		{Symbol: "MSFT", SearchCount: 80, Market: domain.MarketUS},
		{Symbol: "2317.TW", SearchCount: 70, Market: domain.MarketTW},
		{Symbol: "NVDA", SearchCount: 60, Market: domain.MarketUS},
	}
}

func emptyProfile() *UserProfile {
	return &UserProfile{
		ViewedSymbols:    map[string]struct{}{},
		PortfolioSymbols: map[string]struct{}{},
		FavoriteSymbols:  map[string]struct{}{},
		Preferences:      Preferences{Markets: map[domain.Market]int{}, Sectors: map[string]int{}},
	}
}

func TestGetCandidateStocks_ExcludesSeen(t *testing.T) {
	svc, fakes := newTestService()
	fakes.popular.pool = testPool()

	profile := emptyProfile()
	profile.ViewedSymbols["AAPL"] = struct{}{}
	profile.PortfolioSymbols["MSFT"] = struct{}{}
	profile.FavoriteSymbols["NVDA"] = struct{}{}

	candidates, err := svc.GetCandidateStocks(context.Background(), profile, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, symbol := range candidates {
		if profile.HasSeen(symbol) {
			t.Errorf("candidate %q overlaps the user's seen sets", symbol)
		}
	}
	if len(candidates) != 2 {
		t.Errorf("got %d candidates, want 2", len(candidates))
	}
}

func TestGetCandidateStocks_MarketPreferenceFirst(t *testing.T) {
	svc, fakes := newTestService()
	fakes.popular.pool = testPool()

	profile := emptyProfile()
	profile.Preferences.Markets[domain.MarketTW] = 10

	candidates, err := svc.GetCandidateStocks(context.Background(), profile, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"2330.TW", "2317.TW", "AAPL", "MSFT", "NVDA"}
	for i, symbol := range want {
		if candidates[i] != symbol {
			t.Fatalf("candidates = %v, want %v", candidates, want)
		}
	}
}

func TestGetCandidateStocks_TieKeepsPopularityOrder(t *testing.T) {
	svc, fakes := newTestService()
	fakes.popular.pool = testPool()

	candidates, err := svc.GetCandidateStocks(context.Background(), emptyProfile(), 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"AAPL", "2330.TW", "MSFT", "2317.TW", "NVDA"}
	for i, symbol := range want {
		if candidates[i] != symbol {
			t.Fatalf("candidates = %v, want %v", candidates, want)
		}
	}
}

func TestGetCandidateStocks_Limit(t *testing.T) {
	svc, fakes := newTestService()
	fakes.popular.pool = testPool()

	candidates, err := svc.GetCandidateStocks(context.Background(), emptyProfile(), 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(candidates) != 2 {
		t.Errorf("got %d candidates, want 2", len(candidates))
	}
}

func TestGetCandidateStocks_InvalidInput(t *testing.T) {
	svc, _ := newTestService()

	if _, err := svc.GetCandidateStocks(context.Background(), nil, 5); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("nil profile: got %v, want ErrInvalidInput", err)
	}
	if _, err := svc.GetCandidateStocks(context.Background(), emptyProfile(), 0); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("zero limit: got %v, want ErrInvalidInput", err)
	}
}

func TestGetCandidateStocks_PoolFailure(t *testing.T) {
	svc, fakes := newTestService()
	fakes.popular.err = errors.New("pool down")

	_, err := svc.GetCandidateStocks(context.Background(), emptyProfile(), 5)
	if !errors.Is(err, ErrDataUnavailable) {
		t.Errorf("got %v, want ErrDataUnavailable", err)
	}
}
