package recommend

import (
	"context"
	"errors"
	"testing"
	"time"

	"stockpulse/domain"
)

func TestAnalyzeUserProfile_ColdUser(t *testing.T) {
	svc, _ := newTestService()

	profile, err := svc.AnalyzeUserProfile(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(profile.ViewedSymbols) != 0 {
		t.Errorf("cold user has %d viewed symbols, want 0", len(profile.ViewedSymbols))
	}
	if profile.Preferences.AvgViewCount != 0 || profile.Preferences.AvgViewTime != 0 || profile.Preferences.FavoriteRatio != 0 {
		t.Errorf("cold user preferences not zero: %+v", profile.Preferences)
	}
}

func TestAnalyzeUserProfile_Averages(t *testing.T) {
	svc, fakes := newTestService()
	fakes.behavior.behaviors = []domain.UserBehavior{
		{Symbol: "AAPL", ViewCount: 4, TotalViewTime: 60000, LastViewedAt: time.Now()},
		{Symbol: "2330.TW", ViewCount: 2, TotalViewTime: 30000, LastViewedAt: time.Now()},
	}
	fakes.watchlist.entries = []domain.Watchlist{{Symbol: "AAPL"}}

	profile, err := svc.AnalyzeUserProfile(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := profile.Preferences.AvgViewCount; got != 3 {
		t.Errorf("AvgViewCount = %v, want 3", got)
	}
	if got := profile.Preferences.AvgViewTime; got != 45000 {
		t.Errorf("AvgViewTime = %v, want 45000", got)
	}
	if got := profile.Preferences.FavoriteRatio; got != 0.5 {
		t.Errorf("FavoriteRatio = %v, want 0.5", got)
	}
	if got := profile.Preferences.Markets[domain.MarketUS]; got != 1 {
		t.Errorf("US market tally = %d, want 1", got)
	}
	if got := profile.Preferences.Markets[domain.MarketTW]; got != 1 {
		t.Errorf("TW market tally = %d, want 1", got)
	}
}

func TestAnalyzeUserProfile_SectorTallySkipsMissingMeta(t *testing.T) {
	svc, fakes := newTestService()
	fakes.behavior.behaviors = []domain.UserBehavior{
		{Symbol: "AAPL", ViewCount: 1, LastViewedAt: time.Now()},
		{Symbol: "MSFT", ViewCount: 1, LastViewedAt: time.Now()},
		{Symbol: "XOM", ViewCount: 1, LastViewedAt: time.Now()},
	}
	fakes.meta.metas = map[string]domain.StockMeta{
		"AAPL": {Symbol: "AAPL", Sector: "Technology"},
		"MSFT": {Symbol: "MSFT", Sector: "Technology"},
		// XOM intentionally missing
	}

	profile, err := svc.AnalyzeUserProfile(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := profile.Preferences.Sectors["Technology"]; got != 2 {
		t.Errorf("Technology tally = %d, want 2", got)
	}
	if len(profile.Preferences.Sectors) != 1 {
		t.Errorf("sector map = %v, want only Technology", profile.Preferences.Sectors)
	}
}

func TestAnalyzeUserProfile_MetaFailureDegradesOnly(t *testing.T) {
	svc, fakes := newTestService()
	fakes.behavior.behaviors = []domain.UserBehavior{
		{Symbol: "AAPL", ViewCount: 1, LastViewedAt: time.Now()},
	}
	fakes.meta.err = errors.New("meta store down")

	profile, err := svc.AnalyzeUserProfile(context.Background(), 1)
	if err != nil {
		t.Fatalf("metadata failure must not fail the profile: %v", err)
	}
	if len(profile.Preferences.Sectors) != 0 {
		t.Errorf("sectors = %v, want empty on meta failure", profile.Preferences.Sectors)
	}
	if len(profile.ViewedSymbols) != 1 {
		t.Errorf("viewed symbols = %d, want 1", len(profile.ViewedSymbols))
	}
}

func TestAnalyzeUserProfile_RepoFailure(t *testing.T) {
	svc, fakes := newTestService()
	fakes.portfolio.err = errors.New("db down")

	_, err := svc.AnalyzeUserProfile(context.Background(), 1)
	if !errors.Is(err, ErrDataUnavailable) {
		t.Fatalf("got %v, want ErrDataUnavailable", err)
	}
}

func TestDominantMarket(t *testing.T) {
	profile := &UserProfile{
		Preferences: Preferences{
			Markets: map[domain.Market]int{domain.MarketTW: 5, domain.MarketUS: 2},
		},
	}
	market, ok := profile.DominantMarket()
	if !ok || market != domain.MarketTW {
		t.Errorf("DominantMarket = %s, %v; want TW, true", market, ok)
	}

	empty := &UserProfile{Preferences: Preferences{Markets: map[domain.Market]int{}}}
	if _, ok := empty.DominantMarket(); ok {
		t.Error("empty profile must not report a dominant market")
	}
}

func TestHasSeen_CoversAllSets(t *testing.T) {
	profile := &UserProfile{
		ViewedSymbols:    map[string]struct{}{"AAPL": {}},
		PortfolioSymbols: map[string]struct{}{"MSFT": {}},
		FavoriteSymbols:  map[string]struct{}{"2330.TW": {}},
	}

	for _, symbol := range []string{"AAPL", "MSFT", "2330.TW"} {
		if !profile.HasSeen(symbol) {
			t.Errorf("HasSeen(%q) = false, want true", symbol)
		}
	}
	if profile.HasSeen("NVDA") {
		t.Error("HasSeen(NVDA) = true, want false")
	}
}
