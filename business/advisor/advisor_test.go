package advisor

import (
	"strings"
	"testing"

	"stockpulse/business/recommend"
	"stockpulse/domain"
)

func TestNew_DisabledWithoutAPIKey(t *testing.T) {
	if svc := New(Config{BaseURL: "https://api.example.com/v1"}); svc != nil {
		t.Error("New without an API key must return nil")
	}
}

func TestBuildReasonPrompt(t *testing.T) {
	profile := &recommend.UserProfile{
		ViewedSymbols:    map[string]struct{}{"AAPL": {}, "2330.TW": {}},
		PortfolioSymbols: map[string]struct{}{"MSFT": {}},
		FavoriteSymbols:  map[string]struct{}{"AAPL": {}},
		Preferences: recommend.Preferences{
			Markets:      map[domain.Market]int{domain.MarketUS: 3, domain.MarketTW: 1},
			AvgViewCount: 2.5,
			AvgViewTime:  45000,
		},
	}

	prompt := BuildReasonPrompt(profile, []string{"NVDA", "2317.TW"})

	for _, want := range []string{
		"已查看股票數量：2 個",
		"投資組合股票數量：1 個",
		"收藏股票數量：1 個",
		"US: 3 次",
		"平均停留時間：45 秒",
		"NVDA, 2317.TW",
		"繁體中文",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestBuildReasonPrompt_NoMarketPreference(t *testing.T) {
	profile := &recommend.UserProfile{
		ViewedSymbols:    map[string]struct{}{},
		PortfolioSymbols: map[string]struct{}{},
		FavoriteSymbols:  map[string]struct{}{},
		Preferences:      recommend.Preferences{Markets: map[domain.Market]int{}},
	}

	prompt := BuildReasonPrompt(profile, []string{"AAPL"})
	if !strings.Contains(prompt, "無明顯偏好") {
		t.Errorf("prompt should state there is no market preference:\n%s", prompt)
	}
}
