package advisor

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"stockpulse/business/recommend"
	"stockpulse/domain"
	"stockpulse/pkg/logger"

	"github.com/go-resty/resty/v2"
)

const systemPrompt = "你是一位專業的股票投資顧問，擅長根據用戶行為數據生成個人化的投資建議。"

// Service phrases recommendation rationales through an OpenAI-compatible
// chat completions endpoint. It satisfies recommend.ReasonGenerator.
type Service struct {
	client *resty.Client
	model  string
}

type Config struct {
	BaseURL string
	APIKey  string
	Model   string
}

// New returns nil when no API key is configured; the recommendation
// service treats a nil generator as "use static reasons".
func New(cfg Config) *Service {
	if cfg.APIKey == "" {
		return nil
	}

	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetAuthToken(cfg.APIKey).
		SetHeader("Content-Type", "application/json")

	return &Service{
		client: client,
		model:  cfg.Model,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// GenerateReason asks the LLM for a short rationale tying the recommended
// symbols to the user's behavior summary.
func (s *Service) GenerateReason(ctx context.Context, profile *recommend.UserProfile, symbols []string) (string, error) {
	req := chatRequest{
		Model: s.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: BuildReasonPrompt(profile, symbols)},
		},
	}

	var out chatResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&out).
		Post("/chat/completions")
	if err != nil {
		return "", fmt.Errorf("call chat completions: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("chat completions returned %s", resp.Status())
	}
	if len(out.Choices) == 0 {
		return "", errors.New("chat completions returned no choices")
	}

	reason := strings.TrimSpace(out.Choices[0].Message.Content)
	if reason == "" {
		return "", errors.New("chat completions returned empty content")
	}

	logger.Debug("advisor reason generated", "symbols", len(symbols))
	return reason, nil
}

// BuildReasonPrompt summarizes the profile into the user prompt. Exported
// for tests.
func BuildReasonPrompt(profile *recommend.UserProfile, symbols []string) string {
	marketPrefs := formatMarketPreferences(profile.Preferences.Markets)
	if marketPrefs == "" {
		marketPrefs = "無明顯偏好"
	}

	var b strings.Builder
	b.WriteString("你是一位專業的股票投資顧問，請根據用戶的投資行為數據，為推薦的股票生成簡短的推薦理由。\n\n")
	b.WriteString("**用戶行為摘要**：\n")
	fmt.Fprintf(&b, "- 已查看股票數量：%d 個\n", len(profile.ViewedSymbols))
	fmt.Fprintf(&b, "- 投資組合股票數量：%d 個\n", len(profile.PortfolioSymbols))
	fmt.Fprintf(&b, "- 收藏股票數量：%d 個\n", len(profile.FavoriteSymbols))
	fmt.Fprintf(&b, "- 市場偏好：%s\n", marketPrefs)
	fmt.Fprintf(&b, "- 平均查看次數：%.1f 次\n", profile.Preferences.AvgViewCount)
	fmt.Fprintf(&b, "- 平均停留時間：%d 秒\n", int64(profile.Preferences.AvgViewTime/1000))
	b.WriteString("\n**推薦的股票代碼**：\n")
	b.WriteString(strings.Join(symbols, ", "))
	b.WriteString("\n\n**要求**：\n")
	b.WriteString("1. 用繁體中文回答\n")
	b.WriteString("2. 推薦理由應該簡潔明瞭（1-2 句話）\n")
	b.WriteString("3. 強調這些股票與用戶偏好的相關性\n")
	b.WriteString("4. 強調這些是用戶尚未查看過的優質股票\n")
	b.WriteString("5. 不要提及具體的股價或財務數據\n\n")
	b.WriteString("請直接輸出推薦理由，不要包含任何標題或前綴。")

	return b.String()
}

func formatMarketPreferences(markets map[domain.Market]int) string {
	type entry struct {
		market domain.Market
		count  int
	}

	entries := make([]entry, 0, len(markets))
	for market, count := range markets {
		entries = append(entries, entry{market, count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].market < entries[j].market
	})

	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		parts = append(parts, fmt.Sprintf("%s: %d 次", e.market, e.count))
	}
	return strings.Join(parts, ", ")
}
