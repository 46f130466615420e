package domain

import "time"

// RecommendationResult is what the orchestrator hands back to the API
// layer. It is never persisted by the engine itself.
type RecommendationResult struct {
	Recommendations []string `json:"recommendations"`
	Reason          string   `json:"reason"`
}

// RecommendedStock is one scored entry of the history-based personalized
// recommendation list.
type RecommendedStock struct {
	Symbol        string    `json:"symbol"`
	Score         float64   `json:"score"`
	Reason        string    `json:"reason"`
	ViewCount     int       `json:"view_count"`
	SearchCount   int       `json:"search_count"`
	TotalViewTime int64     `json:"total_view_time"`
	IsFavorite    bool      `json:"is_favorite"`
	LastViewedAt  time.Time `json:"last_viewed_at"`
}

// ABTestMetrics is the on-demand aggregate for one user's variant over a
// time window.
type ABTestMetrics struct {
	Variant                  string  `json:"variant"`
	TotalRecommendations     int     `json:"total_recommendations"`
	ClickedRecommendations   int     `json:"clicked_recommendations"`
	ClickThroughRate         float64 `json:"click_through_rate"`
	AverageViewTime          float64 `json:"average_view_time"`
	FavoritedRecommendations int     `json:"favorited_recommendations"`
	FavoriteRate             float64 `json:"favorite_rate"`
}

// ABTestComparison is the outcome of weighing two variants against each
// other.
type ABTestComparison struct {
	ClickThroughRateDiff float64 `json:"click_through_rate_diff"`
	AverageViewTimeDiff  float64 `json:"average_view_time_diff"`
	FavoriteRateDiff     float64 `json:"favorite_rate_diff"`
	Winner               string  `json:"winner"` // "A", "B" or "tie"
}
