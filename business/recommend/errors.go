package recommend

import "errors"

var (
	// ErrInvalidInput marks a caller mistake (non-positive count/limit,
	// bad decay period). Never silently coerced.
	ErrInvalidInput = errors.New("invalid input")

	// ErrDataUnavailable marks a failed underlying fetch (behavior,
	// watchlist, portfolio or popularity pool).
	ErrDataUnavailable = errors.New("data unavailable")

	// ErrRecommendationUnavailable is what the orchestrator surfaces when
	// any of its data sources fail. It wraps ErrDataUnavailable.
	ErrRecommendationUnavailable = errors.New("recommendations unavailable")
)
