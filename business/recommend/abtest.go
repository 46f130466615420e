package recommend

import (
	"fmt"
	"math"
)

// ABTestConfig is one of the two fixed decay configurations under test.
type ABTestConfig struct {
	Variant         string `json:"variant"`
	DecayPeriodDays int    `json:"decay_period_days"`
	Description     string `json:"description"`
}

const (
	VariantA = "A"
	VariantB = "B"
)

// abTestVariants is the static variant table. It is never mutated at
// runtime.
var abTestVariants = map[string]ABTestConfig{
	VariantA: {
		Variant:         VariantA,
		DecayPeriodDays: 7,
		Description:     "7 天衰減週期（短期行為權重高）",
	},
	VariantB: {
		Variant:         VariantB,
		DecayPeriodDays: 14,
		Description:     "14 天衰減週期（中期行為權重高）",
	},
}

// GetUserABTestVariant assigns a user to a variant by ID parity: even IDs
// get A (7 days), odd IDs get B (14 days). The assignment is stable across
// calls and restarts and splits any contiguous even-length ID range 50/50.
func GetUserABTestVariant(userID uint) ABTestConfig {
	if userID%2 == 0 {
		return abTestVariants[VariantA]
	}
	return abTestVariants[VariantB]
}

// CalculateTimeDecayFactor returns exp(-days/period), the interest
// staleness weight for a behavioral signal. 1.0 at zero days, strictly
// decreasing, never reaches zero.
func CalculateTimeDecayFactor(daysSinceLastView, decayPeriodDays float64) (float64, error) {
	if decayPeriodDays <= 0 {
		return 0, fmt.Errorf("%w: decay period must be positive, got %v", ErrInvalidInput, decayPeriodDays)
	}
	if daysSinceLastView < 0 {
		return 0, fmt.Errorf("%w: days since last view must be non-negative, got %v", ErrInvalidInput, daysSinceLastView)
	}

	return math.Exp(-daysSinceLastView / decayPeriodDays), nil
}

// GetUserTimeDecayFactor applies the decay formula with the period of the
// user's assigned variant.
func GetUserTimeDecayFactor(userID uint, daysSinceLastView float64) (float64, error) {
	cfg := GetUserABTestVariant(userID)
	return CalculateTimeDecayFactor(daysSinceLastView, float64(cfg.DecayPeriodDays))
}
