package recommend

import (
	"errors"
	"math"
	"testing"
)

func TestGetUserABTestVariant_Parity(t *testing.T) {
	for userID := uint(0); userID < 20; userID++ {
		cfg := GetUserABTestVariant(userID)
		want := VariantA
		if userID%2 == 1 {
			want = VariantB
		}
		if cfg.Variant != want {
			t.Errorf("user %d: got variant %s, want %s", userID, cfg.Variant, want)
		}
	}
}

func TestGetUserABTestVariant_FiftyFiftySplit(t *testing.T) {
	countA := 0
	for userID := uint(1); userID <= 100; userID++ {
		if GetUserABTestVariant(userID).Variant == VariantA {
			countA++
		}
	}
	if countA != 50 {
		t.Errorf("expected exactly 50 users in A over 100 consecutive IDs, got %d", countA)
	}
}

func TestGetUserABTestVariant_Stable(t *testing.T) {
	first := GetUserABTestVariant(42)
	for i := 0; i < 10; i++ {
		if got := GetUserABTestVariant(42); got != first {
			t.Fatalf("assignment changed between calls: %+v vs %+v", got, first)
		}
	}
}

func TestGetUserABTestVariant_Periods(t *testing.T) {
	if got := GetUserABTestVariant(2).DecayPeriodDays; got != 7 {
		t.Errorf("variant A decay period = %d, want 7", got)
	}
	if got := GetUserABTestVariant(3).DecayPeriodDays; got != 14 {
		t.Errorf("variant B decay period = %d, want 14", got)
	}
}

func TestCalculateTimeDecayFactor(t *testing.T) {
	tests := []struct {
		name   string
		days   float64
		period float64
		want   float64
	}{
		{"zero days", 0, 7, 1.0},
		{"one period", 7, 7, 0.368},
		{"two periods", 14, 7, 0.135},
		{"half period B", 7, 14, 0.6065},
		{"one period B", 14, 14, 0.368},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CalculateTimeDecayFactor(tt.days, tt.period)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("decay(%v, %v) = %v, want %v", tt.days, tt.period, got, tt.want)
			}
		})
	}
}

func TestCalculateTimeDecayFactor_InvalidInput(t *testing.T) {
	if _, err := CalculateTimeDecayFactor(5, 0); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("zero period: got %v, want ErrInvalidInput", err)
	}
	if _, err := CalculateTimeDecayFactor(5, -7); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("negative period: got %v, want ErrInvalidInput", err)
	}
	if _, err := CalculateTimeDecayFactor(-1, 7); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("negative days: got %v, want ErrInvalidInput", err)
	}
}

func TestCalculateTimeDecayFactor_StrictlyDecreasing(t *testing.T) {
	prev := math.Inf(1)
	for days := 0.0; days <= 60; days++ {
		got, err := CalculateTimeDecayFactor(days, 7)
		if err != nil {
			t.Fatalf("unexpected error at %v days: %v", days, err)
		}
		if got <= 0 {
			t.Fatalf("decay at %v days = %v, must stay positive", days, got)
		}
		if got >= prev {
			t.Fatalf("decay not strictly decreasing at %v days: %v >= %v", days, got, prev)
		}
		prev = got
	}
}

// For the same staleness the slower 14-day variant must weigh the signal
// at least as heavily as the 7-day variant.
func TestGetUserTimeDecayFactor_VariantBRetainsMore(t *testing.T) {
	for days := 1.0; days <= 30; days++ {
		factorA, err := GetUserTimeDecayFactor(2, days)
		if err != nil {
			t.Fatalf("variant A: %v", err)
		}
		factorB, err := GetUserTimeDecayFactor(3, days)
		if err != nil {
			t.Fatalf("variant B: %v", err)
		}
		if factorB < factorA {
			t.Errorf("at %v days variant B factor %v < variant A factor %v", days, factorB, factorA)
		}
	}
}
