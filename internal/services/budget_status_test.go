package services

import (
	"math"
	"testing"
)

func closeTo(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestDeriveStatus(t *testing.T) {
	tests := []struct {
		name      string
		amount    float64
		spending  float64
		threshold float64
		wantPct   float64
		wantOver  bool
		wantTier  string
		wantLeft  float64
	}{
		{"untouched", 1000, 0, 80, 0, false, TierGood, 1000},
		{"under_threshold", 1000, 500, 80, 50, false, TierGood, 500},
		{"just_below_threshold", 1000, 799, 80, 79.9, false, TierGood, 201},
		{"at_threshold", 1000, 800, 80, 80, false, TierWarning, 200},
		{"at_limit", 1000, 1000, 80, 100, false, TierWarning, 0},
		{"over_limit", 1000, 1001, 80, 100, true, TierOver, 0},
		{"far_over", 1000, 2500, 80, 100, true, TierOver, 0},
		{"zero_amount", 0, 100, 80, 0, true, TierOver, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveStatus(tt.amount, tt.spending, tt.threshold)
			if !closeTo(got.PercentageUsed, tt.wantPct) {
				t.Errorf("PercentageUsed = %v, want %v", got.PercentageUsed, tt.wantPct)
			}
			if got.IsOverBudget != tt.wantOver {
				t.Errorf("IsOverBudget = %v, want %v", got.IsOverBudget, tt.wantOver)
			}
			if got.Tier != tt.wantTier {
				t.Errorf("Tier = %q, want %q", got.Tier, tt.wantTier)
			}
			if !closeTo(got.Remaining, tt.wantLeft) {
				t.Errorf("Remaining = %v, want %v", got.Remaining, tt.wantLeft)
			}
			if got.Spending != tt.spending {
				t.Errorf("Spending = %v, want %v", got.Spending, tt.spending)
			}
		})
	}
}

func TestDeriveStatusCustomThreshold(t *testing.T) {
	got := DeriveStatus(1000, 550, 50)
	if got.Tier != TierWarning {
		t.Errorf("expected warning tier at 55%% with threshold 50, got %q", got.Tier)
	}

	got = DeriveStatus(1000, 550, 90)
	if got.Tier != TierGood {
		t.Errorf("expected good tier at 55%% with threshold 90, got %q", got.Tier)
	}
}
