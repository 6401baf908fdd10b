package scoring

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPurchaseScore(t *testing.T) {
	tests := []struct {
		amount float64
		want   int
	}{
		{0, 0},
		{-100, 0},
		{1, 2},
		{99_999, 2},
		{100_000, 4},
		{200_000, 6},
		{499_999, 6},
		{500_000, 8},
		{999_999, 8},
		{1_000_000, 10},
		{5_000_000, 10},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, PurchaseScore(tt.amount), "amount %v", tt.amount)
	}
}

func TestConsumptionScore(t *testing.T) {
	tests := []struct {
		amount float64
		want   int
	}{
		{0, 0},
		{500, 2},
		{10_000, 4},
		{20_000, 6},
		{50_000, 8},
		{100_000, 10},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ConsumptionScore(tt.amount), "amount %v", tt.amount)
	}
}

func TestBandedScores_Monotonic(t *testing.T) {
	amounts := []float64{0, 1, 500, 9_999, 10_000, 50_000, 99_999, 100_000,
		200_000, 500_000, 999_999, 1_000_000, 2_000_000}

	prevPurchase, prevConsumption := -1, -1
	for _, amount := range amounts {
		p := PurchaseScore(amount)
		c := ConsumptionScore(amount)
		assert.GreaterOrEqual(t, p, prevPurchase, "purchase score decreased at %v", amount)
		assert.GreaterOrEqual(t, c, prevConsumption, "consumption score decreased at %v", amount)
		prevPurchase, prevConsumption = p, c
	}
}

func TestCompositeScore(t *testing.T) {
	assert.Equal(t, 10.0, CompositeScore(10, 10, 10, 10))
	assert.Equal(t, 0.0, CompositeScore(0, 0, 0, 0))
	// 0.4*8 + 0.3*6 + 0.2*5 + 0.1*3 = 3.2 + 1.8 + 1.0 + 0.3
	assert.Equal(t, 6.3, CompositeScore(8, 6, 5, 3))
	// rounded to two decimals
	assert.Equal(t, 3.33, CompositeScore(3.33, 3.33, 3.33, 3.34))
}

func TestCompositeScore_NaNCoercedToZero(t *testing.T) {
	assert.Equal(t, 4.0, CompositeScore(10, math.NaN(), 0, 0))
	assert.Equal(t, 0.0, CompositeScore(math.NaN(), math.NaN(), math.NaN(), math.NaN()))
}

func TestClassifyTier(t *testing.T) {
	tests := []struct {
		purchase    int
		consumption int
		want        string
	}{
		{10, 10, TierKeyAccount},
		{6, 6, TierKeyAccount}, // both axes exactly on the boundary
		{8, 4, TierPotential},
		{6, 0, TierPotential},
		{4, 8, TierStable},
		{0, 6, TierStable},
		{4, 4, TierGeneral},
		{0, 0, TierGeneral},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyTier(tt.purchase, tt.consumption),
			"purchase=%d consumption=%d", tt.purchase, tt.consumption)
	}
}

func TestPriorityLabel(t *testing.T) {
	tests := []struct {
		composite float64
		want      string
	}{
		{10, "S+"},
		{9, "S+"},
		{8.5, "S"},
		{7, "A+"},
		{6.3, "A"},
		{5, "B+"},
		{4.2, "B"},
		{3, "C+"},
		{2, "C"},
		{1.9, "D"},
		{0, "D"},
		{math.NaN(), "D"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, PriorityLabel(tt.composite), "composite %v", tt.composite)
	}
}
