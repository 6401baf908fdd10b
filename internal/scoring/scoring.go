package scoring

import "math"

// Customer tiers.
const (
	TierKeyAccount = "重點客戶"
	TierPotential  = "潛力客戶"
	TierStable     = "穩定客戶"
	TierGeneral    = "一般客戶"
)

// Composite score weights: purchase, consumption, relationship, potential.
const (
	weightPurchase     = 0.4
	weightConsumption  = 0.3
	weightRelationship = 0.2
	weightPotential    = 0.1
)

type band struct {
	threshold float64
	score     int
}

// Purchase amount bands, combined annual value.
var purchaseBands = []band{
	{1_000_000, 10},
	{500_000, 8},
	{200_000, 6},
	{100_000, 4},
}

// Recurring consumption bands.
var consumptionBands = []band{
	{100_000, 10},
	{50_000, 8},
	{20_000, 6},
	{10_000, 4},
}

// PurchaseScore maps a purchase/budget amount onto the discrete 0/2/4/6/8/10
// scale. Monotonically non-decreasing in the input.
func PurchaseScore(amount float64) int {
	return bandedScore(amount, purchaseBands)
}

// ConsumptionScore maps recurring spend onto the discrete 0/2/4/6/8/10 scale.
func ConsumptionScore(amount float64) int {
	return bandedScore(amount, consumptionBands)
}

func bandedScore(amount float64, bands []band) int {
	if math.IsNaN(amount) {
		amount = 0
	}
	for _, b := range bands {
		if amount >= b.threshold {
			return b.score
		}
	}
	if amount > 0 {
		return 2
	}
	return 0
}

// CompositeScore combines the four component scores with fixed weights,
// rounded to two decimals. Missing (NaN) inputs are coerced to zero.
func CompositeScore(purchase, consumption, relationship, potential float64) float64 {
	total := zeroIfNaN(purchase)*weightPurchase +
		zeroIfNaN(consumption)*weightConsumption +
		zeroIfNaN(relationship)*weightRelationship +
		zeroIfNaN(potential)*weightPotential
	return math.Round(total*100) / 100
}

func zeroIfNaN(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return v
}

// High/low boundary on each classification axis.
const tierAxisThreshold = 6

type tierRule struct {
	matches func(purchase, consumption int) bool
	label   string
}

// Ordered rule list; first match wins. Both axes exactly on the boundary
// classify as key account.
var tierRules = []tierRule{
	{func(p, c int) bool { return p >= tierAxisThreshold && c >= tierAxisThreshold }, TierKeyAccount},
	{func(p, c int) bool { return p >= tierAxisThreshold }, TierPotential},
	{func(p, c int) bool { return c >= tierAxisThreshold }, TierStable},
	{func(p, c int) bool { return true }, TierGeneral},
}

// ClassifyTier buckets the two axis scores into one of four named tiers.
func ClassifyTier(purchaseScore, consumptionScore int) string {
	for _, rule := range tierRules {
		if rule.matches(purchaseScore, consumptionScore) {
			return rule.label
		}
	}
	return TierGeneral
}

type priorityRule struct {
	min   float64
	label string
}

// Nine ordered priority tiers over the composite score.
var priorityRules = []priorityRule{
	{9, "S+"},
	{8, "S"},
	{7, "A+"},
	{6, "A"},
	{5, "B+"},
	{4, "B"},
	{3, "C+"},
	{2, "C"},
	{0, "D"},
}

// PriorityLabel maps the weighted composite score onto nine priority tiers.
func PriorityLabel(composite float64) string {
	if math.IsNaN(composite) {
		composite = 0
	}
	for _, rule := range priorityRules {
		if composite >= rule.min {
			return rule.label
		}
	}
	return "D"
}
