package analysis

// PriceBreakdown itemizes how the final value was reached. The terms are
// additive: base plus the adjustments reconciles to FinalValue when the
// model does not supply its own final figure.
type PriceBreakdown struct {
	BaseValue           float64 `json:"baseValue"` // >= 0
	MileageAdjustment   float64 `json:"mileageAdjustment"`
	ConditionAdjustment float64 `json:"conditionAdjustment"`
	DamagePenalty       float64 `json:"damagePenalty"` // <= 0
	MarketAdjustment    float64 `json:"marketAdjustment"`
	FinalValue          float64 `json:"finalValue"` // >= 0
}

// InvestmentAnalysis grades the vehicle as a purchase.
type InvestmentAnalysis struct {
	Rating InvestmentRating `json:"rating"`
	Trend  ValueTrend       `json:"expectedTrend"`
	Notes  string           `json:"notes"`
}

// ComparableVehicle is one market comparable cited by the model.
type ComparableVehicle struct {
	Description string  `json:"description"`
	Price       float64 `json:"price"` // >= 0
	Year        int     `json:"year"`
	Mileage     int     `json:"mileage"` // >= 0
	Source      string  `json:"source"`
}

// ValuationResult is the sanitized output of a valuation analysis.
type ValuationResult struct {
	Provenance      Provenance          `json:"provenance"`
	EstimatedValue  float64             `json:"estimatedValue"` // >= 0
	MarketAnalysis  string              `json:"marketAnalysis"`
	Condition       ConditionTier       `json:"condition"`
	Breakdown       PriceBreakdown      `json:"priceBreakdown"`
	Position        MarketPosition      `json:"marketPosition"`
	Investment      InvestmentAnalysis  `json:"investmentAnalysis"`
	Recommendations []string            `json:"recommendations"` // never empty
	Comparables     []ComparableVehicle `json:"comparableVehicles"`
	// DamageConsidered is false when the valuation ran without a damage
	// context, either because none was requested or because the
	// prerequisite analysis failed.
	DamageConsidered bool `json:"damageConsidered"`
}

// ReportResult is the sanitized output of the comprehensive report.
type ReportResult struct {
	Provenance        Provenance     `json:"provenance"`
	Summary           string         `json:"executiveSummary"`
	KeyFindings       []string       `json:"keyFindings"` // never empty
	ExpertOpinion     string         `json:"expertOpinion"`
	Recommendation    Recommendation `json:"finalRecommendation"`
	NegotiationMargin int            `json:"negotiationMarginPercent"` // 0..100
}
