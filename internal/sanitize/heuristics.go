package sanitize

// Heuristics holds the constants used to fill aggregates the model
// omitted. The exact values are placeholder business rules, not domain
// truth; callers may tune them without touching the coercion logic.
type Heuristics struct {
	// MarketImpactBase is the market-value impact percent assumed when
	// any damage exists and the model gave no figure.
	MarketImpactBase int
	// MarketImpactPerArea is added per damage area beyond the first.
	MarketImpactPerArea int
	// MarketImpactCap bounds the derived impact percent.
	MarketImpactCap int
	// DefaultConfidence replaces unparsable confidence values.
	DefaultConfidence int
	// MinRepairHours floors per-area repair hour estimates.
	MinRepairHours float64
}

// DefaultHeuristics mirrors the platform's original constants.
func DefaultHeuristics() Heuristics {
	return Heuristics{
		MarketImpactBase:    5,
		MarketImpactPerArea: 5,
		MarketImpactCap:     25,
		DefaultConfidence:   50,
		MinRepairHours:      1,
	}
}

// Sanitizer converts extracted payloads into bounded results.
// Construct one per pipeline; it is stateless and safe for concurrent
// use.
type Sanitizer struct {
	h Heuristics
}

func New(h Heuristics) *Sanitizer {
	if h.MarketImpactCap <= 0 {
		h = DefaultHeuristics()
	}
	return &Sanitizer{h: h}
}

func NewDefault() *Sanitizer { return New(DefaultHeuristics()) }

// derivedMarketImpact computes the fallback market-value impact from
// the number of damage areas the model reported.
func (s *Sanitizer) derivedMarketImpact(areas int) int {
	if areas == 0 {
		return 0
	}
	impact := s.h.MarketImpactBase + s.h.MarketImpactPerArea*(areas-1)
	if impact > s.h.MarketImpactCap {
		impact = s.h.MarketImpactCap
	}
	return impact
}
