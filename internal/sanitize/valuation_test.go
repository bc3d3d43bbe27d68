package sanitize

import (
	"testing"

	"github.com/stretchr/testify/require"

	"autoinspect/internal/analysis"
)

func TestValuation_TotalOverDegenerateInputs(t *testing.T) {
	s := NewDefault()
	for name, in := range map[string]any{
		"nil":    nil,
		"string": "prose",
		"array":  []any{"a"},
		"empty":  map[string]any{},
		"wrong types": decode(t, `{"estimatedValue":"lots","priceBreakdown":"none",
			"recommendations":42,"comparableVehicles":{"a":1},"investmentAnalysis":null}`),
	} {
		t.Run(name, func(t *testing.T) {
			r := require.New(t)
			out := s.Valuation(in, testProv(), false)
			r.GreaterOrEqual(out.EstimatedValue, 0.0)
			r.NotEmpty(out.MarketAnalysis)
			r.Contains(conditions, string(out.Condition))
			r.Contains(marketPositions, string(out.Position))
			r.Contains(investmentRatings, string(out.Investment.Rating))
			r.Contains(valueTrends, string(out.Investment.Trend))
			r.NotEmpty(out.Recommendations)
			r.NotNil(out.Comparables)
			r.GreaterOrEqual(out.Breakdown.FinalValue, 0.0)
			r.LessOrEqual(out.Breakdown.DamagePenalty, 0.0)
			r.False(out.DamageConsidered)
		})
	}
}

func TestValuation_BreakdownReconciliation(t *testing.T) {
	s := NewDefault()
	raw := decode(t, `{"priceBreakdown":{
		"baseValue": 16000,
		"mileageAdjustment": -500,
		"conditionAdjustment": -250,
		"damagePenalty": -750,
		"marketAdjustment": 100
	}}`)
	out := s.Valuation(raw, testProv(), true)
	if out.Breakdown.FinalValue != 14600 {
		t.Fatalf("finalValue = %v, want 14600", out.Breakdown.FinalValue)
	}
	if out.EstimatedValue != 14600 {
		t.Fatalf("estimatedValue = %v, want finalValue 14600", out.EstimatedValue)
	}
	if !out.DamageConsidered {
		t.Fatal("DamageConsidered not carried through")
	}
}

func TestValuation_PositiveDamagePenaltyClampedToZero(t *testing.T) {
	s := NewDefault()
	raw := decode(t, `{"priceBreakdown":{"baseValue": 1000, "damagePenalty": 300}}`)
	out := s.Valuation(raw, testProv(), true)
	if out.Breakdown.DamagePenalty != 0 {
		t.Fatalf("damagePenalty = %v, want 0", out.Breakdown.DamagePenalty)
	}
	if out.Breakdown.FinalValue != 1000 {
		t.Fatalf("finalValue = %v, want 1000", out.Breakdown.FinalValue)
	}
}

func TestValuation_ComparablesBounded(t *testing.T) {
	s := NewDefault()
	raw := decode(t, `{"comparableVehicles":[
		{"description":"clean example","price":-100,"year":"2019","mileage":55000},
		"garbage",
		{}
	]}`)
	out := s.Valuation(raw, testProv(), false)
	if len(out.Comparables) != 3 {
		t.Fatalf("comparables = %d, want 3", len(out.Comparables))
	}
	if out.Comparables[0].Price != 0 {
		t.Fatalf("negative price not clamped: %v", out.Comparables[0].Price)
	}
	if out.Comparables[0].Year != 2019 {
		t.Fatalf("string year not coerced: %v", out.Comparables[0].Year)
	}
	if out.Comparables[1].Description == "" {
		t.Fatal("garbage entry not defaulted")
	}
}

func TestReport_TotalAndBounded(t *testing.T) {
	s := NewDefault()
	r := require.New(t)
	for _, in := range []any{nil, "x", []any{}, map[string]any{}} {
		out := s.Report(in, testProv())
		r.NotEmpty(out.Summary)
		r.NotEmpty(out.KeyFindings)
		r.Contains(recommendations, string(out.Recommendation))
		r.GreaterOrEqual(out.NegotiationMargin, 0)
		r.LessOrEqual(out.NegotiationMargin, 100)
	}

	raw := decode(t, `{"executiveSummary":"Solid car.","keyFindings":["one","two"],
		"finalRecommendation":"buy","negotiationMarginPercent":150,"confidence":70}`)
	out := s.Report(raw, testProv())
	if out.Recommendation != analysis.RecommendBuy {
		t.Fatalf("recommendation = %q, want buy", out.Recommendation)
	}
	if out.NegotiationMargin != 100 {
		t.Fatalf("margin = %d, want clamped 100", out.NegotiationMargin)
	}
	if out.Provenance.Confidence != 70 {
		t.Fatalf("confidence = %d, want 70", out.Provenance.Confidence)
	}
}
