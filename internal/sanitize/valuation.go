package sanitize

import (
	"math"

	"autoinspect/internal/analysis"
)

// Valuation coerces an extracted payload into a complete
// ValuationResult. damageConsidered records whether a sanitized damage
// result was part of the prompt context. Total: never errors.
func (s *Sanitizer) Valuation(raw any, prov analysis.Provenance, damageConsidered bool) analysis.ValuationResult {
	obj := asObject(raw)
	inf := math.Inf(1)

	breakdown := s.priceBreakdown(asObject(obj["priceBreakdown"]))

	r := applyRules(obj, []rule{
		{key: "estimatedValue", kind: kindFloat, min: 0, max: inf, def: breakdown.FinalValue},
		{key: "marketAnalysis", kind: kindString, def: "Automated market analysis unavailable; manual valuation recommended."},
		{key: "condition", kind: kindEnum, enum: conditions, def: string(analysis.DefaultCondition)},
		{key: "marketPosition", kind: kindEnum, enum: marketPositions, def: string(analysis.DefaultMarketPosition)},
		{key: "recommendations", kind: kindStringList},
	})

	recs := r.list("recommendations")
	if len(recs) == 0 {
		recs = []string{"Have the vehicle inspected in person before purchase."}
	}

	prov.Confidence = coerceInt(obj["confidence"], 0, 100, s.h.DefaultConfidence)

	return analysis.ValuationResult{
		Provenance:       prov,
		EstimatedValue:   r.float("estimatedValue"),
		MarketAnalysis:   r.str("marketAnalysis"),
		Condition:        analysis.ConditionTier(r.str("condition")),
		Breakdown:        breakdown,
		Position:         analysis.MarketPosition(r.str("marketPosition")),
		Investment:       s.investment(asObject(obj["investmentAnalysis"])),
		Recommendations:  recs,
		Comparables:      s.comparables(obj["comparableVehicles"]),
		DamageConsidered: damageConsidered,
	}
}

// priceBreakdown keeps the additive terms internally consistent: when
// the model omitted the final value it is recomputed from the terms.
func (s *Sanitizer) priceBreakdown(obj map[string]any) analysis.PriceBreakdown {
	inf := math.Inf(1)
	r := applyRules(obj, []rule{
		{key: "baseValue", kind: kindFloat, min: 0, max: inf, def: 0.0},
		{key: "mileageAdjustment", kind: kindFloat, min: math.Inf(-1), max: inf, def: 0.0},
		{key: "conditionAdjustment", kind: kindFloat, min: math.Inf(-1), max: inf, def: 0.0},
		{key: "damagePenalty", kind: kindFloat, min: math.Inf(-1), max: 0, def: 0.0},
		{key: "marketAdjustment", kind: kindFloat, min: math.Inf(-1), max: inf, def: 0.0},
	})
	sum := r.float("baseValue") + r.float("mileageAdjustment") + r.float("conditionAdjustment") +
		r.float("damagePenalty") + r.float("marketAdjustment")
	if sum < 0 {
		sum = 0
	}
	final := applyRules(obj, []rule{
		{key: "finalValue", kind: kindFloat, min: 0, max: inf, def: sum},
	})
	return analysis.PriceBreakdown{
		BaseValue:           r.float("baseValue"),
		MileageAdjustment:   r.float("mileageAdjustment"),
		ConditionAdjustment: r.float("conditionAdjustment"),
		DamagePenalty:       r.float("damagePenalty"),
		MarketAdjustment:    r.float("marketAdjustment"),
		FinalValue:          final.float("finalValue"),
	}
}

func (s *Sanitizer) investment(obj map[string]any) analysis.InvestmentAnalysis {
	r := applyRules(obj, []rule{
		{key: "rating", kind: kindEnum, enum: investmentRatings, def: string(analysis.DefaultInvestmentRating)},
		{key: "expectedTrend", kind: kindEnum, enum: valueTrends, def: string(analysis.DefaultValueTrend)},
		{key: "notes", kind: kindString, def: "No investment notes provided."},
	})
	return analysis.InvestmentAnalysis{
		Rating: analysis.InvestmentRating(r.str("rating")),
		Trend:  analysis.ValueTrend(r.str("expectedTrend")),
		Notes:  r.str("notes"),
	}
}

// comparables may legitimately be empty; each present entry is still
// fully bounded.
func (s *Sanitizer) comparables(raw any) []analysis.ComparableVehicle {
	inf := math.Inf(1)
	list := asList(raw)
	out := make([]analysis.ComparableVehicle, 0, len(list))
	for _, el := range list {
		r := applyRules(asObject(el), []rule{
			{key: "description", kind: kindString, def: "Comparable listing"},
			{key: "price", kind: kindFloat, min: 0, max: inf, def: 0.0},
			{key: "year", kind: kindInt, min: 0, max: inf, def: 0},
			{key: "mileage", kind: kindInt, min: 0, max: inf, def: 0},
			{key: "source", kind: kindString, def: "unknown"},
		})
		out = append(out, analysis.ComparableVehicle{
			Description: r.str("description"),
			Price:       r.float("price"),
			Year:        r.int("year"),
			Mileage:     r.int("mileage"),
			Source:      r.str("source"),
		})
	}
	return out
}

// Report coerces an extracted payload into a complete ReportResult.
func (s *Sanitizer) Report(raw any, prov analysis.Provenance) analysis.ReportResult {
	obj := asObject(raw)
	r := applyRules(obj, []rule{
		{key: "executiveSummary", kind: kindString, def: "Automated report incomplete; manual review recommended."},
		{key: "keyFindings", kind: kindStringList},
		{key: "expertOpinion", kind: kindString, def: "Insufficient model output to form an expert opinion."},
		{key: "finalRecommendation", kind: kindEnum, enum: recommendations, def: string(analysis.DefaultRecommendation)},
		{key: "negotiationMarginPercent", kind: kindInt, min: 0, max: 100, def: 0},
	})
	findings := r.list("keyFindings")
	if len(findings) == 0 {
		findings = []string{"Analysis incomplete; manual review recommended."}
	}
	prov.Confidence = coerceInt(obj["confidence"], 0, 100, s.h.DefaultConfidence)
	return analysis.ReportResult{
		Provenance:        prov,
		Summary:           r.str("executiveSummary"),
		KeyFindings:       findings,
		ExpertOpinion:     r.str("expertOpinion"),
		Recommendation:    analysis.Recommendation(r.str("finalRecommendation")),
		NegotiationMargin: r.int("negotiationMarginPercent"),
	}
}

var (
	marketPositions   = enumVals("below-market", "at-market", "above-market")
	investmentRatings = enumVals("poor", "fair", "good", "excellent")
	valueTrends       = enumVals("depreciating", "stable", "appreciating")
	recommendations   = enumVals("buy", "negotiate", "inspect-first", "avoid")
)
