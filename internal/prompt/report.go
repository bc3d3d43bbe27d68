package prompt

import (
	"autoinspect/internal/analysis"
)

// Report builds the comprehensive-report prompt. Either prerequisite
// result may be nil; the prompt then states what is missing instead of
// aborting, so a report can always be produced.
func Report(v analysis.VehicleInfo, damage *analysis.AnalysisResult, valuation *analysis.ValuationResult) string {
	spec := Spec{
		Purpose: "Write the final expert verdict for this vehicle, combining the damage " +
			"assessment and the market valuation into one recommendation.",
		Context: reportContext(v, damage, valuation),
		Fields: []Field{
			{Name: "executiveSummary", Type: "string", Description: "two to four sentences for a non-technical reader"},
			{Name: "keyFindings", Type: "array of strings", Description: "the findings that drive the verdict"},
			{Name: "expertOpinion", Type: "string", Description: "detailed reasoning behind the recommendation"},
			{Name: "finalRecommendation", Type: "string", Allowed: "buy, negotiate, inspect-first, avoid"},
			{Name: "negotiationMarginPercent", Type: "integer", Description: "suggested discount off asking price, 0-100"},
			{Name: "confidence", Type: "integer", Description: "overall confidence, 0-100"},
		},
		Rules: withBaseRules(
			"Ground every key finding in the supplied assessments; do not invent new damage.",
			"When an assessment is missing, recommend inspect-first unless the photographs clearly justify otherwise.",
		),
		Example: reportExample,
	}
	return spec.Render()
}

func reportContext(v analysis.VehicleInfo, damage *analysis.AnalysisResult, valuation *analysis.ValuationResult) []string {
	ctx := vehicleContext(v)
	if damage != nil {
		ctx = append(ctx, contextJSON("Completed damage assessment", damageSummary(damage)))
	} else {
		ctx = append(ctx, "No damage assessment is available.")
	}
	if valuation != nil {
		ctx = append(ctx, contextJSON("Completed valuation", valuationSummary(valuation)))
	} else {
		ctx = append(ctx, "No valuation is available.")
	}
	return ctx
}

func valuationSummary(v *analysis.ValuationResult) map[string]any {
	return map[string]any{
		"estimatedValue": v.EstimatedValue,
		"condition":      string(v.Condition),
		"marketPosition": string(v.Position),
		"rating":         string(v.Investment.Rating),
		"expectedTrend":  string(v.Investment.Trend),
	}
}

const reportExample = `{
  "executiveSummary": "A well-kept example with one cosmetic dent. Priced at market; the repair cost gives room to negotiate.",
  "keyFindings": [
    "Single cosmetic dent on the front left fender, 350 estimated repair",
    "No structural or safety findings",
    "Asking price within 3% of the market estimate"
  ],
  "expertOpinion": "The vehicle is mechanically unremarkable and the only damage is cosmetic. The repair estimate is small relative to the vehicle value and fully negotiable.",
  "finalRecommendation": "negotiate",
  "negotiationMarginPercent": 4,
  "confidence": 84
}`
