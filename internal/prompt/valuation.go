package prompt

import (
	"autoinspect/internal/analysis"
)

// Valuation builds the market-valuation prompt. When a sanitized damage
// result is supplied it is threaded into the context so the model can
// price the damage in; when damage is nil the prompt explicitly states
// that no damage assessment is available.
func Valuation(v analysis.VehicleInfo, damage *analysis.AnalysisResult) string {
	spec := Spec{
		Purpose: "Estimate the current market value of the vehicle shown in the attached " +
			"photographs and break the price down into its components.",
		Context: valuationContext(v, damage),
		Fields: []Field{
			{Name: "estimatedValue", Type: "number", Description: "final market value estimate, >= 0"},
			{Name: "marketAnalysis", Type: "string", Description: "free-text market situation summary"},
			{Name: "condition", Type: "string", Allowed: "excellent, good, fair, poor, damaged"},
			{Name: "priceBreakdown.baseValue", Type: "number", Description: "clean-vehicle reference value, >= 0"},
			{Name: "priceBreakdown.mileageAdjustment", Type: "number", Description: "signed adjustment"},
			{Name: "priceBreakdown.conditionAdjustment", Type: "number", Description: "signed adjustment"},
			{Name: "priceBreakdown.damagePenalty", Type: "number", Description: "zero or negative"},
			{Name: "priceBreakdown.marketAdjustment", Type: "number", Description: "signed adjustment"},
			{Name: "priceBreakdown.finalValue", Type: "number", Description: "base plus all adjustments"},
			{Name: "marketPosition", Type: "string", Allowed: "below-market, at-market, above-market"},
			{Name: "investmentAnalysis.rating", Type: "string", Allowed: "poor, fair, good, excellent"},
			{Name: "investmentAnalysis.expectedTrend", Type: "string", Allowed: "depreciating, stable, appreciating"},
			{Name: "investmentAnalysis.notes", Type: "string"},
			{Name: "recommendations", Type: "array of strings", Description: "actionable advice for a prospective buyer"},
			{Name: "comparableVehicles", Type: "array of objects", Description: "recently listed comparable vehicles"},
			{Name: "comparableVehicles[].description", Type: "string"},
			{Name: "comparableVehicles[].price", Type: "number", Description: ">= 0"},
			{Name: "comparableVehicles[].year", Type: "integer"},
			{Name: "comparableVehicles[].mileage", Type: "integer", Description: ">= 0"},
			{Name: "comparableVehicles[].source", Type: "string"},
			{Name: "confidence", Type: "integer", Description: "overall confidence, 0-100"},
		},
		Rules: withBaseRules(
			"priceBreakdown.finalValue must equal baseValue plus every adjustment term.",
			"estimatedValue must equal priceBreakdown.finalValue.",
			"When a damage assessment is given, damagePenalty must reflect its total repair cost.",
		),
		Example: valuationExample,
	}
	return spec.Render()
}

func valuationContext(v analysis.VehicleInfo, damage *analysis.AnalysisResult) []string {
	ctx := vehicleContext(v)
	if damage == nil {
		return append(ctx, "No damage assessment is available for this vehicle. "+
			"Value it from the photographs alone and note the missing assessment in marketAnalysis.")
	}
	summary := damageSummary(damage)
	return append(ctx, contextJSON("Completed damage assessment", summary))
}

// damageSummary projects a sanitized damage result onto the compact
// shape the valuation prompt embeds. Full results are too large to
// repeat verbatim and most fields do not influence pricing.
func damageSummary(d *analysis.AnalysisResult) map[string]any {
	areas := make([]map[string]any, 0, len(d.Areas))
	for _, a := range d.Areas {
		areas = append(areas, map[string]any{
			"category":   string(a.Category),
			"severity":   string(a.Severity),
			"region":     string(a.Region),
			"repairCost": a.RepairCost,
		})
	}
	return map[string]any{
		"damageLevel":       string(d.Overall.DamageLevel),
		"totalRepairCost":   d.Overall.TotalRepairCost,
		"marketValueImpact": d.Overall.MarketValueImpact,
		"vehicleCondition":  string(d.Overall.Condition),
		"areas":             areas,
	}
}

const valuationExample = `{
  "estimatedValue": 14250,
  "marketAnalysis": "Demand for this model is steady; supply in this trim is limited.",
  "condition": "good",
  "priceBreakdown": {
    "baseValue": 15800,
    "mileageAdjustment": -600,
    "conditionAdjustment": -250,
    "damagePenalty": -350,
    "marketAdjustment": -350,
    "finalValue": 14250
  },
  "marketPosition": "at-market",
  "investmentAnalysis": {
    "rating": "good",
    "expectedTrend": "depreciating",
    "notes": "Normal depreciation curve expected."
  },
  "recommendations": [
    "Negotiate the repair cost off the asking price",
    "Request the service history before purchase"
  ],
  "comparableVehicles": [
    {
      "description": "Same trim, one owner",
      "price": 14900,
      "year": 2019,
      "mileage": 78000,
      "source": "national listing aggregate"
    }
  ],
  "confidence": 81
}`
