package sanitize

import (
	"fmt"
	"math"

	"autoinspect/internal/analysis"
)

// ManualReviewNote is the description carried by the placeholder area
// synthesized when the model reports no damage. Downstream rendering
// never operates on an empty damage list.
const ManualReviewNote = "No damage areas returned by the model; manual review recommended."

// Damage coerces an extracted payload into a complete AnalysisResult.
// Total: never returns an error, never panics.
func (s *Sanitizer) Damage(raw any, prov analysis.Provenance) analysis.AnalysisResult {
	obj := asObject(raw)

	rawAreas := asList(obj["damageAreas"])
	areas := make([]analysis.DamageArea, 0, len(rawAreas))
	for i, el := range rawAreas {
		areas = append(areas, s.damageArea(asObject(el), i))
	}
	reported := len(areas)
	if reported == 0 {
		areas = append(areas, s.placeholderArea())
	}

	var costSum, hourSum float64
	maxSeverity := analysis.SeverityMinimal
	if reported > 0 {
		for _, a := range areas {
			costSum += a.RepairCost
			hourSum += a.Hours
			if severityRank(a.Severity) > severityRank(maxSeverity) {
				maxSeverity = a.Severity
			}
		}
	}

	prov.Confidence = coerceInt(obj["confidence"], 0, 100, s.h.DefaultConfidence)

	overall := s.overall(asObject(obj["overallAssessment"]), reported, costSum, maxSeverity)
	return analysis.AnalysisResult{
		Provenance: prov,
		Areas:      areas,
		Overall:    overall,
		Technical:  s.technical(asObject(obj["technicalAnalysis"]), reported, maxSeverity),
		Safety:     s.safety(asObject(obj["safetyAssessment"])),
		Estimate:   s.estimate(asObject(obj["repairEstimate"]), costSum, hourSum),
	}
}

func (s *Sanitizer) damageArea(obj map[string]any, idx int) analysis.DamageArea {
	inf := math.Inf(1)
	r := applyRules(obj, []rule{
		{key: "id", kind: kindString, def: fmt.Sprintf("area-%d", idx+1)},
		{key: "x", kind: kindInt, min: 0, max: inf, def: 0},
		{key: "y", kind: kindInt, min: 0, max: inf, def: 0},
		{key: "width", kind: kindInt, min: 0, max: inf, def: 0},
		{key: "height", kind: kindInt, min: 0, max: inf, def: 0},
		{key: "category", kind: kindEnum, enum: damageCategories, def: string(analysis.DefaultCategory)},
		{key: "severity", kind: kindEnum, enum: severities, def: string(analysis.DefaultSeverity)},
		{key: "confidence", kind: kindInt, min: 0, max: 100, def: s.h.DefaultConfidence},
		{key: "description", kind: kindString, def: "Damage area reported without description; manual review recommended."},
		{key: "region", kind: kindEnum, enum: regions, def: string(analysis.DefaultRegion)},
		{key: "repairCost", kind: kindFloat, min: 0, max: inf, def: 0.0},
		{key: "affectedParts", kind: kindStringList},
		{key: "repairPriority", kind: kindEnum, enum: priorities, def: string(analysis.DefaultPriority)},
		{key: "safetyImpact", kind: kindEnum, enum: safetyImpacts, def: string(analysis.DefaultSafetyImpact)},
		{key: "repairMethod", kind: kindString, def: "To be determined by workshop assessment"},
		{key: "estimatedHours", kind: kindFloat, min: s.h.MinRepairHours, max: inf, def: s.h.MinRepairHours},
		{key: "warrantyImpact", kind: kindBool, def: false},
		{key: "insuranceCoverage", kind: kindEnum, enum: insuranceTiers, def: string(analysis.DefaultInsuranceTier)},
	})
	return analysis.DamageArea{
		ID:          r.str("id"),
		X:           r.int("x"),
		Y:           r.int("y"),
		Width:       r.int("width"),
		Height:      r.int("height"),
		Category:    analysis.DamageCategory(r.str("category")),
		Severity:    analysis.Severity(r.str("severity")),
		Confidence:  r.int("confidence"),
		Description: r.str("description"),
		Region:      analysis.Region(r.str("region")),
		RepairCost:  r.float("repairCost"),
		Parts:       r.list("affectedParts"),
		Priority:    analysis.RepairPriority(r.str("repairPriority")),
		Safety:      analysis.SafetyImpact(r.str("safetyImpact")),
		Method:      r.str("repairMethod"),
		Hours:       r.float("estimatedHours"),
		Warranty:    r.bool("warrantyImpact"),
		Insurance:   analysis.InsuranceTier(r.str("insuranceCoverage")),
	}
}

func (s *Sanitizer) placeholderArea() analysis.DamageArea {
	return analysis.DamageArea{
		ID:          "area-1",
		Category:    analysis.DefaultCategory,
		Severity:    analysis.SeverityMinimal,
		Confidence:  0,
		Description: ManualReviewNote,
		Region:      analysis.DefaultRegion,
		Parts:       []string{},
		Priority:    analysis.PriorityLow,
		Safety:      analysis.SafetyNone,
		Method:      "Manual inspection",
		Hours:       s.h.MinRepairHours,
		Insurance:   analysis.InsuranceReview,
	}
}

func (s *Sanitizer) overall(obj map[string]any, reported int, costSum float64, maxSeverity analysis.Severity) analysis.OverallAssessment {
	inf := math.Inf(1)
	derivedImpact := s.derivedMarketImpact(reported)
	r := applyRules(obj, []rule{
		{key: "damageLevel", kind: kindEnum, enum: damageLevels, def: string(levelFromSeverity(reported, maxSeverity))},
		{key: "totalRepairCost", kind: kindFloat, min: 0, max: inf, def: costSum},
		{key: "insuranceStatus", kind: kindEnum, enum: insuranceStatuses, def: string(analysis.DefaultInsuranceStatus)},
		{key: "marketValueImpact", kind: kindInt, min: 0, max: 100, def: derivedImpact},
		{key: "detailedAnalysis", kind: kindString, def: "Automated analysis incomplete; manual review recommended."},
		{key: "vehicleCondition", kind: kindEnum, enum: conditions, def: string(conditionFromSeverity(reported, maxSeverity))},
		{key: "depreciationPercent", kind: kindInt, min: 0, max: 100, def: derivedImpact},
	})
	// Resale defaults to the complement of depreciation, so the two
	// stay consistent when both were omitted.
	resale := applyRules(obj, []rule{
		{key: "resaleValuePercent", kind: kindInt, min: 0, max: 100, def: 100 - r.int("depreciationPercent")},
	})
	return analysis.OverallAssessment{
		DamageLevel:       analysis.DamageLevel(r.str("damageLevel")),
		TotalRepairCost:   r.float("totalRepairCost"),
		InsuranceStatus:   analysis.InsuranceStatus(r.str("insuranceStatus")),
		MarketValueImpact: r.int("marketValueImpact"),
		Analysis:          r.str("detailedAnalysis"),
		Condition:         analysis.ConditionTier(r.str("vehicleCondition")),
		ResaleValue:       resale.int("resaleValuePercent"),
		Depreciation:      r.int("depreciationPercent"),
	}
}

func (s *Sanitizer) technical(obj map[string]any, reported int, maxSeverity analysis.Severity) analysis.TechnicalAnalysis {
	inspectDefault := reported == 0 || severityRank(maxSeverity) >= severityRank(analysis.SeverityHigh)
	r := applyRules(obj, []rule{
		{key: "structuralIntegrity", kind: kindEnum, enum: structuralStates, def: string(analysis.DefaultStructuralIntegrity)},
		{key: "mechanicalCondition", kind: kindEnum, enum: systemConditions, def: string(analysis.DefaultSystemCondition)},
		{key: "electricalCondition", kind: kindEnum, enum: systemConditions, def: string(analysis.DefaultSystemCondition)},
		{key: "affectedSystems", kind: kindStringList},
		{key: "notes", kind: kindString, def: "No technical findings reported."},
		{key: "inspectionRequired", kind: kindBool, def: inspectDefault},
	})
	return analysis.TechnicalAnalysis{
		Structure:          analysis.StructuralIntegrity(r.str("structuralIntegrity")),
		Mechanical:         analysis.SystemCondition(r.str("mechanicalCondition")),
		Electrical:         analysis.SystemCondition(r.str("electricalCondition")),
		AffectedSystems:    r.list("affectedSystems"),
		Notes:              r.str("notes"),
		InspectionRequired: r.bool("inspectionRequired"),
	}
}

func (s *Sanitizer) safety(obj map[string]any) analysis.SafetyAssessment {
	r := applyRules(obj, []rule{
		{key: "drivableStatus", kind: kindEnum, enum: drivableStates, def: string(analysis.DefaultDrivableStatus)},
		{key: "riskLevel", kind: kindEnum, enum: riskLevels, def: string(analysis.DefaultRiskLevel)},
		{key: "safetySystems", kind: kindStringList},
		{key: "requiredActions", kind: kindStringList},
		{key: "notes", kind: kindString, def: "No safety findings reported."},
	})
	return analysis.SafetyAssessment{
		Drivable:        analysis.DrivableStatus(r.str("drivableStatus")),
		Risk:            analysis.RiskLevel(r.str("riskLevel")),
		AffectedSystems: r.list("safetySystems"),
		RequiredActions: r.list("requiredActions"),
		Notes:           r.str("notes"),
	}
}

func (s *Sanitizer) estimate(obj map[string]any, costSum, hourSum float64) analysis.RepairEstimate {
	inf := math.Inf(1)
	r := applyRules(obj, []rule{
		{key: "laborHours", kind: kindFloat, min: 0, max: inf, def: hourSum},
		{key: "laborCost", kind: kindFloat, min: 0, max: inf, def: 0.0},
		{key: "partsCost", kind: kindFloat, min: 0, max: inf, def: 0.0},
		{key: "paintCost", kind: kindFloat, min: 0, max: inf, def: 0.0},
		{key: "estimatedDays", kind: kindInt, min: 1, max: inf, def: 1},
		{key: "notes", kind: kindString, def: "Estimate derived from visual inspection only."},
	})
	itemized := r.float("laborCost") + r.float("partsCost") + r.float("paintCost")
	totalDefault := itemized
	if totalDefault == 0 {
		totalDefault = costSum
	}
	total := applyRules(obj, []rule{
		{key: "totalCost", kind: kindFloat, min: 0, max: inf, def: totalDefault},
	})
	return analysis.RepairEstimate{
		LaborHours: r.float("laborHours"),
		LaborCost:  r.float("laborCost"),
		PartsCost:  r.float("partsCost"),
		PaintCost:  r.float("paintCost"),
		TotalCost:  total.float("totalCost"),
		Days:       r.int("estimatedDays"),
		Notes:      r.str("notes"),
	}
}

func severityRank(s analysis.Severity) int {
	switch s {
	case analysis.SeverityMinimal:
		return 1
	case analysis.SeverityLow:
		return 2
	case analysis.SeverityMedium:
		return 3
	case analysis.SeverityHigh:
		return 4
	case analysis.SeverityCritical:
		return 5
	}
	return 0
}

// levelFromSeverity derives the aggregate damage level from the worst
// reported area when the model omitted its own aggregate.
func levelFromSeverity(reported int, max analysis.Severity) analysis.DamageLevel {
	if reported == 0 {
		return analysis.DamageNone
	}
	switch max {
	case analysis.SeverityCritical:
		return analysis.DamageCritical
	case analysis.SeverityHigh:
		return analysis.DamageSevere
	case analysis.SeverityMedium:
		return analysis.DamageModerate
	default:
		return analysis.DamageMinor
	}
}

func conditionFromSeverity(reported int, max analysis.Severity) analysis.ConditionTier {
	if reported == 0 {
		return analysis.ConditionGood
	}
	switch max {
	case analysis.SeverityCritical:
		return analysis.ConditionDamaged
	case analysis.SeverityHigh:
		return analysis.ConditionPoor
	case analysis.SeverityMedium:
		return analysis.ConditionFair
	default:
		return analysis.ConditionGood
	}
}

// Closed enum value sets, shared by the rule tables.
var (
	damageCategories = enumVals("scratch", "dent", "rust", "oxidation", "crack", "break",
		"paint-damage", "structural", "mechanical", "electrical")
	severities        = enumVals("minimal", "low", "medium", "high", "critical")
	regions           = enumVals("front", "rear", "left", "right", "top", "bottom", "interior", "mechanical")
	priorities        = enumVals("immediate", "high", "medium", "low")
	safetyImpacts     = enumVals("none", "low", "medium", "high", "critical")
	insuranceTiers    = enumVals("full", "partial", "excluded", "review")
	damageLevels      = enumVals("none", "minor", "moderate", "severe", "critical")
	insuranceStatuses = enumVals("insurable", "conditional", "uninsurable", "review")
	conditions        = enumVals("excellent", "good", "fair", "poor", "damaged")
	structuralStates  = enumVals("intact", "compromised", "critical")
	systemConditions  = enumVals("good", "degraded", "faulty", "unknown")
	drivableStates    = enumVals("safe", "caution", "unsafe")
	riskLevels        = enumVals("low", "medium", "high", "critical")
)
