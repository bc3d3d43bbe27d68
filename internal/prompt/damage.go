package prompt

import (
	"autoinspect/internal/analysis"
)

// Damage builds the damage-detection prompt for one vehicle.
func Damage(v analysis.VehicleInfo) string {
	spec := Spec{
		Purpose: "Inspect the attached vehicle photographs. Locate every visible damage area, " +
			"grade it, estimate repair work and summarize the overall condition of the vehicle.",
		Context: vehicleContext(v),
		Fields: []Field{
			{Name: "damageAreas", Type: "array of objects", Description: "one entry per distinct damage region; empty array only when the vehicle is flawless"},
			{Name: "damageAreas[].id", Type: "string", Description: "short stable identifier, e.g. \"area-1\""},
			{Name: "damageAreas[].x", Type: "integer", Description: "bounding box left edge in pixels, >= 0"},
			{Name: "damageAreas[].y", Type: "integer", Description: "bounding box top edge in pixels, >= 0"},
			{Name: "damageAreas[].width", Type: "integer", Description: "bounding box width in pixels, >= 0"},
			{Name: "damageAreas[].height", Type: "integer", Description: "bounding box height in pixels, >= 0"},
			{Name: "damageAreas[].category", Type: "string", Allowed: "scratch, dent, rust, oxidation, crack, break, paint-damage, structural, mechanical, electrical"},
			{Name: "damageAreas[].severity", Type: "string", Allowed: "minimal, low, medium, high, critical"},
			{Name: "damageAreas[].confidence", Type: "integer", Description: "0-100"},
			{Name: "damageAreas[].description", Type: "string", Description: "non-empty human readable description"},
			{Name: "damageAreas[].region", Type: "string", Allowed: "front, rear, left, right, top, bottom, interior, mechanical"},
			{Name: "damageAreas[].repairCost", Type: "number", Description: "estimated cost, >= 0"},
			{Name: "damageAreas[].affectedParts", Type: "array of strings", Description: "part names touched by the repair"},
			{Name: "damageAreas[].repairPriority", Type: "string", Allowed: "immediate, high, medium, low"},
			{Name: "damageAreas[].safetyImpact", Type: "string", Allowed: "none, low, medium, high, critical"},
			{Name: "damageAreas[].repairMethod", Type: "string", Description: "how the repair should be done"},
			{Name: "damageAreas[].estimatedHours", Type: "number", Description: "repair hours, >= 1"},
			{Name: "damageAreas[].warrantyImpact", Type: "boolean"},
			{Name: "damageAreas[].insuranceCoverage", Type: "string", Allowed: "full, partial, excluded, review"},
			{Name: "overallAssessment.damageLevel", Type: "string", Allowed: "none, minor, moderate, severe, critical"},
			{Name: "overallAssessment.totalRepairCost", Type: "number", Description: "total across all areas, >= 0"},
			{Name: "overallAssessment.insuranceStatus", Type: "string", Allowed: "insurable, conditional, uninsurable, review"},
			{Name: "overallAssessment.marketValueImpact", Type: "integer", Description: "percent value loss, 0-100"},
			{Name: "overallAssessment.detailedAnalysis", Type: "string", Description: "free-text overall analysis"},
			{Name: "overallAssessment.vehicleCondition", Type: "string", Allowed: "excellent, good, fair, poor, damaged"},
			{Name: "overallAssessment.resaleValuePercent", Type: "integer", Description: "0-100"},
			{Name: "overallAssessment.depreciationPercent", Type: "integer", Description: "0-100"},
			{Name: "technicalAnalysis.structuralIntegrity", Type: "string", Allowed: "intact, compromised, critical"},
			{Name: "technicalAnalysis.mechanicalCondition", Type: "string", Allowed: "good, degraded, faulty, unknown"},
			{Name: "technicalAnalysis.electricalCondition", Type: "string", Allowed: "good, degraded, faulty, unknown"},
			{Name: "technicalAnalysis.affectedSystems", Type: "array of strings"},
			{Name: "technicalAnalysis.notes", Type: "string"},
			{Name: "technicalAnalysis.inspectionRequired", Type: "boolean"},
			{Name: "safetyAssessment.drivableStatus", Type: "string", Allowed: "safe, caution, unsafe"},
			{Name: "safetyAssessment.riskLevel", Type: "string", Allowed: "low, medium, high, critical"},
			{Name: "safetyAssessment.safetySystems", Type: "array of strings", Description: "safety systems affected by the damage"},
			{Name: "safetyAssessment.requiredActions", Type: "array of strings"},
			{Name: "safetyAssessment.notes", Type: "string"},
			{Name: "repairEstimate.laborHours", Type: "number", Description: ">= 0"},
			{Name: "repairEstimate.laborCost", Type: "number", Description: ">= 0"},
			{Name: "repairEstimate.partsCost", Type: "number", Description: ">= 0"},
			{Name: "repairEstimate.paintCost", Type: "number", Description: ">= 0"},
			{Name: "repairEstimate.totalCost", Type: "number", Description: "labor + parts + paint"},
			{Name: "repairEstimate.estimatedDays", Type: "integer", Description: ">= 1"},
			{Name: "repairEstimate.notes", Type: "string"},
			{Name: "confidence", Type: "integer", Description: "overall confidence in this analysis, 0-100"},
		},
		Rules: withBaseRules(
			"Report every distinct damage region as its own damageAreas entry.",
			"Bounding boxes use pixel coordinates of the first attached photograph.",
			"totalRepairCost must be consistent with the per-area repairCost values.",
		),
		Example: damageExample,
	}
	return spec.Render()
}

func vehicleContext(v analysis.VehicleInfo) []string {
	if v.Empty() {
		return []string{"No vehicle metadata was supplied. Infer make and model from the photographs where possible."}
	}
	return []string{contextJSON("Vehicle under inspection", v)}
}

const damageExample = `{
  "damageAreas": [
    {
      "id": "area-1",
      "x": 412, "y": 280, "width": 160, "height": 90,
      "category": "dent",
      "severity": "medium",
      "confidence": 86,
      "description": "Shallow dent with paint transfer on the front left fender",
      "region": "front",
      "repairCost": 350,
      "affectedParts": ["front left fender"],
      "repairPriority": "medium",
      "safetyImpact": "none",
      "repairMethod": "Paintless dent removal, then polish",
      "estimatedHours": 2,
      "warrantyImpact": false,
      "insuranceCoverage": "partial"
    }
  ],
  "overallAssessment": {
    "damageLevel": "minor",
    "totalRepairCost": 350,
    "insuranceStatus": "insurable",
    "marketValueImpact": 5,
    "detailedAnalysis": "Single cosmetic dent, no structural involvement.",
    "vehicleCondition": "good",
    "resaleValuePercent": 92,
    "depreciationPercent": 8
  },
  "technicalAnalysis": {
    "structuralIntegrity": "intact",
    "mechanicalCondition": "good",
    "electricalCondition": "good",
    "affectedSystems": [],
    "notes": "No mechanical findings visible.",
    "inspectionRequired": false
  },
  "safetyAssessment": {
    "drivableStatus": "safe",
    "riskLevel": "low",
    "safetySystems": [],
    "requiredActions": [],
    "notes": "No safety relevance."
  },
  "repairEstimate": {
    "laborHours": 2,
    "laborCost": 180,
    "partsCost": 0,
    "paintCost": 170,
    "totalCost": 350,
    "estimatedDays": 1,
    "notes": "Bodyshop visit, one day."
  },
  "confidence": 88
}`
