package prompt

import (
	"strings"
	"testing"

	"autoinspect/internal/analysis"
)

var testVehicle = analysis.VehicleInfo{
	Make: "Volvo", Model: "V60", Year: 2019, Mileage: 78000,
	FuelType: "diesel", Transmission: "automatic", Color: "grey",
}

func TestDamage_Deterministic(t *testing.T) {
	a := Damage(testVehicle)
	b := Damage(testVehicle)
	if a != b {
		t.Fatal("same input produced different prompts")
	}
}

func TestDamage_SectionsAndSchema(t *testing.T) {
	out := Damage(testVehicle)
	for _, want := range []string{
		"[PURPOSE]", "[CONTEXT]", "[OUTPUT]", "[CRITICAL RULES]", "[EXAMPLE]",
		"damageAreas[].severity",
		"minimal, low, medium, high, critical",
		"scratch, dent, rust, oxidation, crack, break, paint-damage, structural, mechanical, electrical",
		"overallAssessment.totalRepairCost",
		"Return ONLY the JSON object",
		"Volvo",
		"damageAreas[].confidence (integer) - 0-100",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("prompt missing %q", want)
		}
	}
}

func TestPrompts_PlainASCII(t *testing.T) {
	for name, out := range map[string]string{
		"damage":    Damage(testVehicle),
		"valuation": Valuation(testVehicle, nil),
		"report":    Report(testVehicle, nil, nil),
	} {
		for _, r := range out {
			if r > 127 {
				t.Fatalf("%s prompt contains non-ASCII rune %q", name, r)
			}
		}
	}
}

func TestDamage_NoVehicleMetadata(t *testing.T) {
	out := Damage(analysis.VehicleInfo{})
	if !strings.Contains(out, "No vehicle metadata was supplied") {
		t.Fatal("metadata-free prompt missing fallback context")
	}
}

func TestValuation_EmbedsDamageContext(t *testing.T) {
	dmg := &analysis.AnalysisResult{
		Areas: []analysis.DamageArea{{
			Category: analysis.CategoryDent, Severity: analysis.SeverityHigh,
			Region: analysis.RegionRear, RepairCost: 420,
		}},
		Overall: analysis.OverallAssessment{
			DamageLevel: analysis.DamageModerate, TotalRepairCost: 420,
			Condition: analysis.ConditionGood,
		},
	}
	with := Valuation(testVehicle, dmg)
	if !strings.Contains(with, "Completed damage assessment") {
		t.Fatal("damage context not embedded")
	}
	if !strings.Contains(with, `"totalRepairCost":420`) {
		t.Fatalf("damage totals not embedded:\n%s", with)
	}

	without := Valuation(testVehicle, nil)
	if !strings.Contains(without, "No damage assessment is available") {
		t.Fatal("degraded prompt missing no-context branch")
	}
	if with == without {
		t.Fatal("context presence must change the prompt")
	}
}

func TestValuation_Deterministic(t *testing.T) {
	a := Valuation(testVehicle, nil)
	b := Valuation(testVehicle, nil)
	if a != b {
		t.Fatal("same input produced different prompts")
	}
}

func TestReport_StatesMissingPrerequisites(t *testing.T) {
	out := Report(testVehicle, nil, nil)
	if !strings.Contains(out, "No damage assessment is available.") {
		t.Fatal("missing damage note absent")
	}
	if !strings.Contains(out, "No valuation is available.") {
		t.Fatal("missing valuation note absent")
	}
	if !strings.Contains(out, "finalRecommendation") {
		t.Fatal("schema missing finalRecommendation")
	}
}
