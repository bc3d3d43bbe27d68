package analysis

// Sanitized result records. Every instance is produced by the sanitizer,
// satisfies the bounds documented on each field, and is never mutated
// after construction.

// DamageArea is one detected damage region on the vehicle.
type DamageArea struct {
	ID          string         `json:"id"`
	X           int            `json:"x"`      // pixels, >= 0
	Y           int            `json:"y"`      // pixels, >= 0
	Width       int            `json:"width"`  // pixels, >= 0
	Height      int            `json:"height"` // pixels, >= 0
	Category    DamageCategory `json:"category"`
	Severity    Severity       `json:"severity"`
	Confidence  int            `json:"confidence"` // 0..100
	Description string         `json:"description"`
	Region      Region         `json:"region"`
	RepairCost  float64        `json:"repairCost"` // >= 0
	Parts       []string       `json:"affectedParts"`
	Priority    RepairPriority `json:"repairPriority"`
	Safety      SafetyImpact   `json:"safetyImpact"`
	Method      string         `json:"repairMethod"`
	Hours       float64        `json:"estimatedHours"` // >= 1
	Warranty    bool           `json:"warrantyImpact"`
	Insurance   InsuranceTier  `json:"insuranceCoverage"`
}

// OverallAssessment aggregates the damage areas.
type OverallAssessment struct {
	DamageLevel       DamageLevel     `json:"damageLevel"`
	TotalRepairCost   float64         `json:"totalRepairCost"` // >= 0
	InsuranceStatus   InsuranceStatus `json:"insuranceStatus"`
	MarketValueImpact int             `json:"marketValueImpact"` // percent, 0..100
	Analysis          string          `json:"detailedAnalysis"`
	Condition         ConditionTier   `json:"vehicleCondition"`
	ResaleValue       int             `json:"resaleValuePercent"`  // 0..100
	Depreciation      int             `json:"depreciationPercent"` // 0..100
}

// TechnicalAnalysis covers structure and subsystems.
type TechnicalAnalysis struct {
	Structure          StructuralIntegrity `json:"structuralIntegrity"`
	Mechanical         SystemCondition     `json:"mechanicalCondition"`
	Electrical         SystemCondition     `json:"electricalCondition"`
	AffectedSystems    []string            `json:"affectedSystems"`
	Notes              string              `json:"notes"`
	InspectionRequired bool                `json:"inspectionRequired"`
}

// SafetyAssessment covers drivability and risk.
type SafetyAssessment struct {
	Drivable        DrivableStatus `json:"drivableStatus"`
	Risk            RiskLevel      `json:"riskLevel"`
	AffectedSystems []string       `json:"safetySystems"`
	RequiredActions []string       `json:"requiredActions"`
	Notes           string         `json:"notes"`
}

// RepairEstimate itemizes the projected repair work.
type RepairEstimate struct {
	LaborHours float64 `json:"laborHours"` // >= 0
	LaborCost  float64 `json:"laborCost"`  // >= 0
	PartsCost  float64 `json:"partsCost"`  // >= 0
	PaintCost  float64 `json:"paintCost"`  // >= 0
	TotalCost  float64 `json:"totalCost"`  // >= 0; labor+parts+paint when the model omits it
	Days       int     `json:"estimatedDays"` // >= 1
	Notes      string  `json:"notes"`
}

// Provenance records where a result came from.
type Provenance struct {
	Provider   string `json:"aiProvider"`
	Model      string `json:"model"`
	Confidence int    `json:"confidence"`        // 0..100
	Timestamp  string `json:"analysisTimestamp"` // RFC 3339
}

// AnalysisResult is the sanitized output of a damage analysis.
type AnalysisResult struct {
	Provenance Provenance        `json:"provenance"`
	Areas      []DamageArea      `json:"damageAreas"` // never empty
	Overall    OverallAssessment `json:"overallAssessment"`
	Technical  TechnicalAnalysis `json:"technicalAnalysis"`
	Safety     SafetyAssessment  `json:"safetyAssessment"`
	Estimate   RepairEstimate    `json:"repairEstimate"`
}

// VehicleInfo is caller-supplied context threaded into prompts.
type VehicleInfo struct {
	Make         string `json:"make"`
	Model        string `json:"model"`
	Year         int    `json:"year"`
	Mileage      int    `json:"mileage"`
	FuelType     string `json:"fuelType"`
	Transmission string `json:"transmission"`
	Color        string `json:"color"`
}

// Empty reports whether no vehicle metadata was supplied.
func (v VehicleInfo) Empty() bool {
	return v == VehicleInfo{}
}
