package analysis

// Closed enums for sanitized results. Every enum carries a documented
// default; the sanitizer substitutes the default for any value outside
// the declared set.

// DamageCategory classifies a single damage area.
type DamageCategory string

const (
	CategoryScratch     DamageCategory = "scratch"
	CategoryDent        DamageCategory = "dent"
	CategoryRust        DamageCategory = "rust"
	CategoryOxidation   DamageCategory = "oxidation"
	CategoryCrack       DamageCategory = "crack"
	CategoryBreak       DamageCategory = "break"
	CategoryPaintDamage DamageCategory = "paint-damage"
	CategoryStructural  DamageCategory = "structural"
	CategoryMechanical  DamageCategory = "mechanical"
	CategoryElectrical  DamageCategory = "electrical"
)

// DefaultCategory is used when the model returns an unknown category.
const DefaultCategory = CategoryScratch

// Severity grades how bad a single damage area is.
type Severity string

const (
	SeverityMinimal  Severity = "minimal"
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// DefaultSeverity is the conservative middle grade.
const DefaultSeverity = SeverityMedium

// Region tags which part of the vehicle a damage area affects.
type Region string

const (
	RegionFront      Region = "front"
	RegionRear       Region = "rear"
	RegionLeft       Region = "left"
	RegionRight      Region = "right"
	RegionTop        Region = "top"
	RegionBottom     Region = "bottom"
	RegionInterior   Region = "interior"
	RegionMechanical Region = "mechanical"
)

const DefaultRegion = RegionFront

// RepairPriority orders damage areas by urgency.
type RepairPriority string

const (
	PriorityImmediate RepairPriority = "immediate"
	PriorityHigh      RepairPriority = "high"
	PriorityMedium    RepairPriority = "medium"
	PriorityLow       RepairPriority = "low"
)

const DefaultPriority = PriorityMedium

// SafetyImpact grades the safety relevance of a damage area.
type SafetyImpact string

const (
	SafetyNone     SafetyImpact = "none"
	SafetyLow      SafetyImpact = "low"
	SafetyMedium   SafetyImpact = "medium"
	SafetyHigh     SafetyImpact = "high"
	SafetyCritical SafetyImpact = "critical"
)

const DefaultSafetyImpact = SafetyLow

// InsuranceTier states how insurers are expected to treat a repair.
type InsuranceTier string

const (
	InsuranceFull     InsuranceTier = "full"
	InsurancePartial  InsuranceTier = "partial"
	InsuranceExcluded InsuranceTier = "excluded"
	InsuranceReview   InsuranceTier = "review"
)

const DefaultInsuranceTier = InsuranceReview

// DamageLevel is the aggregate grade across all damage areas.
type DamageLevel string

const (
	DamageNone     DamageLevel = "none"
	DamageMinor    DamageLevel = "minor"
	DamageModerate DamageLevel = "moderate"
	DamageSevere   DamageLevel = "severe"
	DamageCritical DamageLevel = "critical"
)

const DefaultDamageLevel = DamageModerate

// InsuranceStatus is the aggregate insurability verdict.
type InsuranceStatus string

const (
	StatusInsurable   InsuranceStatus = "insurable"
	StatusConditional InsuranceStatus = "conditional"
	StatusUninsurable InsuranceStatus = "uninsurable"
	StatusReview      InsuranceStatus = "review"
)

const DefaultInsuranceStatus = StatusReview

// ConditionTier grades the vehicle's overall condition.
type ConditionTier string

const (
	ConditionExcellent ConditionTier = "excellent"
	ConditionGood      ConditionTier = "good"
	ConditionFair      ConditionTier = "fair"
	ConditionPoor      ConditionTier = "poor"
	ConditionDamaged   ConditionTier = "damaged"
)

const DefaultCondition = ConditionFair

// StructuralIntegrity grades the frame and body structure.
type StructuralIntegrity string

const (
	StructureIntact      StructuralIntegrity = "intact"
	StructureCompromised StructuralIntegrity = "compromised"
	StructureCritical    StructuralIntegrity = "critical"
)

const DefaultStructuralIntegrity = StructureIntact

// SystemCondition grades a mechanical or electrical subsystem.
type SystemCondition string

const (
	SystemGood     SystemCondition = "good"
	SystemDegraded SystemCondition = "degraded"
	SystemFaulty   SystemCondition = "faulty"
	SystemUnknown  SystemCondition = "unknown"
)

const DefaultSystemCondition = SystemUnknown

// DrivableStatus states whether the vehicle is safe to drive.
type DrivableStatus string

const (
	DrivableSafe    DrivableStatus = "safe"
	DrivableCaution DrivableStatus = "caution"
	DrivableUnsafe  DrivableStatus = "unsafe"
)

const DefaultDrivableStatus = DrivableCaution

// RiskLevel grades overall safety risk.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

const DefaultRiskLevel = RiskMedium

// MarketPosition places an asking price relative to the market.
type MarketPosition string

const (
	MarketBelow MarketPosition = "below-market"
	MarketAt    MarketPosition = "at-market"
	MarketAbove MarketPosition = "above-market"
)

const DefaultMarketPosition = MarketAt

// InvestmentRating grades the vehicle as a purchase.
type InvestmentRating string

const (
	InvestmentPoor      InvestmentRating = "poor"
	InvestmentFair      InvestmentRating = "fair"
	InvestmentGood      InvestmentRating = "good"
	InvestmentExcellent InvestmentRating = "excellent"
)

const DefaultInvestmentRating = InvestmentFair

// ValueTrend states the expected direction of the vehicle's value.
type ValueTrend string

const (
	TrendDepreciating ValueTrend = "depreciating"
	TrendStable       ValueTrend = "stable"
	TrendAppreciating ValueTrend = "appreciating"
)

const DefaultValueTrend = TrendDepreciating

// Recommendation is the final verdict of the comprehensive report.
type Recommendation string

const (
	RecommendBuy       Recommendation = "buy"
	RecommendNegotiate Recommendation = "negotiate"
	RecommendInspect   Recommendation = "inspect-first"
	RecommendAvoid     Recommendation = "avoid"
)

const DefaultRecommendation = RecommendInspect
