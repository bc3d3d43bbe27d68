package analysis

// Kind identifies one analysis the pipeline can run.
type Kind string

const (
	// KindDamage detects and grades visible damage on vehicle photos.
	KindDamage Kind = "damage"
	// KindValuation estimates market value, optionally informed by a
	// completed damage analysis.
	KindValuation Kind = "valuation"
	// KindReport produces the comprehensive expert summary that consumes
	// both the damage and valuation results.
	KindReport Kind = "report"
)

func (k Kind) String() string { return string(k) }

// Valid reports whether k is one of the known analysis kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindDamage, KindValuation, KindReport:
		return true
	}
	return false
}
