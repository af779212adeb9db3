package taxonomy

import "fmt"

// Category is one of the three top-level risk axes. Each category owns an
// independent rule list and receives its own score.
type Category string

const (
	Intimacy     Category = "intimacy"
	Boundary     Category = "boundary"
	Manipulation Category = "manipulation"
)

// Categories returns the three categories in evaluation order.
// The order is a contract: it fixes match pooling and the primary-concern
// tie-break, so it must never change.
func Categories() []Category {
	return []Category{Intimacy, Boundary, Manipulation}
}

// DisclosureLayer is the ordinal depth of a detected disclosure, after the
// social penetration model: peripheral small talk through core vulnerability.
// Ordering is total and used only for deepest-layer comparison.
type DisclosureLayer int

const (
	Peripheral   DisclosureLayer = 1
	Intermediate DisclosureLayer = 2
	Core         DisclosureLayer = 3
)

func (l DisclosureLayer) String() string {
	switch l {
	case Peripheral:
		return "PERIPHERAL"
	case Intermediate:
		return "INTERMEDIATE"
	case Core:
		return "CORE"
	default:
		return "UNKNOWN"
	}
}

// MarshalJSON emits the layer name, not the ordinal.
func (l DisclosureLayer) MarshalJSON() ([]byte, error) {
	return []byte(`"` + l.String() + `"`), nil
}

// UnmarshalJSON accepts the layer name produced by MarshalJSON.
func (l *DisclosureLayer) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case `"PERIPHERAL"`:
		*l = Peripheral
	case `"INTERMEDIATE"`:
		*l = Intermediate
	case `"CORE"`:
		*l = Core
	default:
		return fmt.Errorf("unknown disclosure layer %s", data)
	}
	return nil
}

// IntimacyDimension is a cross-cutting psychological aspect a rule is tagged
// with, independent of its category. Purely categorical: dimensions group
// matches, they are never compared or ordered.
type IntimacyDimension string

const (
	SelfDisclosure      IntimacyDimension = "self_disclosure"
	EmotionalExpression IntimacyDimension = "emotional_expression"
	VulnerabilityTrust  IntimacyDimension = "vulnerability_trust"
	Reciprocity         IntimacyDimension = "reciprocity"
	Empathy             IntimacyDimension = "empathy"
)

// Dimensions returns all five dimensions in declaration order, for display
// and validation. The order carries no semantic weight.
func Dimensions() []IntimacyDimension {
	return []IntimacyDimension{
		SelfDisclosure,
		EmotionalExpression,
		VulnerabilityTrust,
		Reciprocity,
		Empathy,
	}
}
