// Package scoring is the rule table of the orientation questionnaire.
//
// It turns a selection on a question into one or more signed
// contributions on two axes:
//
//   - Axis A, epistemic stance: positive = objective/empirical,
//     negative = subjective/constructivist.
//   - Axis B, intervention focus: positive = rational/analytical,
//     negative = experiential/affective.
//
// Rules are pure. They never touch session state; the assessment
// package applies what they return.
package scoring

import "fmt"

// Delta is a signed contribution on both axes.
type Delta struct {
	A float64 `json:"a" yaml:"a"`
	B float64 `json:"b" yaml:"b"`
}

// Scale multiplies both components by w.
func (d Delta) Scale(w float64) Delta {
	return Delta{A: d.A * w, B: d.B * w}
}

func (d Delta) String() string {
	return fmt.Sprintf("(%+.2f, %+.2f)", d.A, d.B)
}

// Contribution is what a rule yields for one scored pick.
type Contribution struct {
	ChoiceLabel string `json:"choice_label"`
	Rationale   string `json:"rationale"`
	Delta       Delta  `json:"delta"`
}

// Selection is the raw answer the presentation layer hands over.
// Each rule kind reads only the field it needs:
//
//	categorical, binary -> Option
//	ranked pair         -> Ranked (exactly two ids, rank 1 first)
//	slider              -> Value (nil when no value was picked)
type Selection struct {
	Option string   `json:"option,omitempty"`
	Ranked []string `json:"ranked,omitempty"`
	Value  *int     `json:"value,omitempty"`
}

// SliderValue returns a slider selection of v.
func SliderValue(v int) Selection {
	return Selection{Value: &v}
}

// Option is one declared answer of a question.
type Option struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	Rationale string `json:"rationale"`
	Delta     Delta  `json:"delta"`
}

// RuleKind names the shape of a scoring rule.
type RuleKind string

const (
	KindCategorical RuleKind = "categorical"
	KindSlider      RuleKind = "slider"
	KindRankedPair  RuleKind = "ranked_pair"
	KindBinary      RuleKind = "binary"
)

// Axis selects which axis a single-axis rule writes to.
type Axis string

const (
	AxisA Axis = "A"
	AxisB Axis = "B"
)
