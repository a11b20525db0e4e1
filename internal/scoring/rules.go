package scoring

import "fmt"

// PlaceholderOption is the id a form submits when a ranked slot was left
// on its "please choose" entry. It is never a scorable option.
const PlaceholderOption = "--"

// Rule derives contributions from a selection. Implementations are pure
// and total over their declared domain.
type Rule interface {
	Kind() RuleKind
	// Options lists the declared answers. Sliders return nil.
	Options() []Option
	// Score returns at least one contribution or an error; never both.
	Score(question string, sel Selection) ([]Contribution, error)
}

// --- Categorical ---

// Categorical maps each option to a fixed delta.
type Categorical struct {
	options []Option
	index   map[string]int
}

// NewCategorical builds a single-select rule. Option ids must be unique.
func NewCategorical(options ...Option) *Categorical {
	return &Categorical{options: options, index: indexOptions(options)}
}

func (r *Categorical) Kind() RuleKind    { return KindCategorical }
func (r *Categorical) Options() []Option { return r.options }

// Score looks up sel.Option.
func (r *Categorical) Score(question string, sel Selection) ([]Contribution, error) {
	if sel.Option == "" || sel.Option == PlaceholderOption {
		return nil, &ValidationError{Question: question, Reason: "no option selected"}
	}
	i, ok := r.index[sel.Option]
	if !ok {
		return nil, &UnrecognizedOptionError{Question: question, Option: sel.Option}
	}
	return []Contribution{contributionOf(r.options[i])}, nil
}

// --- Slider ---

// Slider centers an integer response and scales it onto one axis.
type Slider struct {
	Axis        Axis
	Min         int
	Max         int
	Midpoint    int
	Coefficient float64
	// LowLabel and HighLabel describe the scale endpoints.
	LowLabel  string
	HighLabel string
	Rationale string
}

func (r *Slider) Kind() RuleKind    { return KindSlider }
func (r *Slider) Options() []Option { return nil }

// Score returns (value-midpoint)*coefficient on r.Axis and zero on the
// other axis. A centred answer still yields an event with a zero delta.
func (r *Slider) Score(question string, sel Selection) ([]Contribution, error) {
	if sel.Value == nil {
		return nil, &ValidationError{Question: question, Reason: "no value selected"}
	}
	value := *sel.Value
	if value < r.Min || value > r.Max {
		return nil, &ValidationError{
			Question: question,
			Reason:   fmt.Sprintf("value %d outside scale %d-%d", value, r.Min, r.Max),
		}
	}
	v := float64(value-r.Midpoint) * r.Coefficient
	var d Delta
	switch r.Axis {
	case AxisA:
		d.A = v
	case AxisB:
		d.B = v
	default:
		panic(fmt.Sprintf("scoring: slider %s has no axis", question))
	}
	return []Contribution{{
		ChoiceLabel: fmt.Sprintf("calibration %d/%d", value, r.Max),
		Rationale:   r.Rationale,
		Delta:       d,
	}}, nil
}

// --- Ranked pair ---

// RankedPair scores two distinct ranked picks from a shared option set.
// Each pick contributes its base delta scaled by its rank weight.
type RankedPair struct {
	options []Option
	index   map[string]int
	weights [2]float64
}

// NewRankedPair builds a ranked rule. first must exceed second.
func NewRankedPair(first, second float64, options ...Option) *RankedPair {
	return &RankedPair{
		options: options,
		index:   indexOptions(options),
		weights: [2]float64{first, second},
	}
}

func (r *RankedPair) Kind() RuleKind    { return KindRankedPair }
func (r *RankedPair) Options() []Option { return r.options }

// Weights returns the rank 1 and rank 2 weights.
func (r *RankedPair) Weights() (first, second float64) {
	return r.weights[0], r.weights[1]
}

// Score validates the whole pair before producing anything, so a bad
// pair never yields a partial result.
func (r *RankedPair) Score(question string, sel Selection) ([]Contribution, error) {
	if len(sel.Ranked) != 2 {
		return nil, &ValidationError{
			Question: question,
			Reason:   fmt.Sprintf("exactly two ranked options required, got %d", len(sel.Ranked)),
		}
	}
	for i, id := range sel.Ranked {
		if id == "" || id == PlaceholderOption {
			return nil, &ValidationError{Question: question, Reason: fmt.Sprintf("rank %d not selected", i+1)}
		}
	}
	if sel.Ranked[0] == sel.Ranked[1] {
		return nil, &ValidationError{Question: question, Reason: "ranked options must be distinct"}
	}

	out := make([]Contribution, 0, 2)
	for i, id := range sel.Ranked {
		idx, ok := r.index[id]
		if !ok {
			return nil, &UnrecognizedOptionError{Question: question, Option: id}
		}
		opt := r.options[idx]
		out = append(out, Contribution{
			ChoiceLabel: fmt.Sprintf("rank %d: %s", i+1, opt.Label),
			Rationale:   opt.Rationale,
			Delta:       opt.Delta.Scale(r.weights[i]),
		})
	}
	return out, nil
}

// --- Binary ---

// Binary option ids.
const (
	OptionYes = "yes"
	OptionNo  = "no"
)

// Binary maps a yes/no toggle onto one of two fixed deltas.
type Binary struct {
	yes Option
	no  Option
}

// NewBinary builds a yes/no rule. The option ids are forced to yes/no.
func NewBinary(yes, no Option) *Binary {
	yes.ID = OptionYes
	no.ID = OptionNo
	return &Binary{yes: yes, no: no}
}

func (r *Binary) Kind() RuleKind    { return KindBinary }
func (r *Binary) Options() []Option { return []Option{r.yes, r.no} }

func (r *Binary) Score(question string, sel Selection) ([]Contribution, error) {
	switch sel.Option {
	case OptionYes:
		return []Contribution{contributionOf(r.yes)}, nil
	case OptionNo:
		return []Contribution{contributionOf(r.no)}, nil
	case "", PlaceholderOption:
		return nil, &ValidationError{Question: question, Reason: "no option selected"}
	default:
		return nil, &UnrecognizedOptionError{Question: question, Option: sel.Option}
	}
}

// --- helpers ---

func indexOptions(options []Option) map[string]int {
	idx := make(map[string]int, len(options))
	for i, o := range options {
		if _, dup := idx[o.ID]; dup {
			panic(fmt.Sprintf("scoring: duplicate option id %q", o.ID))
		}
		idx[o.ID] = i
	}
	return idx
}

func contributionOf(o Option) Contribution {
	return Contribution{ChoiceLabel: o.Label, Rationale: o.Rationale, Delta: o.Delta}
}
