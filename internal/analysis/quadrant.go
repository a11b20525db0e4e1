package analysis

import "math"

// Quadrant is one of the four regions of the position plane.
type Quadrant string

const (
	QuadrantI   Quadrant = "I"
	QuadrantII  Quadrant = "II"
	QuadrantIII Quadrant = "III"
	QuadrantIV  Quadrant = "IV"
)

// descriptors are used verbatim in reports.
var descriptors = map[Quadrant]string{
	QuadrantI:   "Objective-Analytical: structured, evidence-led change through reasoning (cognitive-behavioural, rational-emotive, solution-focused)",
	QuadrantII:  "Subjective-Analytical: insight into personal meaning and hidden patterns (psychodynamic, Adlerian, narrative)",
	QuadrantIII: "Subjective-Experiential: change through relationship and lived experience (person-centred, Gestalt, existential)",
	QuadrantIV:  "Objective-Experiential: structured work with emotion and the body (emotion-focused, mindfulness-based, experiential-behavioural)",
}

// Descriptor returns the fixed report text of q.
func (q Quadrant) Descriptor() string {
	return descriptors[q]
}

// Secondary proximity labels.
const (
	NearEpistemicMidline    = "near the epistemic midline (balances objective and subjective stances)"
	NearInterventionMidline = "near the intervention midline (balances analysis and experience)"
)

// QuadrantResult is the classification of a final position.
type QuadrantResult struct {
	Label      Quadrant `json:"label"`
	Descriptor string   `json:"descriptor"`
	// Proximity lists the axes the position sits close to, if any.
	Proximity []string `json:"proximity,omitempty"`
}

// Classify maps a position onto its quadrant. Zero counts as
// non-negative, so boundary positions fall into the positive half of
// that axis. band is the distance under which a proximity label is
// added; a zero band disables them.
func Classify(totalA, totalB, band float64) QuadrantResult {
	var q Quadrant
	switch {
	case totalA >= 0 && totalB >= 0:
		q = QuadrantI
	case totalA < 0 && totalB >= 0:
		q = QuadrantII
	case totalA < 0:
		q = QuadrantIII
	default:
		q = QuadrantIV
	}

	r := QuadrantResult{Label: q, Descriptor: q.Descriptor()}
	if math.Abs(totalA) < band {
		r.Proximity = append(r.Proximity, NearEpistemicMidline)
	}
	if math.Abs(totalB) < band {
		r.Proximity = append(r.Proximity, NearInterventionMidline)
	}
	return r
}
