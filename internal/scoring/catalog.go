package scoring

import (
	"fmt"

	"github.com/HendryAvila/compass/internal/config"
)

// Phase groups questions that the questionnaire presents together.
type Phase struct {
	Number int    `json:"number"`
	Title  string `json:"title"`
	Theme  string `json:"theme"`
}

// Question is one scored item. Tag is the phase tag recorded on every
// event it produces, e.g. "P1-Q1".
type Question struct {
	Tag    string `json:"tag"`
	Phase  int    `json:"phase"`
	Prompt string `json:"prompt"`
	Rule   Rule   `json:"-"`
}

// Score runs the question's rule.
func (q Question) Score(sel Selection) ([]Contribution, error) {
	return q.Rule.Score(q.Tag, sel)
}

// Catalog is the ordered rule table of the instrument.
type Catalog struct {
	phases    []Phase
	questions []Question
	byTag     map[string]int
}

// NewCatalog assembles a catalog. Tags must be unique and every question
// must belong to a declared phase.
func NewCatalog(phases []Phase, questions []Question) (*Catalog, error) {
	known := make(map[int]bool, len(phases))
	for _, p := range phases {
		known[p.Number] = true
	}
	byTag := make(map[string]int, len(questions))
	for i, q := range questions {
		if q.Rule == nil {
			return nil, fmt.Errorf("question %s has no rule", q.Tag)
		}
		if !known[q.Phase] {
			return nil, fmt.Errorf("question %s references undeclared phase %d", q.Tag, q.Phase)
		}
		if _, dup := byTag[q.Tag]; dup {
			return nil, fmt.Errorf("duplicate question tag %s", q.Tag)
		}
		byTag[q.Tag] = i
	}
	return &Catalog{phases: phases, questions: questions, byTag: byTag}, nil
}

// Lookup returns the question with the given tag.
func (c *Catalog) Lookup(tag string) (Question, error) {
	i, ok := c.byTag[tag]
	if !ok {
		return Question{}, fmt.Errorf("%w: %q", ErrUnknownQuestion, tag)
	}
	return c.questions[i], nil
}

// Phases returns the phases in presentation order.
func (c *Catalog) Phases() []Phase {
	return c.phases
}

// Questions returns the questions of one phase, in order. Phase 0
// returns every question.
func (c *Catalog) Questions(phase int) []Question {
	if phase == 0 {
		return c.questions
	}
	var out []Question
	for _, q := range c.questions {
		if q.Phase == phase {
			out = append(out, q)
		}
	}
	return out
}

// Len returns the number of questions.
func (c *Catalog) Len() int {
	return len(c.questions)
}

// DefaultCatalog builds the shipped four-phase instrument using the
// weights of cfg.
func DefaultCatalog(cfg config.Scoring) *Catalog {
	slider := func(axis Axis, low, high, rationale string) *Slider {
		return &Slider{
			Axis:        axis,
			Min:         cfg.Slider.Min,
			Max:         cfg.Slider.Max,
			Midpoint:    cfg.Slider.Midpoint,
			Coefficient: cfg.Slider.Coefficient,
			LowLabel:    low,
			HighLabel:   high,
			Rationale:   rationale,
		}
	}

	phases := []Phase{
		{Number: 1, Title: "Metaphor projection", Theme: "how you see your role"},
		{Number: 2, Title: "Clinical decisions", Theme: "how you believe change happens"},
		{Number: 3, Title: "Shadow exploration", Theme: "what you value, read through what you fear"},
		{Number: 4, Title: "Spatial frame", Theme: "how you hold the frame and its boundaries"},
	}

	questions := []Question{
		// Phase 1
		{
			Tag:    "P1-Q1",
			Phase:  1,
			Prompt: "If counselling were a mountain climb, which role is closest to yours?",
			Rule: NewCategorical(
				Option{ID: "guide", Label: "Guide: knows the map, anticipates danger, plans the safe route", Rationale: "guide: objective direction", Delta: Delta{A: 2.0, B: 1.0}},
				Option{ID: "partner", Label: "Partner: walks side by side at the client's pace", Rationale: "partner: shared subjective experience", Delta: Delta{A: -2.0, B: -2.0}},
				Option{ID: "observer", Label: "Observer: keeps the overview and analyses stride and habit", Rationale: "observer: dynamic analysis", Delta: Delta{A: -1.0, B: 3.0}},
				Option{ID: "coach", Label: "Coach: secures the rope and instructs each hold", Rationale: "coach: rational action", Delta: Delta{A: 2.0, B: 2.0}},
			),
		},
		{
			Tag:    "P1-Q2",
			Phase:  1,
			Prompt: "Which core tool would you reach for first to help a client?",
			Rule: NewCategorical(
				Option{ID: "flashlight", Label: "Flashlight", Rationale: "tool: explores the unconscious", Delta: Delta{A: -1.0, B: 2.5}},
				Option{ID: "blanket", Label: "Blanket", Rationale: "tool: offers containment", Delta: Delta{A: -2.0, B: -1.5}},
				Option{ID: "mirror", Label: "Mirror", Rationale: "tool: phenomenological reflection", Delta: Delta{A: -1.0, B: -1.0}},
				Option{ID: "compass", Label: "Compass", Rationale: "tool: goal orientation", Delta: Delta{A: 2.0, B: 1.5}},
			),
		},
		{
			Tag:    "P1-Q3",
			Phase:  1,
			Prompt: "\"Keeping a neutral, technical-expert image matters more than showing my personal qualities.\"",
			Rule:   slider(AxisA, "strongly disagree (personal qualities)", "strongly agree (expert image)", "calibration: identification with the expert role"),
		},

		// Phase 2
		{
			Tag:    "P2-Q1",
			Phase:  2,
			Prompt: "Self-negation: \"I'm a failure, whatever I try I end up ruining it.\" Where do you intervene?",
			Rule: NewCategorical(
				Option{ID: "evidence", Label: "Examine the evidence for \"failure\"", Rationale: "rational evidence", Delta: Delta{A: 1.5, B: 1.5}},
				Option{ID: "reflect", Label: "Reflect the feeling of defeat", Rationale: "affective experience", Delta: Delta{A: -1.5, B: -1.5}},
				Option{ID: "past", Label: "Link the sentence to who said it before", Rationale: "dynamic analysis", Delta: Delta{A: -1.0, B: 2.0}},
				Option{ID: "exceptions", Label: "Look for exceptions when it went better", Rationale: "action construction", Delta: Delta{A: 1.0, B: 1.0}},
			),
		},
		{
			Tag:    "P2-Q2",
			Phase:  2,
			Prompt: "Ten minutes of silence, the client looking out of the window. What do you do?",
			Rule: NewCategorical(
				Option{ID: "resistance", Label: "Consider what the silence resists", Rationale: "analytic view", Delta: Delta{A: -1.0, B: 2.0}},
				Option{ID: "structure", Label: "Break the impasse with homework review or an agenda", Rationale: "structured guidance", Delta: Delta{A: 1.5, B: 1.0}},
				Option{ID: "presence", Label: "Stay quietly present and hold the space", Rationale: "present companionship", Delta: Delta{A: -1.5, B: -2.0}},
				Option{ID: "process", Label: "Ask what the silence is telling you", Rationale: "process communication", Delta: Delta{A: -0.5, B: -1.0}},
			),
		},
		{
			Tag:    "P2-Q3",
			Phase:  2,
			Prompt: "Rupture: \"What's the point of asking about feelings? It doesn't fix anything!\" Your first response?",
			Rule: NewCategorical(
				Option{ID: "collaborate", Label: "Name the mismatch and discuss what would help", Rationale: "collaborative meaning-making", Delta: Delta{A: -1.0, B: 0.5}},
				Option{ID: "empathize", Label: "Acknowledge the urgency and frustration", Rationale: "empathic acceptance", Delta: Delta{A: -1.5, B: -1.5}},
				Option{ID: "transference", Label: "Explore whether the anger echoes another relationship", Rationale: "transference exploration", Delta: Delta{A: -1.0, B: 2.5}},
				Option{ID: "behavioral", Label: "Shift to concrete behaviour change", Rationale: "behavioural correction", Delta: Delta{A: 2.0, B: 1.5}},
			),
		},

		// Phase 3
		{
			Tag:    "P3-Q1",
			Phase:  3,
			Prompt: "Which outcomes would be most unacceptable in your own practice? Rank the worst and the second worst.",
			Rule: NewRankedPair(cfg.RankWeights.First, cfg.RankWeights.Second,
				Option{ID: "lose_control", Label: "Losing control of the session's structure", Rationale: "shadow: need for structure", Delta: Delta{A: 1.5, B: 1.0}},
				Option{ID: "cold", Label: "Being experienced as cold or mechanical", Rationale: "shadow: values warmth and contact", Delta: Delta{A: -1.0, B: -1.5}},
				Option{ID: "superficial", Label: "Staying on the surface and missing what lies beneath", Rationale: "shadow: values depth and insight", Delta: Delta{A: -0.5, B: 1.5}},
				Option{ID: "no_evidence", Label: "Being unable to show measurable progress", Rationale: "shadow: values demonstrable outcomes", Delta: Delta{A: 2.0, B: 0.5}},
				Option{ID: "imposing", Label: "Imposing my framework on the client's own meaning", Rationale: "shadow: values the client's construction", Delta: Delta{A: -2.0, B: -0.5}},
			),
		},
		{
			Tag:    "P3-Q2",
			Phase:  3,
			Prompt: "\"When a session is stuck, I trust understanding what is going on more than staying with what is felt.\"",
			Rule:   slider(AxisB, "strongly disagree (stay with feeling)", "strongly agree (understand first)", "calibration: trust in analysis over experience"),
		},

		// Phase 4
		{
			Tag:    "P4-Q1",
			Phase:  4,
			Prompt: "Which room would you set up for your practice?",
			Rule: NewCategorical(
				Option{ID: "desk", Label: "Desk between the chairs, whiteboard on the wall", Rationale: "frame: formal structure", Delta: Delta{A: 2.0, B: 1.0}},
				Option{ID: "facing", Label: "Two armchairs facing each other at a fixed distance", Rationale: "frame: analytic setting", Delta: Delta{A: -0.5, B: 1.0}},
				Option{ID: "angled", Label: "Armchairs at an angle, cushions and soft light", Rationale: "frame: warm holding environment", Delta: Delta{A: -1.5, B: -1.5}},
				Option{ID: "open", Label: "Open floor, movable seats, room for movement and art", Rationale: "frame: experiential space", Delta: Delta{A: -1.0, B: -2.0}},
			),
		},
		{
			Tag:    "P4-Q2",
			Phase:  4,
			Prompt: "Do you end on time even when the client is in the middle of a disclosure?",
			Rule: NewBinary(
				Option{Label: "Yes, the session ends on time", Rationale: "boundary: firm frame", Delta: Delta{A: 1.0, B: 0.5}},
				Option{Label: "No, I extend when it matters", Rationale: "boundary: flexible frame", Delta: Delta{A: -1.0, B: -0.5}},
			),
		},
		{
			Tag:    "P4-Q3",
			Phase:  4,
			Prompt: "Would you share your own in-the-moment feelings when it might help the client?",
			Rule: NewBinary(
				Option{Label: "Yes, self-disclosure is part of the work", Rationale: "boundary: self-disclosure as intervention", Delta: Delta{A: -1.0, B: -1.5}},
				Option{Label: "No, I keep my reactions to myself", Rationale: "boundary: therapist opacity", Delta: Delta{A: 0.5, B: 1.0}},
			),
		},
	}

	c, err := NewCatalog(phases, questions)
	if err != nil {
		panic(fmt.Sprintf("scoring: default catalog: %v", err))
	}
	return c
}
