package resources

import "github.com/HendryAvila/compass/internal/scoring"

// phaseJSON and questionJSON are the wire shape of the catalog resource.
type phaseJSON struct {
	Number    int            `json:"number"`
	Title     string         `json:"title"`
	Theme     string         `json:"theme"`
	Questions []questionJSON `json:"questions"`
}

type questionJSON struct {
	Tag     string           `json:"tag"`
	Prompt  string           `json:"prompt"`
	Kind    scoring.RuleKind `json:"kind"`
	Options []optionJSON     `json:"options,omitempty"`
	Slider  *sliderJSON      `json:"slider,omitempty"`
	Weights []float64        `json:"rank_weights,omitempty"`
}

// optionJSON leaves out the delta: contributions stay hidden until the
// report.
type optionJSON struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

type sliderJSON struct {
	Axis        scoring.Axis `json:"axis"`
	Min         int          `json:"min"`
	Max         int          `json:"max"`
	Midpoint    int          `json:"midpoint"`
	Coefficient float64      `json:"coefficient"`
}

func catalogView(c *scoring.Catalog) []phaseJSON {
	out := make([]phaseJSON, 0, len(c.Phases()))
	for _, p := range c.Phases() {
		pj := phaseJSON{Number: p.Number, Title: p.Title, Theme: p.Theme}
		for _, q := range c.Questions(p.Number) {
			qj := questionJSON{Tag: q.Tag, Prompt: q.Prompt, Kind: q.Rule.Kind()}
			for _, o := range q.Rule.Options() {
				qj.Options = append(qj.Options, optionJSON{ID: o.ID, Label: o.Label})
			}
			switch r := q.Rule.(type) {
			case *scoring.Slider:
				qj.Slider = &sliderJSON{Axis: r.Axis, Min: r.Min, Max: r.Max, Midpoint: r.Midpoint, Coefficient: r.Coefficient}
			case *scoring.RankedPair:
				first, second := r.Weights()
				qj.Weights = []float64{first, second}
			}
			pj.Questions = append(pj.Questions, qj)
		}
		out = append(out, pj)
	}
	return out
}
