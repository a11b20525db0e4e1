package terminal

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/HendryAvila/compass/internal/assessment"
	"github.com/HendryAvila/compass/internal/scoring"
	"github.com/charmbracelet/huh"
)

// ErrAborted is returned when the respondent quits a form.
var ErrAborted = errors.New("questionnaire aborted")

// Asker collects the answers of one phase.
type Asker interface {
	AskPhase(ctx context.Context, p scoring.Phase, questions []scoring.Question) ([]assessment.Answer, error)
}

// FormAsker asks each phase as a huh form: one group per question and a
// final confirmation. Answers are only returned once the respondent
// confirms the phase.
type FormAsker struct {
	// Accessible switches huh to its screen-reader friendly mode.
	Accessible bool
}

// slot holds the raw form values of one question.
type slot struct {
	option   string
	first    string
	second   string
	value    int
	valueSet bool // unset slider vs a genuine 0
	yes      bool
}

// AskPhase runs the phase form until the respondent confirms it.
// Cancelling ctx closes an open form.
func (f FormAsker) AskPhase(ctx context.Context, p scoring.Phase, questions []scoring.Question) ([]assessment.Answer, error) {
	slots := make([]*slot, len(questions))
	for i := range slots {
		slots[i] = &slot{option: scoring.PlaceholderOption, first: scoring.PlaceholderOption, second: scoring.PlaceholderOption}
	}

	for {
		groups := []*huh.Group{
			huh.NewGroup(huh.NewNote().
				Title(fmt.Sprintf("Phase %d: %s", p.Number, p.Title)).
				Description(p.Theme)),
		}
		for i, q := range questions {
			groups = append(groups, questionGroup(q, slots[i]))
		}

		confirmed := false
		groups = append(groups, huh.NewGroup(huh.NewConfirm().
			Title("Confirm the answers of this phase?").
			Affirmative("Confirm").
			Negative("Review again").
			Value(&confirmed)))

		err := huh.NewForm(groups...).WithAccessible(f.Accessible).RunWithContext(ctx)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if errors.Is(err, huh.ErrUserAborted) {
			return nil, ErrAborted
		}
		if err != nil {
			return nil, fmt.Errorf("running phase %d form: %w", p.Number, err)
		}
		if confirmed {
			return collect(questions, slots), nil
		}
	}
}

// questionGroup builds the form fields of one question.
func questionGroup(q scoring.Question, s *slot) *huh.Group {
	title := fmt.Sprintf("%s  %s", q.Tag, q.Prompt)

	switch r := q.Rule.(type) {
	case *scoring.Slider:
		if !s.valueSet {
			s.value = r.Midpoint
			s.valueSet = true
		}
		opts := make([]huh.Option[int], 0, r.Max-r.Min+1)
		for v := r.Min; v <= r.Max; v++ {
			label := strconv.Itoa(v)
			switch v {
			case r.Min:
				label += "  " + r.LowLabel
			case r.Max:
				label += "  " + r.HighLabel
			}
			opts = append(opts, huh.NewOption(label, v))
		}
		return huh.NewGroup(huh.NewSelect[int]().Title(title).Options(opts...).Value(&s.value))

	case *scoring.RankedPair:
		opts := choiceOptions(r.Options(), "(choose)")
		return huh.NewGroup(
			huh.NewSelect[string]().Title(title).Description("Most important").Options(opts...).Value(&s.first),
			huh.NewSelect[string]().Title("Second").Options(opts...).Value(&s.second),
		)

	case *scoring.Binary:
		return huh.NewGroup(huh.NewConfirm().Title(title).Affirmative("Yes").Negative("No").Value(&s.yes))

	default:
		opts := choiceOptions(q.Rule.Options(), "(choose one)")
		return huh.NewGroup(huh.NewSelect[string]().Title(title).Options(opts...).Value(&s.option))
	}
}

func choiceOptions(options []scoring.Option, placeholder string) []huh.Option[string] {
	out := []huh.Option[string]{huh.NewOption(placeholder, scoring.PlaceholderOption)}
	for _, o := range options {
		out = append(out, huh.NewOption(o.Label, o.ID))
	}
	return out
}

// collect converts the form values into answers. Placeholders are passed
// through unchanged so the scoring engine reports them.
func collect(questions []scoring.Question, slots []*slot) []assessment.Answer {
	answers := make([]assessment.Answer, 0, len(questions))
	for i, q := range questions {
		answers = append(answers, assessment.Answer{Tag: q.Tag, Selection: slots[i].selection(q.Rule.Kind())})
	}
	return answers
}

func (s *slot) selection(kind scoring.RuleKind) scoring.Selection {
	switch kind {
	case scoring.KindSlider:
		if !s.valueSet {
			return scoring.Selection{}
		}
		return scoring.SliderValue(s.value)
	case scoring.KindRankedPair:
		return scoring.Selection{Ranked: []string{s.first, s.second}}
	case scoring.KindBinary:
		if s.yes {
			return scoring.Selection{Option: scoring.OptionYes}
		}
		return scoring.Selection{Option: scoring.OptionNo}
	default:
		return scoring.Selection{Option: s.option}
	}
}
