package terminal

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/HendryAvila/compass/internal/assessment"
	"github.com/HendryAvila/compass/internal/config"
	"github.com/HendryAvila/compass/internal/scoring"
)

// scriptedAsker answers each phase from a fixed script. A phase may have
// several scripted attempts; the last one repeats.
type scriptedAsker struct {
	script map[int][][]assessment.Answer
	calls  map[int]int
	err    error
}

func (a *scriptedAsker) AskPhase(_ context.Context, p scoring.Phase, _ []scoring.Question) ([]assessment.Answer, error) {
	if a.err != nil {
		return nil, a.err
	}
	if a.calls == nil {
		a.calls = make(map[int]int)
	}
	attempts := a.script[p.Number]
	i := a.calls[p.Number]
	a.calls[p.Number]++
	if i >= len(attempts) {
		i = len(attempts) - 1
	}
	return attempts[i], nil
}

func opt(tag, option string) assessment.Answer {
	return assessment.Answer{Tag: tag, Selection: scoring.Selection{Option: option}}
}

func validScript() map[int][][]assessment.Answer {
	return map[int][][]assessment.Answer{
		1: {{opt("P1-Q1", "guide"), opt("P1-Q2", "compass"), {Tag: "P1-Q3", Selection: scoring.SliderValue(4)}}},
		2: {{opt("P2-Q1", "evidence"), opt("P2-Q2", "structure"), opt("P2-Q3", "behavioral")}},
		3: {{{Tag: "P3-Q1", Selection: scoring.Selection{Ranked: []string{"no_evidence", "lose_control"}}}, {Tag: "P3-Q2", Selection: scoring.SliderValue(5)}}},
		4: {{opt("P4-Q1", "desk"), opt("P4-Q2", scoring.OptionYes), opt("P4-Q3", scoring.OptionNo)}},
	}
}

func newTestSession() *assessment.Session {
	cfg := config.Default()
	return assessment.NewSession("term", scoring.DefaultCatalog(cfg), cfg)
}

func TestRunner_Run_CompleteQuestionnaire(t *testing.T) {
	var out bytes.Buffer
	var observed []assessment.Report
	r := &Runner{
		Session:  newTestSession(),
		Asker:    &scriptedAsker{script: validScript()},
		Out:      &out,
		OnReport: func(rep assessment.Report, _ string) { observed = append(observed, rep) },
	}

	report, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(report.History) != 12 {
		t.Errorf("history = %d events, want 12", len(report.History))
	}
	if report.Quadrant.Label != "I" {
		t.Errorf("quadrant = %s, want I", report.Quadrant.Label)
	}
	if len(observed) != 1 {
		t.Errorf("OnReport called %d times, want 1", len(observed))
	}
	if !strings.Contains(out.String(), "Orientation Report") {
		t.Errorf("report not printed:\n%s", out.String())
	}
}

func TestRunner_Run_RetriesRejectedPhase(t *testing.T) {
	script := validScript()
	script[3] = [][]assessment.Answer{
		{{Tag: "P3-Q1", Selection: scoring.Selection{Ranked: []string{"cold", "cold"}}}, {Tag: "P3-Q2", Selection: scoring.SliderValue(2)}},
		script[3][0],
	}
	asker := &scriptedAsker{script: script}
	var out bytes.Buffer
	s := newTestSession()

	if _, err := (&Runner{Session: s, Asker: asker, Out: &out}).Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if asker.calls[3] != 2 {
		t.Errorf("phase 3 asked %d times, want 2", asker.calls[3])
	}
	if !strings.Contains(out.String(), "Please review the phase") {
		t.Errorf("rejection not reported:\n%s", out.String())
	}
	for _, e := range s.Events() {
		if e.ChoiceLabel == "calibration 2/5" {
			t.Error("rejected phase left an event behind")
		}
	}
}

func TestRunner_Run_GivesUpAfterMaxAttempts(t *testing.T) {
	script := validScript()
	script[1] = [][]assessment.Answer{{opt("P1-Q1", scoring.PlaceholderOption)}}
	asker := &scriptedAsker{script: script}

	r := &Runner{Session: newTestSession(), Asker: asker, Out: &bytes.Buffer{}, MaxAttempts: 2}
	_, err := r.Run(context.Background())
	if !scoring.IsValidation(err) {
		t.Fatalf("err = %v, want validation error", err)
	}
	if asker.calls[1] != 2 {
		t.Errorf("phase 1 asked %d times, want 2", asker.calls[1])
	}
}

func TestRunner_Run_AskerError(t *testing.T) {
	r := &Runner{Session: newTestSession(), Asker: &scriptedAsker{err: ErrAborted}, Out: &bytes.Buffer{}}
	if _, err := r.Run(context.Background()); !errors.Is(err, ErrAborted) {
		t.Fatalf("err = %v, want ErrAborted", err)
	}
}

func TestRunner_Run_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := &Runner{Session: newTestSession(), Asker: &scriptedAsker{script: validScript()}, Out: &bytes.Buffer{}}
	if _, err := r.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

// cancellingAsker cancels the run while a phase is open, the way a
// signal does during an interactive form.
type cancellingAsker struct {
	cancel context.CancelFunc
}

func (a *cancellingAsker) AskPhase(ctx context.Context, _ scoring.Phase, _ []scoring.Question) ([]assessment.Answer, error) {
	a.cancel()
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestRunner_Run_CancelledDuringPhase(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s := newTestSession()
	r := &Runner{Session: s, Asker: &cancellingAsker{cancel: cancel}, Out: &bytes.Buffer{}}

	if _, err := r.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if len(s.Events()) != 0 {
		t.Errorf("events = %d, want 0", len(s.Events()))
	}
}

// --- Form values ---

func TestSlot_Selection(t *testing.T) {
	s := &slot{option: "guide", first: "cold", second: "imposing", value: 4, valueSet: true, yes: true}

	if got := s.selection(scoring.KindCategorical); got.Option != "guide" {
		t.Errorf("categorical = %+v", got)
	}
	if got := s.selection(scoring.KindSlider); got.Value == nil || *got.Value != 4 {
		t.Errorf("slider = %+v", got)
	}
	if got := s.selection(scoring.KindRankedPair); len(got.Ranked) != 2 || got.Ranked[0] != "cold" || got.Ranked[1] != "imposing" {
		t.Errorf("ranked = %+v", got)
	}
	if got := s.selection(scoring.KindBinary); got.Option != scoring.OptionYes {
		t.Errorf("binary yes = %+v", got)
	}
	s.yes = false
	if got := s.selection(scoring.KindBinary); got.Option != scoring.OptionNo {
		t.Errorf("binary no = %+v", got)
	}
}

func TestQuestionGroup_SliderDefaultsToMidpoint(t *testing.T) {
	cat := scoring.DefaultCatalog(config.Default())
	q, err := cat.Lookup("P1-Q3")
	if err != nil {
		t.Fatal(err)
	}
	s := &slot{}
	if questionGroup(q, s) == nil {
		t.Fatal("expected a group")
	}
	if s.value != 3 {
		t.Errorf("slider default = %d, want midpoint 3", s.value)
	}
}

func TestSlot_UnsetSliderHasNoValue(t *testing.T) {
	s := &slot{}
	if got := s.selection(scoring.KindSlider); got.Value != nil {
		t.Errorf("unset slider value = %d, want nil", *got.Value)
	}
}

func TestQuestionGroup_KeepsZeroSliderAnswer(t *testing.T) {
	cfg := config.Default()
	cfg.Slider.Min, cfg.Slider.Max, cfg.Slider.Midpoint = 0, 4, 2
	q, err := scoring.DefaultCatalog(cfg).Lookup("P1-Q3")
	if err != nil {
		t.Fatal(err)
	}

	s := &slot{}
	questionGroup(q, s)
	s.value = 0
	// Reviewing the phase rebuilds the form from the same slot.
	questionGroup(q, s)

	got := s.selection(scoring.KindSlider)
	if got.Value == nil || *got.Value != 0 {
		t.Errorf("slider after review = %+v, want 0", got)
	}
}

// --- Report rendering ---

func TestRenderReport(t *testing.T) {
	s := newTestSession()
	if _, err := s.RecordAnswer("P2-Q2", scoring.Selection{Option: "presence"}); err != nil {
		t.Fatal(err)
	}
	rep, err := s.Report()
	if err != nil {
		t.Fatal(err)
	}

	out := RenderReport(rep)
	for _, want := range []string{"Quadrant III", "-1.50", "P2-Q2", "consistent"} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered report missing %q:\n%s", want, out)
		}
	}
}

func TestRenderPlot_ClampsToGrid(t *testing.T) {
	out := renderPlot(100, -100)
	if !strings.Contains(out, "●") {
		t.Error("plot should always show the marker")
	}
}
