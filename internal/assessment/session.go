package assessment

import (
	"fmt"
	"time"

	"github.com/HendryAvila/compass/internal/config"
	"github.com/HendryAvila/compass/internal/scoring"
)

// Answer pairs a question tag with the raw selection for it.
type Answer struct {
	Tag       string            `json:"tag"`
	Selection scoring.Selection `json:"selection"`
}

// Session is the state of one assessment. Construct it with NewSession;
// the zero value is not usable.
type Session struct {
	id        string
	catalog   *scoring.Catalog
	cfg       config.Scoring
	axes      AxisState
	history   History
	seq       int
	startedAt time.Time
}

// NewSession returns an empty session scored against catalog.
func NewSession(id string, catalog *scoring.Catalog, cfg config.Scoring) *Session {
	return &Session{
		id:        id,
		catalog:   catalog,
		cfg:       cfg,
		startedAt: timeNow().UTC(),
	}
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// StartedAt returns when the session was created.
func (s *Session) StartedAt() time.Time { return s.startedAt }

// Catalog returns the rule table the session scores against.
func (s *Session) Catalog() *scoring.Catalog { return s.catalog }

// RecordAnswer scores one confirmed answer and applies every resulting
// contribution. It either records all events of the answer or none.
func (s *Session) RecordAnswer(tag string, sel scoring.Selection) ([]Event, error) {
	return s.RecordPhase([]Answer{{Tag: tag, Selection: sel}})
}

// RecordPhase scores several answers confirmed together, as a phase-wide
// confirm does. Every answer is scored before anything is applied, so a
// single invalid answer leaves the session untouched.
func (s *Session) RecordPhase(answers []Answer) ([]Event, error) {
	if len(answers) == 0 {
		return nil, &scoring.ValidationError{Question: "phase", Reason: "no answers submitted"}
	}

	type scored struct {
		tag      string
		contribs []scoring.Contribution
	}
	pending := make([]scored, 0, len(answers))
	for _, a := range answers {
		q, err := s.catalog.Lookup(a.Tag)
		if err != nil {
			return nil, err
		}
		contribs, err := q.Score(a.Selection)
		if err != nil {
			return nil, err
		}
		if len(contribs) == 0 {
			return nil, fmt.Errorf("rule for %s returned no contributions", a.Tag)
		}
		pending = append(pending, scored{tag: a.Tag, contribs: contribs})
	}

	if s.cfg.Revisit == config.RevisitReplace {
		tags := make(map[string]bool, len(pending))
		for _, p := range pending {
			tags[p.tag] = true
		}
		s.retract(tags)
	}

	now := timeNow().UTC()
	var out []Event
	for _, p := range pending {
		for _, c := range p.contribs {
			s.seq++
			e := Event{
				Seq:         s.seq,
				PhaseTag:    p.tag,
				ChoiceLabel: c.ChoiceLabel,
				Rationale:   c.Rationale,
				DeltaA:      c.Delta.A,
				DeltaB:      c.Delta.B,
				RecordedAt:  now,
			}
			s.axes.Record(e.DeltaA, e.DeltaB)
			s.history.Append(e)
			out = append(out, e)
		}
	}
	return out, nil
}

// retract drops earlier events of the given questions and recomputes
// the axes from what is left.
func (s *Session) retract(tags map[string]bool) {
	kept := s.history.without(tags)
	if len(kept) == s.history.Len() {
		return
	}
	s.history = History{events: kept}
	s.axes = rebuild(kept)
}

// Position returns the current running totals. Usable for live display
// before the questionnaire is finished.
func (s *Session) Position() (totalA, totalB float64) {
	return s.axes.TotalA, s.axes.TotalB
}

// Axes returns a copy of the accumulator state.
func (s *Session) Axes() AxisState {
	return s.axes.Snapshot()
}

// Events returns a copy of the ordered event history.
func (s *Session) Events() []Event {
	return s.history.Events()
}

// Progress reports which questions have been answered at least once.
type Progress struct {
	Answered  []string `json:"answered"`
	Remaining []string `json:"remaining"`
	Events    int      `json:"events"`
}

// Progress returns the answered and remaining question tags in catalog
// order.
func (s *Session) Progress() Progress {
	answered := make(map[string]bool)
	for _, tag := range s.history.Tags() {
		answered[tag] = true
	}
	p := Progress{Events: s.history.Len()}
	for _, q := range s.catalog.Questions(0) {
		if answered[q.Tag] {
			p.Answered = append(p.Answered, q.Tag)
		} else {
			p.Remaining = append(p.Remaining, q.Tag)
		}
	}
	return p
}

// Report assembles the final report. It fails with InsufficientDataError
// when nothing has been recorded.
func (s *Session) Report() (Report, error) {
	r, err := Build(s.axes, &s.history, s.cfg)
	if err != nil {
		return Report{}, err
	}
	r.SessionID = s.id
	r.StartedAt = s.StartedAt()
	return r, nil
}
