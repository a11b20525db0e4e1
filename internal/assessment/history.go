package assessment

import "time"

// timeNow is a package-level variable for testability.
var timeNow = time.Now

// Event is one scoring event: a single applied contribution. Events are
// created once and never mutated.
type Event struct {
	Seq         int       `json:"seq"`
	PhaseTag    string    `json:"phase_tag"`
	ChoiceLabel string    `json:"choice_label"`
	Rationale   string    `json:"rationale"`
	DeltaA      float64   `json:"delta_a"`
	DeltaB      float64   `json:"delta_b"`
	RecordedAt  time.Time `json:"recorded_at"`
}

// History is the append-only, ordered log of scoring events.
type History struct {
	events []Event
}

// Append adds e at the end. No deduplication, no truncation.
func (h *History) Append(e Event) {
	h.events = append(h.events, e)
}

// Len returns the number of events.
func (h *History) Len() int {
	return len(h.events)
}

// Events returns a copy of the log in insertion order.
func (h *History) Events() []Event {
	return append([]Event(nil), h.events...)
}

// Tags returns the distinct phase tags in first-seen order.
func (h *History) Tags() []string {
	seen := make(map[string]bool)
	var tags []string
	for _, e := range h.events {
		if !seen[e.PhaseTag] {
			seen[e.PhaseTag] = true
			tags = append(tags, e.PhaseTag)
		}
	}
	return tags
}

// without returns the events whose tag is not in tags.
func (h *History) without(tags map[string]bool) []Event {
	var kept []Event
	for _, e := range h.events {
		if !tags[e.PhaseTag] {
			kept = append(kept, e)
		}
	}
	return kept
}
