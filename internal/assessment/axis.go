// Package assessment owns the state of one questionnaire session: the
// axis accumulator, the history of scoring events, and the operations
// the presentation layer calls (RecordAnswer, Position, Report).
//
// A Session is not safe for concurrent use. Hosts that serve several
// users keep one Session per user in a Registry, which serialises
// access per session.
package assessment

// AxisState is the running position and the raw delta histories.
// TotalA and TotalB always equal the sums of DeltasA and DeltasB.
type AxisState struct {
	TotalA  float64   `json:"total_a"`
	TotalB  float64   `json:"total_b"`
	DeltasA []float64 `json:"deltas_a"`
	DeltasB []float64 `json:"deltas_b"`
}

// Record applies one contribution. It must be called exactly once per
// scoring event.
func (s *AxisState) Record(deltaA, deltaB float64) {
	s.TotalA += deltaA
	s.TotalB += deltaB
	s.DeltasA = append(s.DeltasA, deltaA)
	s.DeltasB = append(s.DeltasB, deltaB)
}

// Len returns the number of recorded contributions.
func (s AxisState) Len() int {
	return len(s.DeltasA)
}

// Snapshot returns a deep copy.
func (s AxisState) Snapshot() AxisState {
	return AxisState{
		TotalA:  s.TotalA,
		TotalB:  s.TotalB,
		DeltasA: append([]float64(nil), s.DeltasA...),
		DeltasB: append([]float64(nil), s.DeltasB...),
	}
}

// rebuild recomputes the state from a list of deltas. Used only by the
// replace revisit policy, which retracts earlier events.
func rebuild(events []Event) AxisState {
	var s AxisState
	for _, e := range events {
		s.Record(e.DeltaA, e.DeltaB)
	}
	return s
}
