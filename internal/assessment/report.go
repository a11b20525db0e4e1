package assessment

import (
	"errors"
	"fmt"
	"time"

	"github.com/HendryAvila/compass/internal/analysis"
	"github.com/HendryAvila/compass/internal/config"
)

// InsufficientDataError is returned when a report is requested before any
// answer has been recorded.
type InsufficientDataError struct{}

func (e *InsufficientDataError) Error() string {
	return "no answers recorded yet: complete and confirm at least one question before viewing a report"
}

// IsInsufficientData reports whether err is (or wraps) an InsufficientDataError.
func IsInsufficientData(err error) bool {
	var i *InsufficientDataError
	return errors.As(err, &i)
}

// Report is the assembled result of a session.
type Report struct {
	SessionID   string                  `json:"session_id,omitempty"`
	TotalA      float64                 `json:"total_a"`
	TotalB      float64                 `json:"total_b"`
	Consistency analysis.Verdict        `json:"consistency"`
	Quadrant    analysis.QuadrantResult `json:"quadrant"`
	History     []Event                 `json:"history"`
	StartedAt   time.Time               `json:"started_at,omitempty"`
	GeneratedAt time.Time               `json:"generated_at"`
}

// Build packages totals, consistency verdict, quadrant and the full
// ordered history. With an empty history it returns InsufficientDataError
// and computes nothing.
func Build(axes AxisState, history *History, cfg config.Scoring) (Report, error) {
	if history == nil || history.Len() == 0 {
		return Report{}, &InsufficientDataError{}
	}
	if axes.Len() != history.Len() {
		return Report{}, fmt.Errorf("axis history has %d entries but event log has %d", axes.Len(), history.Len())
	}

	verdict, err := analysis.Analyze(axes.DeltasA, axes.DeltasB, axes.TotalA, axes.TotalB, cfg.Consistency)
	if err != nil {
		return Report{}, fmt.Errorf("analyzing consistency: %w", err)
	}

	return Report{
		TotalA:      axes.TotalA,
		TotalB:      axes.TotalB,
		Consistency: verdict,
		Quadrant:    analysis.Classify(axes.TotalA, axes.TotalB, cfg.Quadrant.ProximityBand),
		History:     history.Events(),
		GeneratedAt: timeNow().UTC(),
	}, nil
}
