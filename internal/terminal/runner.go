package terminal

import (
	"context"
	"fmt"
	"io"

	"github.com/HendryAvila/compass/internal/assessment"
	"github.com/HendryAvila/compass/internal/scoring"
)

// DefaultMaxAttempts is how often a phase is asked again after its
// answers were rejected.
const DefaultMaxAttempts = 3

// Runner walks a session through every phase of its catalog and prints
// the report at the end.
type Runner struct {
	Session *assessment.Session
	Asker   Asker
	Out     io.Writer
	// MaxAttempts caps how often one phase is asked. Zero means
	// DefaultMaxAttempts.
	MaxAttempts int
	// OnReport is called with the finished report, if set.
	OnReport func(r assessment.Report, markdown string)
}

// Run asks every phase in order and returns the final report.
func (r *Runner) Run(ctx context.Context) (assessment.Report, error) {
	for _, p := range r.Session.Catalog().Phases() {
		if err := ctx.Err(); err != nil {
			return assessment.Report{}, err
		}
		if err := r.runPhase(ctx, p); err != nil {
			return assessment.Report{}, err
		}
	}

	report, err := r.Session.Report()
	if err != nil {
		return assessment.Report{}, err
	}
	fmt.Fprintln(r.Out, RenderReport(report))
	if r.OnReport != nil {
		r.OnReport(report, report.Markdown())
	}
	return report, nil
}

func (r *Runner) runPhase(ctx context.Context, p scoring.Phase) error {
	questions := r.Session.Catalog().Questions(p.Number)
	limit := r.MaxAttempts
	if limit <= 0 {
		limit = DefaultMaxAttempts
	}

	for attempt := 1; ; attempt++ {
		answers, err := r.Asker.AskPhase(ctx, p, questions)
		if err != nil {
			return err
		}

		events, err := r.Session.RecordPhase(answers)
		if err == nil {
			a, b := r.Session.Position()
			fmt.Fprintln(r.Out, Styles.Muted.Render(fmt.Sprintf(
				"Phase %d recorded (%d events). Position: A %+.2f, B %+.2f", p.Number, len(events), a, b)))
			return nil
		}
		if !scoring.IsValidation(err) {
			return err
		}
		if attempt >= limit {
			return fmt.Errorf("phase %d rejected %d times: %w", p.Number, attempt, err)
		}
		fmt.Fprintln(r.Out, Styles.Error.Render(fmt.Sprintf("%v. Please review the phase.", err)))
	}
}
