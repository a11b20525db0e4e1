package assessment

import (
	"fmt"
	"strings"
)

const timeFormat = "2006-01-02 15:04 UTC"

// Markdown renders the report as the text shown to the respondent.
func (r Report) Markdown() string {
	var sb strings.Builder
	sb.WriteString("# Orientation Report\n\n")
	if !r.StartedAt.IsZero() {
		fmt.Fprintf(&sb, "_Session started %s, report generated %s._\n\n",
			r.StartedAt.Format(timeFormat), r.GeneratedAt.Format(timeFormat))
	}

	fmt.Fprintf(&sb, "**Quadrant %s**: %s\n\n", r.Quadrant.Label, r.Quadrant.Descriptor)
	for _, p := range r.Quadrant.Proximity {
		fmt.Fprintf(&sb, "- Your position is %s.\n", p)
	}
	if len(r.Quadrant.Proximity) > 0 {
		sb.WriteString("\n")
	}

	sb.WriteString("## Position\n\n")
	fmt.Fprintf(&sb, "| Axis | Total |\n|---|---|\n")
	fmt.Fprintf(&sb, "| A: epistemic stance (objective +, subjective -) | %+.2f |\n", r.TotalA)
	fmt.Fprintf(&sb, "| B: intervention focus (analytical +, experiential -) | %+.2f |\n\n", r.TotalB)

	sb.WriteString("## Consistency\n\n")
	fmt.Fprintf(&sb, "**%s**: %s\n\n", r.Consistency.Classification, r.Consistency.Classification.Describe())
	fmt.Fprintf(&sb, "Variance A %.2f, variance B %.2f, total %.2f.\n\n",
		r.Consistency.VarianceA, r.Consistency.VarianceB, r.Consistency.TotalVariance)

	sb.WriteString("## Answer History\n\n")
	sb.WriteString("| # | Question | Choice | ΔA | ΔB | Rationale |\n|---|---|---|---|---|---|\n")
	for _, e := range r.History {
		fmt.Fprintf(&sb, "| %d | %s | %s | %+.2f | %+.2f | %s |\n",
			e.Seq, e.PhaseTag, escapeCell(e.ChoiceLabel), e.DeltaA, e.DeltaB, escapeCell(e.Rationale))
	}
	return sb.String()
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
