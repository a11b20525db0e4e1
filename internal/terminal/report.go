package terminal

import (
	"fmt"
	"strings"

	"github.com/HendryAvila/compass/internal/analysis"
	"github.com/HendryAvila/compass/internal/assessment"
	"github.com/charmbracelet/lipgloss"
)

// plotRadius is the number of cells from the centre of the position plot
// to its edge on each side.
const plotRadius = 8

// RenderReport renders a report for the terminal.
func RenderReport(r assessment.Report) string {
	var sb strings.Builder

	sb.WriteString(Styles.Title.Render("Orientation Report"))
	sb.WriteString("\n\n")

	header := fmt.Sprintf("%s  %s",
		Styles.Bold.Render("Quadrant "+string(r.Quadrant.Label)),
		r.Quadrant.Descriptor)
	for _, p := range r.Quadrant.Proximity {
		header += "\n" + Styles.Muted.Render("Your position is "+p+".")
	}
	sb.WriteString(Styles.Box.Render(header))
	sb.WriteString("\n\n")

	plot := renderPlot(r.TotalA, r.TotalB)
	totals := fmt.Sprintf("%s %+.2f\n%s\n\n%s %+.2f\n%s",
		Styles.Bold.Render("A"), r.TotalA, Styles.Muted.Render("objective + / subjective -"),
		Styles.Bold.Render("B"), r.TotalB, Styles.Muted.Render("analytical + / experiential -"))
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, plot, "   ", totals))
	sb.WriteString("\n\n")

	sb.WriteString(Styles.Subtitle.Render("Consistency"))
	sb.WriteString("\n")
	sb.WriteString(verdictStyle(r.Consistency.Classification).Render(string(r.Consistency.Classification)))
	sb.WriteString(": " + r.Consistency.Classification.Describe() + "\n")
	sb.WriteString(Styles.Muted.Render(fmt.Sprintf("variance A %.2f, B %.2f, total %.2f",
		r.Consistency.VarianceA, r.Consistency.VarianceB, r.Consistency.TotalVariance)))
	sb.WriteString("\n\n")

	sb.WriteString(Styles.Subtitle.Render("Answer History"))
	sb.WriteString("\n")
	for _, e := range r.History {
		row := lipgloss.JoinHorizontal(lipgloss.Top,
			Styles.Cell.Render(fmt.Sprintf("%3d", e.Seq)),
			Styles.Cell.Render(fmt.Sprintf("%-6s", e.PhaseTag)),
			Styles.Cell.Render(fmt.Sprintf("ΔA %+5.2f  ΔB %+5.2f", e.DeltaA, e.DeltaB)),
			e.ChoiceLabel,
		)
		sb.WriteString(row + "\n")
		if e.Rationale != "" {
			sb.WriteString(Styles.Muted.Render("      "+e.Rationale) + "\n")
		}
	}
	return sb.String()
}

func verdictStyle(c analysis.Classification) lipgloss.Style {
	switch c {
	case analysis.Consistent:
		return Styles.Success
	case analysis.MixedOrIntegrative:
		return Styles.Warning
	default:
		return Styles.Error
	}
}

// renderPlot draws the position on a small character grid. Positions
// beyond the grid are clamped to its edge.
func renderPlot(a, b float64) string {
	size := plotRadius*2 + 1
	col := plotRadius + clamp(int(a+sign(a)*0.5))
	row := plotRadius - clamp(int(b+sign(b)*0.5))

	var lines []string
	for y := 0; y < size; y++ {
		var line strings.Builder
		for x := 0; x < size; x++ {
			switch {
			case x == col && y == row:
				line.WriteString(Styles.Title.Render("●"))
			case x == plotRadius && y == plotRadius:
				line.WriteString("┼")
			case x == plotRadius:
				line.WriteString("│")
			case y == plotRadius:
				line.WriteString("─")
			default:
				line.WriteString(" ")
			}
		}
		lines = append(lines, line.String())
	}
	return Styles.Box.Render(strings.Join(lines, "\n"))
}

func clamp(v int) int {
	if v > plotRadius {
		return plotRadius
	}
	if v < -plotRadius {
		return -plotRadius
	}
	return v
}

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}
