package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/HendryAvila/compass/internal/scoring"
	"github.com/mark3labs/mcp-go/mcp"
)

// QuestionsTool handles the compass_questions MCP tool.
// It lists the questions of one phase (or all) with their valid answers.
type QuestionsTool struct {
	catalog *scoring.Catalog
}

// NewQuestionsTool creates a QuestionsTool over catalog.
func NewQuestionsTool(catalog *scoring.Catalog) *QuestionsTool {
	return &QuestionsTool{catalog: catalog}
}

// Definition returns the MCP tool definition for registration.
func (t *QuestionsTool) Definition() mcp.Tool {
	return mcp.NewTool("compass_questions",
		mcp.WithDescription(
			"List questionnaire questions with their tags and valid answer ids. "+
				"Present one phase at a time to the user, then record their confirmed "+
				"choices with compass_answer or compass_answer_phase. Option deltas are "+
				"never shown here; revealing them would bias the answers.",
		),
		mcp.WithNumber("phase",
			mcp.Description("Phase number (1-4). Omit or pass 0 to list every phase."),
		),
	)
}

// Handle processes the compass_questions tool call.
func (t *QuestionsTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	phase := intArg(req, "phase", 0)

	var phases []scoring.Phase
	for _, p := range t.catalog.Phases() {
		if phase == 0 || p.Number == phase {
			phases = append(phases, p)
		}
	}
	if len(phases) == 0 {
		return mcp.NewToolResultError(fmt.Sprintf("unknown phase %d: the questionnaire has %d phases", phase, len(t.catalog.Phases()))), nil
	}

	var sb strings.Builder
	for _, p := range phases {
		writePhase(&sb, p, t.catalog.Questions(p.Number))
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func writePhase(sb *strings.Builder, p scoring.Phase, questions []scoring.Question) {
	fmt.Fprintf(sb, "## Phase %d: %s\n\n_%s_\n\n", p.Number, p.Title, p.Theme)
	for _, q := range questions {
		writeQuestion(sb, q)
	}
}

func writeQuestion(sb *strings.Builder, q scoring.Question) {
	fmt.Fprintf(sb, "### %s\n\n%s\n\n", q.Tag, q.Prompt)
	switch r := q.Rule.(type) {
	case *scoring.Slider:
		fmt.Fprintf(sb, "Answer with `value` from %d (%s) to %d (%s).\n\n", r.Min, r.LowLabel, r.Max, r.HighLabel)
	case *scoring.RankedPair:
		sb.WriteString("Rank exactly two different options with `ranked` as \"first,second\":\n\n")
		writeOptions(sb, r.Options())
	default:
		sb.WriteString("Answer with one `option`:\n\n")
		writeOptions(sb, q.Rule.Options())
	}
}

func writeOptions(sb *strings.Builder, options []scoring.Option) {
	for _, o := range options {
		fmt.Fprintf(sb, "- `%s`: %s\n", o.ID, o.Label)
	}
	sb.WriteString("\n")
}
