package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/HendryAvila/compass/internal/assessment"
	"github.com/mark3labs/mcp-go/mcp"
)

// StartTool handles the compass_start MCP tool.
type StartTool struct {
	registry *assessment.Registry
}

// NewStartTool creates a StartTool.
func NewStartTool(r *assessment.Registry) *StartTool {
	return &StartTool{registry: r}
}

// Definition returns the MCP tool definition for registration.
func (t *StartTool) Definition() mcp.Tool {
	return mcp.NewTool("compass_start",
		mcp.WithDescription(
			"Open a new orientation questionnaire session and return its session_id "+
				"together with the questions of phase 1. Every other compass tool "+
				"needs the session_id.",
		),
	)
}

// Handle processes the compass_start tool call.
func (t *StartTool) Handle(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := t.registry.Start()
	if err != nil {
		return domainResult(err)
	}

	catalog := t.registry.Catalog()
	var sb strings.Builder
	sb.WriteString("# Session Started\n\n")
	fmt.Fprintf(&sb, "**session_id**: `%s`\n\n", id)
	fmt.Fprintf(&sb, "The questionnaire has %d phases and %d questions.\n\n", len(catalog.Phases()), catalog.Len())

	if phases := catalog.Phases(); len(phases) > 0 {
		writePhase(&sb, phases[0], catalog.Questions(phases[0].Number))
	}
	sb.WriteString("## Next Steps\n\n")
	sb.WriteString("Present the phase to the user, then record their confirmed choices with `compass_answer_phase`.\n")
	return mcp.NewToolResultText(sb.String()), nil
}
