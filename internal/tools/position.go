package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/HendryAvila/compass/internal/assessment"
	"github.com/mark3labs/mcp-go/mcp"
)

// PositionTool handles the compass_position MCP tool.
// It shows the running totals before the questionnaire is finished.
type PositionTool struct {
	registry *assessment.Registry
}

// NewPositionTool creates a PositionTool.
func NewPositionTool(r *assessment.Registry) *PositionTool {
	return &PositionTool{registry: r}
}

// Definition returns the MCP tool definition for registration.
func (t *PositionTool) Definition() mcp.Tool {
	return mcp.NewTool("compass_position",
		mcp.WithDescription(
			"Show the current running position and which questions are still open. "+
				"Works at any point of a session, including before any answer.",
		),
		mcp.WithString("session_id",
			mcp.Required(),
			mcp.Description("Session id returned by compass_start."),
		),
	)
}

// Handle processes the compass_position tool call.
func (t *PositionTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, errResult := sessionID(req)
	if errResult != nil {
		return errResult, nil
	}

	var (
		a, b     float64
		progress assessment.Progress
	)
	err := t.registry.Do(id, func(s *assessment.Session) error {
		a, b = s.Position()
		progress = s.Progress()
		return nil
	})
	if err != nil {
		return domainResult(err)
	}

	var sb strings.Builder
	sb.WriteString("# Current Position\n\n")
	writePosition(&sb, a, b)
	fmt.Fprintf(&sb, "\n**Events recorded**: %d\n", progress.Events)
	if len(progress.Answered) > 0 {
		fmt.Fprintf(&sb, "**Answered**: %s\n", strings.Join(progress.Answered, ", "))
	}
	if len(progress.Remaining) > 0 {
		fmt.Fprintf(&sb, "**Remaining**: %s\n", strings.Join(progress.Remaining, ", "))
	}
	return mcp.NewToolResultText(sb.String()), nil
}
