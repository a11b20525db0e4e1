package tools

import (
	"context"
	"fmt"

	"github.com/HendryAvila/compass/internal/assessment"
	"github.com/mark3labs/mcp-go/mcp"
)

// EndTool handles the compass_end MCP tool.
type EndTool struct {
	registry *assessment.Registry
}

// NewEndTool creates an EndTool.
func NewEndTool(r *assessment.Registry) *EndTool {
	return &EndTool{registry: r}
}

// Definition returns the MCP tool definition for registration.
func (t *EndTool) Definition() mcp.Tool {
	return mcp.NewTool("compass_end",
		mcp.WithDescription(
			"End a session and discard its answers. Call this when the user is done "+
				"or wants to start over.",
		),
		mcp.WithString("session_id",
			mcp.Required(),
			mcp.Description("Session id returned by compass_start."),
		),
	)
}

// Handle processes the compass_end tool call.
func (t *EndTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, errResult := sessionID(req)
	if errResult != nil {
		return errResult, nil
	}
	if err := t.registry.End(id); err != nil {
		return domainResult(err)
	}
	return mcp.NewToolResultText(fmt.Sprintf("Session `%s` ended. Its answers have been discarded.", id)), nil
}
