package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/HendryAvila/compass/internal/assessment"
	"github.com/mark3labs/mcp-go/mcp"
)

// Report output formats.
const (
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
)

// ReportTool handles the compass_report MCP tool.
type ReportTool struct {
	registry *assessment.Registry
	observer ReportObserver // nullable
}

// NewReportTool creates a ReportTool. observer may be nil.
func NewReportTool(r *assessment.Registry, observer ReportObserver) *ReportTool {
	return &ReportTool{registry: r, observer: observer}
}

// Definition returns the MCP tool definition for registration.
func (t *ReportTool) Definition() mcp.Tool {
	return mcp.NewTool("compass_report",
		mcp.WithDescription(
			"Generate the orientation report: final position on both axes, the "+
				"quadrant, the consistency verdict and the full answer history. "+
				"Fails until at least one answer has been recorded. The session stays "+
				"open, so later answers produce an updated report.",
		),
		mcp.WithString("session_id",
			mcp.Required(),
			mcp.Description("Session id returned by compass_start."),
		),
		mcp.WithString("format",
			mcp.Description("Output format: 'markdown' (default) or 'json'."),
			mcp.Enum(FormatMarkdown, FormatJSON),
		),
	)
}

// Handle processes the compass_report tool call.
func (t *ReportTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, errResult := sessionID(req)
	if errResult != nil {
		return errResult, nil
	}
	format := req.GetString("format", FormatMarkdown)
	if format != FormatMarkdown && format != FormatJSON {
		return mcp.NewToolResultError(fmt.Sprintf("invalid format %q: use 'markdown' or 'json'", format)), nil
	}

	var report assessment.Report
	err := t.registry.Do(id, func(s *assessment.Session) error {
		var err error
		report, err = s.Report()
		return err
	})
	if err != nil {
		return domainResult(err)
	}

	md := report.Markdown()
	notifyObserver(t.observer, report, md)

	if format == FormatJSON {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encoding report: %w", err)
		}
		return mcp.NewToolResultText(string(data)), nil
	}
	return mcp.NewToolResultText(md), nil
}
