package prompts

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// StatusPrompt handles the compass-status MCP prompt.
// It instructs the AI to show where an ongoing session stands.
type StatusPrompt struct{}

// NewStatusPrompt creates a StatusPrompt.
func NewStatusPrompt() *StatusPrompt {
	return &StatusPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *StatusPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("compass-status",
		mcp.WithPromptDescription(
			"Check an ongoing questionnaire session: current position, "+
				"open questions and what to do next.",
		),
		mcp.WithArgument("session_id",
			mcp.ArgumentDescription("Session id returned by compass_start"),
			mcp.RequiredArgument(),
		),
	)
}

// Handle processes the compass-status prompt request.
func (p *StatusPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	id := ""
	if args := req.Params.Arguments; args != nil {
		id = args["session_id"]
	}
	if id == "" {
		return nil, fmt.Errorf("session_id argument is required")
	}

	return &mcp.GetPromptResult{
		Description: "Questionnaire status",
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(fmt.Sprintf(
					"Please run `compass_position` with session_id='%s'.\n\n"+
						"Then:\n"+
						"1. Tell me where I currently stand on both axes, in plain words\n"+
						"2. List the questions I still have to answer\n"+
						"3. If every question is answered, offer to run `compass_report`",
					id,
				)),
			},
		},
	}, nil
}
