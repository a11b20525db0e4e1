// Package prompts implements MCP prompt handlers for the compass server.
//
// MCP prompts are user-triggered workflows (like slash commands) that
// instruct the AI to run a specific sequence of tool calls.
package prompts

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// StartPrompt handles the compass-start MCP prompt.
// It guides the AI through the questionnaire one phase at a time.
type StartPrompt struct{}

// NewStartPrompt creates a StartPrompt.
func NewStartPrompt() *StartPrompt {
	return &StartPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *StartPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("compass-start",
		mcp.WithPromptDescription(
			"Take the orientation questionnaire. The assistant presents each "+
				"phase, records your confirmed answers and shows the report at the end.",
		),
		mcp.WithArgument("pace",
			mcp.ArgumentDescription(
				"'phase' (default) confirms a whole phase at once; 'question' confirms each answer on its own.",
			),
		),
	)
}

// Handle processes the compass-start prompt request.
func (p *StartPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	pace := "phase"
	if args := req.Params.Arguments; args != nil {
		if v, ok := args["pace"]; ok && v == "question" {
			pace = v
		}
	}

	recordStep := "3. When I confirm the phase, record every answer with one `compass_answer_phase` call"
	if pace == "question" {
		recordStep = "3. Record each answer with `compass_answer` as soon as I confirm it"
	}

	return &mcp.GetPromptResult{
		Description: "Start the orientation questionnaire",
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(fmt.Sprintf(
					"I want to take the orientation questionnaire.\n\n"+
						"Please:\n"+
						"1. Run `compass_start` and keep the session_id\n"+
						"2. Present one phase at a time using `compass_questions`, without revealing how options are scored\n"+
						"%s\n"+
						"4. If an answer is rejected, tell me why and let me change it\n"+
						"5. After phase 4, run `compass_report` and walk me through the result\n"+
						"6. Run `compass_end` when I'm done",
					recordStep,
				)),
			},
		},
	}, nil
}
