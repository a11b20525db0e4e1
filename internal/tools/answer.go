package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/HendryAvila/compass/internal/assessment"
	"github.com/HendryAvila/compass/internal/scoring"
	"github.com/mark3labs/mcp-go/mcp"
)

// AnswerTool handles the compass_answer MCP tool: one confirmed answer.
type AnswerTool struct {
	registry *assessment.Registry
}

// NewAnswerTool creates an AnswerTool.
func NewAnswerTool(r *assessment.Registry) *AnswerTool {
	return &AnswerTool{registry: r}
}

// Definition returns the MCP tool definition for registration.
func (t *AnswerTool) Definition() mcp.Tool {
	return mcp.NewTool("compass_answer",
		mcp.WithDescription(
			"Record one confirmed answer. Only call this after the user has confirmed "+
				"the choice. Use `option` for single-choice and yes/no questions, "+
				"`ranked` for ranking questions and `value` for sliders. An invalid "+
				"answer is rejected and leaves the session unchanged.",
		),
		mcp.WithString("session_id",
			mcp.Required(),
			mcp.Description("Session id returned by compass_start."),
		),
		mcp.WithString("question",
			mcp.Required(),
			mcp.Description("Question tag, e.g. 'P1-Q1'."),
		),
		mcp.WithString("option",
			mcp.Description("Option id for single-choice questions; 'yes' or 'no' for binary questions."),
		),
		mcp.WithString("ranked",
			mcp.Description("Two distinct option ids in rank order, comma separated: 'first,second'."),
		),
		mcp.WithNumber("value",
			mcp.Description("Integer slider value within the question's scale."),
		),
	)
}

// Handle processes the compass_answer tool call.
func (t *AnswerTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, errResult := sessionID(req)
	if errResult != nil {
		return errResult, nil
	}
	tag := strings.TrimSpace(req.GetString("question", ""))
	if tag == "" {
		return mcp.NewToolResultError("'question' is required: pass the question tag, e.g. 'P1-Q1'"), nil
	}

	sel, err := selectionArgs(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	answers := []assessment.Answer{{Tag: tag, Selection: sel}}
	return recordAnswers(t.registry, id, answers)
}

// AnswerPhaseTool handles the compass_answer_phase MCP tool: every answer
// of a phase confirmed together.
type AnswerPhaseTool struct {
	registry *assessment.Registry
}

// NewAnswerPhaseTool creates an AnswerPhaseTool.
func NewAnswerPhaseTool(r *assessment.Registry) *AnswerPhaseTool {
	return &AnswerPhaseTool{registry: r}
}

// Definition returns the MCP tool definition for registration.
func (t *AnswerPhaseTool) Definition() mcp.Tool {
	return mcp.NewTool("compass_answer_phase",
		mcp.WithDescription(
			"Record all confirmed answers of a phase at once. Answers are applied in "+
				"the given order. If any answer is invalid nothing is recorded, so the "+
				"user can fix it and confirm the phase again.",
		),
		mcp.WithString("session_id",
			mcp.Required(),
			mcp.Description("Session id returned by compass_start."),
		),
		mcp.WithString("answers",
			mcp.Required(),
			mcp.Description(
				"JSON array of answers. Each element has 'question' and one of "+
					"'option' (string), 'ranked' (array of two ids) or 'value' (integer). "+
					`Example: [{"question":"P1-Q1","option":"guide"},{"question":"P1-Q3","value":4}]`,
			),
		),
	)
}

// phaseAnswer is the wire shape of one element of the answers argument.
type phaseAnswer struct {
	Question string   `json:"question"`
	Option   string   `json:"option,omitempty"`
	Ranked   []string `json:"ranked,omitempty"`
	Value    *int     `json:"value,omitempty"`
}

// Handle processes the compass_answer_phase tool call.
func (t *AnswerPhaseTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, errResult := sessionID(req)
	if errResult != nil {
		return errResult, nil
	}
	raw := strings.TrimSpace(req.GetString("answers", ""))
	if raw == "" {
		return mcp.NewToolResultError("'answers' is required: pass a JSON array of answers"), nil
	}

	var parsed []phaseAnswer
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("'answers' is not a valid JSON array: %v", err)), nil
	}

	answers := make([]assessment.Answer, 0, len(parsed))
	for i, a := range parsed {
		if strings.TrimSpace(a.Question) == "" {
			return mcp.NewToolResultError(fmt.Sprintf("answer %d has no 'question'", i+1)), nil
		}
		answers = append(answers, assessment.Answer{
			Tag: strings.TrimSpace(a.Question),
			Selection: scoring.Selection{
				Option: strings.TrimSpace(a.Option),
				Ranked: a.Ranked,
				Value:  a.Value,
			},
		})
	}
	return recordAnswers(t.registry, id, answers)
}

// recordAnswers applies answers to the session and describes the events
// that were recorded.
func recordAnswers(r *assessment.Registry, id string, answers []assessment.Answer) (*mcp.CallToolResult, error) {
	var (
		events   []assessment.Event
		a, b     float64
		progress assessment.Progress
	)
	err := r.Do(id, func(s *assessment.Session) error {
		var err error
		events, err = s.RecordPhase(answers)
		if err != nil {
			return err
		}
		a, b = s.Position()
		progress = s.Progress()
		return nil
	})
	if err != nil {
		return domainResult(err)
	}

	var sb strings.Builder
	sb.WriteString("# Answer Recorded\n\n")
	for _, e := range events {
		fmt.Fprintf(&sb, "- #%d %s: %s (ΔA %+.2f, ΔB %+.2f)\n", e.Seq, e.PhaseTag, e.ChoiceLabel, e.DeltaA, e.DeltaB)
	}
	sb.WriteString("\n")
	writePosition(&sb, a, b)
	fmt.Fprintf(&sb, "\n%d of %d questions answered.", len(progress.Answered), len(progress.Answered)+len(progress.Remaining))
	if len(progress.Remaining) > 0 {
		fmt.Fprintf(&sb, " Remaining: %s\n", strings.Join(progress.Remaining, ", "))
	} else {
		sb.WriteString(" Every question has an answer; call compass_report for the result.\n")
	}
	return mcp.NewToolResultText(sb.String()), nil
}
