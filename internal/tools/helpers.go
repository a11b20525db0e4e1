// Package tools implements the MCP tool handlers of the compass server.
//
// Each tool is a struct holding its dependencies, a Definition() that
// returns the mcp.Tool schema and a Handle() compatible with mcp-go's
// CallToolRequest signature. Answer validation failures are returned as
// tool errors so the assistant can correct them and retry.
package tools

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/HendryAvila/compass/internal/assessment"
	"github.com/HendryAvila/compass/internal/scoring"
	"github.com/mark3labs/mcp-go/mcp"
)

// intArg extracts an integer argument from a tool request, returning
// defaultVal if the key is missing or not a number (JSON numbers are float64).
func intArg(req mcp.CallToolRequest, key string, defaultVal int) int {
	v, ok := req.GetArguments()[key].(float64)
	if !ok {
		return defaultVal
	}
	return int(v)
}

// splitRanked parses "a, b" into its trimmed, non-empty parts.
func splitRanked(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// valueArg reads the optional slider value. A missing value yields nil;
// anything other than a whole number is an error.
func valueArg(req mcp.CallToolRequest) (*int, error) {
	raw, ok := req.GetArguments()["value"]
	if !ok || raw == nil {
		return nil, nil
	}
	f, ok := raw.(float64)
	if !ok {
		return nil, fmt.Errorf("'value' must be a number, got %T", raw)
	}
	if f != math.Trunc(f) {
		return nil, fmt.Errorf("'value' must be a whole number, got %v", f)
	}
	v := int(f)
	return &v, nil
}

// selectionArgs reads the option / ranked / value arguments shared by
// the answer tools.
func selectionArgs(req mcp.CallToolRequest) (scoring.Selection, error) {
	value, err := valueArg(req)
	if err != nil {
		return scoring.Selection{}, err
	}
	return scoring.Selection{
		Option: strings.TrimSpace(req.GetString("option", "")),
		Ranked: splitRanked(req.GetString("ranked", "")),
		Value:  value,
	}, nil
}

// sessionID reads the required session_id argument.
func sessionID(req mcp.CallToolRequest) (string, *mcp.CallToolResult) {
	id := strings.TrimSpace(req.GetString("session_id", ""))
	if id == "" {
		return "", mcp.NewToolResultError("'session_id' is required: call compass_start first to open a session")
	}
	return id, nil
}

// domainResult converts an error from the assessment engine into a tool
// result. Errors the caller can fix become tool errors; anything else is
// returned as a Go error.
func domainResult(err error) (*mcp.CallToolResult, error) {
	switch {
	case scoring.IsValidation(err):
		return mcp.NewToolResultError(fmt.Sprintf("Invalid answer: %v. Adjust the selection and try again.", err)), nil
	case scoring.IsUnrecognized(err):
		return mcp.NewToolResultError(fmt.Sprintf("Unrecognized option: %v. Call compass_questions to list valid option ids.", err)), nil
	case errors.Is(err, scoring.ErrUnknownQuestion):
		return mcp.NewToolResultError(fmt.Sprintf("%v. Call compass_questions to list question tags.", err)), nil
	case errors.Is(err, assessment.ErrSessionNotFound):
		return mcp.NewToolResultError(fmt.Sprintf("%v. The session may have ended; call compass_start to open a new one.", err)), nil
	case errors.Is(err, assessment.ErrTooManySessions):
		return mcp.NewToolResultError(fmt.Sprintf("%v. End an existing session with compass_end first.", err)), nil
	case assessment.IsInsufficientData(err):
		return mcp.NewToolResultError(err.Error()), nil
	default:
		return nil, err
	}
}

// writePosition appends the running totals in the shape every tool uses.
func writePosition(sb *strings.Builder, a, b float64) {
	fmt.Fprintf(sb, "**Position**: A (epistemic) %+.2f, B (intervention) %+.2f\n", a, b)
}
