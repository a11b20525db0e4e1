package tools

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/HendryAvila/compass/internal/assessment"
	"github.com/HendryAvila/compass/internal/config"
	"github.com/HendryAvila/compass/internal/journal"
	"github.com/HendryAvila/compass/internal/scoring"
	"github.com/mark3labs/mcp-go/mcp"
)

// --- Test helpers ---

func newTestRegistry(t *testing.T) *assessment.Registry {
	t.Helper()
	cfg := config.Default()
	return assessment.NewRegistry(scoring.DefaultCatalog(cfg), cfg, 8, 0)
}

// startSession opens a session and returns its id.
func startSession(t *testing.T, r *assessment.Registry) string {
	t.Helper()
	id, err := r.Start()
	if err != nil {
		t.Fatalf("setup: start session: %v", err)
	}
	return id
}

func newRequest(args map[string]interface{}) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

// isErrorResult checks if the result is a tool error.
func isErrorResult(result *mcp.CallToolResult) bool {
	return result != nil && result.IsError
}

// getResultText extracts the text content from a CallToolResult.
func getResultText(result *mcp.CallToolResult) string {
	if result == nil || len(result.Content) == 0 {
		return ""
	}
	for _, c := range result.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

type recordingObserver struct {
	reports []assessment.Report
}

func (o *recordingObserver) OnReport(r assessment.Report, _ string) {
	o.reports = append(o.reports, r)
}

// --- StartTool ---

func TestStartTool_Handle_Success(t *testing.T) {
	r := newTestRegistry(t)
	tool := NewStartTool(r)

	result, err := tool.Handle(context.Background(), newRequest(map[string]interface{}{}))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if isErrorResult(result) {
		t.Fatalf("expected success, got error: %s", getResultText(result))
	}

	text := getResultText(result)
	if !strings.Contains(text, "session_id") || !strings.Contains(text, "P1-Q1") {
		t.Errorf("result should contain session id and phase 1 questions, got: %s", text)
	}
	if r.Len() != 1 {
		t.Errorf("registry Len = %d, want 1", r.Len())
	}
}

func TestStartTool_Handle_Full(t *testing.T) {
	cfg := config.Default()
	r := assessment.NewRegistry(scoring.DefaultCatalog(cfg), cfg, 1, 0)
	tool := NewStartTool(r)

	if _, err := tool.Handle(context.Background(), newRequest(nil)); err != nil {
		t.Fatalf("first Handle: %v", err)
	}
	result, err := tool.Handle(context.Background(), newRequest(nil))
	if err != nil {
		t.Fatalf("second Handle: %v", err)
	}
	if !isErrorResult(result) {
		t.Fatal("expected error result when registry is full")
	}
}

// --- QuestionsTool ---

func TestQuestionsTool_Handle_Phase(t *testing.T) {
	r := newTestRegistry(t)
	tool := NewQuestionsTool(r.Catalog())

	result, err := tool.Handle(context.Background(), newRequest(map[string]interface{}{"phase": float64(3)}))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	text := getResultText(result)
	if !strings.Contains(text, "P3-Q1") || !strings.Contains(text, "P3-Q2") {
		t.Errorf("phase 3 questions missing: %s", text)
	}
	if strings.Contains(text, "P1-Q1") {
		t.Error("phase 1 question should not be listed")
	}
	if !strings.Contains(text, "`ranked`") || !strings.Contains(text, "`value`") {
		t.Errorf("answer instructions missing: %s", text)
	}
}

func TestQuestionsTool_Handle_All(t *testing.T) {
	r := newTestRegistry(t)
	tool := NewQuestionsTool(r.Catalog())

	result, _ := tool.Handle(context.Background(), newRequest(nil))
	text := getResultText(result)
	for _, tag := range []string{"P1-Q1", "P2-Q3", "P4-Q3"} {
		if !strings.Contains(text, tag) {
			t.Errorf("missing %s", tag)
		}
	}
}

func TestQuestionsTool_Handle_UnknownPhase(t *testing.T) {
	r := newTestRegistry(t)
	tool := NewQuestionsTool(r.Catalog())

	result, err := tool.Handle(context.Background(), newRequest(map[string]interface{}{"phase": float64(9)}))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if !isErrorResult(result) {
		t.Fatal("expected error for unknown phase")
	}
}

// --- AnswerTool ---

func TestAnswerTool_Handle_Categorical(t *testing.T) {
	r := newTestRegistry(t)
	id := startSession(t, r)
	tool := NewAnswerTool(r)

	result, err := tool.Handle(context.Background(), newRequest(map[string]interface{}{
		"session_id": id,
		"question":   "P1-Q1",
		"option":     "guide",
	}))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if isErrorResult(result) {
		t.Fatalf("expected success, got error: %s", getResultText(result))
	}
	text := getResultText(result)
	if !strings.Contains(text, "A (epistemic) +2.00") || !strings.Contains(text, "B (intervention) +1.00") {
		t.Errorf("unexpected position in: %s", text)
	}
	if !strings.Contains(text, "1 of 11 questions answered") {
		t.Errorf("unexpected progress in: %s", text)
	}
}

func TestAnswerTool_Handle_RankedAndSlider(t *testing.T) {
	r := newTestRegistry(t)
	id := startSession(t, r)
	tool := NewAnswerTool(r)

	result, _ := tool.Handle(context.Background(), newRequest(map[string]interface{}{
		"session_id": id,
		"question":   "P3-Q1",
		"ranked":     "no_evidence, cold",
	}))
	if isErrorResult(result) {
		t.Fatalf("ranked answer rejected: %s", getResultText(result))
	}
	result, _ = tool.Handle(context.Background(), newRequest(map[string]interface{}{
		"session_id": id,
		"question":   "P1-Q3",
		"value":      float64(5),
	}))
	if isErrorResult(result) {
		t.Fatalf("slider answer rejected: %s", getResultText(result))
	}

	_ = r.Do(id, func(s *assessment.Session) error {
		if n := len(s.Events()); n != 3 {
			t.Errorf("events = %d, want 3", n)
		}
		return nil
	})
}

func TestAnswerTool_Handle_Rejections(t *testing.T) {
	r := newTestRegistry(t)
	id := startSession(t, r)
	tool := NewAnswerTool(r)

	tests := []struct {
		name string
		args map[string]interface{}
		want string
	}{
		{"missing session", map[string]interface{}{"question": "P1-Q1", "option": "guide"}, "session_id"},
		{"missing question", map[string]interface{}{"session_id": id, "option": "guide"}, "question"},
		{"unknown session", map[string]interface{}{"session_id": "nope", "question": "P1-Q1", "option": "guide"}, "compass_start"},
		{"unknown question", map[string]interface{}{"session_id": id, "question": "P9-Q9", "option": "guide"}, "compass_questions"},
		{"unrecognized option", map[string]interface{}{"session_id": id, "question": "P1-Q1", "option": "wizard"}, "Unrecognized option"},
		{"no option", map[string]interface{}{"session_id": id, "question": "P1-Q1"}, "Invalid answer"},
		{"identical ranks", map[string]interface{}{"session_id": id, "question": "P3-Q1", "ranked": "cold,cold"}, "Invalid answer"},
		{"slider out of range", map[string]interface{}{"session_id": id, "question": "P1-Q3", "value": float64(9)}, "Invalid answer"},
		{"slider without value", map[string]interface{}{"session_id": id, "question": "P1-Q3"}, "no value selected"},
		{"fractional slider value", map[string]interface{}{"session_id": id, "question": "P1-Q3", "value": 4.9}, "whole number"},
		{"non-numeric slider value", map[string]interface{}{"session_id": id, "question": "P1-Q3", "value": "four"}, "must be a number"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := tool.Handle(context.Background(), newRequest(tt.args))
			if err != nil {
				t.Fatalf("Handle returned Go error: %v", err)
			}
			if !isErrorResult(result) {
				t.Fatalf("expected error result, got: %s", getResultText(result))
			}
			if !strings.Contains(getResultText(result), tt.want) {
				t.Errorf("error %q should mention %q", getResultText(result), tt.want)
			}
		})
	}

	_ = r.Do(id, func(s *assessment.Session) error {
		if n := len(s.Events()); n != 0 {
			t.Errorf("rejected answers recorded %d events", n)
		}
		return nil
	})
}

func TestAnswerTool_Handle_SliderFromZeroNeedsValue(t *testing.T) {
	cfg := config.Default()
	cfg.Slider.Min, cfg.Slider.Max, cfg.Slider.Midpoint = 0, 4, 2
	if err := cfg.Validate(); err != nil {
		t.Fatalf("setup: %v", err)
	}
	r := assessment.NewRegistry(scoring.DefaultCatalog(cfg), cfg, 8, 0)
	id := startSession(t, r)
	tool := NewAnswerTool(r)

	result, err := tool.Handle(context.Background(), newRequest(map[string]interface{}{
		"session_id": id, "question": "P1-Q3",
	}))
	if err != nil {
		t.Fatalf("Handle returned Go error: %v", err)
	}
	if !isErrorResult(result) {
		t.Fatalf("expected error for missing value, got: %s", getResultText(result))
	}

	result, _ = tool.Handle(context.Background(), newRequest(map[string]interface{}{
		"session_id": id, "question": "P1-Q3", "value": float64(0),
	}))
	if isErrorResult(result) {
		t.Fatalf("value 0 should be accepted: %s", getResultText(result))
	}
	_ = r.Do(id, func(s *assessment.Session) error {
		if a, _ := s.Position(); a != -3.0 {
			t.Errorf("A = %v, want -3", a)
		}
		return nil
	})
}

// --- AnswerPhaseTool ---

func TestAnswerPhaseTool_Handle_Success(t *testing.T) {
	r := newTestRegistry(t)
	id := startSession(t, r)
	tool := NewAnswerPhaseTool(r)

	result, err := tool.Handle(context.Background(), newRequest(map[string]interface{}{
		"session_id": id,
		"answers":    `[{"question":"P1-Q1","option":"guide"},{"question":"P1-Q2","option":"compass"},{"question":"P1-Q3","value":3}]`,
	}))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if isErrorResult(result) {
		t.Fatalf("expected success, got error: %s", getResultText(result))
	}

	_ = r.Do(id, func(s *assessment.Session) error {
		events := s.Events()
		if len(events) != 3 {
			t.Fatalf("events = %d, want 3", len(events))
		}
		if events[0].PhaseTag != "P1-Q1" || events[2].PhaseTag != "P1-Q3" {
			t.Errorf("events out of order: %+v", events)
		}
		return nil
	})
}

func TestAnswerPhaseTool_Handle_AllOrNothing(t *testing.T) {
	r := newTestRegistry(t)
	id := startSession(t, r)
	tool := NewAnswerPhaseTool(r)

	result, _ := tool.Handle(context.Background(), newRequest(map[string]interface{}{
		"session_id": id,
		"answers":    `[{"question":"P3-Q1","ranked":["cold","superficial"]},{"question":"P3-Q2","value":0}]`,
	}))
	if !isErrorResult(result) {
		t.Fatal("expected error for out-of-range slider")
	}
	_ = r.Do(id, func(s *assessment.Session) error {
		if n := len(s.Events()); n != 0 {
			t.Errorf("events = %d, want 0", n)
		}
		return nil
	})
}

func TestAnswerPhaseTool_Handle_BadInput(t *testing.T) {
	r := newTestRegistry(t)
	id := startSession(t, r)
	tool := NewAnswerPhaseTool(r)

	for _, raw := range []string{"", "not json", "[]", `[{"option":"guide"}]`, `[{"question":"P1-Q3","value":4.9}]`, `[{"question":"P1-Q3"}]`} {
		result, err := tool.Handle(context.Background(), newRequest(map[string]interface{}{
			"session_id": id,
			"answers":    raw,
		}))
		if err != nil {
			t.Fatalf("answers %q: Go error %v", raw, err)
		}
		if !isErrorResult(result) {
			t.Errorf("answers %q: expected error result", raw)
		}
	}
}

// --- PositionTool ---

func TestPositionTool_Handle_BeforeAndAfterAnswers(t *testing.T) {
	r := newTestRegistry(t)
	id := startSession(t, r)
	tool := NewPositionTool(r)
	args := map[string]interface{}{"session_id": id}

	result, _ := tool.Handle(context.Background(), newRequest(args))
	if isErrorResult(result) {
		t.Fatalf("position before answers should succeed: %s", getResultText(result))
	}
	if !strings.Contains(getResultText(result), "A (epistemic) +0.00") {
		t.Errorf("expected zero position, got: %s", getResultText(result))
	}

	_ = r.Do(id, func(s *assessment.Session) error {
		_, err := s.RecordAnswer("P4-Q2", scoring.Selection{Option: scoring.OptionNo})
		return err
	})
	result, _ = tool.Handle(context.Background(), newRequest(args))
	text := getResultText(result)
	if !strings.Contains(text, "A (epistemic) -1.00") || !strings.Contains(text, "**Answered**: P4-Q2") {
		t.Errorf("unexpected position: %s", text)
	}
}

// --- ReportTool ---

func TestReportTool_Handle_InsufficientData(t *testing.T) {
	r := newTestRegistry(t)
	id := startSession(t, r)
	obs := &recordingObserver{}
	tool := NewReportTool(r, obs)

	result, err := tool.Handle(context.Background(), newRequest(map[string]interface{}{"session_id": id}))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if !isErrorResult(result) {
		t.Fatal("expected error before any answer")
	}
	if !strings.Contains(getResultText(result), "no answers recorded yet") {
		t.Errorf("unexpected message: %s", getResultText(result))
	}
	if len(obs.reports) != 0 {
		t.Error("observer should not be notified for a failed report")
	}
}

func TestReportTool_Handle_Markdown(t *testing.T) {
	r := newTestRegistry(t)
	id := startSession(t, r)
	obs := &recordingObserver{}
	tool := NewReportTool(r, obs)

	_ = r.Do(id, func(s *assessment.Session) error {
		_, err := s.RecordPhase([]assessment.Answer{
			{Tag: "P1-Q1", Selection: scoring.Selection{Option: "guide"}},
			{Tag: "P1-Q2", Selection: scoring.Selection{Option: "compass"}},
		})
		return err
	})

	result, err := tool.Handle(context.Background(), newRequest(map[string]interface{}{"session_id": id}))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	text := getResultText(result)
	if !strings.Contains(text, "Quadrant I") || !strings.Contains(text, "consistent") {
		t.Errorf("unexpected report: %s", text)
	}
	if len(obs.reports) != 1 || obs.reports[0].SessionID != id {
		t.Errorf("observer reports = %+v", obs.reports)
	}
}

func TestReportTool_Handle_JSON(t *testing.T) {
	r := newTestRegistry(t)
	id := startSession(t, r)
	tool := NewReportTool(r, nil)

	_ = r.Do(id, func(s *assessment.Session) error {
		_, err := s.RecordAnswer("P2-Q1", scoring.Selection{Option: "reflect"})
		return err
	})

	result, err := tool.Handle(context.Background(), newRequest(map[string]interface{}{
		"session_id": id,
		"format":     FormatJSON,
	}))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}

	var report assessment.Report
	if err := json.Unmarshal([]byte(getResultText(result)), &report); err != nil {
		t.Fatalf("report is not JSON: %v", err)
	}
	if report.TotalA != -1.5 || report.TotalB != -1.5 {
		t.Errorf("totals = (%v, %v), want (-1.5, -1.5)", report.TotalA, report.TotalB)
	}
	if report.Quadrant.Label != "III" {
		t.Errorf("quadrant = %s, want III", report.Quadrant.Label)
	}
}

func TestReportTool_Handle_JournalsReport(t *testing.T) {
	store, err := journal.New(journal.Config{DataDir: t.TempDir()})
	if err != nil {
		t.Fatalf("journal: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	r := newTestRegistry(t)
	id := startSession(t, r)
	tool := NewReportTool(r, NewJournalBridge(store))

	_ = r.Do(id, func(s *assessment.Session) error {
		_, err := s.RecordAnswer("P4-Q1", scoring.Selection{Option: "desk"})
		return err
	})
	if _, err := tool.Handle(context.Background(), newRequest(map[string]interface{}{"session_id": id})); err != nil {
		t.Fatalf("Handle failed: %v", err)
	}

	entries, err := store.Recent(5)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
	if entries[0].SessionID != id || entries[0].Quadrant != "I" || entries[0].Events != 1 {
		t.Errorf("entry = %+v", entries[0])
	}
}

func TestNewJournalBridge_NilStore(t *testing.T) {
	if NewJournalBridge(nil) != nil {
		t.Error("expected nil bridge for nil store")
	}
}

// --- EndTool ---

func TestEndTool_Handle(t *testing.T) {
	r := newTestRegistry(t)
	id := startSession(t, r)
	tool := NewEndTool(r)
	args := map[string]interface{}{"session_id": id}

	result, err := tool.Handle(context.Background(), newRequest(args))
	if err != nil || isErrorResult(result) {
		t.Fatalf("end failed: %v %s", err, getResultText(result))
	}
	if r.Len() != 0 {
		t.Errorf("registry Len = %d, want 0", r.Len())
	}

	result, _ = tool.Handle(context.Background(), newRequest(args))
	if !isErrorResult(result) {
		t.Error("ending twice should be an error result")
	}
}
