// Package server wires all MCP components and creates the server instance.
//
// This is the composition root: it creates concrete implementations and
// injects them into the tools, prompts and resources. No business logic
// lives here, only wiring.
package server

import (
	"errors"
	"fmt"
	"io/fs"
	"log"

	"github.com/HendryAvila/compass/internal/assessment"
	"github.com/HendryAvila/compass/internal/config"
	"github.com/HendryAvila/compass/internal/journal"
	"github.com/HendryAvila/compass/internal/prompts"
	"github.com/HendryAvila/compass/internal/resources"
	"github.com/HendryAvila/compass/internal/scoring"
	"github.com/HendryAvila/compass/internal/tools"
	"github.com/mark3labs/mcp-go/server"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Deps are the dependencies shared by every front end.
type Deps struct {
	Scoring  config.Scoring
	Catalog  *scoring.Catalog
	Registry *assessment.Registry
	// Journal is nil when the journal is disabled or failed to open.
	Journal *journal.Store
}

// NewDeps resolves the scoring table, the session registry and the
// optional journal from env.
//
// The returned cleanup function closes the journal and must be called on
// shutdown. It is always non-nil and safe to call even if the journal is
// disabled.
func NewDeps(env config.Env) (*Deps, func(), error) {
	cfg, err := LoadScoring(env.ScoringPath)
	if err != nil {
		return nil, noop, err
	}

	catalog := scoring.DefaultCatalog(cfg)
	d := &Deps{
		Scoring:  cfg,
		Catalog:  catalog,
		Registry: assessment.NewRegistry(catalog, cfg, env.MaxSessions, env.SessionIdle),
	}

	// The journal is an independent subsystem: if it fails to open, the
	// questionnaire keeps working and reports are simply not recorded.
	cleanup := noop
	if !env.Journal {
		return d, cleanup, nil
	}
	store, err := journal.New(journal.Config{DataDir: env.DataDir})
	if err != nil {
		log.Printf("WARNING: journal disabled: %v", err)
		return d, cleanup, nil
	}
	d.Journal = store
	cleanup = func() {
		if err := store.Close(); err != nil {
			log.Printf("WARNING: journal close: %v", err)
		}
	}
	return d, cleanup, nil
}

// LoadScoring reads the scoring table at path. A missing file falls back
// to the shipped defaults with a warning; a malformed one is an error.
func LoadScoring(path string) (config.Scoring, error) {
	cfg, err := config.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("WARNING: scoring config %s not found, using defaults", path)
		return config.Default(), nil
	}
	if err != nil {
		return config.Scoring{}, fmt.Errorf("loading scoring config: %w", err)
	}
	return cfg, nil
}

// New creates and configures the MCP server with all tools, prompts,
// and resources registered.
func New(env config.Env) (*server.MCPServer, func(), error) {
	d, cleanup, err := NewDeps(env)
	if err != nil {
		return nil, cleanup, err
	}
	return Build(d), cleanup, nil
}

// Build registers every compass component on a new MCP server.
func Build(d *Deps) *server.MCPServer {
	s := server.NewMCPServer(
		"compass",
		Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithPromptCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	// --- Register tools ---

	startTool := tools.NewStartTool(d.Registry)
	s.AddTool(startTool.Definition(), startTool.Handle)

	questionsTool := tools.NewQuestionsTool(d.Catalog)
	s.AddTool(questionsTool.Definition(), questionsTool.Handle)

	answerTool := tools.NewAnswerTool(d.Registry)
	s.AddTool(answerTool.Definition(), answerTool.Handle)

	answerPhaseTool := tools.NewAnswerPhaseTool(d.Registry)
	s.AddTool(answerPhaseTool.Definition(), answerPhaseTool.Handle)

	positionTool := tools.NewPositionTool(d.Registry)
	s.AddTool(positionTool.Definition(), positionTool.Handle)

	// A nil *JournalBridge must not become a non-nil interface.
	var observer tools.ReportObserver
	if bridge := tools.NewJournalBridge(d.Journal); bridge != nil {
		observer = bridge
	}
	reportTool := tools.NewReportTool(d.Registry, observer)
	s.AddTool(reportTool.Definition(), reportTool.Handle)

	endTool := tools.NewEndTool(d.Registry)
	s.AddTool(endTool.Definition(), endTool.Handle)

	// --- Register prompts ---

	startPrompt := prompts.NewStartPrompt()
	s.AddPrompt(startPrompt.Definition(), startPrompt.Handle)

	statusPrompt := prompts.NewStatusPrompt()
	s.AddPrompt(statusPrompt.Definition(), statusPrompt.Handle)

	// --- Register resources ---

	resourceHandler := resources.NewHandler(d.Catalog, d.Scoring)
	s.AddResource(resourceHandler.CatalogResource(), resourceHandler.HandleCatalog)
	s.AddResource(resourceHandler.ScoringResource(), resourceHandler.HandleScoring)

	return s
}

// noop is a no-op cleanup function used as the default when the journal
// is disabled or hasn't been initialized.
func noop() {}

// serverInstructions returns the system instructions that tell the AI
// how to run the questionnaire.
func serverInstructions() string {
	return `You have access to Compass, an orientation questionnaire for therapists in training.

## WHAT IT MEASURES

Answers are scored on two axes:
- Axis A, epistemic stance: positive is objective and empirical, negative is subjective and constructivist.
- Axis B, intervention focus: positive is rational and analytical, negative is experiential and affective.

The report places the user in one of four quadrants, adds a consistency verdict
based on how widely the answers spread, and lists every scored answer.

## HOW TO RUN A SESSION

1. Call compass_start. Keep the session_id; every other tool needs it.
2. Present one phase at a time (compass_questions with phase=N). Phases:
   1 role metaphors, 2 clinical decisions, 3 shadow, 4 spatial frame.
3. Let the user answer in their own words, map the answer to an option id,
   and ask them to confirm before recording.
4. Record confirmed answers with compass_answer_phase (whole phase) or
   compass_answer (single question). Answers are only recorded on confirm.
5. Use compass_position whenever the user asks where they stand.
6. After phase 4 call compass_report and explain the result in plain words.
7. Call compass_end when the user is finished.

## RULES

- NEVER reveal option deltas or the scoring rules before the report. Knowing
  them biases the answers.
- Ranking questions need exactly two DIFFERENT options, in order.
- Slider questions take an integer on the stated scale.
- A rejected answer leaves the session unchanged. Explain the error and let
  the user choose again.
- Answering a question again adds its contribution again unless the server
  runs with revisit: replace (see the compass://scoring resource).
- The result is a reflective aid, not a validated psychometric instrument.
  Say so when presenting the report.
`
}
