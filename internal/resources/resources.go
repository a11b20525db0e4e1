// Package resources implements MCP resource handlers for the compass server.
//
// Resources provide read-only data that the host can consume for context.
// They use URI-based addressing (compass://...) following MCP conventions.
package resources

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/HendryAvila/compass/internal/config"
	"github.com/HendryAvila/compass/internal/scoring"
	"github.com/mark3labs/mcp-go/mcp"
)

const (
	CatalogURI = "compass://catalog"
	ScoringURI = "compass://scoring"
)

// Handler serves the rule table and the active scoring configuration.
type Handler struct {
	catalog *scoring.Catalog
	cfg     config.Scoring
}

// NewHandler creates a resource Handler with its dependencies.
func NewHandler(catalog *scoring.Catalog, cfg config.Scoring) *Handler {
	return &Handler{catalog: catalog, cfg: cfg}
}

// CatalogResource returns the MCP resource definition for the rule table.
func (h *Handler) CatalogResource() mcp.Resource {
	return mcp.NewResource(
		CatalogURI,
		"Compass Rule Table",
		mcp.WithResourceDescription("Phases, questions and answer option ids"),
		mcp.WithMIMEType("application/json"),
	)
}

// HandleCatalog returns the rule table as JSON.
func (h *Handler) HandleCatalog(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	data, err := json.MarshalIndent(catalogView(h.catalog), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling catalog: %w", err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

// ScoringResource returns the MCP resource definition for the scoring
// constants.
func (h *Handler) ScoringResource() mcp.Resource {
	return mcp.NewResource(
		ScoringURI,
		"Compass Scoring Configuration",
		mcp.WithResourceDescription("Slider coefficient, rank weights, consistency thresholds and revisit policy in effect"),
		mcp.WithMIMEType("application/yaml"),
	)
}

// HandleScoring returns the active scoring configuration as YAML.
func (h *Handler) HandleScoring(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	data, err := config.Marshal(h.cfg)
	if err != nil {
		return errorResource(req.Params.URI, err.Error()), nil
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/yaml",
			Text:     string(data),
		},
	}, nil
}

// errorResource returns a resource with an error message.
func errorResource(uri, message string) []mcp.ResourceContents {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "text/plain",
			Text:     fmt.Sprintf("Error: %s", message),
		},
	}
}
