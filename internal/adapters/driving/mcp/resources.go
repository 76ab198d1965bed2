package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/devkavach22/kavach-edit/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for kavach resources.
	uriScheme = "kavach://"
)

// sessionInfo is the JSON body of the session resource.
type sessionInfo struct {
	Phase       string                   `json:"phase"`
	Tool        string                   `json:"tool"`
	Document    *DocumentOutput          `json:"document,omitempty"`
	Pending     *domain.PendingPlacement `json:"pending,omitempty"`
	Annotations int                      `json:"annotations"`
}

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "session",
		Name:        "session",
		Description: "Stage, armed tool and open document of the editing session",
		MIMEType:    "application/json",
	}, s.handleSessionResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "result",
		Name:        "result",
		Description: "The processed file of this or a previous session",
		MIMEType:    "application/json",
	}, s.handleResultResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "pages/{page}/annotations",
		Name:        "page-annotations",
		Description: "Annotations placed on a 1-based page",
		MIMEType:    "application/json",
	}, s.handlePageAnnotationsResource)
}

// handleSessionResource describes the editing session.
func (s *Server) handleSessionResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	editor := s.ports.Editor
	info := sessionInfo{
		Phase:       string(editor.Phase()),
		Tool:        editor.ActiveTool().String(),
		Annotations: len(editor.Annotations()),
	}
	if doc, ok := editor.Document(); ok {
		out := s.documentOutput(doc)
		info.Document = &out
	}
	if p, ok := editor.Pending(); ok {
		info.Pending = p
	}
	return jsonResource(req.Params.URI, info)
}

// handleResultResource returns the last processed file.
func (s *Server) handleResultResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	result, err := s.ports.Editor.LastResult(ctx)
	if errors.Is(err, domain.ErrNoResult) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("loading result: %w", err)
	}
	return jsonResource(req.Params.URI, resultOutput(result))
}

// handlePageAnnotationsResource returns annotations for a specific page.
func (s *Server) handlePageAnnotationsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	// Extract page from URI: kavach://pages/{page}/annotations
	page := extractPage(req.Params.URI)
	if page < 1 {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	return jsonResource(req.Params.URI, listOutput(s.ports.Editor.AnnotationsOnPage(page)))
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractPage extracts the page number from a URI like kavach://pages/{page}/annotations.
// Returns 0 when the URI does not match.
func extractPage(uri string) int {
	const prefix = uriScheme + "pages/"
	const suffix = "/annotations"

	if !strings.HasPrefix(uri, prefix) || !strings.HasSuffix(uri, suffix) {
		return 0
	}

	page, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(uri, prefix), suffix))
	if err != nil {
		return 0
	}
	return page
}
