package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for adcheck resources.
	uriScheme = "adcheck://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "keywords",
		Name:        "keywords",
		Description: "The keyword table as JSON",
		MIMEType:    "application/json",
	}, s.handleKeywordsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "keywords/{keyword}",
		Name:        "keyword-note",
		Description: "The note registered for one keyword",
		MIMEType:    "text/plain",
	}, s.handleKeywordNoteResource)
}

// handleKeywordsResource returns every keyword with its note.
func (s *Server) handleKeywordsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	_, output, err := s.handleListKeywords(ctx, nil, struct{}{})
	if err != nil {
		return nil, err
	}

	data, err := json.MarshalIndent(output.Keywords, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling keywords: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleKeywordNoteResource returns the note for a single keyword.
func (s *Server) handleKeywordNoteResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	keyword := extractKeyword(req.Params.URI)
	if keyword == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	note, ok := s.ports.Review.Keywords().Note(keyword)
	if !ok {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/plain",
			Text:     note,
		}},
	}, nil
}

// extractKeyword extracts the keyword from a URI like adcheck://keywords/{keyword}.
// The keyword may be percent-encoded.
func extractKeyword(uri string) string {
	const prefix = uriScheme + "keywords/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	keyword, err := url.PathUnescape(strings.TrimPrefix(uri, prefix))
	if err != nil {
		return ""
	}
	return keyword
}
