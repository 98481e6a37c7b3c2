package mcp

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/adcheck/internal/core/domain"
)

// HighlightInput is the input schema for the highlight_document tool.
type HighlightInput struct {
	FileName      string `json:"file_name" jsonschema:"original file name, used for the output name and to infer the format"`
	ContentBase64 string `json:"content_base64" jsonschema:"file content, base64 encoded"`
	Format        string `json:"format,omitempty" jsonschema:"text, docx, markdown or html (default: from the file extension)"`
}

// HighlightOutput is the output schema for the highlight_document tool.
type HighlightOutput struct {
	FileName        string         `json:"file_name"`
	MIMEType        string         `json:"mime_type"`
	ContentBase64   string         `json:"content_base64"`
	Paragraphs      int            `json:"paragraphs"`
	Matches         int            `json:"matches"`
	SkippedOverlaps int            `json:"skipped_overlaps"`
	PerKeyword      map[string]int `json:"per_keyword,omitempty"`
}

// KeywordOutput is one row of the keyword table.
type KeywordOutput struct {
	Keyword string `json:"keyword"`
	Note    string `json:"note,omitempty"`
}

// ListKeywordsOutput is the output schema for the list_keywords tool.
type ListKeywordsOutput struct {
	Keywords []KeywordOutput `json:"keywords"`
	Count    int             `json:"count"`
}

// FindKeywordsInput is the input schema for the find_keywords tool.
type FindKeywordsInput struct {
	Text string `json:"text" jsonschema:"plain text to scan for keywords"`
}

// MatchOutput is one keyword occurrence with byte offsets into the text.
type MatchOutput struct {
	Start   int    `json:"start"`
	End     int    `json:"end"`
	Keyword string `json:"keyword"`
	Note    string `json:"note,omitempty"`
}

// FindKeywordsOutput is the output schema for the find_keywords tool.
type FindKeywordsOutput struct {
	Matches []MatchOutput `json:"matches"`
	Count   int           `json:"count"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "highlight_document",
		Description: "Highlight registered keywords in a document and return an annotated DOCX",
	}, s.handleHighlight)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_keywords",
		Description: "List the keyword table with each keyword's note",
	}, s.handleListKeywords)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "find_keywords",
		Description: "Report every keyword occurrence in a piece of text without producing a document",
	}, s.handleFindKeywords)
}

// handleHighlight handles the highlight_document tool invocation.
func (s *Server) handleHighlight(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input HighlightInput,
) (*mcp.CallToolResult, HighlightOutput, error) {
	content, err := base64.StdEncoding.DecodeString(input.ContentBase64)
	if err != nil {
		return nil, HighlightOutput{}, toolError(fmt.Errorf("%w: content_base64: %v", domain.ErrInvalidInput, err))
	}

	upload := domain.Upload{Name: input.FileName, Content: content}
	if input.Format != "" {
		format, err := domain.ParseFormat(input.Format)
		if err != nil {
			return nil, HighlightOutput{}, toolError(err)
		}
		upload.Format = format
	}

	result, err := s.ports.Review.Review(ctx, upload)
	if err != nil {
		return nil, HighlightOutput{}, toolError(err)
	}

	return nil, HighlightOutput{
		FileName:        result.FileName,
		MIMEType:        result.MIMEType,
		ContentBase64:   base64.StdEncoding.EncodeToString(result.Content),
		Paragraphs:      result.Paragraphs,
		Matches:         result.Stats.Matches,
		SkippedOverlaps: result.Stats.SkippedOverlaps,
		PerKeyword:      result.Stats.PerKeyword,
	}, nil
}

// handleListKeywords handles the list_keywords tool invocation.
func (s *Server) handleListKeywords(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ struct{},
) (*mcp.CallToolResult, ListKeywordsOutput, error) {
	table := s.ports.Review.Keywords()
	output := ListKeywordsOutput{Keywords: make([]KeywordOutput, 0, table.Len())}
	for _, k := range table.Keywords() {
		note, _ := table.Note(k)
		output.Keywords = append(output.Keywords, KeywordOutput{Keyword: k, Note: note})
	}
	output.Count = len(output.Keywords)
	return nil, output, nil
}

// handleFindKeywords handles the find_keywords tool invocation.
func (s *Server) handleFindKeywords(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input FindKeywordsInput,
) (*mcp.CallToolResult, FindKeywordsOutput, error) {
	table := s.ports.Review.Keywords()
	matches := s.ports.Review.FindKeywords(input.Text)

	output := FindKeywordsOutput{Matches: make([]MatchOutput, len(matches)), Count: len(matches)}
	for i, m := range matches {
		note, _ := table.Note(m.Keyword)
		output.Matches[i] = MatchOutput{Start: m.Start, End: m.End, Keyword: m.Keyword, Note: note}
	}
	return nil, output, nil
}
