package mcp

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{Params: &mcp.ReadResourceParams{URI: uri}}
}

func TestExtractKeyword(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		expected string
	}{
		{"plain keyword", "adcheck://keywords/free", "free"},
		{"percent-encoded keyword", "adcheck://keywords/%EB%AC%B4%EB%A3%8C", "무료"},
		{"invalid prefix", "file://keywords/free", ""},
		{"bad escape", "adcheck://keywords/%zz", ""},
		{"empty URI", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractKeyword(tt.uri))
		})
	}
}

func TestServer_handleKeywordsResource(t *testing.T) {
	server := newTestServer(t, newMockReviewService())

	result, err := server.handleKeywordsResource(context.Background(), readRequest("adcheck://keywords"))

	require.NoError(t, err)
	require.Len(t, result.Contents, 1)
	assert.Equal(t, "application/json", result.Contents[0].MIMEType)
	assert.JSONEq(t, `[{"keyword":"무료","note":"과장 광고 표현"},{"keyword":"최고"}]`, result.Contents[0].Text)
}

func TestServer_handleKeywordNoteResource(t *testing.T) {
	server := newTestServer(t, newMockReviewService())

	result, err := server.handleKeywordNoteResource(context.Background(), readRequest("adcheck://keywords/%EB%AC%B4%EB%A3%8C"))
	require.NoError(t, err)
	assert.Equal(t, "과장 광고 표현", result.Contents[0].Text)

	_, err = server.handleKeywordNoteResource(context.Background(), readRequest("adcheck://keywords/unknown"))
	assert.Error(t, err)

	_, err = server.handleKeywordNoteResource(context.Background(), readRequest("adcheck://other"))
	assert.Error(t, err)
}
