package mcp

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/adcheck/internal/core/domain"
)

func TestNewServer(t *testing.T) {
	t.Run("nil review service returns error", func(t *testing.T) {
		server, err := NewServer(&Ports{})
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingReviewService)
	})

	t.Run("nil ports returns error", func(t *testing.T) {
		_, err := NewServer(nil)
		assert.ErrorIs(t, err, ErrMissingReviewService)
	})

	t.Run("valid ports creates server", func(t *testing.T) {
		server, err := NewServer(&Ports{Review: newMockReviewService()})
		require.NoError(t, err)
		assert.NotNil(t, server)
	})
}

func TestPorts_Validate(t *testing.T) {
	assert.ErrorIs(t, (&Ports{}).Validate(), ErrMissingReviewService)
	assert.NoError(t, (&Ports{Review: newMockReviewService()}).Validate())
}

func TestServer_InMemorySession(t *testing.T) {
	ctx := context.Background()
	review := newMockReviewService()
	review.matches = []domain.Match{{Start: 0, End: len("무료"), Keyword: "무료"}}
	server := newTestServer(t, review)

	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	serverSession, err := server.server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	defer serverSession.Close()

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "1.0"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	defer session.Close()

	tools, err := session.ListTools(ctx, nil)
	require.NoError(t, err)
	names := make([]string, 0, len(tools.Tools))
	for _, tool := range tools.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{"highlight_document", "list_keywords", "find_keywords"}, names)

	result, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      "find_keywords",
		Arguments: map[string]any{"text": "무료 배송"},
	})
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Equal(t, map[string]any{
		"count": float64(1),
		"matches": []any{map[string]any{
			"start": float64(0), "end": float64(len("무료")), "keyword": "무료", "note": "과장 광고 표현",
		}},
	}, result.StructuredContent)
}

func TestServer_Handler(t *testing.T) {
	server := newTestServer(t, newMockReviewService())
	assert.NotNil(t, server.Handler())
}
