package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/adcheck/internal/core/domain"
)

func TestMCPCmd_Use(t *testing.T) {
	assert.Equal(t, "mcp", mcpCmd.Use)
	assert.Contains(t, mcpCmd.Long, "highlight_document")
	assert.Contains(t, mcpCmd.Long, "find_keywords")
}

func TestMCPCmd_HTTPFlag(t *testing.T) {
	flag := mcpCmd.Flags().Lookup("http")
	require.NotNil(t, flag)
	assert.Equal(t, "", flag.DefValue)
}

func TestMCPCmd_KeywordFailure(t *testing.T) {
	env := newTestEnv(t)
	env.keywordErr = domain.ErrKeywordSource

	_, err := execute(t, "mcp")

	assert.ErrorIs(t, err, domain.ErrKeywordSource)
}
