package github

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/adcheck/internal/core/domain"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		cfg      domain.GitHubSettings
		wantName string
		wantErr  bool
	}{
		{"default path", domain.GitHubSettings{Repository: "acme/ad-rules"}, "github:acme/ad-rules/keywords.toml", false},
		{"path and ref", domain.GitHubSettings{Repository: "acme/ad-rules", Path: "/rules/k.toml", Ref: "v2"}, "github:acme/ad-rules/rules/k.toml@v2", false},
		{"missing owner", domain.GitHubSettings{Repository: "ad-rules"}, "", true},
		{"empty", domain.GitHubSettings{}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source, err := New(NewClientWithHTTPClient(http.DefaultClient), tt.cfg)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, source.Name())
		})
	}
}

func TestSource_FetchKeywordNotes(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		fileResponse(w, keywordTOML)
	})
	source, err := New(client, domain.GitHubSettings{Repository: "acme/ad-rules"})
	require.NoError(t, err)

	table, err := source.FetchKeywordNotes(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"무료", "최고"}, table.Keywords())
	note, _ := table.Note("무료")
	assert.Equal(t, "과장 광고 표현", note)
}

func TestSource_FetchKeywordNotes_Errors(t *testing.T) {
	t.Run("api error", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message":"Not Found"}`))
		})
		source, err := New(client, domain.GitHubSettings{Repository: "acme/ad-rules"})
		require.NoError(t, err)

		_, err = source.FetchKeywordNotes(context.Background())

		assert.ErrorIs(t, err, domain.ErrKeywordSource)
		assert.True(t, IsNotFound(err))
	})

	t.Run("malformed file", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			fileResponse(w, "[[keyword]\nterm =")
		})
		source, err := New(client, domain.GitHubSettings{Repository: "acme/ad-rules"})
		require.NoError(t, err)

		_, err = source.FetchKeywordNotes(context.Background())

		assert.ErrorIs(t, err, domain.ErrKeywordSource)
		assert.Contains(t, err.Error(), "github:acme/ad-rules")
	})
}
