package mcp

import (
	"context"
	"encoding/base64"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/adcheck/internal/core/domain"
)

func newTestServer(t *testing.T, review *mockReviewService) *Server {
	t.Helper()
	server, err := NewServer(&Ports{Review: review})
	require.NoError(t, err)
	return server
}

func TestServer_handleHighlight(t *testing.T) {
	ctx := context.Background()

	t.Run("returns encoded document and stats", func(t *testing.T) {
		review := newMockReviewService()
		review.result = &domain.ReviewResult{
			ID:         "req-1",
			FileName:   "검수결과_광고.docx",
			MIMEType:   domain.MIMEDocx,
			Content:    []byte("docx bytes"),
			Paragraphs: 2,
			Stats: domain.HighlightStats{
				Matches:         3,
				SkippedOverlaps: 1,
				PerKeyword:      map[string]int{"무료": 3},
			},
		}
		server := newTestServer(t, review)

		_, output, err := server.handleHighlight(ctx, nil, HighlightInput{
			FileName:      "광고.txt",
			ContentBase64: base64.StdEncoding.EncodeToString([]byte("무료 무료 무료")),
		})

		require.NoError(t, err)
		assert.Equal(t, "검수결과_광고.docx", output.FileName)
		assert.Equal(t, domain.MIMEDocx, output.MIMEType)
		assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("docx bytes")), output.ContentBase64)
		assert.Equal(t, 2, output.Paragraphs)
		assert.Equal(t, 3, output.Matches)
		assert.Equal(t, 1, output.SkippedOverlaps)
		assert.Equal(t, map[string]int{"무료": 3}, output.PerKeyword)

		assert.Equal(t, "광고.txt", review.lastUpload.Name)
		assert.Equal(t, domain.FormatUnknown, review.lastUpload.Format)
		assert.Equal(t, "무료 무료 무료", string(review.lastUpload.Content))
	})

	t.Run("explicit format", func(t *testing.T) {
		review := newMockReviewService()
		review.result = &domain.ReviewResult{}
		server := newTestServer(t, review)

		_, _, err := server.handleHighlight(ctx, nil, HighlightInput{FileName: "upload", Format: "docx"})

		require.NoError(t, err)
		assert.Equal(t, domain.FormatRichDocument, review.lastUpload.Format)
	})

	t.Run("unknown format", func(t *testing.T) {
		server := newTestServer(t, newMockReviewService())

		_, _, err := server.handleHighlight(ctx, nil, HighlightInput{FileName: "a", Format: "pdf"})

		assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
		assert.Contains(t, err.Error(), "UnsupportedFormat")
	})

	t.Run("invalid base64", func(t *testing.T) {
		server := newTestServer(t, newMockReviewService())

		_, _, err := server.handleHighlight(ctx, nil, HighlightInput{FileName: "a.txt", ContentBase64: "!!!"})

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("pipeline error carries its kind", func(t *testing.T) {
		review := newMockReviewService()
		review.err = fmt.Errorf("plaintext: %w", domain.ErrDecode)
		server := newTestServer(t, review)

		_, _, err := server.handleHighlight(ctx, nil, HighlightInput{FileName: "a.txt"})

		assert.ErrorIs(t, err, domain.ErrDecode)
		assert.Contains(t, err.Error(), "DecodeError")
	})
}

func TestServer_handleListKeywords(t *testing.T) {
	server := newTestServer(t, newMockReviewService())

	_, output, err := server.handleListKeywords(context.Background(), nil, struct{}{})

	require.NoError(t, err)
	assert.Equal(t, 2, output.Count)
	assert.Equal(t, []KeywordOutput{
		{Keyword: "무료", Note: "과장 광고 표현"},
		{Keyword: "최고"},
	}, output.Keywords)
}

func TestServer_handleFindKeywords(t *testing.T) {
	review := newMockReviewService()
	review.matches = []domain.Match{
		{Start: 0, End: len("최고"), Keyword: "최고"},
		{Start: len("최고 "), End: len("최고 무료"), Keyword: "무료"},
	}
	server := newTestServer(t, review)

	_, output, err := server.handleFindKeywords(context.Background(), nil, FindKeywordsInput{Text: "최고 무료"})

	require.NoError(t, err)
	assert.Equal(t, "최고 무료", review.lastText)
	require.Equal(t, 2, output.Count)
	assert.Equal(t, MatchOutput{Start: 0, End: len("최고"), Keyword: "최고"}, output.Matches[0])
	assert.Equal(t, MatchOutput{Start: len("최고 "), End: len("최고 무료"), Keyword: "무료", Note: "과장 광고 표현"}, output.Matches[1])
}
