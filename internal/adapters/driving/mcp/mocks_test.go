package mcp

import (
	"context"

	"github.com/custodia-labs/adcheck/internal/core/domain"
	"github.com/custodia-labs/adcheck/internal/core/ports/driving"
)

// mockReviewService is a mock implementation of driving.ReviewService.
type mockReviewService struct {
	table      *domain.KeywordTable
	result     *domain.ReviewResult
	err        error
	lastUpload domain.Upload
	matches    []domain.Match
	lastText   string
}

var _ driving.ReviewService = (*mockReviewService)(nil)

func newMockReviewService() *mockReviewService {
	table := domain.NewKeywordTable()
	table.Add("무료", "과장 광고 표현")
	table.Add("최고", "")
	return &mockReviewService{table: table}
}

func (m *mockReviewService) Review(_ context.Context, upload domain.Upload) (*domain.ReviewResult, error) {
	m.lastUpload = upload
	return m.result, m.err
}

func (m *mockReviewService) Keywords() *domain.KeywordTable { return m.table }

func (m *mockReviewService) SupportedFormats() []domain.Format {
	return []domain.Format{domain.FormatPlainText, domain.FormatRichDocument}
}

func (m *mockReviewService) FindKeywords(text string) []domain.Match {
	m.lastText = text
	return m.matches
}

func (m *mockReviewService) OutputName(uploadName string) string {
	return domain.DefaultSettings().OutputName(uploadName)
}
