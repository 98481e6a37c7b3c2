package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/custodia-labs/adcheck/internal/core/domain"
	"github.com/custodia-labs/adcheck/internal/core/ports/driven"
	"github.com/custodia-labs/adcheck/internal/core/ports/driving"
	"github.com/custodia-labs/adcheck/internal/logger"
)

// Ensure ReviewService implements the interface.
var _ driving.ReviewService = (*ReviewService)(nil)

// ReviewService runs the normalise, highlight and emit pipeline.
// Reviews are serialised: one upload is processed at a time.
type ReviewService struct {
	mu          sync.Mutex
	keywords    *domain.KeywordTable
	normalisers driven.NormaliserRegistry
	highlighter *Highlighter
	emitter     driven.Emitter
	settings    domain.Settings
}

// NewReviewService creates a review service around an already loaded
// keyword table. See LoadKeywords.
func NewReviewService(
	keywords *domain.KeywordTable,
	normalisers driven.NormaliserRegistry,
	emitter driven.Emitter,
	settings domain.Settings,
) (*ReviewService, error) {
	if keywords.Len() == 0 {
		return nil, fmt.Errorf("%w: keyword table is empty", domain.ErrKeywordSource)
	}
	if normalisers == nil || emitter == nil {
		return nil, errors.New("review service requires a normaliser registry and an emitter")
	}

	return &ReviewService{
		keywords:    keywords,
		normalisers: normalisers,
		highlighter: NewHighlighter(settings.Style),
		emitter:     emitter,
		settings:    settings,
	}, nil
}

// Review normalises, highlights and emits one upload. When the upload's
// format is unknown it is inferred from the file name.
func (s *ReviewService) Review(ctx context.Context, upload domain.Upload) (*domain.ReviewResult, error) {
	if strings.TrimSpace(upload.Name) == "" {
		return nil, fmt.Errorf("%w: upload has no file name", domain.ErrInvalidInput)
	}
	if upload.Format == domain.FormatUnknown {
		format, err := domain.FormatFromFilename(upload.Name)
		if err != nil {
			return nil, err
		}
		upload.Format = format
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	id := uuid.New().String()
	logger.Section("Review " + id)
	logger.Debug("Upload: %s (%s, %d bytes)", upload.Name, upload.Format, len(upload.Content))

	doc, err := s.normalisers.Normalise(ctx, &upload)
	if err != nil {
		logger.Warn("Normalise failed: %v", err)
		return nil, err
	}
	logger.Debug("Normalised into %d paragraphs", len(doc.Paragraphs))

	highlighted, stats := s.highlighter.Highlight(doc, s.keywords)
	logger.Debug("Highlighted %d matches in %d paragraphs (%d overlaps skipped)",
		stats.Matches, stats.Paragraphs, stats.SkippedOverlaps)

	content, err := s.emitter.Emit(ctx, highlighted)
	if err != nil {
		logger.Warn("Emit failed: %v", err)
		return nil, err
	}

	result := &domain.ReviewResult{
		ID:         id,
		FileName:   s.settings.OutputName(upload.Name),
		MIMEType:   s.emitter.MIMEType(),
		Content:    content,
		Paragraphs: len(highlighted.Paragraphs),
		Stats:      stats,
	}
	logger.Info("Review %s produced %s (%d bytes)", id, result.FileName, len(content))

	return result, nil
}

// Keywords returns the table the service was built with.
func (s *ReviewService) Keywords() *domain.KeywordTable {
	return s.keywords
}

// SupportedFormats returns the upload formats that can be reviewed.
func (s *ReviewService) SupportedFormats() []domain.Format {
	return s.normalisers.SupportedFormats()
}

// FindKeywords reports the keyword occurrences in text without building
// a document.
func (s *ReviewService) FindKeywords(text string) []domain.Match {
	return FindMatches(text, s.keywords)
}

// OutputName derives the output file name for an upload name.
func (s *ReviewService) OutputName(uploadName string) string {
	return s.settings.OutputName(uploadName)
}
