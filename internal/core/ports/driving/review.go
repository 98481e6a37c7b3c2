package driving

import (
	"context"

	"github.com/custodia-labs/adcheck/internal/core/domain"
)

// ReviewService annotates uploads with the regulated keyword table.
// The table is fixed for the lifetime of the service.
type ReviewService interface {
	// Review normalises, highlights and emits one upload.
	// No partial result is returned on failure.
	Review(ctx context.Context, upload domain.Upload) (*domain.ReviewResult, error)

	// Keywords returns the table the service was built with.
	Keywords() *domain.KeywordTable

	// SupportedFormats returns the upload formats that can be reviewed.
	SupportedFormats() []domain.Format

	// FindKeywords reports every keyword occurrence in text, sorted by
	// start offset. Offsets are in bytes.
	FindKeywords(text string) []domain.Match

	// OutputName derives the output file name for an upload name.
	OutputName(uploadName string) string
}
