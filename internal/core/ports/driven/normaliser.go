package driven

import (
	"context"

	"github.com/custodia-labs/adcheck/internal/core/domain"
)

// Normaliser transforms an upload into the uniform Document form.
// Each normaliser handles specific declared formats.
type Normaliser interface {
	// SupportedFormats returns the formats this normaliser handles.
	SupportedFormats() []domain.Format

	// Normalise converts raw upload bytes into paragraphs of spans.
	// It must not leave temporary resources behind on any path.
	Normalise(ctx context.Context, upload *domain.Upload) (*domain.Document, error)
}
