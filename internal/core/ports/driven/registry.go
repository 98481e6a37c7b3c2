package driven

import (
	"context"

	"github.com/custodia-labs/adcheck/internal/core/domain"
)

// NormaliserRegistry selects the appropriate normaliser for an upload
// and dispatches on its declared format.
type NormaliserRegistry interface {
	// Normalise transforms an upload using the registered normaliser.
	// Unknown formats fail with domain.ErrUnsupportedFormat.
	Normalise(ctx context.Context, upload *domain.Upload) (*domain.Document, error)

	// Register adds a normaliser. A later registration for the same
	// format replaces the earlier one.
	Register(normaliser Normaliser)

	// SupportedFormats returns all formats that can be normalised.
	SupportedFormats() []domain.Format
}
