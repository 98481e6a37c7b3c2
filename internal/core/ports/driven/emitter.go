package driven

import (
	"context"

	"github.com/custodia-labs/adcheck/internal/core/domain"
)

// Emitter serialises a Document into a binary document container.
type Emitter interface {
	// MIMEType returns the content type of emitted documents.
	MIMEType() string

	// Emit returns the complete container. On failure it returns no bytes
	// and an error wrapping domain.ErrSerialize.
	Emit(ctx context.Context, doc *domain.Document) ([]byte, error)
}
