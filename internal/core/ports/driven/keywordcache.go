package driven

import (
	"context"
	"time"

	"github.com/custodia-labs/adcheck/internal/core/domain"
)

// KeywordCache keeps the most recent keyword table fetched from each source.
type KeywordCache interface {
	// Save replaces the cached table for source.
	Save(ctx context.Context, source string, table *domain.KeywordTable) error

	// Load returns the cached table for source and when it was saved.
	// A source with nothing cached returns a nil table and no error.
	Load(ctx context.Context, source string) (*domain.KeywordTable, time.Time, error)
}
