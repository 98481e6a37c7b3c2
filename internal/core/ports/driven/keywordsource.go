package driven

import (
	"context"

	"github.com/custodia-labs/adcheck/internal/core/domain"
)

// KeywordSource supplies the regulated keyword table.
type KeywordSource interface {
	// Name identifies the source in logs (e.g. "sheets").
	Name() string

	// FetchKeywordNotes returns the keyword table.
	// Failures wrap domain.ErrKeywordSource.
	FetchKeywordNotes(ctx context.Context) (*domain.KeywordTable, error)
}
