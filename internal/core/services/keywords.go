package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/adcheck/internal/core/domain"
	"github.com/custodia-labs/adcheck/internal/core/ports/driven"
	"github.com/custodia-labs/adcheck/internal/logger"
)

// LoadKeywords fetches the keyword table once. Any failure, including an
// empty table, wraps domain.ErrKeywordSource. The caller owns the returned
// table for the life of the process; there is no refresh.
func LoadKeywords(ctx context.Context, source driven.KeywordSource) (*domain.KeywordTable, error) {
	if source == nil {
		return nil, fmt.Errorf("%w: no keyword source configured", domain.ErrKeywordSource)
	}

	logger.Section("Keywords")
	logger.Debug("Fetching keywords from %s", source.Name())

	table, err := source.FetchKeywordNotes(ctx)
	if err != nil {
		logger.Warn("Keyword fetch failed: %v", err)
		if errors.Is(err, domain.ErrKeywordSource) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrKeywordSource, source.Name(), err)
	}
	if table.Len() == 0 {
		return nil, fmt.Errorf("%w: %s returned no keywords", domain.ErrKeywordSource, source.Name())
	}

	logger.Info("Loaded %d keywords from %s", table.Len(), source.Name())
	return table, nil
}

// Ensure CachedKeywordSource implements the interface.
var _ driven.KeywordSource = (*CachedKeywordSource)(nil)

// CachedKeywordSource saves every successful fetch and falls back to the
// saved table when the upstream source fails.
type CachedKeywordSource struct {
	source driven.KeywordSource
	cache  driven.KeywordCache
}

// NewCachedKeywordSource wraps source with cache.
func NewCachedKeywordSource(source driven.KeywordSource, cache driven.KeywordCache) *CachedKeywordSource {
	return &CachedKeywordSource{source: source, cache: cache}
}

// Name returns the upstream source name, which is also the cache key.
func (s *CachedKeywordSource) Name() string {
	return s.source.Name()
}

// FetchKeywordNotes fetches from upstream. On failure the cached table is
// returned if there is one; otherwise the upstream error is.
func (s *CachedKeywordSource) FetchKeywordNotes(ctx context.Context) (*domain.KeywordTable, error) {
	table, err := s.source.FetchKeywordNotes(ctx)
	if err == nil && table.Len() > 0 {
		if saveErr := s.cache.Save(ctx, s.Name(), table); saveErr != nil {
			logger.Warn("Could not cache keywords: %v", saveErr)
		}
		return table, nil
	}
	if err == nil {
		return table, nil
	}
	if ctx.Err() != nil {
		return nil, err
	}

	cached, savedAt, cacheErr := s.cache.Load(ctx, s.Name())
	if cacheErr != nil {
		logger.Warn("Could not read keyword cache: %v", cacheErr)
		return nil, err
	}
	if cached == nil || cached.Len() == 0 {
		return nil, err
	}

	logger.Warn("Keyword fetch failed (%v); using %d cached keywords from %s",
		err, cached.Len(), savedAt.Local().Format("2006-01-02 15:04"))
	return cached, nil
}
