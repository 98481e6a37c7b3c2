package normalisers

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/custodia-labs/adcheck/internal/core/domain"
	"github.com/custodia-labs/adcheck/internal/core/ports/driven"
	"github.com/custodia-labs/adcheck/internal/logger"
)

// Ensure Registry implements the interface.
var _ driven.NormaliserRegistry = (*Registry)(nil)

// Registry maps declared formats to normalisers.
type Registry struct {
	mu          sync.RWMutex
	normalisers map[domain.Format]driven.Normaliser
}

// NewRegistry creates a registry holding the given normalisers.
func NewRegistry(normalisers ...driven.Normaliser) *Registry {
	r := &Registry{normalisers: make(map[domain.Format]driven.Normaliser)}
	for _, n := range normalisers {
		r.Register(n)
	}
	return r
}

// Register adds a normaliser for each of its formats.
func (r *Registry) Register(n driven.Normaliser) {
	if n == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, f := range n.SupportedFormats() {
		r.normalisers[f] = n
	}
}

// Normalise dispatches the upload on its declared format.
func (r *Registry) Normalise(ctx context.Context, upload *domain.Upload) (*domain.Document, error) {
	if upload == nil {
		return nil, domain.ErrInvalidInput
	}

	r.mu.RLock()
	n, ok := r.normalisers[upload.Format]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, upload.Format)
	}

	logger.Debug("Normalising %s as %s", upload.Name, upload.Format)
	return n.Normalise(ctx, upload)
}

// SupportedFormats returns the registered formats in a stable order.
func (r *Registry) SupportedFormats() []domain.Format {
	r.mu.RLock()
	defer r.mu.RUnlock()

	formats := make([]domain.Format, 0, len(r.normalisers))
	for f := range r.normalisers {
		formats = append(formats, f)
	}
	sort.Slice(formats, func(i, j int) bool { return formats[i] < formats[j] })
	return formats
}
