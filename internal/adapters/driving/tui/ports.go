// Package tui provides an interactive terminal user interface for adcheck.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/adcheck/internal/core/ports/driven"
	"github.com/custodia-labs/adcheck/internal/core/ports/driving"
)

// Ports aggregates the services required by the TUI.
type Ports struct {
	// Review runs the highlight pipeline.
	Review driving.ReviewService

	// Writer stores annotated documents.
	Writer driven.OutputWriter
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Review == nil {
		return ErrMissingReviewService
	}
	if p.Writer == nil {
		return ErrMissingOutputWriter
	}
	return nil
}
