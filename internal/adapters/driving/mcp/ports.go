package mcp

import (
	"github.com/custodia-labs/adcheck/internal/core/ports/driving"
)

// Ports aggregates the driving ports required by the MCP server.
type Ports struct {
	// Review runs the highlight pipeline and exposes the keyword table.
	Review driving.ReviewService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Review == nil {
		return ErrMissingReviewService
	}
	return nil
}
