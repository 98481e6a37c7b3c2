// Package mcp provides an MCP (Model Context Protocol) server adapter for
// adcheck. It lets AI assistants highlight documents against the keyword
// table and read the table itself.
package mcp

import (
	"errors"
	"fmt"

	"github.com/custodia-labs/adcheck/internal/core/domain"
)

// ErrMissingReviewService is returned when the review service is not provided.
var ErrMissingReviewService = errors.New("mcp: review service is required")

// toolError prefixes err with its kind so clients can tell decode,
// parse and serialise failures apart.
func toolError(err error) error {
	return fmt.Errorf("%s: %w", domain.ErrorKind(err), err)
}
