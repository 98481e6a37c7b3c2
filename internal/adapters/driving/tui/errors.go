package tui

import "errors"

// ErrMissingReviewService is returned when the review service is not provided.
var ErrMissingReviewService = errors.New("tui: review service is required")

// ErrMissingOutputWriter is returned when the output writer is not provided.
var ErrMissingOutputWriter = errors.New("tui: output writer is required")
