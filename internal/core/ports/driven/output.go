package driven

import "context"

// OutputWriter persists emitted documents.
type OutputWriter interface {
	// Write stores content under name and returns the final path.
	// Partially written output is never left visible.
	Write(ctx context.Context, name string, content []byte) (string, error)
}
