package domain

// ReviewResult is the outcome of one review request.
type ReviewResult struct {
	// ID identifies the request in logs and tool responses.
	ID string

	// FileName is the derived output name.
	FileName string

	// MIMEType is the output content type.
	MIMEType string

	// Content is the annotated document.
	Content []byte

	// Paragraphs is the number of paragraphs in the document.
	Paragraphs int

	// Stats summarises the highlighting pass.
	Stats HighlightStats
}
