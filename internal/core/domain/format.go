package domain

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format is the declared format of an upload.
type Format int

const (
	// FormatUnknown is the zero value and is never accepted.
	FormatUnknown Format = iota

	// FormatPlainText is a text file in one of the candidate encodings.
	FormatPlainText

	// FormatRichDocument is an Office Open XML word-processing document.
	FormatRichDocument

	// FormatMarkdown is CommonMark/GFM text.
	FormatMarkdown

	// FormatHTML is an HTML page.
	FormatHTML
)

// MIME types for the supported formats.
const (
	MIMEPlainText = "text/plain"
	MIMEDocx      = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MIMEMarkdown  = "text/markdown"
	MIMEHTML      = "text/html"
)

var formatNames = map[Format]string{
	FormatPlainText:    "text",
	FormatRichDocument: "docx",
	FormatMarkdown:     "markdown",
	FormatHTML:         "html",
}

// String returns the short name used in flags and config.
func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return "unknown"
}

// MIMEType returns the canonical MIME type of the format.
func (f Format) MIMEType() string {
	switch f {
	case FormatPlainText:
		return MIMEPlainText
	case FormatRichDocument:
		return MIMEDocx
	case FormatMarkdown:
		return MIMEMarkdown
	case FormatHTML:
		return MIMEHTML
	default:
		return "application/octet-stream"
	}
}

// ParseFormat resolves a format from a short name, extension or MIME type.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text", "txt", "plain", "plaintext", ".txt", MIMEPlainText:
		return FormatPlainText, nil
	case "docx", ".docx", "rich", MIMEDocx:
		return FormatRichDocument, nil
	case "markdown", "md", ".md", ".markdown", MIMEMarkdown, "text/x-markdown":
		return FormatMarkdown, nil
	case "html", "htm", ".html", ".htm", MIMEHTML, "application/xhtml+xml":
		return FormatHTML, nil
	}
	return FormatUnknown, fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// FormatFromFilename infers a format from a file's extension.
func FormatFromFilename(name string) (Format, error) {
	ext := filepath.Ext(name)
	if ext == "" {
		return FormatUnknown, fmt.Errorf("%w: %q has no extension", ErrUnsupportedFormat, name)
	}
	return ParseFormat(ext)
}

// Upload is one uploaded file before normalisation.
type Upload struct {
	// Name is the original file name, used for titles and output naming.
	Name string

	// Format is the declared format.
	Format Format

	// Content is the raw bytes.
	Content []byte
}

// Stem returns the upload's base file name without extension.
func (u *Upload) Stem() string {
	base := filepath.Base(u.Name)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
