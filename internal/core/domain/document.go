package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// RGB is a 24-bit text colour.
type RGB struct {
	R, G, B uint8
}

// Hex returns the colour as six upper-case hex digits, e.g. "FB4141".
func (c RGB) Hex() string {
	return fmt.Sprintf("%02X%02X%02X", c.R, c.G, c.B)
}

// ParseRGB parses six hex digits with an optional leading '#'.
func ParseRGB(s string) (RGB, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return RGB{}, fmt.Errorf("%w: colour %q must have 6 hex digits", ErrInvalidInput, s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("%w: colour %q is not hex", ErrInvalidInput, s)
	}
	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// Span is one contiguous run of uniformly styled text.
type Span struct {
	// Text is the run's content. It may contain '\t' and '\n'.
	Text string

	// FontName is the typeface. Empty means the document default.
	FontName string

	// Color is the text colour, nil for automatic.
	Color *RGB

	// Bold marks the run as bold.
	Bold bool

	// Annotation marks text added by the highlighter (a keyword's note).
	// It is not part of the source text.
	Annotation bool
}

// Paragraph is an ordered sequence of spans.
// No paragraph-level style is tracked.
type Paragraph struct {
	Spans []Span
}

// Text concatenates the text of all spans in order.
func (p Paragraph) Text() string {
	if len(p.Spans) == 1 {
		return p.Spans[0].Text
	}
	var b strings.Builder
	for i := range p.Spans {
		b.WriteString(p.Spans[i].Text)
	}
	return b.String()
}

// Document is the uniform in-memory form of an upload.
// It is created by a normaliser, rewritten by the highlighter
// and consumed by an emitter.
type Document struct {
	// Title is carried into the output document properties.
	Title string

	// Paragraphs holds the body in reading order.
	Paragraphs []Paragraph
}

// PlainSpan returns an unstyled span in the given font.
func PlainSpan(text, font string) Span {
	return Span{Text: text, FontName: font}
}
