package html

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/custodia-labs/adcheck/internal/core/domain"
	"github.com/custodia-labs/adcheck/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// blockElements end the current paragraph when opened or closed.
var blockElements = map[atom.Atom]bool{
	atom.P: true, atom.Div: true, atom.Li: true, atom.Br: true, atom.Hr: true,
	atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
	atom.Td: true, atom.Th: true, atom.Tr: true, atom.Table: true,
	atom.Ul: true, atom.Ol: true, atom.Pre: true, atom.Blockquote: true,
	atom.Section: true, atom.Article: true, atom.Header: true, atom.Footer: true,
	atom.Body: true,
}

// skippedElements have content that is never shown as text.
var skippedElements = map[atom.Atom]bool{
	atom.Script: true, atom.Style: true, atom.Noscript: true, atom.Template: true,
}

// Normaliser handles HTML documents.
type Normaliser struct {
	fontName string
}

// New creates an HTML normaliser.
func New(fontName string) *Normaliser {
	return &Normaliser{fontName: fontName}
}

// SupportedFormats returns the formats this normaliser handles.
func (n *Normaliser) SupportedFormats() []domain.Format {
	return []domain.Format{domain.FormatHTML}
}

// Normalise tokenizes the upload into paragraphs. The <title> element
// becomes the document title, else the file stem.
func (n *Normaliser) Normalise(_ context.Context, upload *domain.Upload) (*domain.Document, error) {
	if upload == nil {
		return nil, domain.ErrInvalidInput
	}
	if !utf8.Valid(upload.Content) {
		return nil, fmt.Errorf("%w: %s is not valid UTF-8", domain.ErrDecode, upload.Name)
	}

	b := &builder{fontName: n.fontName}
	z := html.NewTokenizer(bytes.NewReader(upload.Content))

	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if err := z.Err(); err != io.EOF {
				return nil, fmt.Errorf("%w: %s: %v", domain.ErrParse, upload.Name, err)
			}
			break
		}

		switch tt {
		case html.TextToken:
			b.text(string(z.Text()))

		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			b.start(atom.Lookup(name), tt == html.SelfClosingTagToken)

		case html.EndTagToken:
			name, _ := z.TagName()
			b.end(atom.Lookup(name))
		}
	}
	b.flush()

	title := collapse(b.title.String())
	title = strings.TrimSpace(title)
	if title == "" {
		title = upload.Stem()
	}
	return &domain.Document{Title: title, Paragraphs: b.paragraphs}, nil
}

// builder accumulates tokenizer events into paragraphs.
type builder struct {
	fontName   string
	paragraphs []domain.Paragraph
	current    domain.Paragraph
	title      strings.Builder
	inTitle    bool
	skip       int
	bold       int
	pre        int
}

func (b *builder) start(a atom.Atom, selfClosing bool) {
	switch {
	case skippedElements[a]:
		if !selfClosing {
			b.skip++
		}
	case a == atom.Title:
		b.inTitle = !selfClosing
	case a == atom.B || a == atom.Strong:
		if !selfClosing {
			b.bold++
		}
	case blockElements[a]:
		b.flush()
		if a == atom.Pre && !selfClosing {
			b.pre++
		}
	}
}

func (b *builder) end(a atom.Atom) {
	switch {
	case skippedElements[a]:
		if b.skip > 0 {
			b.skip--
		}
	case a == atom.Title:
		b.inTitle = false
	case a == atom.B || a == atom.Strong:
		if b.bold > 0 {
			b.bold--
		}
	case blockElements[a]:
		b.flush()
		if a == atom.Pre && b.pre > 0 {
			b.pre--
		}
	}
}

func (b *builder) text(s string) {
	if b.skip > 0 {
		return
	}
	if b.inTitle {
		b.title.WriteString(s)
		return
	}

	spans := b.current.Spans
	if b.pre == 0 {
		s = collapse(s)
		if len(spans) == 0 || strings.HasSuffix(spans[len(spans)-1].Text, " ") {
			s = strings.TrimLeft(s, " ")
		}
	}
	if s == "" {
		return
	}

	bold := b.bold > 0
	if last := len(spans) - 1; last >= 0 && spans[last].Bold == bold {
		spans[last].Text += s
		return
	}
	b.current.Spans = append(spans, domain.Span{Text: s, FontName: b.fontName, Bold: bold})
}

// flush closes the current paragraph. Paragraphs without text are dropped.
func (b *builder) flush() {
	spans := b.current.Spans
	if b.pre == 0 {
		for len(spans) > 0 {
			last := len(spans) - 1
			spans[last].Text = strings.TrimRight(spans[last].Text, " ")
			if spans[last].Text != "" {
				break
			}
			spans = spans[:last]
		}
	}
	if len(spans) > 0 {
		b.paragraphs = append(b.paragraphs, domain.Paragraph{Spans: spans})
	}
	b.current = domain.Paragraph{}
}

// collapse replaces each run of whitespace with one space.
func collapse(s string) string {
	var out strings.Builder
	pending := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			pending = true
			continue
		}
		if pending {
			out.WriteByte(' ')
			pending = false
		}
		out.WriteRune(r)
	}
	if pending {
		out.WriteByte(' ')
	}
	return out.String()
}
