// Package markdown normalises Markdown uploads. Every block with inline
// content becomes a paragraph and strong emphasis becomes bold spans.
package markdown

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/custodia-labs/adcheck/internal/core/domain"
	"github.com/custodia-labs/adcheck/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles Markdown documents.
type Normaliser struct {
	fontName string
	md       goldmark.Markdown
}

// New creates a Markdown normaliser using GitHub Flavored Markdown.
func New(fontName string) *Normaliser {
	return &Normaliser{
		fontName: fontName,
		md:       goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

// SupportedFormats returns the formats this normaliser handles.
func (n *Normaliser) SupportedFormats() []domain.Format {
	return []domain.Format{domain.FormatMarkdown}
}

// Normalise parses the upload and walks its AST. The title is the first
// level-one heading, else the file stem.
func (n *Normaliser) Normalise(_ context.Context, upload *domain.Upload) (*domain.Document, error) {
	if upload == nil {
		return nil, domain.ErrInvalidInput
	}
	if !utf8.Valid(upload.Content) {
		return nil, fmt.Errorf("%w: %s is not valid UTF-8", domain.ErrDecode, upload.Name)
	}

	source := bytes.TrimPrefix(upload.Content, []byte{0xEF, 0xBB, 0xBF})
	root := n.md.Parser().Parse(text.NewReader(source))

	w := &walker{source: source, fontName: n.fontName}
	if err := ast.Walk(root, w.walk); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrParse, upload.Name, err)
	}

	title := w.title
	if title == "" {
		title = upload.Stem()
	}
	return &domain.Document{Title: title, Paragraphs: w.paragraphs}, nil
}

// walker collects paragraphs from leaf blocks.
type walker struct {
	source     []byte
	fontName   string
	paragraphs []domain.Paragraph
	current    *domain.Paragraph
	bold       int
	title      string
}

func (w *walker) walk(node ast.Node, entering bool) (ast.WalkStatus, error) {
	switch n := node.(type) {
	case *ast.Paragraph, *ast.TextBlock, *east.TableCell:
		w.block(entering)

	case *ast.Heading:
		w.block(entering)
		if !entering && n.Level == 1 && w.title == "" && len(w.paragraphs) > 0 {
			w.title = strings.TrimSpace(w.paragraphs[len(w.paragraphs)-1].Text())
		}

	case *ast.FencedCodeBlock, *ast.CodeBlock:
		if entering {
			w.codeBlock(n)
		}
		return ast.WalkSkipChildren, nil

	case *ast.HTMLBlock, *ast.RawHTML:
		return ast.WalkSkipChildren, nil

	case *ast.Text:
		if entering {
			w.write(resolveText(n.Segment.Value(w.source)))
			switch {
			case n.HardLineBreak():
				w.write("\n")
			case n.SoftLineBreak():
				w.write(" ")
			}
		}

	case *ast.String:
		if entering {
			w.write(string(n.Value))
		}

	case *ast.CodeSpan:
		if entering {
			w.write(w.inlineText(n))
		}
		return ast.WalkSkipChildren, nil

	case *ast.AutoLink:
		if entering {
			w.write(string(n.Label(w.source)))
		}
		return ast.WalkSkipChildren, nil

	case *ast.Emphasis:
		if n.Level == 2 {
			if entering {
				w.bold++
			} else {
				w.bold--
			}
		}
	}
	return ast.WalkContinue, nil
}

func (w *walker) block(entering bool) {
	if entering {
		w.current = &domain.Paragraph{}
		return
	}
	if w.current != nil {
		w.paragraphs = append(w.paragraphs, *w.current)
		w.current = nil
	}
}

func (w *walker) codeBlock(node ast.Node) {
	var b strings.Builder
	lines := node.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(w.source))
	}

	para := domain.Paragraph{}
	if code := strings.TrimRight(b.String(), "\n"); code != "" {
		para.Spans = []domain.Span{domain.PlainSpan(code, w.fontName)}
	}
	w.paragraphs = append(w.paragraphs, para)
}

// resolveText applies backslash escapes and character references the way
// goldmark's renderer does for text nodes.
func resolveText(raw []byte) string {
	return string(util.ResolveEntityNames(util.ResolveNumericReferences(util.UnescapePunctuations(raw))))
}

// inlineText returns the literal text of a node's inline children. Code
// spans are literal, so escapes are not resolved here.
func (w *walker) inlineText(node ast.Node) string {
	var b strings.Builder
	for c := node.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(w.source))
		case *ast.String:
			b.Write(t.Value)
		}
	}
	return b.String()
}

// write appends text to the open paragraph, merging with the previous span
// when the styling matches.
func (w *walker) write(s string) {
	if w.current == nil || s == "" {
		return
	}
	bold := w.bold > 0
	spans := w.current.Spans
	if last := len(spans) - 1; last >= 0 && spans[last].Bold == bold {
		spans[last].Text += s
		return
	}
	w.current.Spans = append(spans, domain.Span{Text: s, FontName: w.fontName, Bold: bold})
}
