// Package docx normalises Office Open XML word-processing documents into
// paragraphs of styled spans.
package docx

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/custodia-labs/adcheck/internal/core/domain"
	"github.com/custodia-labs/adcheck/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// WordprocessingML namespaces, transitional and strict, and markup
// compatibility.
const (
	nsWord         = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsWordStrict   = "http://purl.oclc.org/ooxml/wordprocessingml/main"
	nsMarkupCompat = "http://schemas.openxmlformats.org/markup-compatibility/2006"
)

const (
	documentPart = "word/document.xml"
	corePart     = "docProps/core.xml"
)

// Normaliser handles DOCX documents.
type Normaliser struct {
	fontName string
}

// New creates a DOCX normaliser. fontName is used for runs that do not
// name a font.
func New(fontName string) *Normaliser {
	return &Normaliser{fontName: fontName}
}

// SupportedFormats returns the formats this normaliser handles.
func (n *Normaliser) SupportedFormats() []domain.Format {
	return []domain.Format{domain.FormatRichDocument}
}

// Normalise converts a DOCX upload to a document. Every w:p becomes a
// paragraph, including those inside tables, in document order.
func (n *Normaliser) Normalise(_ context.Context, upload *domain.Upload) (*domain.Document, error) {
	if upload == nil {
		return nil, domain.ErrInvalidInput
	}

	reader, err := zip.NewReader(bytes.NewReader(upload.Content), int64(len(upload.Content)))
	if err != nil {
		return nil, fmt.Errorf("%w: %s is not a zip container: %v", domain.ErrParse, upload.Name, err)
	}

	part := findPart(reader, documentPart)
	if part == nil {
		return nil, fmt.Errorf("%w: %s has no %s", domain.ErrParse, upload.Name, documentPart)
	}

	rc, err := part.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", domain.ErrParse, documentPart, err)
	}
	defer rc.Close()

	paragraphs, err := n.parseParagraphs(rc)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrParse, upload.Name, err)
	}

	return &domain.Document{
		Title:      extractTitle(reader, upload),
		Paragraphs: paragraphs,
	}, nil
}

func findPart(reader *zip.Reader, name string) *zip.File {
	for _, file := range reader.File {
		if file.Name == name {
			return file
		}
	}
	return nil
}

// runState collects one w:r.
type runState struct {
	span    domain.Span
	text    strings.Builder
	inProps bool
}

// frame is an open w:p. Text boxes nest paragraphs inside runs, so frames
// form a stack. index is the paragraph's slot, reserved when it opens.
type frame struct {
	para  domain.Paragraph
	run   *runState
	index int
}

// parseParagraphs streams document.xml and returns its paragraphs.
func (n *Normaliser) parseParagraphs(r io.Reader) ([]domain.Paragraph, error) {
	dec := xml.NewDecoder(r)

	var (
		paragraphs []domain.Paragraph
		stack      []*frame
	)
	top := func() *frame {
		if len(stack) == 0 {
			return nil
		}
		return stack[len(stack)-1]
	}
	currentRun := func() *runState {
		if f := top(); f != nil {
			return f.run
		}
		return nil
	}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			// mc:Fallback repeats the mc:Choice content for older readers.
			if t.Name.Space == nsMarkupCompat && t.Name.Local == "Fallback" {
				if err := dec.Skip(); err != nil {
					return nil, err
				}
				continue
			}
			if !isWord(t.Name) {
				continue
			}
			run := currentRun()

			switch t.Name.Local {
			case "p":
				stack = append(stack, &frame{index: len(paragraphs)})
				paragraphs = append(paragraphs, domain.Paragraph{})
			case "r":
				if f := top(); f != nil {
					f.run = &runState{span: domain.Span{FontName: n.fontName}}
				}
			case "rPr":
				if run != nil {
					run.inProps = true
				}
			case "rFonts":
				if run != nil && run.inProps {
					if font := fontFromAttrs(t.Attr); font != "" {
						run.span.FontName = font
					}
				}
			case "color":
				if run != nil && run.inProps {
					run.span.Color = colorFromAttrs(t.Attr)
				}
			case "b":
				if run != nil && run.inProps {
					run.span.Bold = toggleOn(t.Attr)
				}
			case "t":
				var text string
				if err := dec.DecodeElement(&text, &t); err != nil {
					return nil, err
				}
				if run != nil {
					run.text.WriteString(text)
				}
			case "tab":
				if run != nil && !run.inProps {
					run.text.WriteByte('\t')
				}
			case "br", "cr":
				if run != nil && !run.inProps {
					run.text.WriteByte('\n')
				}
			}

		case xml.EndElement:
			if !isWord(t.Name) {
				continue
			}
			switch t.Name.Local {
			case "rPr":
				if run := currentRun(); run != nil {
					run.inProps = false
				}
			case "r":
				if f := top(); f != nil && f.run != nil {
					if f.run.text.Len() > 0 {
						span := f.run.span
						span.Text = f.run.text.String()
						f.para.Spans = append(f.para.Spans, span)
					}
					f.run = nil
				}
			case "p":
				if f := top(); f != nil {
					stack = stack[:len(stack)-1]
					paragraphs[f.index] = f.para
				}
			}
		}
	}

	return paragraphs, nil
}

func isWord(name xml.Name) bool {
	return name.Space == nsWord || name.Space == nsWordStrict
}

func attr(attrs []xml.Attr, local string) (string, bool) {
	for _, a := range attrs {
		if a.Name.Local == local {
			return a.Value, true
		}
	}
	return "", false
}

// fontFromAttrs prefers the East Asian font, then ascii, then hAnsi.
func fontFromAttrs(attrs []xml.Attr) string {
	for _, key := range []string{"eastAsia", "ascii", "hAnsi"} {
		if v, ok := attr(attrs, key); ok && v != "" {
			return v
		}
	}
	return ""
}

func colorFromAttrs(attrs []xml.Attr) *domain.RGB {
	v, ok := attr(attrs, "val")
	if !ok || strings.EqualFold(v, "auto") {
		return nil
	}
	c, err := domain.ParseRGB(v)
	if err != nil {
		return nil
	}
	return &c
}

// toggleOn reads an OOXML on/off property; a missing val means on.
func toggleOn(attrs []xml.Attr) bool {
	v, ok := attr(attrs, "val")
	if !ok {
		return true
	}
	switch strings.ToLower(v) {
	case "0", "false", "off":
		return false
	}
	return true
}

// coreXML represents the structure of docProps/core.xml.
type coreXML struct {
	Title string `xml:"title"`
}

// extractTitle reads the title from docProps/core.xml or falls back to the
// upload's file stem.
func extractTitle(reader *zip.Reader, upload *domain.Upload) string {
	if file := findPart(reader, corePart); file != nil {
		if rc, err := file.Open(); err == nil {
			var core coreXML
			err := xml.NewDecoder(rc).Decode(&core)
			rc.Close()
			if err == nil && strings.TrimSpace(core.Title) != "" {
				return strings.TrimSpace(core.Title)
			}
		}
	}
	return upload.Stem()
}
