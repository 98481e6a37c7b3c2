package docx

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/custodia-labs/adcheck/internal/core/domain"
	"github.com/custodia-labs/adcheck/internal/core/ports/driven"
)

// Ensure Emitter implements the interface.
var _ driven.Emitter = (*Emitter)(nil)

// Emitter serialises documents to DOCX bytes.
type Emitter struct {
	fontName string
	now      func() time.Time
}

// New creates a DOCX emitter. fontName is the document default font.
func New(fontName string) *Emitter {
	return &Emitter{fontName: fontName, now: time.Now}
}

// MIMEType returns the DOCX MIME type.
func (e *Emitter) MIMEType() string {
	return domain.MIMEDocx
}

// part is one file in the package.
type part struct {
	name string
	body string
}

// Emit builds the whole package in memory. On failure nothing is returned.
func (e *Emitter) Emit(ctx context.Context, doc *domain.Document) ([]byte, error) {
	if doc == nil {
		return nil, domain.ErrInvalidInput
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := validate(doc, e.fontName); err != nil {
		return nil, err
	}

	now := e.now().UTC()
	parts := []part{
		{"[Content_Types].xml", contentTypesXML},
		{"_rels/.rels", rootRelsXML},
		{"word/document.xml", documentXML(doc)},
		{"word/_rels/document.xml.rels", documentRelsXML},
		{"word/styles.xml", stylesXML(e.fontName)},
		{"docProps/core.xml", coreXML(doc.Title, now)},
		{"docProps/app.xml", appXML},
	}

	buf := new(bytes.Buffer)
	w := zip.NewWriter(buf)
	for _, p := range parts {
		fw, err := w.CreateHeader(&zip.FileHeader{Name: p.name, Method: zip.Deflate, Modified: now})
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", domain.ErrSerialize, p.name, err)
		}
		if _, err := fw.Write([]byte(p.body)); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", domain.ErrSerialize, p.name, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSerialize, err)
	}

	return buf.Bytes(), nil
}

// validate rejects text that cannot be represented in XML 1.0.
func validate(doc *domain.Document, fontName string) error {
	check := func(what, s string) error {
		if !utf8.ValidString(s) {
			return fmt.Errorf("%w: %s is not valid UTF-8", domain.ErrSerialize, what)
		}
		for i, r := range s {
			if !isXMLChar(r) {
				return fmt.Errorf("%w: %s has character U+%04X at byte %d not allowed in XML",
					domain.ErrSerialize, what, r, i)
			}
		}
		return nil
	}

	if err := check("title", doc.Title); err != nil {
		return err
	}
	if err := check("font name", fontName); err != nil {
		return err
	}
	for pi, p := range doc.Paragraphs {
		for si, s := range p.Spans {
			where := fmt.Sprintf("paragraph %d span %d", pi+1, si+1)
			if err := check(where, s.Text); err != nil {
				return err
			}
			if err := check(where+" font", s.FontName); err != nil {
				return err
			}
		}
	}
	return nil
}

// isXMLChar reports whether r is in the XML 1.0 Char production.
func isXMLChar(r rune) bool {
	return r == 0x09 || r == 0x0A || r == 0x0D ||
		(r >= 0x20 && r <= 0xD7FF) ||
		(r >= 0xE000 && r <= 0xFFFD) ||
		(r >= 0x10000 && r <= 0x10FFFF)
}

func escape(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}

func documentXML(doc *domain.Document) string {
	var b strings.Builder
	b.WriteString(xml.Header)
	b.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)
	for _, p := range doc.Paragraphs {
		b.WriteString("<w:p>")
		for _, s := range p.Spans {
			writeRun(&b, s)
		}
		b.WriteString("</w:p>")
	}
	b.WriteString(`<w:sectPr><w:pgSz w:w="11906" w:h="16838"/>` +
		`<w:pgMar w:top="1440" w:right="1440" w:bottom="1440" w:left="1440" w:header="851" w:footer="992" w:gutter="0"/>` +
		`</w:sectPr>`)
	b.WriteString("</w:body></w:document>")
	return b.String()
}

func writeRun(b *strings.Builder, s domain.Span) {
	if s.Text == "" {
		return
	}
	b.WriteString("<w:r>")
	if s.FontName != "" || s.Bold || s.Color != nil {
		b.WriteString("<w:rPr>")
		if s.FontName != "" {
			f := escape(s.FontName)
			fmt.Fprintf(b, `<w:rFonts w:ascii="%s" w:hAnsi="%s" w:eastAsia="%s" w:cs="%s"/>`, f, f, f, f)
		}
		if s.Bold {
			b.WriteString("<w:b/>")
		}
		if s.Color != nil {
			fmt.Fprintf(b, `<w:color w:val="%s"/>`, s.Color.Hex())
		}
		b.WriteString("</w:rPr>")
	}

	var text strings.Builder
	flush := func() {
		if text.Len() > 0 {
			fmt.Fprintf(b, `<w:t xml:space="preserve">%s</w:t>`, escape(text.String()))
			text.Reset()
		}
	}
	for _, r := range s.Text {
		switch r {
		case '\t':
			flush()
			b.WriteString("<w:tab/>")
		case '\n':
			flush()
			b.WriteString("<w:br/>")
		default:
			text.WriteRune(r)
		}
	}
	flush()
	b.WriteString("</w:r>")
}

func stylesXML(fontName string) string {
	f := escape(fontName)
	fonts := ""
	if f != "" {
		fonts = fmt.Sprintf(`<w:rFonts w:ascii="%s" w:hAnsi="%s" w:eastAsia="%s" w:cs="%s"/>`, f, f, f, f)
	}
	return xml.Header +
		`<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">` +
		`<w:docDefaults><w:rPrDefault><w:rPr>` + fonts + `<w:sz w:val="20"/></w:rPr></w:rPrDefault></w:docDefaults>` +
		`<w:style w:type="paragraph" w:default="1" w:styleId="Normal"><w:name w:val="Normal"/></w:style>` +
		`</w:styles>`
}

func coreXML(title string, now time.Time) string {
	stamp := now.Format(time.RFC3339)
	return xml.Header +
		`<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties"` +
		` xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:dcterms="http://purl.org/dc/terms/"` +
		` xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">` +
		`<dc:title>` + escape(title) + `</dc:title>` +
		`<dc:creator>adcheck</dc:creator>` +
		`<dcterms:created xsi:type="dcterms:W3CDTF">` + stamp + `</dcterms:created>` +
		`<dcterms:modified xsi:type="dcterms:W3CDTF">` + stamp + `</dcterms:modified>` +
		`</cp:coreProperties>`
}

const contentTypesXML = xml.Header +
	`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
	`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
	`<Default Extension="xml" ContentType="application/xml"/>` +
	`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
	`<Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>` +
	`<Override PartName="/docProps/core.xml" ContentType="application/vnd.openxmlformats-package.core-properties+xml"/>` +
	`<Override PartName="/docProps/app.xml" ContentType="application/vnd.openxmlformats-officedocument.extended-properties+xml"/>` +
	`</Types>`

const rootRelsXML = xml.Header +
	`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>` +
	`<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties" Target="docProps/core.xml"/>` +
	`<Relationship Id="rId3" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/extended-properties" Target="docProps/app.xml"/>` +
	`</Relationships>`

const documentRelsXML = xml.Header +
	`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>` +
	`</Relationships>`

const appXML = xml.Header +
	`<Properties xmlns="http://schemas.openxmlformats.org/officeDocument/2006/extended-properties">` +
	`<Application>adcheck</Application>` +
	`</Properties>`
