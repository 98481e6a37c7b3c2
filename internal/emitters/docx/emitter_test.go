package docx

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/adcheck/internal/core/domain"
	docxnormaliser "github.com/custodia-labs/adcheck/internal/normalisers/docx"
)

const font = domain.DefaultFontName

func fixedEmitter() *Emitter {
	e := New(font)
	e.now = func() time.Time { return time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC) }
	return e
}

func rgb(r, g, b uint8) *domain.RGB {
	return &domain.RGB{R: r, G: g, B: b}
}

func sampleDocument() *domain.Document {
	return &domain.Document{
		Title: "봄 시즌 광고",
		Paragraphs: []domain.Paragraph{
			{Spans: []domain.Span{
				{Text: "지금 ", FontName: font},
				{Text: "무료", FontName: font, Color: rgb(251, 65, 65), Bold: true},
				{Text: " 과장 표현", FontName: font, Color: rgb(92, 179, 56)},
				{Text: " 배송", FontName: font},
			}},
			{},
			{Spans: []domain.Span{
				{Text: "a\tb\nc", FontName: "Arial"},
				{Text: `<tag> & "quotes"`, FontName: font, Bold: true},
			}},
		},
	}
}

func readParts(t *testing.T, content []byte) map[string]string {
	t.Helper()
	r, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	require.NoError(t, err)

	parts := make(map[string]string)
	for _, f := range r.File {
		rc, err := f.Open()
		require.NoError(t, err)
		body, err := io.ReadAll(rc)
		rc.Close()
		require.NoError(t, err)
		parts[f.Name] = string(body)
	}
	return parts
}

func TestMIMEType(t *testing.T) {
	assert.Equal(t, domain.MIMEDocx, New(font).MIMEType())
}

func TestEmit_PackageParts(t *testing.T) {
	content, err := fixedEmitter().Emit(context.Background(), sampleDocument())
	require.NoError(t, err)

	parts := readParts(t, content)
	for _, name := range []string{
		"[Content_Types].xml",
		"_rels/.rels",
		"word/document.xml",
		"word/_rels/document.xml.rels",
		"word/styles.xml",
		"docProps/core.xml",
		"docProps/app.xml",
	} {
		assert.Contains(t, parts, name)
	}

	doc := parts["word/document.xml"]
	assert.Contains(t, doc, `<w:rFonts w:ascii="맑은 고딕" w:hAnsi="맑은 고딕" w:eastAsia="맑은 고딕" w:cs="맑은 고딕"/><w:b/><w:color w:val="FB4141"/>`)
	assert.Contains(t, doc, `<w:t xml:space="preserve">a</w:t><w:tab/><w:t xml:space="preserve">b</w:t><w:br/>`)
	assert.Contains(t, doc, "&lt;tag&gt; &amp; &#34;quotes&#34;")
	assert.Contains(t, parts["docProps/core.xml"], "2026-03-01T09:00:00Z")
}

func TestEmit_RoundTrip(t *testing.T) {
	input := sampleDocument()

	content, err := fixedEmitter().Emit(context.Background(), input)
	require.NoError(t, err)

	output, err := docxnormaliser.New(font).Normalise(context.Background(), &domain.Upload{
		Name: "out.docx", Format: domain.FormatRichDocument, Content: content,
	})
	require.NoError(t, err)

	assert.Equal(t, input.Title, output.Title)
	require.Len(t, output.Paragraphs, len(input.Paragraphs))
	for i := range input.Paragraphs {
		assert.Equal(t, input.Paragraphs[i].Spans, output.Paragraphs[i].Spans, "paragraph %d", i)
	}
}

func TestEmit_Deterministic(t *testing.T) {
	e := fixedEmitter()

	first, err := e.Emit(context.Background(), sampleDocument())
	require.NoError(t, err)
	second, err := e.Emit(context.Background(), sampleDocument())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestEmit_EmptyDocument(t *testing.T) {
	content, err := fixedEmitter().Emit(context.Background(), &domain.Document{})
	require.NoError(t, err)

	parts := readParts(t, content)
	assert.Contains(t, parts["word/document.xml"], "<w:body><w:sectPr>")
}

func TestEmit_SerializeErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  *domain.Document
	}{
		{
			name: "control character in text",
			doc: &domain.Document{Paragraphs: []domain.Paragraph{
				{Spans: []domain.Span{{Text: "bad\x01text"}}},
			}},
		},
		{
			name: "invalid utf-8 in text",
			doc: &domain.Document{Paragraphs: []domain.Paragraph{
				{Spans: []domain.Span{{Text: "bad\xfftext"}}},
			}},
		},
		{
			name: "control character in title",
			doc:  &domain.Document{Title: "\x0b"},
		},
		{
			name: "control character in font",
			doc: &domain.Document{Paragraphs: []domain.Paragraph{
				{Spans: []domain.Span{{Text: "ok", FontName: "\x00"}}},
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content, err := fixedEmitter().Emit(context.Background(), tt.doc)
			assert.ErrorIs(t, err, domain.ErrSerialize)
			assert.Nil(t, content)
		})
	}
}

func TestEmit_NilDocument(t *testing.T) {
	_, err := New(font).Emit(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestEmit_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(font).Emit(ctx, sampleDocument())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestIsXMLChar(t *testing.T) {
	assert.True(t, isXMLChar('\t'))
	assert.True(t, isXMLChar('가'))
	assert.True(t, isXMLChar(0x1F600))
	assert.False(t, isXMLChar(0x00))
	assert.False(t, isXMLChar(0x1F))
	assert.False(t, isXMLChar(0xFFFE))
}
