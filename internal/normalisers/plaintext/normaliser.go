// Package plaintext normalises text uploads in one of several candidate
// encodings.
package plaintext

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/unicode"

	"github.com/custodia-labs/adcheck/internal/core/domain"
	"github.com/custodia-labs/adcheck/internal/core/ports/driven"
	"github.com/custodia-labs/adcheck/internal/logger"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// candidate is one named encoding. A nil enc means strict UTF-8.
type candidate struct {
	name string
	enc  encoding.Encoding
}

// Normaliser decodes plain text with the first candidate encoding that
// succeeds.
type Normaliser struct {
	candidates []candidate
	fontName   string
}

// New creates a plain text normaliser. Encodings are tried in order;
// with none given, domain.DefaultEncodings is used.
func New(fontName string, encodings ...string) (*Normaliser, error) {
	if len(encodings) == 0 {
		encodings = domain.DefaultEncodings
	}

	n := &Normaliser{fontName: fontName}
	for _, name := range encodings {
		enc, err := lookup(name)
		if err != nil {
			return nil, err
		}
		n.candidates = append(n.candidates, candidate{name: name, enc: enc})
	}
	return n, nil
}

// lookup resolves an encoding label. "cp949" is not a WHATWG label, but the
// WHATWG euc-kr decoder is the Windows-949 superset, so both share it.
func lookup(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "utf-8", "utf8":
		return nil, nil
	case "cp949", "ms949", "uhc":
		return korean.EUCKR, nil
	}

	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("%w: unknown encoding %q", domain.ErrInvalidInput, name)
	}
	if enc == unicode.UTF8 {
		return nil, nil
	}
	return enc, nil
}

// SupportedFormats returns the formats this normaliser handles.
func (n *Normaliser) SupportedFormats() []domain.Format {
	return []domain.Format{domain.FormatPlainText}
}

// Normalise decodes the upload into a single paragraph holding one plain
// span. Line breaks stay inside the span text.
func (n *Normaliser) Normalise(_ context.Context, upload *domain.Upload) (*domain.Document, error) {
	if upload == nil {
		return nil, domain.ErrInvalidInput
	}

	text, err := n.decode(upload.Content)
	if err != nil {
		return nil, err
	}

	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	if text == "" {
		return nil, fmt.Errorf("%w: %s is empty", domain.ErrDecode, upload.Name)
	}

	return &domain.Document{
		Title: upload.Stem(),
		Paragraphs: []domain.Paragraph{
			{Spans: []domain.Span{domain.PlainSpan(text, n.fontName)}},
		},
	}, nil
}

func (n *Normaliser) decode(content []byte) (string, error) {
	for _, c := range n.candidates {
		if c.enc == nil {
			if utf8.Valid(content) {
				logger.Debug("Decoded as %s", c.name)
				return string(bytes.TrimPrefix(content, utf8BOM)), nil
			}
			continue
		}

		out, err := c.enc.NewDecoder().Bytes(content)
		if err != nil || bytes.ContainsRune(out, utf8.RuneError) {
			continue
		}
		logger.Debug("Decoded as %s", c.name)
		return string(out), nil
	}

	names := make([]string, len(n.candidates))
	for i, c := range n.candidates {
		names[i] = c.name
	}
	return "", fmt.Errorf("%w: not valid in any of %s", domain.ErrDecode, strings.Join(names, ", "))
}
