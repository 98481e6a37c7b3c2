package plaintext

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/korean"

	"github.com/custodia-labs/adcheck/internal/core/domain"
)

func newNormaliser(t *testing.T, encodings ...string) *Normaliser {
	t.Helper()
	n, err := New(domain.DefaultFontName, encodings...)
	require.NoError(t, err)
	return n
}

func upload(content []byte) *domain.Upload {
	return &domain.Upload{Name: "dir/광고 문구.txt", Format: domain.FormatPlainText, Content: content}
}

func TestNew_UnknownEncoding(t *testing.T) {
	_, err := New("", "utf-8", "klingon")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSupportedFormats(t *testing.T) {
	assert.Equal(t, []domain.Format{domain.FormatPlainText}, newNormaliser(t).SupportedFormats())
}

func TestNormalise_UTF8(t *testing.T) {
	doc, err := newNormaliser(t).Normalise(context.Background(), upload([]byte("무료 배송")))

	require.NoError(t, err)
	assert.Equal(t, "광고 문구", doc.Title)
	require.Len(t, doc.Paragraphs, 1)
	require.Len(t, doc.Paragraphs[0].Spans, 1)
	span := doc.Paragraphs[0].Spans[0]
	assert.Equal(t, "무료 배송", span.Text)
	assert.Equal(t, domain.DefaultFontName, span.FontName)
	assert.Nil(t, span.Color)
	assert.False(t, span.Bold)
}

func TestNormalise_CP949(t *testing.T) {
	encoded, err := korean.EUCKR.NewEncoder().Bytes([]byte("최고의 효과"))
	require.NoError(t, err)

	doc, err := newNormaliser(t).Normalise(context.Background(), upload(encoded))

	require.NoError(t, err)
	assert.Equal(t, "최고의 효과", doc.Paragraphs[0].Text())
}

func TestNormalise_StripsBOMAndNormalisesLineEndings(t *testing.T) {
	content := append([]byte{0xEF, 0xBB, 0xBF}, []byte("a\r\nb\rc\n")...)

	doc, err := newNormaliser(t).Normalise(context.Background(), upload(content))

	require.NoError(t, err)
	assert.Equal(t, "a\nb\nc\n", doc.Paragraphs[0].Text())
}

func TestNormalise_DecodeFailure(t *testing.T) {
	n := newNormaliser(t, "utf-8")

	_, err := n.Normalise(context.Background(), upload([]byte{0xB9, 0xAB, 0xB7, 0xE1}))
	assert.ErrorIs(t, err, domain.ErrDecode)
}

func TestNormalise_AllCandidatesFail(t *testing.T) {
	// 0xFF is not a lead byte in UTF-8 or EUC-KR.
	_, err := newNormaliser(t).Normalise(context.Background(), upload([]byte{0xFF, 0xFF}))
	assert.ErrorIs(t, err, domain.ErrDecode)
}

func TestNormalise_Empty(t *testing.T) {
	tests := []struct {
		name    string
		content []byte
	}{
		{"nil", nil},
		{"empty", []byte{}},
		{"bom only", []byte{0xEF, 0xBB, 0xBF}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newNormaliser(t).Normalise(context.Background(), upload(tt.content))
			assert.ErrorIs(t, err, domain.ErrDecode)
		})
	}
}

func TestNormalise_NilUpload(t *testing.T) {
	_, err := newNormaliser(t).Normalise(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLookup(t *testing.T) {
	tests := []struct {
		name     string
		wantUTF8 bool
	}{
		{"utf-8", true},
		{"UTF8", true},
		{"cp949", false},
		{"euc-kr", false},
		{"shift_jis", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc, err := lookup(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.wantUTF8, enc == nil)
		})
	}
}
