package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/custodia-labs/adcheck/internal/core/domain"
	"github.com/custodia-labs/adcheck/internal/core/ports/driven"
)

// mockConfigStore is an in-memory driven.ConfigStore.
type mockConfigStore struct {
	values map[string]any
}

var _ driven.ConfigStore = (*mockConfigStore)(nil)

func newMockConfigStore(values map[string]any) *mockConfigStore {
	if values == nil {
		values = map[string]any{}
	}
	return &mockConfigStore{values: values}
}

func (m *mockConfigStore) Get(key string) (any, bool) {
	v, ok := m.values[key]
	return v, ok
}

func (m *mockConfigStore) GetString(key string) string {
	s, _ := m.values[key].(string)
	return s
}

func (m *mockConfigStore) GetInt(key string) int {
	switch v := m.values[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	}
	return 0
}

func (m *mockConfigStore) GetStringSlice(key string) []string {
	s, _ := m.values[key].([]string)
	return s
}

func (m *mockConfigStore) Set(key string, value any) error {
	m.values[key] = value
	return nil
}

func (m *mockConfigStore) Load() error  { return nil }
func (m *mockConfigStore) Path() string { return "memory" }

// mockKeywordSource returns a fixed table or error.
type mockKeywordSource struct {
	table *domain.KeywordTable
	err   error
	calls int
}

var _ driven.KeywordSource = (*mockKeywordSource)(nil)

func (m *mockKeywordSource) Name() string { return "mock" }

func (m *mockKeywordSource) FetchKeywordNotes(_ context.Context) (*domain.KeywordTable, error) {
	m.calls++
	return m.table, m.err
}

// mockKeywordCache holds tables in memory.
type mockKeywordCache struct {
	tables  map[string]*domain.KeywordTable
	savedAt time.Time
	saveErr error
	loadErr error
}

var _ driven.KeywordCache = (*mockKeywordCache)(nil)

func newMockKeywordCache() *mockKeywordCache {
	return &mockKeywordCache{
		tables:  map[string]*domain.KeywordTable{},
		savedAt: time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC),
	}
}

func (m *mockKeywordCache) Save(_ context.Context, source string, table *domain.KeywordTable) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.tables[source] = table
	return nil
}

func (m *mockKeywordCache) Load(_ context.Context, source string) (*domain.KeywordTable, time.Time, error) {
	if m.loadErr != nil {
		return nil, time.Time{}, m.loadErr
	}
	table, ok := m.tables[source]
	if !ok {
		return nil, time.Time{}, nil
	}
	return table, m.savedAt, nil
}

// mockRegistry turns plain-text uploads into one paragraph per line.
type mockRegistry struct {
	err error
}

var _ driven.NormaliserRegistry = (*mockRegistry)(nil)

func (m *mockRegistry) Normalise(_ context.Context, upload *domain.Upload) (*domain.Document, error) {
	if m.err != nil {
		return nil, m.err
	}
	if upload.Format != domain.FormatPlainText {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, upload.Format)
	}
	doc := &domain.Document{Title: upload.Stem()}
	doc.Paragraphs = append(doc.Paragraphs, domain.Paragraph{
		Spans: []domain.Span{domain.PlainSpan(string(upload.Content), "")},
	})
	return doc, nil
}

func (m *mockRegistry) Register(_ driven.Normaliser) {}

func (m *mockRegistry) SupportedFormats() []domain.Format {
	return []domain.Format{domain.FormatPlainText}
}

// mockEmitter records the last document and returns its text.
type mockEmitter struct {
	last *domain.Document
	err  error
}

var _ driven.Emitter = (*mockEmitter)(nil)

func (m *mockEmitter) MIMEType() string { return domain.MIMEDocx }

func (m *mockEmitter) Emit(_ context.Context, doc *domain.Document) ([]byte, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.last = doc
	return []byte(documentText(doc)), nil
}

var errBoom = errors.New("boom")

// documentText joins the paragraphs' text with newlines.
func documentText(doc *domain.Document) string {
	parts := make([]string, len(doc.Paragraphs))
	for i := range doc.Paragraphs {
		parts[i] = doc.Paragraphs[i].Text()
	}
	return strings.Join(parts, "\n")
}
