// Package keywordfile reads the keyword table from a local TOML file:
//
//	[[keyword]]
//	term = "무료"
//	note = "과장 광고 표현"
//
// It is an offline alternative to the Google Sheets source.
package keywordfile

import (
	"context"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/adcheck/internal/core/domain"
	"github.com/custodia-labs/adcheck/internal/core/ports/driven"
	"github.com/custodia-labs/adcheck/internal/logger"
)

// Ensure Source implements the interface.
var _ driven.KeywordSource = (*Source)(nil)

type fileFormat struct {
	Keyword []entry `toml:"keyword"`
}

type entry struct {
	Term string `toml:"term"`
	Note string `toml:"note"`
}

// Source reads keywords from a TOML file.
type Source struct {
	path string
}

// New creates a source for the file at path.
func New(path string) *Source {
	return &Source{path: path}
}

// Name identifies the file.
func (s *Source) Name() string {
	return "file:" + s.path
}

// FetchKeywordNotes reads and parses the file.
func (s *Source) FetchKeywordNotes(_ context.Context) (*domain.KeywordTable, error) {
	if s.path == "" {
		return nil, fmt.Errorf("%w: keyword file path is not set", domain.ErrKeywordSource)
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrKeywordSource, err)
	}

	table, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.path, err)
	}
	logger.Debug("Read %d keywords from %s", table.Len(), s.path)

	return table, nil
}

// Parse decodes keyword file content. Entries with a blank term are skipped.
// Errors wrap domain.ErrKeywordSource.
func Parse(data []byte) (*domain.KeywordTable, error) {
	var f fileFormat
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: parse keyword file: %w", domain.ErrKeywordSource, err)
	}

	table := domain.NewKeywordTable()
	for _, e := range f.Keyword {
		table.Add(e.Term, e.Note)
	}
	return table, nil
}

// Write saves a keyword table in the file format, for exporting a sheet.
func Write(path string, table *domain.KeywordTable) error {
	var f fileFormat
	for _, k := range table.Keywords() {
		note, _ := table.Note(k)
		f.Keyword = append(f.Keyword, entry{Term: k, Note: note})
	}

	data, err := toml.Marshal(f)
	if err != nil {
		return fmt.Errorf("marshal keywords: %w", err)
	}
	return os.WriteFile(path, data, 0o600)
}
