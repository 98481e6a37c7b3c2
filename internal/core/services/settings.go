package services

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/custodia-labs/adcheck/internal/core/domain"
	"github.com/custodia-labs/adcheck/internal/core/ports/driven"
)

// Configuration keys, in the config store's dot notation.
const (
	KeyKeywordSource   = "keywords.source"
	KeyKeywordFile     = "keywords.file"
	KeySpreadsheet     = "keywords.sheets.spreadsheet"
	KeyWorksheet       = "keywords.sheets.worksheet"
	KeyKeywordColumn   = "keywords.sheets.keyword_column"
	KeyNoteColumn      = "keywords.sheets.note_column"
	KeyStartRow        = "keywords.sheets.start_row"
	KeyCredentialsFile = "keywords.sheets.credentials_file"
	KeyGitHubRepo      = "keywords.github.repository"
	KeyGitHubPath      = "keywords.github.path"
	KeyGitHubRef       = "keywords.github.ref"
	KeyKeywordCache    = "keywords.cache"
	KeyFont            = "style.font"
	KeyAlertColor      = "style.alert_color"
	KeyAccentColor     = "style.accent_color"
	KeyOutputPrefix    = "output.prefix"
	KeyOutputDir       = "output.dir"
	KeyEncodings       = "plaintext.encodings"
)

// ConfigKeys lists every key LoadSettings reads.
var ConfigKeys = []string{
	KeyKeywordSource,
	KeyKeywordFile,
	KeySpreadsheet,
	KeyWorksheet,
	KeyKeywordColumn,
	KeyNoteColumn,
	KeyStartRow,
	KeyCredentialsFile,
	KeyGitHubRepo,
	KeyGitHubPath,
	KeyGitHubRef,
	KeyKeywordCache,
	KeyFont,
	KeyAlertColor,
	KeyAccentColor,
	KeyOutputPrefix,
	KeyOutputDir,
	KeyEncodings,
}

// ValidateSetting checks a single value the way LoadSettings would read it.
// Unknown keys wrap domain.ErrInvalidInput.
func ValidateSetting(key string, value any) error {
	if !slices.Contains(ConfigKeys, key) {
		return fmt.Errorf("%w: unknown config key %q", domain.ErrInvalidInput, key)
	}
	_, err := LoadSettings(singleSetting{key: key, value: value})
	return err
}

// singleSetting is a read-only ConfigStore holding one value.
type singleSetting struct {
	key   string
	value any
}

func (s singleSetting) Get(key string) (any, bool) {
	if key != s.key {
		return nil, false
	}
	return s.value, true
}

func (s singleSetting) GetString(key string) string {
	v, _ := s.Get(key)
	str, _ := v.(string)
	return str
}

func (s singleSetting) GetInt(key string) int {
	v, _ := s.Get(key)
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	}
	return 0
}

func (s singleSetting) GetStringSlice(key string) []string {
	v, _ := s.Get(key)
	slice, _ := v.([]string)
	return slice
}

func (s singleSetting) Set(string, any) error { return errors.New("read-only") }
func (s singleSetting) Load() error           { return nil }
func (s singleSetting) Path() string          { return "" }

// LoadSettings reads settings from the config store over the defaults.
// A nil store yields the defaults. Invalid values wrap domain.ErrInvalidInput.
func LoadSettings(store driven.ConfigStore) (domain.Settings, error) {
	s := domain.DefaultSettings()
	if store == nil {
		return s, nil
	}

	if v := store.GetString(KeyKeywordSource); v != "" {
		s.KeywordSource = domain.KeywordSourceType(strings.ToLower(v))
		if !s.KeywordSource.IsValid() {
			return s, fmt.Errorf("%w: %s: unknown keyword source %q", domain.ErrInvalidInput, KeyKeywordSource, v)
		}
	}
	setString(store, KeyKeywordFile, &s.KeywordFile)
	setString(store, KeySpreadsheet, &s.Sheets.Spreadsheet)
	setString(store, KeyWorksheet, &s.Sheets.Worksheet)
	setString(store, KeyCredentialsFile, &s.Sheets.CredentialsFile)
	setString(store, KeyGitHubPath, &s.GitHub.Path)
	setString(store, KeyGitHubRef, &s.GitHub.Ref)
	setString(store, KeyFont, &s.Style.FontName)
	setString(store, KeyOutputDir, &s.OutputDir)

	if v := strings.TrimSpace(store.GetString(KeyGitHubRepo)); v != "" {
		if !isRepository(v) {
			return s, fmt.Errorf("%w: %s: %q is not owner/name", domain.ErrInvalidInput, KeyGitHubRepo, v)
		}
		s.GitHub.Repository = v
	}

	if v, ok := store.Get(KeyKeywordCache); ok {
		b, ok := v.(bool)
		if !ok {
			return s, fmt.Errorf("%w: %s must be true or false", domain.ErrInvalidInput, KeyKeywordCache)
		}
		s.KeywordCache = b
	}

	// An explicitly empty prefix is allowed.
	if v, ok := store.Get(KeyOutputPrefix); ok {
		if str, ok := v.(string); ok {
			s.OutputPrefix = str
		}
	}

	for key, dst := range map[string]*string{
		KeyKeywordColumn: &s.Sheets.KeywordColumn,
		KeyNoteColumn:    &s.Sheets.NoteColumn,
	} {
		if v := store.GetString(key); v != "" {
			col := strings.ToUpper(strings.TrimSpace(v))
			if !isColumn(col) {
				return s, fmt.Errorf("%w: %s: %q is not a column letter", domain.ErrInvalidInput, key, v)
			}
			*dst = col
		}
	}

	if _, ok := store.Get(KeyStartRow); ok {
		row := store.GetInt(KeyStartRow)
		if row < 1 {
			return s, fmt.Errorf("%w: %s must be at least 1", domain.ErrInvalidInput, KeyStartRow)
		}
		s.Sheets.StartRow = row
	}

	for key, dst := range map[string]*domain.RGB{
		KeyAlertColor:  &s.Style.AlertColor,
		KeyAccentColor: &s.Style.AccentColor,
	} {
		if v := store.GetString(key); v != "" {
			c, err := domain.ParseRGB(v)
			if err != nil {
				return s, fmt.Errorf("%s: %w", key, err)
			}
			*dst = c
		}
	}

	if encodings := store.GetStringSlice(KeyEncodings); len(encodings) > 0 {
		s.Encodings = encodings
	}

	return s, nil
}

func setString(store driven.ConfigStore, key string, dst *string) {
	if v := strings.TrimSpace(store.GetString(key)); v != "" {
		*dst = v
	}
}

// isRepository reports whether s looks like "owner/name".
func isRepository(s string) bool {
	owner, name, ok := strings.Cut(s, "/")
	return ok && owner != "" && name != "" && !strings.ContainsAny(name, "/ ")
}

// isColumn reports whether s is a spreadsheet column such as "B" or "AA".
func isColumn(s string) bool {
	if s == "" || len(s) > 3 {
		return false
	}
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
