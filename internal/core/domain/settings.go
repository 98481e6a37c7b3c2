package domain

import "strings"

// KeywordSourceType identifies where the keyword table comes from.
type KeywordSourceType string

// Available keyword sources.
const (
	// KeywordSourceSheets reads a Google Sheets worksheet.
	KeywordSourceSheets KeywordSourceType = "sheets"

	// KeywordSourceFile reads a local TOML keyword file.
	KeywordSourceFile KeywordSourceType = "file"

	// KeywordSourceGitHub reads a TOML keyword file from a GitHub repository.
	KeywordSourceGitHub KeywordSourceType = "github"
)

// IsValid returns true if the keyword source is recognised.
func (t KeywordSourceType) IsValid() bool {
	switch t {
	case KeywordSourceSheets, KeywordSourceFile, KeywordSourceGitHub:
		return true
	default:
		return false
	}
}

// Description returns a human-readable description of the source.
func (t KeywordSourceType) Description() string {
	switch t {
	case KeywordSourceSheets:
		return "Google Sheets worksheet"
	case KeywordSourceFile:
		return "Local keyword file"
	case KeywordSourceGitHub:
		return "Keyword file in a GitHub repository"
	default:
		return "Unknown"
	}
}

// Defaults taken from the review team's original worksheet layout.
const (
	DefaultFontName      = "맑은 고딕"
	DefaultOutputPrefix  = "검수결과_"
	DefaultWorksheet     = "키워드"
	DefaultKeywordColumn = "B"
	DefaultNoteColumn    = "C"
	DefaultStartRow      = 3
	DefaultGitHubPath    = "keywords.toml"
)

// DefaultEncodings are the plain-text candidate encodings, tried in order.
var DefaultEncodings = []string{"utf-8", "cp949", "euc-kr"}

// HighlightStyle is the styling applied by the highlighter.
type HighlightStyle struct {
	// FontName is used for every rewritten span.
	FontName string

	// AlertColor marks keyword occurrences.
	AlertColor RGB

	// AccentColor marks note annotations.
	AccentColor RGB
}

// DefaultHighlightStyle returns red bold keywords and green notes.
func DefaultHighlightStyle() HighlightStyle {
	return HighlightStyle{
		FontName:    DefaultFontName,
		AlertColor:  RGB{R: 251, G: 65, B: 65},
		AccentColor: RGB{R: 92, G: 179, B: 56},
	}
}

// SheetsSettings locates the keyword worksheet.
type SheetsSettings struct {
	// Spreadsheet is a spreadsheet ID or its full URL.
	Spreadsheet string

	// Worksheet is the tab name.
	Worksheet string

	// KeywordColumn and NoteColumn are column letters, e.g. "B" and "C".
	KeywordColumn string
	NoteColumn    string

	// StartRow is the first 1-based data row.
	StartRow int

	// CredentialsFile is a service-account JSON key file.
	CredentialsFile string
}

// GitHubSettings locates a keyword file in a repository.
type GitHubSettings struct {
	// Repository is "owner/name".
	Repository string

	// Path is the file path inside the repository.
	Path string

	// Ref is a branch, tag or commit. Empty means the default branch.
	Ref string
}

// Settings holds all user-configurable values.
type Settings struct {
	KeywordSource KeywordSourceType
	KeywordFile   string
	Sheets        SheetsSettings
	GitHub        GitHubSettings

	// KeywordCache keeps the last fetched table for use when the source
	// is unreachable.
	KeywordCache bool
	Style        HighlightStyle
	OutputPrefix string
	OutputDir    string
	Encodings    []string
}

// DefaultSettings returns settings matching the original review tool.
func DefaultSettings() Settings {
	return Settings{
		KeywordSource: KeywordSourceSheets,
		Sheets: SheetsSettings{
			Worksheet:     DefaultWorksheet,
			KeywordColumn: DefaultKeywordColumn,
			NoteColumn:    DefaultNoteColumn,
			StartRow:      DefaultStartRow,
		},
		GitHub:       GitHubSettings{Path: DefaultGitHubPath},
		KeywordCache: true,
		Style:        DefaultHighlightStyle(),
		OutputPrefix: DefaultOutputPrefix,
		OutputDir:    ".",
		Encodings:    append([]string(nil), DefaultEncodings...),
	}
}

// OutputName derives the annotated file name for an upload name.
// The output is always a DOCX file, so the extension is replaced.
func (s Settings) OutputName(uploadName string) string {
	u := Upload{Name: uploadName}
	return s.OutputPrefix + u.Stem() + ".docx"
}

// IsOutputName reports whether name already carries the output prefix.
func (s Settings) IsOutputName(name string) bool {
	return s.OutputPrefix != "" && strings.HasPrefix(name, s.OutputPrefix)
}
