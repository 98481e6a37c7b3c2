package domain

import "strings"

// KeywordTable maps regulated keywords to advisory notes.
// Keys are trimmed and never empty. The zero value is not usable;
// call NewKeywordTable.
type KeywordTable struct {
	notes map[string]string
	order []string
}

// NewKeywordTable creates an empty table.
func NewKeywordTable() *KeywordTable {
	return &KeywordTable{notes: make(map[string]string)}
}

// Add inserts or replaces a keyword. The keyword is trimmed; a blank
// keyword is rejected and Add returns false. The note is kept verbatim.
func (t *KeywordTable) Add(keyword, note string) bool {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return false
	}
	if _, ok := t.notes[keyword]; !ok {
		t.order = append(t.order, keyword)
	}
	t.notes[keyword] = note
	return true
}

// Note returns the note for keyword and whether the keyword exists.
func (t *KeywordTable) Note(keyword string) (string, bool) {
	if t == nil {
		return "", false
	}
	note, ok := t.notes[keyword]
	return note, ok
}

// Keywords returns the keywords in first-insertion order.
func (t *KeywordTable) Keywords() []string {
	if t == nil {
		return nil
	}
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// Len returns the number of keywords.
func (t *KeywordTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.notes)
}

// Match is a located keyword occurrence within a paragraph's text.
// Start and End are byte offsets; End is exclusive.
type Match struct {
	Start   int
	End     int
	Keyword string
}

// Len returns the match length in bytes.
func (m Match) Len() int {
	return m.End - m.Start
}

// HighlightStats summarises one highlighting pass.
type HighlightStats struct {
	// Matches is the number of keyword occurrences that were styled.
	Matches int

	// SkippedOverlaps counts matches dropped because they began
	// inside an earlier styled match.
	SkippedOverlaps int

	// Paragraphs is the number of paragraphs with at least one styled match.
	Paragraphs int

	// PerKeyword counts styled matches per keyword.
	PerKeyword map[string]int
}
