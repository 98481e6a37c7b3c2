// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/adcheck/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/adcheck/internal/core/domain"
)

// Row is one keyword with its note.
type Row struct {
	Keyword string
	Note    string
}

// KeywordList displays the keyword table in a scrollable list.
type KeywordList struct {
	rows     []Row
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewKeywordList creates a new keyword list component.
func NewKeywordList(s *styles.Styles) *KeywordList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &KeywordList{
		styles: s,
		width:  80,
		height: 10,
	}
}

// Init initialises the list.
func (k *KeywordList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (k *KeywordList) Update(msg tea.Msg) (*KeywordList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		//nolint:exhaustive // handling only relevant key types
		switch msg.Type {
		case tea.KeyUp:
			k.MoveUp()
		case tea.KeyDown:
			k.MoveDown()
		case tea.KeyPgUp:
			for i := 0; i < k.visibleCount(); i++ {
				k.MoveUp()
			}
		case tea.KeyPgDown:
			for i := 0; i < k.visibleCount(); i++ {
				k.MoveDown()
			}
		}
	}
	return k, nil
}

func (k *KeywordList) visibleCount() int {
	// header and blank line
	n := k.height - 2
	if n < 1 {
		n = 1
	}
	return n
}

// View renders the list.
func (k *KeywordList) View() string {
	if len(k.rows) == 0 {
		return k.styles.Muted.Render("No keywords")
	}

	lines := make([]string, 0, k.visibleCount()+2)
	lines = append(lines, k.styles.Title.Render(fmt.Sprintf("Keywords (%d)", len(k.rows))), "")

	visible := k.visibleCount()
	start := 0
	if k.selected >= visible {
		start = k.selected - visible + 1
	}
	end := start + visible
	if end > len(k.rows) {
		end = len(k.rows)
	}

	for i := start; i < end; i++ {
		lines = append(lines, k.renderRow(i))
	}
	return strings.Join(lines, "\n")
}

// renderRow formats one keyword with its note in document colours.
func (k *KeywordList) renderRow(index int) string {
	row := k.rows[index]

	indicator := "  "
	if index == k.selected {
		indicator = "> "
	}

	keyword := k.styles.Keyword.Render(row.Keyword)
	if index == k.selected {
		keyword = k.styles.Selected.Render(row.Keyword)
	}

	if row.Note == "" {
		return indicator + keyword
	}

	maxNote := k.width - len([]rune(row.Keyword))*2 - 6
	return indicator + keyword + "  " + k.styles.Note.Render(truncate(row.Note, maxNote))
}

// truncate shortens s to at most max runes, marking the cut with "...".
func truncate(s string, max int) string {
	if max < 10 {
		max = 10
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}

// SetTable replaces the rows with the contents of a keyword table.
func (k *KeywordList) SetTable(table *domain.KeywordTable) {
	keywords := table.Keywords()
	k.rows = make([]Row, 0, len(keywords))
	for _, kw := range keywords {
		note, _ := table.Note(kw)
		k.rows = append(k.rows, Row{Keyword: kw, Note: note})
	}
	k.selected = 0
}

// Rows returns the current rows.
func (k *KeywordList) Rows() []Row {
	return k.rows
}

// Selected returns the index of the selected row.
func (k *KeywordList) Selected() int {
	return k.selected
}

// MoveUp moves selection up.
func (k *KeywordList) MoveUp() {
	if k.selected > 0 {
		k.selected--
	}
}

// MoveDown moves selection down.
func (k *KeywordList) MoveDown() {
	if k.selected < len(k.rows)-1 {
		k.selected++
	}
}

// SetDimensions sets the component dimensions.
func (k *KeywordList) SetDimensions(width, height int) {
	k.width = width
	k.height = height
}

// Count returns the number of rows.
func (k *KeywordList) Count() int {
	return len(k.rows)
}
