// Package keywords provides the keyword table view for the TUI.
package keywords

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/adcheck/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/adcheck/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/adcheck/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/adcheck/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/adcheck/internal/core/domain"
)

// View lists the keyword table.
type View struct {
	styles    *styles.Styles
	list      *list.KeywordList
	statusbar *status.Bar
	height    int
}

// NewView creates a keyword view for a table.
func NewView(s *styles.Styles, km *keymap.KeyMap, table *domain.KeywordTable) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	l := list.NewKeywordList(s)
	l.SetTable(table)

	bar := status.NewBar(s, km)
	bar.SetState(status.StateKeywords)
	bar.SetMessage(fmt.Sprintf("%d keywords", l.Count()))

	return &View{styles: s, list: l, statusbar: bar, height: 24}
}

// Update forwards navigation keys to the list.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	var cmd tea.Cmd
	v.list, cmd = v.list.Update(msg)
	return v, cmd
}

// View renders the keyword list above the status bar.
func (v *View) View() string {
	body := v.list.View()
	gap := v.height - strings.Count(body, "\n") - 2
	if gap < 1 {
		gap = 1
	}
	return body + strings.Repeat("\n", gap) + v.statusbar.View()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.height = height
	v.list.SetDimensions(width, height-2)
	v.statusbar.SetWidth(width)
}

// Selected returns the selected row index.
func (v *View) Selected() int {
	return v.list.Selected()
}
