// Package styles provides colour themes and styling for the TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/adcheck/internal/core/domain"
)

// Theme is the TUI palette. Alert and Accent are the keyword and note
// colours of annotated documents, so the preview matches the output.
type Theme struct {
	Primary    lipgloss.Color
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Success    lipgloss.Color
	Error      lipgloss.Color
	Border     lipgloss.Color
	Bar        lipgloss.Color
	Alert      lipgloss.Color
	Accent     lipgloss.Color
}

// DefaultTheme returns the theme for the default highlight style.
func DefaultTheme() *Theme {
	return ThemeFor(domain.DefaultHighlightStyle())
}

// ThemeFor returns a theme whose Alert and Accent follow style.
func ThemeFor(style domain.HighlightStyle) *Theme {
	return &Theme{
		Primary:    lipgloss.Color("#3B82F6"),
		Foreground: lipgloss.Color("#E5E7EB"),
		Muted:      lipgloss.Color("#6B7280"),
		Success:    lipgloss.Color("#86EFAC"),
		Error:      lipgloss.Color("#FCA5A5"),
		Border:     lipgloss.Color("#374151"),
		Bar:        lipgloss.Color("#111827"),
		Alert:      hexColor(style.AlertColor),
		Accent:     hexColor(style.AccentColor),
	}
}

func hexColor(c domain.RGB) lipgloss.Color {
	return lipgloss.Color("#" + c.Hex())
}

// Styles holds the lipgloss styles built from a Theme.
type Styles struct {
	theme *Theme

	Title    lipgloss.Style
	Normal   lipgloss.Style
	Muted    lipgloss.Style
	Selected lipgloss.Style
	Error    lipgloss.Style
	Success  lipgloss.Style

	// Keyword and Note render table rows the way documents mark them.
	Keyword lipgloss.Style
	Note    lipgloss.Style

	InputField lipgloss.Style
	StatusBar  lipgloss.Style
	Help       lipgloss.Style
}

// NewStyles creates styles from a theme. A nil theme means DefaultTheme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}
	fg := func(c lipgloss.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }

	return &Styles{
		theme:    theme,
		Title:    fg(theme.Primary).Bold(true),
		Normal:   fg(theme.Foreground),
		Muted:    fg(theme.Muted),
		Selected: fg(theme.Foreground).Background(theme.Primary).Bold(true),
		Error:    fg(theme.Error),
		Success:  fg(theme.Success),
		Keyword:  fg(theme.Alert).Bold(true),
		Note:     fg(theme.Accent),
		InputField: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),
		StatusBar: fg(theme.Muted).Background(theme.Bar).Padding(0, 1),
		Help:      fg(theme.Muted),
	}
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the theme used by these styles.
func (s *Styles) Theme() *Theme {
	return s.theme
}
