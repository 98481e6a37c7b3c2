// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// Help shows the help view.
	Help key.Binding

	// Review submits the path in the input.
	Review key.Binding

	// Clear empties the input, or leaves a secondary view.
	Clear key.Binding

	// Keywords toggles the keyword table.
	Keywords key.Binding

	// Up navigates up in a list.
	Up key.Binding

	// Down navigates down in a list.
	Down key.Binding
}

// DefaultKeyMap returns the default keybindings.
// Letter keys are left free for typing paths.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("f1", "help"),
		),
		Review: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "review"),
		),
		Clear: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear"),
		),
		Keywords: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "keywords"),
		),
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "down"),
		),
	}
}

// ShortHelp returns the bindings shown in the review view.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Review, k.Keywords, k.Help, k.Quit}
}

// KeywordsHelp returns the bindings shown in the keyword view.
func (k *KeyMap) KeywordsHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Keywords, k.Quit}
}

// FullHelp returns the full list of keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Review, k.Clear},
		{k.Keywords, k.Up, k.Down},
		{k.Help, k.Quit},
	}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
