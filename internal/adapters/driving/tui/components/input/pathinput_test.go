package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPathInput(t *testing.T) {
	p := NewPathInput(nil)

	require.NotNil(t, p)
	assert.True(t, p.Focused())
	assert.Equal(t, "", p.Value())
	assert.Equal(t, 50, p.Width())
}

func TestPathInput_Typing(t *testing.T) {
	p := NewPathInput(nil)

	for _, r := range "ad.txt" {
		p, _ = p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}

	assert.Equal(t, "ad.txt", p.Value())
}

func TestPathInput_SetValueAndReset(t *testing.T) {
	p := NewPathInput(nil)

	p.SetValue("  '/tmp/my ad.docx'  ")
	assert.Equal(t, "/tmp/my ad.docx", p.Value())

	p.Reset()
	assert.Equal(t, "", p.Value())
}

func TestPathInput_FocusBlur(t *testing.T) {
	p := NewPathInput(nil)

	p.Blur()
	assert.False(t, p.Focused())

	p.Focus()
	assert.True(t, p.Focused())
}

func TestPathInput_SetWidth(t *testing.T) {
	p := NewPathInput(nil)

	p.SetWidth(100)
	assert.Equal(t, 100, p.Width())

	p.SetWidth(10)
	assert.Equal(t, 10, p.Width())
}

func TestPathInput_View(t *testing.T) {
	p := NewPathInput(nil)

	assert.Contains(t, p.View(), "File:")
}

func TestCleanPath(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain", "/tmp/ad.txt", "/tmp/ad.txt"},
		{"whitespace", "  ad.txt\n", "ad.txt"},
		{"single quoted", "'/tmp/my ad.txt'", "/tmp/my ad.txt"},
		{"double quoted", `"/tmp/my ad.txt"`, "/tmp/my ad.txt"},
		{"escaped spaces", `/tmp/my\ ad.txt`, "/tmp/my ad.txt"},
		{"lone quote", `'`, `'`},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanPath(tt.input))
		})
	}
}
