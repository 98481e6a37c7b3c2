package status

import (
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBar(t *testing.T) {
	bar := NewBar(nil, nil)

	require.NotNil(t, bar)
	assert.Equal(t, StateReady, bar.State())
	assert.Equal(t, "", bar.Message())
	assert.Equal(t, 80, bar.Width())
}

func TestBar_StartReviewing(t *testing.T) {
	bar := NewBar(nil, nil)

	cmd := bar.StartReviewing("ad.txt")

	assert.NotNil(t, cmd)
	assert.Equal(t, StateReviewing, bar.State())
	assert.Contains(t, bar.View(), "Reviewing ad.txt")
}

func TestBar_SpinnerOnlyTicksWhileReviewing(t *testing.T) {
	bar := NewBar(nil, nil)

	_, cmd := bar.Update(spinner.TickMsg{})
	assert.Nil(t, cmd)

	bar.StartReviewing("ad.txt")
	_, cmd = bar.Update(bar.spinner.Tick())
	assert.NotNil(t, cmd)
}

func TestBar_View(t *testing.T) {
	tests := []struct {
		name     string
		state    State
		message  string
		contains []string
	}{
		{"ready", StateReady, "", []string{"Ready", "enter: review"}},
		{"done", StateDone, "saved out.docx", []string{"saved out.docx"}},
		{"error with message", StateError, "DecodeError: bad", []string{"DecodeError: bad"}},
		{"error without message", StateError, "", []string{"Error"}},
		{"keywords", StateKeywords, "12 keywords", []string{"12 keywords", "tab: keywords"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := NewBar(nil, nil)
			bar.SetWidth(120)
			bar.SetState(tt.state)
			bar.SetMessage(tt.message)

			view := bar.View()
			for _, s := range tt.contains {
				assert.Contains(t, view, s)
			}
		})
	}
}

func TestBar_Clear(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetState(StateError)
	bar.SetMessage("boom")

	bar.Clear()

	assert.Equal(t, StateReady, bar.State())
	assert.Equal(t, "", bar.Message())
}
