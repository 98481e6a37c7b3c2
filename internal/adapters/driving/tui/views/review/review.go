// Package review provides the main view of the TUI: a file path input,
// a progress indicator and the history of finished reviews.
package review

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/adcheck/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/adcheck/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/adcheck/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/adcheck/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/adcheck/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/adcheck/internal/core/domain"
	"github.com/custodia-labs/adcheck/internal/core/ports/driven"
	"github.com/custodia-labs/adcheck/internal/core/ports/driving"
)

// ErrNoReviewService is returned when a review is requested without a service.
var ErrNoReviewService = errors.New("review service not available")

// maxHistory bounds the entries kept on screen.
const maxHistory = 10

// Entry is one finished review shown in the history.
type Entry struct {
	Path       string
	OutputPath string
	Matches    int
	Err        error
}

// View is the review screen.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.PathInput
	statusbar *status.Bar

	review driving.ReviewService
	writer driven.OutputWriter
	ctx    context.Context

	history   []Entry
	reviewing bool
	width     int
	height    int
}

// NewView creates a new review view.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	review driving.ReviewService,
	writer driven.OutputWriter,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:    s,
		keymap:    km,
		input:     input.NewPathInput(s),
		statusbar: status.NewBar(s, km),
		review:    review,
		writer:    writer,
		ctx:       context.Background(),
		width:     80,
		height:    24,
	}
}

// WithContext sets the context for reviews started from this view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the review view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.ReviewCompleted:
		v.handleReviewCompleted(msg)
		return v, nil

	case messages.ErrorOccurred:
		v.reviewing = false
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(formatError(msg.Err))
		return v, nil
	}

	var barCmd, inputCmd tea.Cmd
	v.statusbar, barCmd = v.statusbar.Update(msg)
	v.input, inputCmd = v.input.Update(msg)
	return v, tea.Batch(barCmd, inputCmd)
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch {
	case keymap.Matches(msg.String(), v.keymap.Review):
		path := v.input.Value()
		// one review at a time
		if path == "" || v.reviewing {
			return v, nil
		}
		v.reviewing = true
		v.input.Reset()
		return v, tea.Batch(v.statusbar.StartReviewing(path), v.performReview(path))

	case keymap.Matches(msg.String(), v.keymap.Clear):
		v.input.Reset()
		if !v.reviewing {
			v.statusbar.Clear()
		}
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// performReview reads, reviews and writes one file off the UI loop.
func (v *View) performReview(path string) tea.Cmd {
	ctx, review, writer := v.ctx, v.review, v.writer
	return func() tea.Msg {
		if review == nil || writer == nil {
			return messages.ReviewCompleted{Path: path, Err: ErrNoReviewService}
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return messages.ReviewCompleted{Path: path, Err: fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)}
		}

		result, err := review.Review(ctx, domain.Upload{Name: filepath.Base(path), Content: content})
		if err != nil {
			return messages.ReviewCompleted{Path: path, Err: err}
		}

		out, err := writer.Write(ctx, result.FileName, result.Content)
		if err != nil {
			return messages.ReviewCompleted{Path: path, Err: err}
		}
		return messages.ReviewCompleted{Path: path, OutputPath: out, Result: result}
	}
}

// handleReviewCompleted records the outcome and updates the status line.
func (v *View) handleReviewCompleted(msg messages.ReviewCompleted) {
	v.reviewing = false

	entry := Entry{Path: msg.Path, OutputPath: msg.OutputPath, Err: msg.Err}
	if msg.Result != nil {
		entry.Matches = msg.Result.Stats.Matches
	}
	v.history = append([]Entry{entry}, v.history...)
	if len(v.history) > maxHistory {
		v.history = v.history[:maxHistory]
	}

	if msg.Err != nil {
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(formatError(msg.Err))
		return
	}
	v.statusbar.SetState(status.StateDone)
	v.statusbar.SetMessage(fmt.Sprintf("Saved %s (%d matches)", msg.OutputPath, entry.Matches))
}

func formatError(err error) string {
	return fmt.Sprintf("%s: %v", domain.ErrorKind(err), err)
}

// View renders the review view.
func (v *View) View() string {
	sections := make([]string, 0, maxHistory+4)

	sections = append(sections,
		v.styles.Title.Render("adcheck")+" "+v.styles.Muted.Render(v.subtitle()),
		"",
		v.input.View(),
		"",
	)

	if len(v.history) == 0 {
		sections = append(sections, v.styles.Muted.Render("No files reviewed yet"))
	}
	for _, e := range v.history {
		sections = append(sections, v.renderEntry(e))
	}

	body := strings.Join(sections, "\n")

	// Pin the status bar to the bottom
	gap := v.height - strings.Count(body, "\n") - 2
	if gap < 1 {
		gap = 1
	}
	return body + strings.Repeat("\n", gap) + v.statusbar.View()
}

func (v *View) subtitle() string {
	if v.review == nil {
		return ""
	}
	return fmt.Sprintf("%d keywords loaded", v.review.Keywords().Len())
}

func (v *View) renderEntry(e Entry) string {
	if e.Err != nil {
		return v.styles.Error.Render("✗ ") + e.Path + "  " + v.styles.Error.Render(formatError(e.Err))
	}
	return v.styles.Success.Render("✓ ") + e.Path + v.styles.Muted.Render(" -> ") + e.OutputPath +
		v.styles.Muted.Render(fmt.Sprintf("  (%d matches)", e.Matches))
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.input.SetWidth(width)
	v.statusbar.SetWidth(width)
}

// Reviewing returns whether a review is in progress.
func (v *View) Reviewing() bool {
	return v.reviewing
}

// History returns finished reviews, newest first.
func (v *View) History() []Entry {
	return v.history
}

// Status returns the status bar state.
func (v *View) Status() status.State {
	return v.statusbar.State()
}

// StatusMessage returns the status bar message.
func (v *View) StatusMessage() string {
	return v.statusbar.Message()
}

// SetInput sets the raw path input (for testing).
func (v *View) SetInput(value string) {
	v.input.SetValue(value)
}
