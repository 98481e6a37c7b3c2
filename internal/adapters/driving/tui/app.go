package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/adcheck/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/adcheck/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/adcheck/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/adcheck/internal/adapters/driving/tui/views/keywords"
	"github.com/custodia-labs/adcheck/internal/adapters/driving/tui/views/review"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles
	keymap *keymap.KeyMap

	reviewView   *review.View
	keywordsView *keywords.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	width  int
	height int

	// ready indicates if the app has received its first window size.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	km := keymap.DefaultKeyMap()
	s := styles.DefaultStyles()

	return &App{
		ports:        ports,
		ctx:          context.Background(),
		styles:       s,
		keymap:       km,
		reviewView:   review.NewView(s, km, ports.Review, ports.Writer),
		keywordsView: keywords.NewView(s, km, ports.Review.Keywords()),
		currentView:  messages.ViewReview,
	}, nil
}

// WithContext sets the context for the app and its reviews.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.reviewView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("adcheck"),
		a.reviewView.Init(),
	)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a.handleKeyMsg(msg)

	case messages.ViewChanged:
		a.currentView = msg.View
		return a, nil

	case messages.Quit:
		return a, tea.Quit

	case messages.ReviewCompleted, messages.ErrorOccurred:
		// Results go to the review view whichever view is showing
		a.reviewView, cmd = a.reviewView.Update(msg)
		return a, cmd
	}

	// Spinner ticks and cursor blinks keep running in the background
	a.reviewView, cmd = a.reviewView.Update(msg)
	return a, cmd
}

// handleKeyMsg handles global keys and forwards the rest to the active view.
func (a *App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch {
	case keymap.Matches(key, a.keymap.Quit):
		return a, tea.Quit

	case keymap.Matches(key, a.keymap.Help):
		if a.currentView == messages.ViewHelp {
			a.currentView = messages.ViewReview
		} else {
			a.currentView = messages.ViewHelp
		}
		return a, nil

	case keymap.Matches(key, a.keymap.Keywords):
		if a.currentView == messages.ViewKeywords {
			a.currentView = messages.ViewReview
		} else {
			a.currentView = messages.ViewKeywords
		}
		return a, nil
	}

	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewReview:
		a.reviewView, cmd = a.reviewView.Update(msg)
	case messages.ViewKeywords:
		if keymap.Matches(key, a.keymap.Clear) {
			a.currentView = messages.ViewReview
			return a, nil
		}
		a.keywordsView, cmd = a.keywordsView.Update(msg)
	case messages.ViewHelp:
		if keymap.Matches(key, a.keymap.Clear) {
			a.currentView = messages.ViewReview
		}
	}
	return a, cmd
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewKeywords:
		return a.keywordsView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.reviewView.View()
	}
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return a.styles.Title.Render("Help") + `

Review:
  (type)      Path of a .txt, .docx, .md or .html file
  enter       Review the file and save the annotated DOCX
  esc         Clear the input

Keywords:
  tab         Show or hide the keyword table
  ↑/↓         Scroll

General:
  f1          Toggle this help
  ctrl+c      Quit

` + a.styles.Help.Render("[esc] back")
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.reviewView.SetDimensions(width, height)
	a.keywordsView.SetDimensions(width, height)
}
