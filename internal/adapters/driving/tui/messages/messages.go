// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/adcheck/internal/core/domain"
)

// ReviewRequested asks for the file at Path to be reviewed.
type ReviewRequested struct {
	Path string
}

// ReviewCompleted carries the outcome of one review back to the model.
type ReviewCompleted struct {
	// Path is the reviewed input file.
	Path string

	// OutputPath is where the annotated document was written.
	OutputPath string

	Result *domain.ReviewResult
	Err    error
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewReview is the file input and review history view.
	ViewReview ViewType = iota
	// ViewKeywords lists the keyword table.
	ViewKeywords
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewReview:
		return "review"
	case ViewKeywords:
		return "keywords"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
