// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The keyword highlighter lives here too: it is pure data transformation
// over domain types and has no adapters of its own.
package services
