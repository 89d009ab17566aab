package tui

import "github.com/mmcdole/anispin/internal/domain"

// Message types for the TUI

// SpinResultMsg carries the outcome of a spin
type SpinResultMsg struct {
	Media *domain.Media
	Err   error
}

// TickMsg advances the spinner and wheel animation
type TickMsg struct{}

// ClearStatusMsg clears the status bar message
type ClearStatusMsg struct{}

// StatusMsg sets a temporary status message
type StatusMsg struct {
	Message string
	IsError bool
}
