package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/anispin/internal/domain"
)

// Command factories for async operations

// SpinCmd runs one spin in the background
func SpinCmd(svc roulette, filters domain.Filters, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		media, err := svc.Spin(ctx, filters)
		return SpinResultMsg{Media: media, Err: err}
	}
}

// OpenURLCmd opens the title's page and reports the outcome as a status
func OpenURLCmd(open func(url string) error, media domain.Media) tea.Cmd {
	return func() tea.Msg {
		if err := open(media.SiteURL); err != nil {
			return StatusMsg{Message: "Could not open page: " + err.Error(), IsError: true}
		}
		return StatusMsg{Message: "Opened " + media.Title + " on AniList"}
	}
}

// TickCmd returns a command that sends a tick after a delay
func TickCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return TickMsg{}
	})
}

// ClearStatusCmd returns a command that clears status after a delay
func ClearStatusCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
