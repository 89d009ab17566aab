package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the application
type KeyMap struct {
	// Roulette
	Spin key.Binding
	Open key.Binding

	// Filters
	Genre   key.Binding
	Country key.Binding
	Users   key.Binding
	Origin  key.Binding
	Adult   key.Binding
	MinDown key.Binding
	MinUp   key.Binding
	MaxDown key.Binding
	MaxUp   key.Binding
	Save    key.Binding

	// History
	History      key.Binding
	ClearHistory key.Binding

	// Actions
	Quit   key.Binding
	Help   key.Binding
	Escape key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Spin: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "spin"),
		),
		Open: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "open"),
		),

		Genre: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "genre"),
		),
		Country: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "country"),
		),
		Users: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "users"),
		),
		Origin: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "origin"),
		),
		Adult: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "adult"),
		),
		MinDown: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "min -"),
		),
		MinUp: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "min +"),
		),
		MaxDown: key.NewBinding(
			key.WithKeys("{"),
			key.WithHelp("{", "max -"),
		),
		MaxUp: key.NewBinding(
			key.WithKeys("}"),
			key.WithHelp("}", "max +"),
		),
		Save: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "save filters"),
		),

		History: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "history"),
		),
		ClearHistory: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "clear history"),
		),

		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
	}
}

// ShortHelp returns the bindings shown in the footer
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Spin, k.Open, k.Genre, k.Users, k.History, k.Help, k.Quit}
}
