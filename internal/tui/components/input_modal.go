package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/anispin/internal/tui/styles"
)

const maxSuggestions = 3

// InputRequest describes what the modal asks for
type InputRequest struct {
	Title       string
	Placeholder string
	Hint        string
	Value       string
	// Suggest returns completions for the current value; nil disables them
	Suggest func(input string, n int) []string
}

// InputModal is a text input modal with optional completions
type InputModal struct {
	visible     bool
	title       string
	hint        string
	input       textinput.Model
	suggest     func(string, int) []string
	suggestions []string
}

// NewInputModal creates a new input modal
func NewInputModal() InputModal {
	ti := textinput.New()
	ti.CharLimit = 200
	ti.Width = 40
	ti.Prompt = ""
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
	ti.PlaceholderStyle = styles.DimStyle

	return InputModal{
		input: ti,
	}
}

// Show displays the modal for req
func (m *InputModal) Show(req InputRequest) {
	m.visible = true
	m.title = req.Title
	m.hint = req.Hint
	m.suggest = req.Suggest
	m.input.Placeholder = req.Placeholder
	m.input.SetValue(req.Value)
	m.input.CursorEnd()
	m.input.Focus()
	m.refreshSuggestions()
}

// Hide dismisses the modal
func (m *InputModal) Hide() {
	m.visible = false
	m.input.Blur()
}

// IsVisible returns whether the modal is shown
func (m InputModal) IsVisible() bool {
	return m.visible
}

// Value returns the current input value
func (m InputModal) Value() string {
	return m.input.Value()
}

// Suggestions returns the completions for the current value
func (m InputModal) Suggestions() []string {
	return m.suggestions
}

func (m *InputModal) refreshSuggestions() {
	m.suggestions = nil
	if m.suggest != nil {
		m.suggestions = m.suggest(m.input.Value(), maxSuggestions)
	}
}

// Update handles input events, returns (modal, cmd, submitted)
func (m InputModal) Update(msg tea.Msg) (InputModal, tea.Cmd, bool) {
	if !m.visible {
		return m, nil, false
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			return m, nil, true
		case "esc":
			m.Hide()
			return m, nil, false
		case "tab":
			if len(m.suggestions) > 0 {
				m.input.SetValue(m.suggestions[0])
				m.input.CursorEnd()
				m.refreshSuggestions()
			}
			return m, nil, false
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.refreshSuggestions()
	return m, cmd, false
}

// View renders the input modal
func (m InputModal) View() string {
	if !m.visible {
		return ""
	}

	const modalWidth = 44

	titleStyle := lipgloss.NewStyle().
		Foreground(styles.White).
		Bold(true).
		Width(modalWidth).
		Background(styles.SlateDark)

	inputStyle := lipgloss.NewStyle().
		Width(modalWidth).
		Background(styles.SlateDark)

	hintStyle := styles.DimStyle.
		Width(modalWidth).
		Background(styles.SlateDark)

	spacer := lipgloss.NewStyle().
		Width(modalWidth).
		Background(styles.SlateDark).
		Render("")

	rows := []string{
		titleStyle.Render(m.title),
		spacer,
		inputStyle.Render(m.input.View()),
	}
	if len(m.suggestions) > 0 {
		rows = append(rows, inputStyle.Render(renderSuggestions(m.suggestions)))
	}
	if m.hint != "" {
		rows = append(rows, spacer, hintStyle.Render(m.hint))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.AniBlue).
		Background(styles.SlateDark).
		Padding(1, 2).
		Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// renderSuggestions shows the tab completion first, highlighted
func renderSuggestions(suggestions []string) string {
	parts := make([]string, len(suggestions))
	for i, s := range suggestions {
		if i == 0 {
			parts[i] = styles.HighlightStyle.Render(s) + styles.DimStyle.Render(" (tab)")
			continue
		}
		parts[i] = styles.DimStyle.Render(s)
	}
	return strings.Join(parts, styles.DimStyle.Render("  "))
}
