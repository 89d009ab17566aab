package components

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func typeText(t *testing.T, m InputModal, text string) InputModal {
	t.Helper()
	for _, r := range text {
		var submitted bool
		m, _, submitted = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		require.False(t, submitted)
	}
	return m
}

func prefixSuggest(options ...string) func(string, int) []string {
	return func(input string, n int) []string {
		var out []string
		for _, o := range options {
			if input != "" && strings.HasPrefix(strings.ToLower(o), strings.ToLower(input)) {
				out = append(out, o)
			}
		}
		return out[:min(n, len(out))]
	}
}

func TestInputModal_ShowPrefills(t *testing.T) {
	m := NewInputModal()
	assert.False(t, m.IsVisible())
	assert.Empty(t, m.View())

	m.Show(InputRequest{Title: "Genre", Hint: "Empty for any.", Value: "Drama"})
	assert.True(t, m.IsVisible())
	assert.Equal(t, "Drama", m.Value())
	assert.Contains(t, m.View(), "Genre")
	assert.Contains(t, m.View(), "Empty for any.")
}

func TestInputModal_SubmitAndEscape(t *testing.T) {
	m := NewInputModal()
	m.Show(InputRequest{Title: "Users"})
	m = typeText(t, m, "alice")

	m, _, submitted := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, submitted)
	assert.Equal(t, "alice", m.Value())

	m, _, submitted = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, submitted)
	assert.False(t, m.IsVisible())
}

func TestInputModal_TabCompletes(t *testing.T) {
	m := NewInputModal()
	m.Show(InputRequest{Title: "Genre", Suggest: prefixSuggest("Mecha", "Music", "Mystery", "Mahou Shoujo")})
	assert.Empty(t, m.Suggestions())

	m = typeText(t, m, "m")
	assert.Equal(t, []string{"Mecha", "Music", "Mystery"}, m.Suggestions(), "capped at three")

	m = typeText(t, m, "u")
	assert.Equal(t, []string{"Music"}, m.Suggestions())
	assert.Contains(t, m.View(), "(tab)")

	m, _, submitted := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.False(t, submitted)
	assert.Equal(t, "Music", m.Value())
}

func TestInputModal_TabWithoutSuggestions(t *testing.T) {
	m := NewInputModal()
	m.Show(InputRequest{Title: "Users", Value: "bob"})

	m, _, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, "bob", m.Value())
	assert.Nil(t, m.Suggestions())
}
