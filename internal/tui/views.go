package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/anispin/internal/domain"
	"github.com/mmcdole/anispin/internal/tui/styles"
)

const maxDescriptionLines = 6

// RenderCard renders a picked title as a bordered card of the given width
func RenderCard(m domain.Media, width int) string {
	inner := max(width-4, 20) // Border and padding

	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render(wordWrap(m.Title, inner)))
	b.WriteString("\n")

	var badges []string
	if m.IsScored() {
		badges = append(badges, styles.ScoreStyle(m.AverageScore).Render("★ "+m.FormattedScore()))
	} else {
		badges = append(badges, styles.DimStyle.Render("★ unscored"))
	}
	if name, ok := domain.Countries[m.CountryOfOrigin]; ok {
		badges = append(badges, styles.DimBadgeStyle.Render(name))
	}
	if m.IsAdult {
		badges = append(badges, styles.AdultBadgeStyle.Render("18+"))
	}
	b.WriteString(strings.Join(badges, " "))
	b.WriteString("\n")

	if len(m.Genres) > 0 {
		b.WriteString(styles.AccentStyle.Render(wordWrap(strings.Join(m.Genres, " · "), inner)))
		b.WriteString("\n")
	}

	if m.Description != "" {
		b.WriteString("\n")
		b.WriteString(styles.SubtitleStyle.Render(clampLines(wordWrap(m.Description, inner), maxDescriptionLines)))
		b.WriteString("\n")
	}

	if m.SiteURL != "" {
		b.WriteString("\n")
		b.WriteString(styles.DimStyle.Render(m.SiteURL))
	}

	return styles.ActiveBorder.
		Padding(0, 1).
		Width(inner + 2).
		Render(strings.TrimRight(b.String(), "\n"))
}

// RenderHistory renders the recent spins list
func RenderHistory(entries []domain.HistoryEntry, width int) string {
	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("Recent Spins"))
	b.WriteString("\n")

	if len(entries) == 0 {
		b.WriteString(styles.DimStyle.Italic(true).Render("No anime spun yet."))
		return b.String()
	}

	titleWidth := max(width-8, 10)
	for _, e := range entries {
		b.WriteString(fmt.Sprintf("%s  %s\n",
			styles.AccentStyle.Render(fmt.Sprintf("%4s", e.Score)),
			styles.Truncate(e.Title, titleWidth)))
		if e.URL != "" {
			b.WriteString("      " + styles.DimStyle.Render(styles.Truncate(e.URL, titleWidth)) + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// RenderFilters renders the active filters as a single line
func RenderFilters(f domain.Filters) string {
	genre := f.Genre
	if genre == "" {
		genre = "Any genre"
	}
	country := "Any country"
	if name, ok := domain.Countries[f.Country]; ok {
		country = name
	}
	adult := "adult shown"
	if f.HideAdult {
		adult = "adult hidden"
	}

	parts := []string{
		genre,
		fmt.Sprintf("score %d-%d", f.MinScore, f.MaxScore),
		country,
		adult,
	}
	if f.HasUsernames() {
		parts = append(parts, fmt.Sprintf("users %s (%s)", strings.Join(f.Usernames, ", "), f.Origin))
	}
	return styles.SubtitleStyle.Render(strings.Join(parts, " · "))
}

// ErrorMessage turns a spin failure into the text shown to the user
func ErrorMessage(err error) string {
	var userErr *domain.UserError
	switch {
	case errors.As(err, &userErr):
		return fmt.Sprintf("Could not load AniList user %q. Check the name or whether the profile is private.", userErr.Username)
	case errors.Is(err, domain.ErrEmptyPlanning):
		return "The Planning list is empty. Add titles on AniList or switch origin to all."
	case errors.Is(err, domain.ErrNoMatch):
		return "No anime found. Try adjusting the filters."
	case errors.Is(err, domain.ErrInvalidScoreRange):
		return "Minimum score cannot be above the maximum."
	case errors.Is(err, domain.ErrTechnical):
		return "Could not reach AniList. Check your connection and try again."
	default:
		return err.Error()
	}
}

// wheelFrames cycle while a spin is in flight
var wheelFrames = []string{"◐", "◓", "◑", "◒"}

// RenderWheel renders the roulette wheel animation frame
func RenderWheel(frame int) string {
	return styles.WheelStyle.Render(wheelFrames[frame%len(wheelFrames)])
}

// RenderSpinner renders a loading spinner
func RenderSpinner(frame int) string {
	frames := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	return styles.SpinnerStyle.Render(frames[frame%len(frames)])
}

// RenderError renders an error message
func RenderError(err error, width int) string {
	msg := wordWrap(ErrorMessage(err), width-4)
	return styles.ErrorStyle.Render(msg)
}

// wordWrap wraps text to the specified width. Existing line breaks are kept.
func wordWrap(text string, width int) string {
	if width <= 0 {
		return text
	}

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = wrapLine(line, width)
	}
	return strings.Join(lines, "\n")
}

func wrapLine(text string, width int) string {
	var result strings.Builder
	words := strings.Fields(text)
	lineLen := 0

	for i, word := range words {
		wordLen := lipgloss.Width(word)

		if lineLen+wordLen+1 > width && lineLen > 0 {
			result.WriteString("\n")
			lineLen = 0
		}

		if i > 0 && lineLen > 0 {
			result.WriteString(" ")
			lineLen++
		}

		result.WriteString(word)
		lineLen += wordLen
	}

	return result.String()
}

// clampLines keeps the first n lines, marking the cut with an ellipsis
func clampLines(text string, n int) string {
	lines := strings.Split(text, "\n")
	if len(lines) <= n {
		return text
	}
	lines = lines[:n]
	lines[n-1] = strings.TrimRight(lines[n-1], " ") + "..."
	return strings.Join(lines, "\n")
}
