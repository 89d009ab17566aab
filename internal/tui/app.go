package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/anispin/internal/domain"
	"github.com/mmcdole/anispin/internal/search"
	"github.com/mmcdole/anispin/internal/tui/components"
	"github.com/mmcdole/anispin/internal/tui/styles"
)

// roulette picks titles (consumer-defined interface)
type roulette interface {
	Spin(ctx context.Context, f domain.Filters) (*domain.Media, error)
	InvalidateResults()
}

// history records picked titles (consumer-defined interface)
type history interface {
	Record(m domain.Media) error
	List() []domain.HistoryEntry
	Clear()
}

const (
	tickInterval  = 100 * time.Millisecond
	statusTimeout = 3 * time.Second
	maxCardWidth  = 72
)

// inputTarget identifies which filter the input modal edits
type inputTarget int

const (
	inputNone inputTarget = iota
	inputGenre
	inputCountry
	inputUsers
)

// Options configures the model
type Options struct {
	SpinTimeout time.Duration
	// SaveFilters persists the current filters as defaults; nil disables saving
	SaveFilters func(domain.Filters) error
	// OpenURL opens a title page in the browser; nil disables opening
	OpenURL func(url string) error
}

// Model is the main Bubble Tea model for the application
type Model struct {
	// Services
	Roulette roulette
	History  history
	opts     Options

	// UI Components
	InputModal  components.InputModal
	inputTarget inputTarget
	keys        KeyMap

	// Data
	Filters domain.Filters
	Result  *domain.Media
	Recent  []domain.HistoryEntry
	LastErr error

	// Dimensions
	Width  int
	Height int

	// UI state
	StatusMsg    string
	StatusIsErr  bool
	Spinning     bool
	SpinnerFrame int
	ShowHistory  bool
	ShowHelp     bool
}

// NewModel creates a new application model
func NewModel(r roulette, h history, filters domain.Filters, opts Options) Model {
	if opts.SpinTimeout <= 0 {
		opts.SpinTimeout = time.Minute
	}
	return Model{
		Roulette:   r,
		History:    h,
		opts:       opts,
		InputModal: components.NewInputModal(),
		keys:       DefaultKeyMap(),
		Filters:    filters,
		Recent:     h.List(),
	}
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case TickMsg:
		if !m.Spinning {
			return m, nil
		}
		m.SpinnerFrame++
		return m, TickCmd(tickInterval)

	case SpinResultMsg:
		m.Spinning = false
		if msg.Err != nil {
			m.LastErr = msg.Err
			return m, nil
		}
		m.LastErr = nil
		m.Result = msg.Media
		if err := m.History.Record(*msg.Media); err != nil {
			return m.setStatus("History not saved: "+err.Error(), true)
		}
		m.Recent = m.History.List()
		return m, nil

	case StatusMsg:
		return m.setStatus(msg.Message, msg.IsError)

	case ClearStatusMsg:
		m.StatusMsg = ""
		m.StatusIsErr = false
		return m, nil
	}

	return m, nil
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.InputModal.IsVisible() {
		var cmd tea.Cmd
		var submitted bool
		m.InputModal, cmd, submitted = m.InputModal.Update(msg)
		if submitted {
			m.InputModal.Hide()
			return m.applyInput(m.InputModal.Value())
		}
		return m, cmd
	}

	if m.ShowHelp {
		m.ShowHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.ShowHelp = true
		return m, nil

	case key.Matches(msg, m.keys.Escape):
		m.ShowHistory = false
		return m, nil

	case key.Matches(msg, m.keys.Spin):
		return m.startSpin()

	case key.Matches(msg, m.keys.Genre):
		m.inputTarget = inputGenre
		m.InputModal.Show(components.InputRequest{
			Title:       "Genre",
			Placeholder: "Any genre",
			Hint:        "Fuzzy match, e.g. slice or scifi. Empty for any.",
			Value:       m.Filters.Genre,
			Suggest:     search.SuggestGenres,
		})
		return m, nil

	case key.Matches(msg, m.keys.Country):
		m.inputTarget = inputCountry
		m.InputModal.Show(components.InputRequest{
			Title:       "Country of origin",
			Placeholder: "Any country",
			Hint:        "JP, CN, KR, TW or a country name. Empty for any.",
			Value:       m.Filters.Country,
			Suggest:     search.SuggestCountries,
		})
		return m, nil

	case key.Matches(msg, m.keys.Users):
		m.inputTarget = inputUsers
		m.InputModal.Show(components.InputRequest{
			Title:       "AniList users",
			Placeholder: "alice, bob",
			Hint:        "Comma-separated. Empty to search the whole catalog.",
			Value:       strings.Join(m.Filters.Usernames, ", "),
		})
		return m, nil

	case key.Matches(msg, m.keys.Origin):
		if m.Filters.Origin == domain.OriginPlanning {
			m.Filters.Origin = domain.OriginAll
		} else {
			m.Filters.Origin = domain.OriginPlanning
		}
		return m, nil

	case key.Matches(msg, m.keys.Adult):
		m.Filters.HideAdult = !m.Filters.HideAdult
		m.Roulette.InvalidateResults()
		return m, nil

	case key.Matches(msg, m.keys.MinDown):
		m.Filters.MinScore = max(m.Filters.MinScore-1, domain.MinScoreBound)
		return m, nil

	case key.Matches(msg, m.keys.MinUp):
		m.Filters.MinScore = min(m.Filters.MinScore+1, m.Filters.MaxScore)
		return m, nil

	case key.Matches(msg, m.keys.MaxDown):
		m.Filters.MaxScore = max(m.Filters.MaxScore-1, m.Filters.MinScore)
		return m, nil

	case key.Matches(msg, m.keys.MaxUp):
		m.Filters.MaxScore = min(m.Filters.MaxScore+1, domain.MaxScoreBound)
		return m, nil

	case key.Matches(msg, m.keys.Save):
		if m.opts.SaveFilters == nil {
			return m, nil
		}
		if err := m.opts.SaveFilters(m.Filters); err != nil {
			return m.setStatus("Could not save filters: "+err.Error(), true)
		}
		return m.setStatus("Filters saved as defaults", false)

	case key.Matches(msg, m.keys.Open):
		if m.opts.OpenURL == nil || m.Result == nil {
			return m, nil
		}
		return m, OpenURLCmd(m.opts.OpenURL, *m.Result)

	case key.Matches(msg, m.keys.History):
		m.ShowHistory = !m.ShowHistory
		return m, nil

	case key.Matches(msg, m.keys.ClearHistory):
		m.History.Clear()
		m.Recent = nil
		return m.setStatus("History cleared", false)
	}

	return m, nil
}

func (m Model) startSpin() (tea.Model, tea.Cmd) {
	if m.Spinning {
		return m, nil
	}
	if err := m.Filters.Validate(); err != nil {
		m.LastErr = err
		return m, nil
	}
	m.Spinning = true
	m.LastErr = nil
	m.ShowHistory = false
	return m, tea.Batch(
		SpinCmd(m.Roulette, m.Filters, m.opts.SpinTimeout),
		TickCmd(tickInterval),
	)
}

// applyInput stores the submitted modal value in the targeted filter
func (m Model) applyInput(value string) (tea.Model, tea.Cmd) {
	value = strings.TrimSpace(value)
	target := m.inputTarget
	m.inputTarget = inputNone

	switch target {
	case inputGenre:
		if value == "" {
			m.Filters.Genre = ""
			return m, nil
		}
		genre, ok := search.MatchGenre(value, nil)
		if !ok {
			return m.setStatus(fmt.Sprintf("Unknown genre %q", value), true)
		}
		m.Filters.Genre = genre

	case inputCountry:
		if value == "" {
			m.Filters.Country = ""
			return m, nil
		}
		code, ok := search.MatchCountry(value)
		if !ok {
			return m.setStatus(fmt.Sprintf("Unknown country %q", value), true)
		}
		m.Filters.Country = code

	case inputUsers:
		m.Filters.Usernames = domain.ParseUsernames(value)
		if !m.Filters.HasUsernames() {
			m.Roulette.InvalidateResults()
		}
	}
	return m, nil
}

func (m Model) setStatus(text string, isErr bool) (Model, tea.Cmd) {
	m.StatusMsg = text
	m.StatusIsErr = isErr
	return m, ClearStatusCmd(statusTimeout)
}

// View renders the application
func (m Model) View() string {
	width := m.Width
	if width <= 0 {
		width = 80
	}
	cardWidth := min(width, maxCardWidth)

	if m.ShowHelp {
		return m.renderHelp()
	}

	var sections []string
	sections = append(sections,
		styles.HighlightStyle.Render("anispin")+" "+RenderFilters(m.Filters),
		"",
	)

	switch {
	case m.InputModal.IsVisible():
		sections = append(sections, m.InputModal.View())
	case m.Spinning:
		sections = append(sections, RenderWheel(m.SpinnerFrame)+" "+styles.DimStyle.Render("Spinning the roulette..."))
	case m.LastErr != nil:
		sections = append(sections, RenderError(m.LastErr, cardWidth))
	case m.ShowHistory:
		sections = append(sections, RenderHistory(m.Recent, cardWidth))
	case m.Result != nil:
		sections = append(sections, RenderCard(*m.Result, cardWidth))
	default:
		sections = append(sections, styles.DimStyle.Render("Press space to spin."))
	}

	sections = append(sections, "", m.renderFooter())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderFooter renders the status line and key hints
func (m Model) renderFooter() string {
	var left string
	if m.Spinning {
		left = RenderSpinner(m.SpinnerFrame) + " " + styles.DimStyle.Render("Loading...")
	} else if m.StatusMsg != "" {
		if m.StatusIsErr {
			left = styles.ErrorStyle.Render(m.StatusMsg)
		} else {
			left = styles.DimStyle.Render(m.StatusMsg)
		}
	}

	var pairs []string
	for _, b := range m.keys.ShortHelp() {
		pairs = append(pairs, b.Help().Key, b.Help().Desc)
	}
	right := styles.RenderKeyHint(pairs...)

	if left == "" {
		return right
	}
	return left + "  " + right
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	help := `
ROULETTE                        FILTERS
  space/enter  Spin               g      Genre
  w            Open on AniList    n      Country
  h            Recent spins       u      AniList users
  c            Clear history      o      Origin (all/planning)
  esc          Close history      a      Hide/show adult
  q            Quit               [ ]    Min score -/+
  ?            This help          { }    Max score -/+
                                  s      Save as defaults

Press any key to return...
`

	if m.Width == 0 || m.Height == 0 {
		return styles.ModalStyle.Render(help)
	}
	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		styles.ModalStyle.Render(help))
}
