package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/anispin/internal/adapter"
	"github.com/mmcdole/anispin/internal/domain"
	"github.com/mmcdole/anispin/internal/search"
	"github.com/mmcdole/anispin/internal/tui"
	"github.com/mmcdole/anispin/internal/tui/styles"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

const (
	spinTimeout  = time.Minute
	defaultWidth = 80
	maxWidth     = 72
)

// clearSpinnerLine clears the spinner line from the terminal
const clearSpinnerLine = "\r                                    \r"

// rootFlags are shared by every command
type rootFlags struct {
	configFile string
	noCache    bool
}

// spinFlags hold the filter overrides of a spin
type spinFlags struct {
	genre     string
	minScore  int
	maxScore  int
	hideAdult bool
	country   string
	users     string
	origin    string
	plain     bool
	open      bool
}

func newRootCmd() *cobra.Command {
	var rf rootFlags
	var sf spinFlags
	v := viper.New()

	openApp := func() (*app, error) {
		if rf.configFile != "" {
			v.SetConfigFile(rf.configFile)
		}
		return newApp(v, rf.noCache)
	}

	root := &cobra.Command{
		Use:   "anispin",
		Short: "Spin the roulette for your next anime.",
		Long: `anispin picks a random anime from AniList matching your filters.

Give one or more AniList usernames to skip everything already on their lists,
or draw only from their Planning lists with --origin planning.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSpin(cmd, openApp, &sf)
		},
	}
	root.PersistentFlags().StringVar(&rf.configFile, "config", "", "config file (default is ~/.config/anispin/config.yaml)")
	root.PersistentFlags().BoolVar(&rf.noCache, "no-cache", false, "keep caches in memory for this run only")
	addSpinFlags(root, &sf)

	spin := &cobra.Command{
		Use:   "spin",
		Short: "Pick a random anime (default command)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSpin(cmd, openApp, &sf)
		},
	}
	addSpinFlags(spin, &sf)

	root.AddCommand(spin, newHistoryCmd(openApp), newCacheCmd(openApp), newGenresCmd(openApp))
	return root
}

func addSpinFlags(cmd *cobra.Command, sf *spinFlags) {
	cmd.Flags().StringVarP(&sf.genre, "genre", "g", "", "genre, fuzzy matched (e.g. slice, scifi)")
	cmd.Flags().IntVar(&sf.minScore, "min", 0, "minimum score (0-10)")
	cmd.Flags().IntVar(&sf.maxScore, "max", 10, "maximum score (0-10)")
	cmd.Flags().BoolVar(&sf.hideAdult, "hide-adult", true, "exclude adult titles")
	cmd.Flags().StringVarP(&sf.country, "country", "c", "", "country of origin: JP, CN, KR, TW or a name")
	cmd.Flags().StringVarP(&sf.users, "users", "u", "", "comma-separated AniList usernames")
	cmd.Flags().StringVarP(&sf.origin, "origin", "o", "", "with users: all (skip listed titles) or planning")
	cmd.Flags().BoolVar(&sf.plain, "plain", false, "print one result instead of starting the TUI")
	cmd.Flags().BoolVar(&sf.open, "open", false, "with --plain: open the pick on AniList")
}

// buildFilters merges flags over the configured defaults
func buildFilters(cmd *cobra.Command, sf *spinFlags, d adapter.DefaultsConfig) (domain.Filters, error) {
	flags := cmd.Flags()
	pick := func(name, flagValue, configured string) string {
		if flags.Changed(name) {
			return flagValue
		}
		return configured
	}

	f := domain.Filters{
		MinScore:  d.MinScore,
		MaxScore:  d.MaxScore,
		HideAdult: d.HideAdult,
	}
	if flags.Changed("min") {
		f.MinScore = sf.minScore
	}
	if flags.Changed("max") {
		f.MaxScore = sf.maxScore
	}
	if flags.Changed("hide-adult") {
		f.HideAdult = sf.hideAdult
	}

	if genre := strings.TrimSpace(pick("genre", sf.genre, d.Genre)); genre != "" {
		matched, ok := search.MatchGenre(genre, nil)
		if !ok {
			closest := search.NewIndex(domain.Genres).Closest(genre, 3)
			return f, fmt.Errorf("unknown genre %q (did you mean %s?)", genre, strings.Join(closest, ", "))
		}
		f.Genre = matched
	}

	if country := strings.TrimSpace(pick("country", sf.country, d.Country)); country != "" {
		code, ok := search.MatchCountry(country)
		if !ok {
			return f, fmt.Errorf("unknown country %q (want JP, CN, KR or TW)", country)
		}
		f.Country = code
	}

	f.Usernames = domain.ParseUsernames(pick("users", sf.users, d.Users))

	origin, err := domain.ParseOrigin(pick("origin", sf.origin, d.Origin))
	if err != nil {
		return f, err
	}
	f.Origin = origin

	if err := f.Validate(); err != nil {
		return f, err
	}
	return f, nil
}

func defaultsFromFilters(f domain.Filters) adapter.DefaultsConfig {
	return adapter.DefaultsConfig{
		Genre:     f.Genre,
		MinScore:  f.MinScore,
		MaxScore:  f.MaxScore,
		HideAdult: f.HideAdult,
		Country:   f.Country,
		Users:     strings.Join(f.Usernames, ", "),
		Origin:    string(f.Origin),
	}
}

func runSpin(cmd *cobra.Command, openApp func() (*app, error), sf *spinFlags) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	filters, err := buildFilters(cmd, sf, a.cfg.Defaults)
	if err != nil {
		return err
	}
	a.logger.Info("spin requested", "genre", filters.Genre, "min", filters.MinScore, "max", filters.MaxScore,
		"hideAdult", filters.HideAdult, "country", filters.Country, "users", len(filters.Usernames), "origin", filters.Origin)

	if sf.plain || !isTerminal(os.Stdout) {
		return runPlain(cmd.OutOrStdout(), a, filters, sf.open)
	}

	model := tui.NewModel(a.roulette, a.history, filters, tui.Options{
		SpinTimeout: spinTimeout,
		SaveFilters: a.saveFilters,
		OpenURL:     a.launcher.Open,
	})
	p := tea.NewProgram(model, tea.WithAltScreen())

	a.logger.Info("starting TUI")
	if _, err := p.Run(); err != nil {
		a.logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

// runPlain spins once and prints the card
func runPlain(w io.Writer, a *app, filters domain.Filters, open bool) error {
	ctx, cancel := context.WithTimeout(context.Background(), spinTimeout)
	defer cancel()

	media, err := spinWithProgress(ctx, a, filters)
	if err != nil {
		return err
	}
	if err := a.history.Record(*media); err != nil {
		a.logger.Warn("failed to record history", "error", err)
	}

	fmt.Fprintln(w, tui.RenderCard(*media, outputWidth()))
	if open {
		if err := a.launcher.Open(media.SiteURL); err != nil {
			fmt.Fprintln(os.Stderr, styles.ErrorStyle.Render(err.Error()))
		}
	}
	return nil
}

// spinWithProgress runs a spin, animating a spinner on stderr when it is a terminal
func spinWithProgress(ctx context.Context, a *app, filters domain.Filters) (*domain.Media, error) {
	if !isTerminal(os.Stderr) {
		return a.roulette.Spin(ctx, filters)
	}

	type result struct {
		media *domain.Media
		err   error
	}
	resultCh := make(chan result, 1)

	go func() {
		media, err := a.roulette.Spin(ctx, filters)
		resultCh <- result{media, err}
	}()

	frame := 0
	fmt.Fprintf(os.Stderr, "\r%s Spinning the roulette...", tui.RenderWheel(frame))

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case res := <-resultCh:
			fmt.Fprint(os.Stderr, clearSpinnerLine)
			return res.media, res.err
		case <-ticker.C:
			frame++
			fmt.Fprintf(os.Stderr, "\r%s Spinning the roulette...", tui.RenderWheel(frame))
		}
	}
}

func newHistoryCmd(openApp func() (*app, error)) *cobra.Command {
	var clearAll bool
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recently picked titles",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			if clearAll {
				a.history.Clear()
				fmt.Fprintln(cmd.OutOrStdout(), styles.SuccessStyle.Render("History cleared."))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), tui.RenderHistory(a.history.List(), outputWidth()))
			return nil
		},
	}
	cmd.Flags().BoolVar(&clearAll, "clear", false, "remove every history entry")
	return cmd
}

func newCacheCmd(openApp func() (*app, error)) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage cached lists and results",
	}
	var all bool
	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Drop cached user lists and search results",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			if all {
				a.session.Reset()
			} else {
				a.session.ClearCache()
			}
			used, quota := a.kv.Usage()
			fmt.Fprintf(cmd.OutOrStdout(), "Cache cleared (%d of %d bytes in use).\n", used, quota)
			return nil
		},
	}
	clearCmd.Flags().BoolVar(&all, "all", false, "also remove the spin history")
	cmd.AddCommand(clearCmd)
	return cmd
}

func newGenresCmd(openApp func() (*app, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "genres",
		Short: "List the genres AniList knows",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			ctx, cancel := context.WithTimeout(context.Background(), a.cfg.AniList.Timeout)
			defer cancel()

			genres, err := a.client.Genres(ctx)
			if err != nil {
				a.logger.Warn("genre lookup failed, using built-in list", "error", err)
				genres = domain.Genres
			}
			for _, g := range genres {
				fmt.Fprintln(cmd.OutOrStdout(), g)
			}
			return nil
		},
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// outputWidth returns the card width for stdout
func outputWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		width = defaultWidth
	}
	return min(width, maxWidth)
}
