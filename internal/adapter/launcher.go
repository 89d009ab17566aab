package adapter

import (
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"
	"strings"
)

// ErrNoURL is returned when a title has no page to open
var ErrNoURL = errors.New("title has no AniList page")

// startFunc starts a command without waiting for it
type startFunc func(name string, args ...string) error

// Launcher opens AniList pages in a browser
type Launcher struct {
	command string   // Custom browser command (empty = system default)
	args    []string // Extra arguments placed before the URL
	goos    string
	start   startFunc
	logger  *slog.Logger
}

// NewLauncher creates a Launcher. An empty command uses the system handler.
func NewLauncher(command string, args []string, logger *slog.Logger) *Launcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Launcher{
		command: strings.TrimSpace(command),
		args:    args,
		goos:    runtime.GOOS,
		start:   startCommand,
		logger:  logger,
	}
}

func startCommand(name string, args ...string) error {
	if _, err := exec.LookPath(name); err != nil {
		return err
	}
	return exec.Command(name, args...).Start()
}

// Open opens url in the configured browser or the system default
func (l *Launcher) Open(url string) error {
	if url == "" {
		return ErrNoURL
	}

	name, args := l.commandFor(url)
	l.logger.Info("opening page", "command", name, "url", url)

	if err := l.start(name, args...); err != nil {
		l.logger.Warn("failed to open page", "command", name, "error", err)
		return fmt.Errorf("failed to open %s: %w", url, err)
	}
	return nil
}

// commandFor returns the command line that opens url
func (l *Launcher) commandFor(url string) (string, []string) {
	if l.command != "" {
		args := append(append([]string{}, l.args...), url)
		return l.command, args
	}

	switch l.goos {
	case "darwin":
		return "open", []string{url}
	case "windows":
		return "cmd", []string{"/c", "start", "", url}
	default:
		// Linux and other Unix-like systems
		return "xdg-open", []string{url}
	}
}
