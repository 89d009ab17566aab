package adapter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type startCall struct {
	name string
	args []string
}

func newTestLauncher(command string, args []string, goos string, err error) (*Launcher, *[]startCall) {
	var calls []startCall
	l := NewLauncher(command, args, NullLogger())
	l.goos = goos
	l.start = func(name string, args ...string) error {
		calls = append(calls, startCall{name, args})
		return err
	}
	return l, &calls
}

func TestLauncher_SystemDefault(t *testing.T) {
	tests := []struct {
		goos string
		want startCall
	}{
		{"linux", startCall{"xdg-open", []string{"https://anilist.co/anime/1"}}},
		{"freebsd", startCall{"xdg-open", []string{"https://anilist.co/anime/1"}}},
		{"darwin", startCall{"open", []string{"https://anilist.co/anime/1"}}},
		{"windows", startCall{"cmd", []string{"/c", "start", "", "https://anilist.co/anime/1"}}},
	}
	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			l, calls := newTestLauncher("", nil, tt.goos, nil)
			require.NoError(t, l.Open("https://anilist.co/anime/1"))
			assert.Equal(t, []startCall{tt.want}, *calls)
		})
	}
}

func TestLauncher_ConfiguredCommand(t *testing.T) {
	args := []string{"--new-window"}
	l, calls := newTestLauncher(" firefox ", args, "linux", nil)

	require.NoError(t, l.Open("https://anilist.co/anime/2"))
	require.NoError(t, l.Open("https://anilist.co/anime/3"))

	assert.Equal(t, []startCall{
		{"firefox", []string{"--new-window", "https://anilist.co/anime/2"}},
		{"firefox", []string{"--new-window", "https://anilist.co/anime/3"}},
	}, *calls)
	assert.Equal(t, []string{"--new-window"}, args, "configured args are not mutated")
}

func TestLauncher_Errors(t *testing.T) {
	l, calls := newTestLauncher("", nil, "linux", nil)
	assert.ErrorIs(t, l.Open(""), ErrNoURL)
	assert.Empty(t, *calls)

	boom := errors.New("not found")
	l, _ = newTestLauncher("", nil, "linux", boom)
	assert.ErrorIs(t, l.Open("https://anilist.co/anime/1"), boom)
}
