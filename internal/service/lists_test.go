package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mmcdole/anispin/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListResolver_Union(t *testing.T) {
	env := newTestEnv(t)
	env.lists.entries["alice"] = []domain.ListEntry{
		{MediaID: 1, Status: domain.ListStatusPlanning},
		{MediaID: 2, Status: domain.ListStatusCompleted},
	}
	env.lists.entries["bob"] = []domain.ListEntry{
		{MediaID: 2, Status: domain.ListStatusPlanning},
		{MediaID: 3, Status: domain.ListStatusCurrent},
		{MediaID: 1, Status: domain.ListStatusPlanning},
	}

	lists, err := env.resolver.Resolve(context.Background(), []string{"alice", "bob"})
	require.NoError(t, err)

	assert.ElementsMatch(t, []int{1, 2, 3}, lists.AllSeen)
	assert.ElementsMatch(t, []int{1, 2}, lists.Planning)
	assert.Equal(t, []string{"alice", "bob"}, env.lists.calls, "users are fetched in order")
}

func TestListResolver_CacheIsPerCombination(t *testing.T) {
	env := newTestEnv(t)
	env.lists.entries["alice"] = []domain.ListEntry{{MediaID: 1, Status: domain.ListStatusPlanning}}
	env.lists.entries["bob"] = []domain.ListEntry{{MediaID: 2, Status: domain.ListStatusDropped}}
	ctx := context.Background()

	first, err := env.resolver.Resolve(ctx, []string{"Alice", "bob"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Alice", "bob"}, env.lists.calls, "names are sent as typed")
	assert.ElementsMatch(t, []int{1, 2}, first.AllSeen)

	second, err := env.resolver.Resolve(ctx, []string{" BOB", "alice "})
	require.NoError(t, err)
	assert.Len(t, env.lists.calls, 2, "same combination in any order or case is a cache hit")
	assert.Equal(t, first, second)

	_, err = env.resolver.Resolve(ctx, []string{"alice"})
	require.NoError(t, err)
	assert.Len(t, env.lists.calls, 3, "a subset is a different combination")
}

func TestListResolver_TTL(t *testing.T) {
	env := newTestEnv(t)
	env.lists.entries["alice"] = []domain.ListEntry{{MediaID: 1, Status: domain.ListStatusPlanning}}
	ctx := context.Background()

	_, err := env.resolver.Resolve(ctx, []string{"alice"})
	require.NoError(t, err)

	env.clock.Advance(10*time.Minute - time.Millisecond)
	_, err = env.resolver.Resolve(ctx, []string{"alice"})
	require.NoError(t, err)
	assert.Len(t, env.lists.calls, 1)

	env.clock.Advance(time.Millisecond)
	_, err = env.resolver.Resolve(ctx, []string{"alice"})
	require.NoError(t, err)
	assert.Len(t, env.lists.calls, 2, "entry expires at the TTL")
}

func TestListResolver_FailureAborts(t *testing.T) {
	env := newTestEnv(t)
	env.lists.entries["alice"] = []domain.ListEntry{{MediaID: 1, Status: domain.ListStatusPlanning}}
	env.lists.entries["carol"] = []domain.ListEntry{{MediaID: 3, Status: domain.ListStatusPlanning}}
	ctx := context.Background()

	_, err := env.resolver.Resolve(ctx, []string{"alice", "ghost", "carol"})
	require.Error(t, err)

	var userErr *domain.UserError
	require.True(t, errors.As(err, &userErr))
	assert.Equal(t, "ghost", userErr.Username)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	assert.Equal(t, []string{"alice", "ghost"}, env.lists.calls, "remaining users are not queried")

	// Nothing was cached for the failed combination
	_, err = env.resolver.Resolve(ctx, []string{"alice", "ghost", "carol"})
	require.Error(t, err)
	assert.Len(t, env.lists.calls, 4)
}

func TestListResolver_EmptyLists(t *testing.T) {
	env := newTestEnv(t)
	env.lists.entries["newbie"] = nil

	lists, err := env.resolver.Resolve(context.Background(), []string{"newbie"})
	require.NoError(t, err)
	assert.Empty(t, lists.AllSeen)
	assert.Empty(t, lists.Planning)
}
