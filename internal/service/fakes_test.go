package service

import (
	"context"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/mmcdole/anispin/internal/adapter"
	"github.com/mmcdole/anispin/internal/cache"
	"github.com/mmcdole/anispin/internal/domain"
	"github.com/mmcdole/anispin/internal/store"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

// fakeListRepo serves canned list entries per lower-cased username.
// Lookups ignore case like AniList; calls records names as sent.
type fakeListRepo struct {
	entries map[string][]domain.ListEntry
	errs    map[string]error
	calls   []string
}

func (r *fakeListRepo) FetchUserLists(_ context.Context, username string) ([]domain.ListEntry, error) {
	r.calls = append(r.calls, username)
	key := strings.ToLower(username)
	if err := r.errs[key]; err != nil {
		return nil, err
	}
	entries, ok := r.entries[key]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return entries, nil
}

// fakeMediaRepo answers searches with handle and records every query
type fakeMediaRepo struct {
	handle  func(q domain.MediaQuery) ([]domain.Media, error)
	queries []domain.MediaQuery
}

func (r *fakeMediaRepo) SearchMedia(_ context.Context, q domain.MediaQuery) ([]domain.Media, error) {
	r.queries = append(r.queries, q)
	if r.handle == nil {
		return nil, nil
	}
	return r.handle(q)
}

func seededRand() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

type testEnv struct {
	lists    *fakeListRepo
	media    *fakeMediaRepo
	clock    *fakeClock
	kv       *store.Store
	resolver *ListResolver
	roulette *RouletteService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	kv, err := store.Open("", 0)
	require.NoError(t, err)
	t.Cleanup(func() { kv.Close() })

	env := &testEnv{
		lists: &fakeListRepo{entries: map[string][]domain.ListEntry{}, errs: map[string]error{}},
		media: &fakeMediaRepo{},
		clock: &fakeClock{t: time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC)},
		kv:    kv,
	}
	logger := adapter.NullLogger()
	opts := []cache.Option{cache.WithClock(env.clock.Now), cache.WithLogger(logger)}

	env.resolver = NewListResolver(
		env.lists,
		cache.NewNamespace[domain.UserLists](kv, PrefixUserLists, 10*time.Minute, opts...),
		logger,
	)
	env.roulette = NewRouletteService(
		env.resolver,
		env.media,
		NewQueryBuilder(seededRand()),
		cache.NewNamespace[ResultSet](kv, KeyGlobalResults, 5*time.Minute, opts...),
		seededRand(),
		logger,
	)
	return env
}

// titles builds media with the given IDs, all scored at score
func titles(score int, ids ...int) []domain.Media {
	out := make([]domain.Media, len(ids))
	for i, id := range ids {
		out[i] = domain.Media{ID: id, Title: "Title", AverageScore: score}
	}
	return out
}
