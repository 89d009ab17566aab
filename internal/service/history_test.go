package service

import (
	"testing"
	"time"

	"github.com/mmcdole/anispin/internal/adapter"
	"github.com/mmcdole/anispin/internal/domain"
	"github.com/mmcdole/anispin/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHistory(t *testing.T) *HistoryService {
	t.Helper()
	kv, err := store.Open("", 0)
	require.NoError(t, err)
	t.Cleanup(func() { kv.Close() })

	h := NewHistoryService(kv, adapter.NullLogger())
	h.now = func() time.Time { return time.Unix(1767225600, 0) }
	return h
}

func TestHistory_RecordMostRecentFirst(t *testing.T) {
	h := newTestHistory(t)
	require.NoError(t, h.Record(domain.Media{
		ID:           21,
		Title:        "One Piece",
		CoverImage:   domain.CoverImage{Large: "l.jpg"},
		AverageScore: 88,
		SiteURL:      "https://anilist.co/anime/21",
	}))
	require.NoError(t, h.Record(domain.Media{ID: 1, Title: "Cowboy Bebop"}))

	entries := h.List()
	require.Len(t, entries, 2)
	assert.Equal(t, 1, entries[0].ID)
	assert.Equal(t, domain.HistoryEntry{
		ID:       21,
		Title:    "One Piece",
		Cover:    "l.jpg",
		URL:      "https://anilist.co/anime/21",
		Score:    "8.8",
		PickedAt: 1767225600,
	}, entries[1])
}

func TestHistory_DeduplicatesAndBounds(t *testing.T) {
	h := newTestHistory(t)
	for id := 1; id <= 7; id++ {
		require.NoError(t, h.Record(domain.Media{ID: id}))
	}
	require.NoError(t, h.Record(domain.Media{ID: 5}))

	assert.Equal(t, []int{5, 7, 6, 4, 3}, historyIDs(h.List()))
}

func TestHistory_Clear(t *testing.T) {
	h := newTestHistory(t)
	require.NoError(t, h.Record(domain.Media{ID: 1}))

	h.Clear()
	assert.Empty(t, h.List())
}

func TestHistory_UnreadableIsEmpty(t *testing.T) {
	kv, err := store.Open("", 0)
	require.NoError(t, err)
	defer kv.Close()
	require.NoError(t, kv.Set(KeyHistory, []byte("not json")))

	h := NewHistoryService(kv, adapter.NullLogger())
	assert.Empty(t, h.List())
	require.NoError(t, h.Record(domain.Media{ID: 3}))
	assert.Equal(t, []int{3}, historyIDs(h.List()))
}

func historyIDs(entries []domain.HistoryEntry) []int {
	out := make([]int, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}
	return out
}
