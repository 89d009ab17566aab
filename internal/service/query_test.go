package service

import (
	"testing"

	"github.com/mmcdole/anispin/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sequence(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

func TestQueryBuilder_GenreAndScores(t *testing.T) {
	b := NewQueryBuilder(seededRand())
	f := domain.Filters{Genre: "Action", MinScore: 7, MaxScore: 10}

	for range 50 {
		page := b.StartPage(f, false)
		require.GreaterOrEqual(t, page, 1)
		require.LessOrEqual(t, page, 5)

		q := b.Build(f, nil, nil, 0, page)
		assert.Nil(t, q.IDIn)
		assert.Nil(t, q.IDNotIn)
		assert.Equal(t, 70, q.ScoreGreater)
		assert.Equal(t, 100, q.ScoreLesser)
		assert.Equal(t, "Action", q.Genre)
		assert.Equal(t, page, q.Page)
		assert.Equal(t, 50, q.PerPage)
		assert.Equal(t, []string{"ID_DESC"}, q.Sort)
		assert.Equal(t, []string{"MUSIC"}, q.FormatNotIn)
	}
}

func TestQueryBuilder_StartPage(t *testing.T) {
	b := NewQueryBuilder(seededRand())

	assert.Equal(t, 1, b.StartPage(domain.Filters{MinScore: 3}, true), "include sets start at page 1")
	assert.Equal(t, 1, b.StartPage(domain.Filters{MinScore: 9}, false), "high scores start at page 1")
	assert.Equal(t, 1, b.StartPage(domain.Filters{MinScore: 10}, false))

	pages := map[int]bool{}
	for range 200 {
		pages[b.StartPage(domain.Filters{MinScore: 8}, false)] = true
	}
	assert.Equal(t, map[int]bool{1: true, 2: true, 3: true, 4: true, 5: true}, pages)
}

func TestQueryBuilder_PageAdvancesWithAttempt(t *testing.T) {
	b := NewQueryBuilder(seededRand())
	for attempt := range 6 {
		q := b.Build(domain.Filters{MaxScore: 10}, nil, nil, attempt, 3)
		assert.Equal(t, 3+attempt, q.Page)
	}
}

func TestQueryBuilder_IncludeBound(t *testing.T) {
	b := NewQueryBuilder(seededRand())
	include := sequence(200)
	original := sequence(200)

	q := b.Build(domain.Filters{MaxScore: 10}, include, nil, 0, 1)

	require.Len(t, q.IDIn, 50)
	assert.Nil(t, q.IDNotIn)
	seen := map[int]bool{}
	for _, id := range q.IDIn {
		assert.False(t, seen[id], "ID %d sampled twice", id)
		seen[id] = true
		assert.Contains(t, original, id)
	}
	assert.Equal(t, original, include, "input is not reordered")
	assert.NotEqual(t, original[:50], q.IDIn, "sample is shuffled")
}

func TestQueryBuilder_SmallIncludeKeepsAll(t *testing.T) {
	b := NewQueryBuilder(seededRand())
	q := b.Build(domain.Filters{MaxScore: 10}, []int{4, 8, 15}, nil, 0, 1)
	assert.ElementsMatch(t, []int{4, 8, 15}, q.IDIn)
}

func TestQueryBuilder_ExcludeBound(t *testing.T) {
	b := NewQueryBuilder(seededRand())
	exclude := sequence(300)

	q := b.Build(domain.Filters{MaxScore: 10}, nil, exclude, 0, 1)

	assert.Nil(t, q.IDIn)
	assert.Equal(t, sequence(100), q.IDNotIn, "first 100 in order")
}

func TestQueryBuilder_NeverBothIDSets(t *testing.T) {
	b := NewQueryBuilder(seededRand())
	q := b.Build(domain.Filters{MaxScore: 10}, []int{1}, []int{2}, 0, 1)
	assert.NotNil(t, q.IDIn)
	assert.Nil(t, q.IDNotIn)
}

func TestQueryBuilder_Adult(t *testing.T) {
	b := NewQueryBuilder(seededRand())

	q := b.Build(domain.Filters{MaxScore: 10, HideAdult: true}, nil, nil, 0, 1)
	require.NotNil(t, q.IsAdult)
	assert.False(t, *q.IsAdult)

	q = b.Build(domain.Filters{MaxScore: 10}, nil, nil, 0, 1)
	assert.Nil(t, q.IsAdult, "no adult filter is sent when hiding is off")
}
