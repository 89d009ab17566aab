package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchGenre(t *testing.T) {
	tests := []struct {
		input string
		want  string
		ok    bool
	}{
		{"Action", "Action", true},
		{"action", "Action", true},
		{"  ROMANCE ", "Romance", true},
		{"scifi", "Sci-Fi", true},
		{"sci fi", "Sci-Fi", true},
		{"slice", "Slice of Life", true},
		{"mahou", "Mahou Shoujo", true},
		{"", "", false},
		{"zzz", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := MatchGenre(tt.input, nil)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMatchGenre_CustomList(t *testing.T) {
	got, ok := MatchGenre("isekai", []string{"Action", "Isekai"})
	assert.True(t, ok)
	assert.Equal(t, "Isekai", got)
}

func TestMatchCountry(t *testing.T) {
	tests := []struct {
		input string
		want  string
		ok    bool
	}{
		{"JP", "JP", true},
		{"kr", "KR", true},
		{"korea", "KR", true},
		{"Japan", "JP", true},
		{"taiwan", "TW", true},
		{"china", "CN", true},
		{"", "", false},
		{"xx", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := MatchCountry(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIndex_Closest(t *testing.T) {
	idx := NewIndex([]string{"Drama", "Comedy", "Horror"})
	assert.Equal(t, []string{"Drama", "Horror"}, idx.Closest("dram", 2))
	assert.Len(t, idx.Closest("x", 10), 3)
}

func TestSuggest(t *testing.T) {
	assert.Equal(t, []string{"Drama"}, SuggestGenres("dra", 3))
	assert.Contains(t, SuggestGenres("s", 10), "Sports")
	assert.Len(t, SuggestGenres("o", 2), 2)
	assert.Nil(t, SuggestGenres("  ", 3))
	assert.Empty(t, SuggestGenres("zzz", 3))
}

func TestSuggestCountries(t *testing.T) {
	assert.Equal(t, []string{"KR"}, SuggestCountries("kor", 3))
	assert.Equal(t, "JP", SuggestCountries("j", 3)[0], "code prefix first")
	assert.Equal(t, "TW", SuggestCountries("taiw", 1)[0])
	assert.Nil(t, SuggestCountries("", 3))
}
