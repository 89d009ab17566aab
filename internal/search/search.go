// Package search resolves free-form filter input to canonical catalog values.
package search

import (
	"slices"
	"sort"
	"strings"
	"unicode"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/mmcdole/anispin/internal/domain"
	sahilm "github.com/sahilm/fuzzy"
)

// Index implements sahilm/fuzzy.Source over a fixed list of names
type Index struct {
	names []string
	lower []string // Pre-computed lowercase names
}

// NewIndex builds an index over names
func NewIndex(names []string) *Index {
	lower := make([]string, len(names))
	for i, n := range names {
		lower[i] = strings.ToLower(n)
	}
	return &Index{names: names, lower: lower}
}

// String returns the lowercase name at index i (implements fuzzy.Source)
func (idx *Index) String(i int) string { return idx.lower[i] }

// Len returns the number of names (implements fuzzy.Source)
func (idx *Index) Len() int { return len(idx.names) }

// Match returns the name best matching input. Exact and punctuation-insensitive
// matches win; otherwise the highest scoring subsequence match is used.
func (idx *Index) Match(input string) (string, bool) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", false
	}

	folded := fold(input)
	for i, l := range idx.lower {
		if l == strings.ToLower(input) || fold(l) == folded {
			return idx.names[i], true
		}
	}

	matches := sahilm.FindFrom(strings.ToLower(input), idx)
	if len(matches) == 0 {
		return "", false
	}
	// Matches are sorted by score, best first
	return idx.names[matches[0].Index], true
}

// Suggest returns up to n names matching input as a subsequence, best first
func (idx *Index) Suggest(input string, n int) []string {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" || n <= 0 {
		return nil
	}
	matches := sahilm.FindFrom(input, idx)
	out := make([]string, 0, min(n, len(matches)))
	for _, m := range matches[:min(n, len(matches))] {
		out = append(out, idx.names[m.Index])
	}
	return out
}

// Closest returns up to n names ordered by edit distance to input
func (idx *Index) Closest(input string, n int) []string {
	input = strings.ToLower(strings.TrimSpace(input))
	names := slices.Clone(idx.names)
	sort.SliceStable(names, func(i, j int) bool {
		return fuzzy.LevenshteinDistance(input, strings.ToLower(names[i])) <
			fuzzy.LevenshteinDistance(input, strings.ToLower(names[j]))
	})
	return names[:min(n, len(names))]
}

// fold keeps only letters and digits, lowercased
func fold(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// MatchGenre resolves input to one of genres, e.g. "slice" to "Slice of Life".
// A nil genres uses domain.Genres.
func MatchGenre(input string, genres []string) (string, bool) {
	if genres == nil {
		genres = domain.Genres
	}
	return NewIndex(genres).Match(input)
}

// SuggestGenres returns up to n genres for partial input
func SuggestGenres(input string, n int) []string {
	return NewIndex(domain.Genres).Suggest(input, n)
}

// MatchCountry resolves a country code or name to a code in domain.Countries,
// e.g. "kr" or "korea" to "KR".
func MatchCountry(input string) (string, bool) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", false
	}
	if code := strings.ToUpper(input); domain.Countries[code] != "" {
		return code, true
	}

	codes := rankCountries(input)
	if len(codes) == 0 {
		return "", false
	}
	return codes[0], true
}

// SuggestCountries returns up to n country codes for a partial code or name
func SuggestCountries(input string, n int) []string {
	input = strings.TrimSpace(input)
	if input == "" || n <= 0 {
		return nil
	}
	var codes []string
	for _, code := range sortedCodes() {
		if strings.HasPrefix(code, strings.ToUpper(input)) {
			codes = append(codes, code)
		}
	}
	for _, code := range rankCountries(input) {
		if !slices.Contains(codes, code) {
			codes = append(codes, code)
		}
	}
	return codes[:min(n, len(codes))]
}

// rankCountries returns the codes whose names fuzzy-match input, best first
func rankCountries(input string) []string {
	byName := make(map[string]string, len(domain.Countries))
	names := make([]string, 0, len(domain.Countries))
	for code, name := range domain.Countries {
		byName[name] = code
		names = append(names, name)
	}
	slices.Sort(names)

	ranks := fuzzy.RankFindFold(input, names)
	sort.Stable(ranks)

	codes := make([]string, 0, len(ranks))
	for _, r := range ranks {
		codes = append(codes, byName[r.Target])
	}
	return codes
}

func sortedCodes() []string {
	codes := make([]string, 0, len(domain.Countries))
	for code := range domain.Countries {
		codes = append(codes, code)
	}
	slices.Sort(codes)
	return codes
}
