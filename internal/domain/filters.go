package domain

import (
	"fmt"
	"strings"
)

// Origin selects where candidates are drawn from when usernames are given.
type Origin string

const (
	// OriginAll draws from the whole catalog minus anything on the users' lists.
	OriginAll Origin = "all"
	// OriginPlanning draws only from the users' Planning lists.
	OriginPlanning Origin = "planning"
)

// ParseOrigin accepts "all"/"planning" in any case; empty means OriginAll.
func ParseOrigin(s string) (Origin, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all", "general":
		return OriginAll, nil
	case "planning":
		return OriginPlanning, nil
	}
	return "", fmt.Errorf("unknown origin %q (want all or planning)", s)
}

// Score bounds on the 0-10 scale used by filters.
const (
	MinScoreBound = 0
	MaxScoreBound = 10
)

// Filters is one roulette request.
// MinScore <= MaxScore is the caller's responsibility; see Validate.
type Filters struct {
	Genre     string   // Canonical genre, "" for any
	MinScore  int      // 0-10
	MaxScore  int      // 0-10
	HideAdult bool     // Exclude adult titles
	Country   string   // ISO 3166-1 alpha-2, "" for any
	Usernames []string // AniList usernames, may be empty
	Origin    Origin
}

// Validate checks score ranges and ordering.
func (f Filters) Validate() error {
	if f.MinScore < MinScoreBound || f.MinScore > MaxScoreBound {
		return fmt.Errorf("min score %d out of range %d-%d", f.MinScore, MinScoreBound, MaxScoreBound)
	}
	if f.MaxScore < MinScoreBound || f.MaxScore > MaxScoreBound {
		return fmt.Errorf("max score %d out of range %d-%d", f.MaxScore, MinScoreBound, MaxScoreBound)
	}
	if f.MinScore > f.MaxScore {
		return ErrInvalidScoreRange
	}
	return nil
}

// Key returns the part of the filters that identifies a cached result list.
// Usernames and origin are not part of it.
func (f Filters) Key() FilterKey {
	return FilterKey{
		Genre:     f.Genre,
		MinScore:  f.MinScore,
		MaxScore:  f.MaxScore,
		HideAdult: f.HideAdult,
		Country:   f.Country,
	}
}

// HasUsernames reports whether any username was supplied.
func (f Filters) HasUsernames() bool {
	return len(f.Usernames) > 0
}

// FilterKey is the comparable filter tuple stored alongside cached results.
type FilterKey struct {
	Genre     string `json:"genre"`
	MinScore  int    `json:"minScore"`
	MaxScore  int    `json:"maxScore"`
	HideAdult bool   `json:"hideAdult"`
	Country   string `json:"country"`
}

// MediaQuery is a fully built candidate search request.
// At most one of IDIn / IDNotIn is set.
type MediaQuery struct {
	Page         int
	PerPage      int
	Genre        string
	ScoreGreater int
	ScoreLesser  int
	IsAdult      *bool // nil leaves the API default in place
	Country      string
	IDIn         []int
	IDNotIn      []int
	Sort         []string
	FormatNotIn  []string
}

// Genres is the AniList genre collection.
var Genres = []string{
	"Action", "Adventure", "Comedy", "Drama", "Ecchi", "Fantasy", "Hentai",
	"Horror", "Mahou Shoujo", "Mecha", "Music", "Mystery", "Psychological",
	"Romance", "Sci-Fi", "Slice of Life", "Sports", "Supernatural", "Thriller",
}

// Countries maps the origin codes the catalog uses to display names.
var Countries = map[string]string{
	"JP": "Japan",
	"CN": "China",
	"KR": "South Korea",
	"TW": "Taiwan",
}

// SparseGenreCountries have small genre-tagged catalogs; an empty genre+country
// search for them is retried once without the genre.
var SparseGenreCountries = map[string]bool{
	"CN": true,
	"KR": true,
	"TW": true,
}
