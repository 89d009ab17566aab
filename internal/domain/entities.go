package domain

import (
	"fmt"
	"slices"
	"strings"
)

// Media is a single anime title as returned by the catalog. It is never mutated
// after mapping; identity is ID.
type Media struct {
	ID              int        `json:"id"`
	Title           string     `json:"title"`       // Romaji title
	Description     string     `json:"description"` // Plain text, HTML stripped
	CoverImage      CoverImage `json:"coverImage"`
	AverageScore    int        `json:"averageScore"` // 0-100, 0 when unscored
	SiteURL         string     `json:"siteUrl"`
	CountryOfOrigin string     `json:"countryOfOrigin,omitempty"`
	Genres          []string   `json:"genres,omitempty"`
	IsAdult         bool       `json:"isAdult,omitempty"`
}

// CoverImage holds the cover at the resolutions the catalog provides.
type CoverImage struct {
	ExtraLarge string `json:"extraLarge,omitempty"`
	Large      string `json:"large,omitempty"`
	Medium     string `json:"medium,omitempty"`
}

// Best returns the largest available cover URL.
func (c CoverImage) Best() string {
	switch {
	case c.ExtraLarge != "":
		return c.ExtraLarge
	case c.Large != "":
		return c.Large
	default:
		return c.Medium
	}
}

// IsScored reports whether the catalog has an average score for this title.
func (m Media) IsScored() bool {
	return m.AverageScore > 0
}

// FormattedScore renders the score on the 0-10 scale, e.g. "8.4".
func (m Media) FormattedScore() string {
	if !m.IsScored() {
		return "-"
	}
	return fmt.Sprintf("%.1f", float64(m.AverageScore)/10)
}

// ListStatus is the status of an entry in a user's anime list.
type ListStatus string

const (
	ListStatusCurrent   ListStatus = "CURRENT"
	ListStatusPlanning  ListStatus = "PLANNING"
	ListStatusCompleted ListStatus = "COMPLETED"
	ListStatusDropped   ListStatus = "DROPPED"
	ListStatusPaused    ListStatus = "PAUSED"
	ListStatusRepeating ListStatus = "REPEATING"
)

// ListEntry is one media reference in a user's list.
type ListEntry struct {
	MediaID         int        `json:"mediaId"`
	Status          ListStatus `json:"status"`
	CountryOfOrigin string     `json:"countryOfOrigin,omitempty"`
}

// UserLists is the set of titles one or more users have on their lists.
// AllSeen is always a superset of Planning.
type UserLists struct {
	Planning []int `json:"planning"`
	AllSeen  []int `json:"allSeen"`
}

// MergeEntries unions list entries into a UserLists, deduplicating by media ID.
func MergeEntries(entries []ListEntry) UserLists {
	seen := make(map[int]bool, len(entries))
	planning := make(map[int]bool)
	var out UserLists
	for _, e := range entries {
		if !seen[e.MediaID] {
			seen[e.MediaID] = true
			out.AllSeen = append(out.AllSeen, e.MediaID)
		}
		if e.Status == ListStatusPlanning && !planning[e.MediaID] {
			planning[e.MediaID] = true
			out.Planning = append(out.Planning, e.MediaID)
		}
	}
	return out
}

// SeenSet returns AllSeen as a lookup set.
func (u UserLists) SeenSet() map[int]bool {
	set := make(map[int]bool, len(u.AllSeen))
	for _, id := range u.AllSeen {
		set[id] = true
	}
	return set
}

// ParseUsernames splits a comma-separated username list, trimming blanks and
// dropping empty entries. Order is preserved.
func ParseUsernames(text string) []string {
	var names []string
	for _, part := range strings.Split(text, ",") {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// NormalizeUsernames returns the lower-cased, sorted, deduplicated form of names,
// used to key caches by the exact combination requested.
func NormalizeUsernames(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.ToLower(strings.TrimSpace(n))
		if n != "" {
			out = append(out, n)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// HistoryEntry is a previously shown title.
type HistoryEntry struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	Cover    string `json:"cover"`
	URL      string `json:"url"`
	Score    string `json:"score"`
	PickedAt int64  `json:"pickedAt"` // Unix timestamp
}
