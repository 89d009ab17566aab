package anilist

// graphQLRequest is the POST body for every query
type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

// MediaListCollection is data.MediaListCollection
type MediaListCollection struct {
	Lists []MediaList `json:"lists"`
}

// MediaList is one status (or custom) list of a user
type MediaList struct {
	Status  string           `json:"status"` // null for custom lists
	Entries []MediaListEntry `json:"entries"`
}

// MediaListEntry is a single list entry
type MediaListEntry struct {
	MediaID int    `json:"mediaId"`
	Status  string `json:"status"`
	Media   *struct {
		CountryOfOrigin string `json:"countryOfOrigin"`
	} `json:"media"`
}

// Media is one element of data.Page.media
type Media struct {
	ID    int `json:"id"`
	Title struct {
		Romaji string `json:"romaji"`
	} `json:"title"`
	Description *string `json:"description"`
	CoverImage  struct {
		ExtraLarge string `json:"extraLarge"`
		Large      string `json:"large"`
		Medium     string `json:"medium"`
	} `json:"coverImage"`
	AverageScore    *int     `json:"averageScore"`
	SiteURL         string   `json:"siteUrl"`
	CountryOfOrigin *string  `json:"countryOfOrigin"`
	Genres          []string `json:"genres"`
	IsAdult         bool     `json:"isAdult"`
}
