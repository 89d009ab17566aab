package anilist

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/anispin/internal/domain"
)

// MapMedia converts catalog DTOs to domain media
func MapMedia(items []Media) []domain.Media {
	out := make([]domain.Media, 0, len(items))
	for _, m := range items {
		media := domain.Media{
			ID:      m.ID,
			Title:   m.Title.Romaji,
			SiteURL: m.SiteURL,
			CoverImage: domain.CoverImage{
				ExtraLarge: m.CoverImage.ExtraLarge,
				Large:      m.CoverImage.Large,
				Medium:     m.CoverImage.Medium,
			},
			Genres:  m.Genres,
			IsAdult: m.IsAdult,
		}
		if m.Description != nil {
			media.Description = plainText(*m.Description)
		}
		if m.AverageScore != nil {
			media.AverageScore = *m.AverageScore
		}
		if m.CountryOfOrigin != nil {
			media.CountryOfOrigin = *m.CountryOfOrigin
		}
		out = append(out, media)
	}
	return out
}

// MapListEntries flattens a list collection. Entry status wins over the
// list status so custom lists still report the real status.
func MapListEntries(collection MediaListCollection) []domain.ListEntry {
	var entries []domain.ListEntry
	for _, list := range collection.Lists {
		for _, e := range list.Entries {
			status := e.Status
			if status == "" {
				status = list.Status
			}
			entry := domain.ListEntry{
				MediaID: e.MediaID,
				Status:  domain.ListStatus(status),
			}
			if e.Media != nil {
				entry.CountryOfOrigin = e.Media.CountryOfOrigin
			}
			entries = append(entries, entry)
		}
	}
	return entries
}

// plainText strips the HTML AniList embeds in descriptions
func plainText(html string) string {
	if strings.TrimSpace(html) == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return html
	}
	doc.Find("br").ReplaceWithHtml("\n")
	return strings.TrimSpace(doc.Text())
}
