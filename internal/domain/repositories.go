package domain

import (
	"context"
)

// ListRepository provides access to users' anime lists
type ListRepository interface {
	// FetchUserLists returns every list entry of one user.
	// Unknown or private users yield ErrUserNotFound.
	FetchUserLists(ctx context.Context, username string) ([]ListEntry, error)
}

// MediaRepository provides the candidate search
type MediaRepository interface {
	// SearchMedia returns one page of titles matching the query
	SearchMedia(ctx context.Context, q MediaQuery) ([]Media, error)
}

// GenreRepository lists the genres the catalog knows about
type GenreRepository interface {
	Genres(ctx context.Context) ([]string, error)
}
