package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/mmcdole/anispin/internal/cache"
	"github.com/mmcdole/anispin/internal/domain"
)

// ListResolver turns a set of usernames into the union of their lists
type ListResolver struct {
	repo   domain.ListRepository
	cache  *cache.Namespace[domain.UserLists]
	logger *slog.Logger
}

// NewListResolver creates a resolver caching results in lists
func NewListResolver(
	repo domain.ListRepository,
	lists *cache.Namespace[domain.UserLists],
	logger *slog.Logger,
) *ListResolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &ListResolver{
		repo:   repo,
		cache:  lists,
		logger: logger,
	}
}

// Resolve returns the union of the Planning and seen titles of every user.
// A failure for any one user aborts the resolution with a *domain.UserError;
// users after it are not queried.
func (r *ListResolver) Resolve(ctx context.Context, usernames []string) (domain.UserLists, error) {
	key := userListsKey(usernames)
	if entry, ok := r.cache.Get(key); ok {
		r.logger.Debug("user lists cache hit", "users", key)
		return entry.Payload, nil
	}

	var entries []domain.ListEntry
	for _, name := range domain.ParseUsernames(strings.Join(usernames, ",")) {
		userEntries, err := r.repo.FetchUserLists(ctx, name)
		if err != nil {
			r.logger.Warn("failed to resolve user lists", "user", name, "error", err)
			return domain.UserLists{}, &domain.UserError{Username: name, Err: err}
		}
		entries = append(entries, userEntries...)
	}

	lists := domain.MergeEntries(entries)
	r.logger.Info("resolved user lists", "users", key, "planning", len(lists.Planning), "seen", len(lists.AllSeen))

	r.cache.Set(key, lists)
	return lists, nil
}
