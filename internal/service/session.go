package service

import (
	"log/slog"

	"github.com/mmcdole/anispin/internal/domain"
)

// SessionService manages locally cached session state
type SessionService struct {
	store  domain.KeyValueStore
	logger *slog.Logger
}

// NewSessionService creates a new SessionService
func NewSessionService(store domain.KeyValueStore, logger *slog.Logger) *SessionService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionService{store: store, logger: logger}
}

// ClearCache drops every cached user list and the global result list.
// History is kept.
func (s *SessionService) ClearCache() {
	s.store.DeletePrefix(PrefixUserLists)
	s.store.Delete(KeyGlobalResults)
	s.logger.Info("cleared cached lists and results")
}

// Reset clears the caches and the history
func (s *SessionService) Reset() {
	s.ClearCache()
	s.store.Delete(KeyHistory)
	s.logger.Info("cleared history")
}
