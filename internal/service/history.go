package service

import (
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/mmcdole/anispin/internal/domain"
)

// MaxHistoryEntries bounds the recent-spins list
const MaxHistoryEntries = 5

// HistoryService keeps the most recently shown titles
type HistoryService struct {
	store  domain.KeyValueStore
	now    func() time.Time
	logger *slog.Logger
}

// NewHistoryService creates a history backed by store
func NewHistoryService(store domain.KeyValueStore, logger *slog.Logger) *HistoryService {
	if logger == nil {
		logger = slog.Default()
	}
	return &HistoryService{
		store:  store,
		now:    time.Now,
		logger: logger,
	}
}

// List returns the history, most recent first. Unreadable history is empty.
func (s *HistoryService) List() []domain.HistoryEntry {
	data, ok := s.store.Get(KeyHistory)
	if !ok {
		return nil
	}
	var entries []domain.HistoryEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		s.logger.Warn("discarding unreadable history", "error", err)
		return nil
	}
	return entries
}

// Record puts m at the front of the history, removing any earlier entry for
// the same title and dropping the oldest beyond MaxHistoryEntries.
func (s *HistoryService) Record(m domain.Media) error {
	entries := []domain.HistoryEntry{{
		ID:       m.ID,
		Title:    m.Title,
		Cover:    m.CoverImage.Best(),
		URL:      m.SiteURL,
		Score:    m.FormattedScore(),
		PickedAt: s.now().Unix(),
	}}
	for _, e := range s.List() {
		if e.ID != m.ID && len(entries) < MaxHistoryEntries {
			entries = append(entries, e)
		}
	}

	data, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	if err := s.store.Set(KeyHistory, data); err != nil {
		if errors.Is(err, domain.ErrQuotaExceeded) {
			s.logger.Warn("history not saved, cache quota exceeded")
		}
		return err
	}
	return nil
}

// Clear removes every history entry
func (s *HistoryService) Clear() {
	s.store.Delete(KeyHistory)
}
