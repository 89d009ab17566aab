package service

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/mmcdole/anispin/internal/cache"
	"github.com/mmcdole/anispin/internal/domain"
)

const (
	maxAttempts      = 6 // Attempts 0 through 5
	thinBatchEntries = 5 // Batches smaller than this skip the score floor
)

// ResultSet is the cached outcome of a username-less spin. It is only valid
// for the exact filters it was produced with.
type ResultSet struct {
	Filters domain.FilterKey `json:"filters"`
	Results []domain.Media   `json:"results"`
}

// RouletteService picks a random title matching a set of filters
type RouletteService struct {
	lists   *ListResolver
	media   domain.MediaRepository
	builder *QueryBuilder
	results *cache.Namespace[ResultSet]
	rng     *rand.Rand
	logger  *slog.Logger
}

// NewRouletteService creates a new roulette service. A nil rng uses a
// randomly seeded source.
func NewRouletteService(
	lists *ListResolver,
	media domain.MediaRepository,
	builder *QueryBuilder,
	results *cache.Namespace[ResultSet],
	rng *rand.Rand,
	logger *slog.Logger,
) *RouletteService {
	if logger == nil {
		logger = slog.Default()
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &RouletteService{
		lists:   lists,
		media:   media,
		builder: builder,
		results: results,
		rng:     rng,
		logger:  logger,
	}
}

// Spin returns one title matching f.
//
// Errors: *domain.UserError when a username cannot be resolved,
// domain.ErrEmptyPlanning when the planning origin has nothing to draw from,
// domain.ErrTechnical wrapping candidate query failures, and domain.ErrNoMatch
// when every attempt came back empty. f is assumed to be validated.
func (s *RouletteService) Spin(ctx context.Context, f domain.Filters) (*domain.Media, error) {
	if !f.HasUsernames() {
		if entry, ok := s.results.Get(""); ok && entry.Payload.Filters == f.Key() && len(entry.Payload.Results) > 0 {
			s.logger.Debug("serving spin from result cache", "candidates", len(entry.Payload.Results))
			return s.pick(entry.Payload.Results), nil
		}
	}

	var include, exclude []int
	var seen map[int]bool
	if f.HasUsernames() {
		lists, err := s.lists.Resolve(ctx, f.Usernames)
		if err != nil {
			return nil, err
		}
		if f.Origin == domain.OriginPlanning {
			if len(lists.Planning) == 0 {
				return nil, domain.ErrEmptyPlanning
			}
			include = lists.Planning
		} else {
			exclude = lists.AllSeen
			if exclude == nil {
				exclude = []int{}
			}
			seen = lists.SeenSet()
		}
	}

	basePage := s.builder.StartPage(f, include != nil)

	for attempt := 0; attempt < maxAttempts; attempt++ {
		q := s.builder.Build(f, include, exclude, attempt, basePage)
		batch, err := s.search(ctx, q)
		if err != nil {
			return nil, err
		}

		// Only the first response of a spin can trigger the genre-less retry
		if attempt == 0 && len(batch) == 0 && f.Genre != "" && domain.SparseGenreCountries[f.Country] {
			q.Genre = ""
			s.logger.Info("no results for genre in sparse country, retrying without genre",
				"genre", f.Genre, "country", f.Country, "page", q.Page)
			if batch, err = s.search(ctx, q); err != nil {
				return nil, err
			}
		}

		candidates := postFilter(batch, f.MinScore, seen)
		if len(candidates) == 0 && include != nil && len(batch) > 0 {
			s.logger.Debug("planning batch filtered out, using raw batch", "raw", len(batch))
			candidates = batch
		}
		if len(candidates) == 0 {
			s.logger.Debug("attempt yielded no candidates", "attempt", attempt, "page", q.Page, "raw", len(batch))
			continue
		}

		if !f.HasUsernames() {
			s.results.Set("", ResultSet{Filters: f.Key(), Results: candidates})
		}
		s.logger.Info("spin complete", "attempt", attempt, "page", q.Page, "candidates", len(candidates))
		return s.pick(candidates), nil
	}

	s.logger.Info("no match after all attempts", "attempts", maxAttempts)
	return nil, domain.ErrNoMatch
}

// InvalidateResults drops the cached result list so the next username-less
// spin queries the catalog again.
func (s *RouletteService) InvalidateResults() {
	s.results.Clear()
}

func (s *RouletteService) search(ctx context.Context, q domain.MediaQuery) ([]domain.Media, error) {
	batch, err := s.media.SearchMedia(ctx, q)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrTechnical, err)
	}
	return batch, nil
}

func (s *RouletteService) pick(candidates []domain.Media) *domain.Media {
	m := candidates[s.rng.IntN(len(candidates))]
	return &m
}

// postFilter drops titles below the score floor and titles in seen. The
// score floor is skipped for batches too thin to survive it.
func postFilter(batch []domain.Media, minScore int, seen map[int]bool) []domain.Media {
	floor := minScore * scoreScale
	applyFloor := len(batch) >= thinBatchEntries

	var out []domain.Media
	for _, m := range batch {
		if applyFloor && m.AverageScore < floor {
			continue
		}
		if seen[m.ID] {
			continue
		}
		out = append(out, m)
	}
	return out
}
