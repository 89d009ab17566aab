package service

import (
	"math/rand/v2"

	"github.com/mmcdole/anispin/internal/domain"
)

const (
	perPage        = 50
	maxIncludeIDs  = 50
	maxExcludeIDs  = 100
	randomPageSpan = 5 // Start pages are drawn from 1..randomPageSpan
	highScoreFloor = 9 // MinScore at which the candidate pool is too small to skip pages
	scoreScale     = 10
)

// QueryBuilder turns filters and list constraints into catalog queries
type QueryBuilder struct {
	rng *rand.Rand
}

// NewQueryBuilder creates a builder drawing randomness from rng.
// A nil rng uses a randomly seeded source.
func NewQueryBuilder(rng *rand.Rand) *QueryBuilder {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &QueryBuilder{rng: rng}
}

// StartPage picks the first page of a spin. Include-restricted and high-score
// searches start at page 1 because their result sets rarely span more.
func (b *QueryBuilder) StartPage(f domain.Filters, hasInclude bool) int {
	if hasInclude || f.MinScore >= highScoreFloor {
		return 1
	}
	return 1 + b.rng.IntN(randomPageSpan)
}

// Build returns the query for one attempt. At most one of include and exclude
// should be non-nil; include takes precedence.
func (b *QueryBuilder) Build(f domain.Filters, include, exclude []int, attempt, basePage int) domain.MediaQuery {
	q := domain.MediaQuery{
		Page:         basePage + attempt,
		PerPage:      perPage,
		Genre:        f.Genre,
		ScoreGreater: f.MinScore * scoreScale,
		ScoreLesser:  f.MaxScore * scoreScale,
		Country:      f.Country,
		Sort:         []string{"ID_DESC"},
		FormatNotIn:  []string{"MUSIC"},
	}
	if f.HideAdult {
		notAdult := false
		q.IsAdult = &notAdult
	}

	switch {
	case include != nil:
		q.IDIn = b.sample(include, maxIncludeIDs)
	case exclude != nil:
		q.IDNotIn = exclude[:min(len(exclude), maxExcludeIDs)]
	}
	return q
}

// sample returns up to n IDs drawn uniformly without replacement. ids is not
// modified.
func (b *QueryBuilder) sample(ids []int, n int) []int {
	out := make([]int, len(ids))
	copy(out, ids)
	n = min(n, len(out))
	for i := 0; i < n; i++ {
		j := i + b.rng.IntN(len(out)-i)
		out[i], out[j] = out[j], out[i]
	}
	return out[:n]
}
