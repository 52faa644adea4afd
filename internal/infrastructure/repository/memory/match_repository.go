package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/pitchmart/internal/domain/match"
)

type MatchRepository struct {
	mu   sync.RWMutex
	rows map[int64]match.Match
}

func NewMatchRepository() *MatchRepository {
	return &MatchRepository{rows: make(map[int64]match.Match)}
}

func (r *MatchRepository) UpsertMany(_ context.Context, items []match.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range items {
		r.rows[item.MatchID] = item
	}
	return nil
}

func (r *MatchRepository) ListBySeason(_ context.Context, competitionID, seasonID int64) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]match.Match, 0)
	for _, item := range r.rows {
		if item.CompetitionID == competitionID && item.SeasonID == seasonID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MatchID < out[j].MatchID })
	return out, nil
}

func (r *MatchRepository) Get(_ context.Context, matchID int64) (*match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.rows[matchID]
	if !ok {
		return nil, nil
	}
	return &item, nil
}
