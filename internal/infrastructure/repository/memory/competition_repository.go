package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/pitchmart/internal/domain/competition"
)

type competitionKey struct {
	competitionID int64
	seasonID      int64
}

type CompetitionRepository struct {
	mu   sync.RWMutex
	rows map[competitionKey]competition.Competition
}

func NewCompetitionRepository() *CompetitionRepository {
	return &CompetitionRepository{rows: make(map[competitionKey]competition.Competition)}
}

func (r *CompetitionRepository) UpsertMany(_ context.Context, items []competition.Competition) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range items {
		r.rows[competitionKey{item.CompetitionID, item.SeasonID}] = item
	}
	return nil
}

func (r *CompetitionRepository) List(_ context.Context) ([]competition.Competition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]competition.Competition, 0, len(r.rows))
	for _, item := range r.rows {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CompetitionID != out[j].CompetitionID {
			return out[i].CompetitionID < out[j].CompetitionID
		}
		return out[i].SeasonID < out[j].SeasonID
	})
	return out, nil
}
