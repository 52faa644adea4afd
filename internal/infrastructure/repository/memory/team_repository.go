package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/pitchmart/internal/domain/team"
)

type TeamRepository struct {
	mu   sync.RWMutex
	rows map[int64]team.Team
}

func NewTeamRepository() *TeamRepository {
	return &TeamRepository{rows: make(map[int64]team.Team)}
}

func (r *TeamRepository) UpsertMany(_ context.Context, items []team.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range items {
		r.rows[item.TeamID] = item
	}
	return nil
}

// Len reports how many distinct teams were upserted. Tests use it to
// check dedup behaviour.
func (r *TeamRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.rows)
}
