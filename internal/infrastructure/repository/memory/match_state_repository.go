package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/riskibarqy/pitchmart/internal/domain/matchstate"
)

type MatchStateRepository struct {
	mu   sync.RWMutex
	rows map[int64]matchstate.State
}

func NewMatchStateRepository() *MatchStateRepository {
	return &MatchStateRepository{rows: make(map[int64]matchstate.State)}
}

func (r *MatchStateRepository) Get(_ context.Context, matchID int64) (*matchstate.State, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	state, ok := r.rows[matchID]
	if !ok {
		return nil, nil
	}
	return &state, nil
}

func (r *MatchStateRepository) MarkMaterialized(_ context.Context, matchID, eventCount, rejectedCount int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rows[matchID] = matchstate.State{
		MatchID:       matchID,
		Status:        matchstate.StatusMaterialized,
		EventCount:    eventCount,
		RejectedCount: rejectedCount,
		UpdatedAt:     time.Now().UTC(),
	}
	return nil
}

func (r *MatchStateRepository) MarkFailed(_ context.Context, matchID int64, reason string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rows[matchID] = matchstate.State{
		MatchID:       matchID,
		Status:        matchstate.StatusFailed,
		FailureReason: &reason,
		UpdatedAt:     time.Now().UTC(),
	}
	return nil
}

func (r *MatchStateRepository) ListMaterializedIDs(_ context.Context) ([]int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]int64, 0, len(r.rows))
	for id, state := range r.rows {
		if state.Status == matchstate.StatusMaterialized {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}
