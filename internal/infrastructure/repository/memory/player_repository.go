package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/pitchmart/internal/domain/player"
)

type PlayerRepository struct {
	mu   sync.RWMutex
	rows map[int64]player.Player
}

func NewPlayerRepository() *PlayerRepository {
	return &PlayerRepository{rows: make(map[int64]player.Player)}
}

func (r *PlayerRepository) UpsertMany(_ context.Context, items []player.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range items {
		existing, ok := r.rows[item.PlayerID]
		if ok && item.Country == nil {
			item.Country = existing.Country
		}
		r.rows[item.PlayerID] = item
	}
	return nil
}

func (r *PlayerRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.rows)
}
