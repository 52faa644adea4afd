package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/pitchmart/internal/domain/gold"
)

type GoldRepository struct {
	mu         sync.RWMutex
	aggregates map[int64]gold.MatchAggregates
	xtGrid     []gold.XTGridRow
	xtPlayers  []gold.XTPlayerRow
	ppdaTeam   []gold.PPDATeamRow
}

func NewGoldRepository() *GoldRepository {
	return &GoldRepository{aggregates: make(map[int64]gold.MatchAggregates)}
}

func (r *GoldRepository) ReplaceMatchAggregates(_ context.Context, aggregates gold.MatchAggregates) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.aggregates[aggregates.MatchID] = aggregates
	return nil
}

func (r *GoldRepository) ReplaceXT(_ context.Context, grid []gold.XTGridRow, players []gold.XTPlayerRow) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.xtGrid = append([]gold.XTGridRow(nil), grid...)
	r.xtPlayers = append([]gold.XTPlayerRow(nil), players...)
	return nil
}

func (r *GoldRepository) ReplacePPDATeam(_ context.Context, rows []gold.PPDATeamRow) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.ppdaTeam = append([]gold.PPDATeamRow(nil), rows...)
	return nil
}

func (r *GoldRepository) MatchAggregates(matchID int64) (gold.MatchAggregates, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	aggregates, ok := r.aggregates[matchID]
	return aggregates, ok
}

func (r *GoldRepository) XT() ([]gold.XTGridRow, []gold.XTPlayerRow) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]gold.XTGridRow(nil), r.xtGrid...), append([]gold.XTPlayerRow(nil), r.xtPlayers...)
}

func (r *GoldRepository) PPDATeam() []gold.PPDATeamRow {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]gold.PPDATeamRow(nil), r.ppdaTeam...)
}
