package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/pitchmart/internal/domain/player"
	qb "github.com/riskibarqy/pitchmart/internal/platform/querybuilder"
)

type playerTableModel struct {
	PlayerID   int64   `db:"player_id"`
	PlayerName string  `db:"player_name"`
	Country    *string `db:"country"`
}

type PlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) UpsertMany(ctx context.Context, items []player.Player) error {
	if len(items) == 0 {
		return nil
	}

	// The same player appears in many lineup files; collapse before
	// inserting so one statement never targets a row twice.
	seen := make(map[int64]struct{}, len(items))
	models := make([]playerTableModel, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item.PlayerID]; ok {
			continue
		}
		seen[item.PlayerID] = struct{}{}
		models = append(models, playerTableModel{
			PlayerID:   item.PlayerID,
			PlayerName: item.PlayerName,
			Country:    item.Country,
		})
	}

	for _, batch := range chunk(models, 500) {
		query, args, err := qb.InsertModels("dim_player", batch, `ON CONFLICT (player_id)
DO UPDATE SET
    player_name = EXCLUDED.player_name,
    country = COALESCE(EXCLUDED.country, dim_player.country)`)
		if err != nil {
			return fmt.Errorf("build upsert players query: %w", err)
		}
		if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert players: %w", err)
		}
	}
	return nil
}
