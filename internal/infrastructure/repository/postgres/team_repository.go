package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/pitchmart/internal/domain/team"
	qb "github.com/riskibarqy/pitchmart/internal/platform/querybuilder"
)

type teamTableModel struct {
	TeamID   int64  `db:"team_id"`
	TeamName string `db:"team_name"`
}

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) UpsertMany(ctx context.Context, items []team.Team) error {
	if len(items) == 0 {
		return nil
	}

	models := make([]teamTableModel, 0, len(items))
	for _, item := range items {
		models = append(models, teamTableModel{TeamID: item.TeamID, TeamName: item.TeamName})
	}

	for _, batch := range chunk(models, 500) {
		query, args, err := qb.InsertModels("dim_team", batch, `ON CONFLICT (team_id)
DO UPDATE SET team_name = EXCLUDED.team_name`)
		if err != nil {
			return fmt.Errorf("build upsert teams query: %w", err)
		}
		if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert teams: %w", err)
		}
	}
	return nil
}
