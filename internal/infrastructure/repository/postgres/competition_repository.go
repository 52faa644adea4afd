package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/pitchmart/internal/domain/competition"
	qb "github.com/riskibarqy/pitchmart/internal/platform/querybuilder"
)

type CompetitionRepository struct {
	db *sqlx.DB
}

func NewCompetitionRepository(db *sqlx.DB) *CompetitionRepository {
	return &CompetitionRepository{db: db}
}

func (r *CompetitionRepository) UpsertMany(ctx context.Context, items []competition.Competition) error {
	if len(items) == 0 {
		return nil
	}

	for _, item := range items {
		model := competitionTableModel{
			CompetitionID:   item.CompetitionID,
			SeasonID:        item.SeasonID,
			CompetitionName: item.CompetitionName,
			SeasonName:      item.SeasonName,
			CountryName:     item.CountryName,
		}
		query, args, err := qb.InsertModel("dim_competition", model, `ON CONFLICT (competition_id, season_id)
DO UPDATE SET
    competition_name = EXCLUDED.competition_name,
    season_name = EXCLUDED.season_name,
    country_name = EXCLUDED.country_name`)
		if err != nil {
			return fmt.Errorf("build upsert competition query: %w", err)
		}
		if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert competition %d/%d: %w", item.CompetitionID, item.SeasonID, err)
		}
	}
	return nil
}

func (r *CompetitionRepository) List(ctx context.Context) ([]competition.Competition, error) {
	query, _, err := qb.Select("*").From("dim_competition").
		OrderBy("competition_id", "season_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select competitions query: %w", err)
	}

	var rows []competitionTableModel
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("select competitions: %w", err)
	}

	out := make([]competition.Competition, 0, len(rows))
	for _, row := range rows {
		out = append(out, competition.Competition{
			CompetitionID:   row.CompetitionID,
			SeasonID:        row.SeasonID,
			CompetitionName: row.CompetitionName,
			SeasonName:      row.SeasonName,
			CountryName:     row.CountryName,
		})
	}
	return out, nil
}
