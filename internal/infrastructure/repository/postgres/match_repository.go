package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/pitchmart/internal/domain/match"
	qb "github.com/riskibarqy/pitchmart/internal/platform/querybuilder"
)

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) UpsertMany(ctx context.Context, items []match.Match) error {
	if len(items) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx upsert matches: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, item := range items {
		query, args, err := qb.InsertModel("dim_match", matchToModel(item), `ON CONFLICT (match_id)
DO UPDATE SET
    match_date = EXCLUDED.match_date,
    kick_off = EXCLUDED.kick_off,
    home_score = EXCLUDED.home_score,
    away_score = EXCLUDED.away_score,
    match_week = EXCLUDED.match_week,
    stadium = EXCLUDED.stadium,
    referee = EXCLUDED.referee,
    stage = EXCLUDED.stage`)
		if err != nil {
			return fmt.Errorf("build upsert match query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert match %d: %w", item.MatchID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert matches tx: %w", err)
	}
	return nil
}

func (r *MatchRepository) ListBySeason(ctx context.Context, competitionID, seasonID int64) ([]match.Match, error) {
	query, args, err := qb.Select("*").From("dim_match").
		Where(
			qb.Eq("competition_id", competitionID),
			qb.Eq("season_id", seasonID),
		).
		OrderBy("match_date", "match_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select matches by season query: %w", err)
	}

	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select matches by season: %w", err)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, modelToMatch(row))
	}
	return out, nil
}

func (r *MatchRepository) Get(ctx context.Context, matchID int64) (*match.Match, error) {
	query, args, err := qb.Select("*").From("dim_match").
		Where(qb.Eq("match_id", matchID)).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select match query: %w", err)
	}

	var row matchTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("select match %d: %w", matchID, err)
	}

	out := modelToMatch(row)
	return &out, nil
}

func matchToModel(item match.Match) matchTableModel {
	return matchTableModel{
		MatchID:       item.MatchID,
		CompetitionID: item.CompetitionID,
		SeasonID:      item.SeasonID,
		MatchDate:     item.MatchDate,
		KickOff:       item.KickOff,
		HomeTeamID:    item.HomeTeamID,
		HomeTeamName:  item.HomeTeamName,
		AwayTeamID:    item.AwayTeamID,
		AwayTeamName:  item.AwayTeamName,
		HomeScore:     item.HomeScore,
		AwayScore:     item.AwayScore,
		MatchWeek:     item.MatchWeek,
		Stadium:       item.Stadium,
		Referee:       item.Referee,
		Stage:         item.Stage,
	}
}

func modelToMatch(row matchTableModel) match.Match {
	return match.Match{
		MatchID:       row.MatchID,
		CompetitionID: row.CompetitionID,
		SeasonID:      row.SeasonID,
		MatchDate:     row.MatchDate,
		KickOff:       row.KickOff,
		HomeTeamID:    row.HomeTeamID,
		HomeTeamName:  row.HomeTeamName,
		AwayTeamID:    row.AwayTeamID,
		AwayTeamName:  row.AwayTeamName,
		HomeScore:     row.HomeScore,
		AwayScore:     row.AwayScore,
		MatchWeek:     row.MatchWeek,
		Stadium:       row.Stadium,
		Referee:       row.Referee,
		Stage:         row.Stage,
	}
}
