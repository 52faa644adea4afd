package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/pitchmart/internal/domain/event"
	qb "github.com/riskibarqy/pitchmart/internal/platform/querybuilder"
)

var factTables = []string{
	"bridge_shot_freeze_frame",
	"fact_lineups",
	"fact_carries",
	"fact_shots",
	"fact_passes",
	"fact_events",
}

type EventRepository struct {
	db *sqlx.DB
}

func NewEventRepository(db *sqlx.DB) *EventRepository {
	return &EventRepository{db: db}
}

// InsertMatchFacts writes every fact row of one match in a single
// transaction. Existing rows for the match are cleared first so a
// retry after a lost state record stays idempotent.
func (r *EventRepository) InsertMatchFacts(ctx context.Context, facts event.MatchFacts) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx insert match facts: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, table := range factTables {
		query, args, err := qb.DeleteFrom(table).Where(qb.Eq("match_id", facts.MatchID)).ToSQL()
		if err != nil {
			return fmt.Errorf("build clear %s query: %w", table, err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("clear %s match=%d: %w", table, facts.MatchID, err)
		}
	}

	parents := make(map[string]event.Event, len(facts.Events))
	eventModels := make([]eventTableModel, 0, len(facts.Events))
	for _, ev := range facts.Events {
		parents[ev.EventID] = ev
		eventModels = append(eventModels, eventToModel(ev))
	}

	passModels := make([]passTableModel, 0, len(facts.Passes))
	for _, p := range facts.Passes {
		passModels = append(passModels, passToModel(p, parents[p.EventID]))
	}
	shotModels := make([]shotTableModel, 0, len(facts.Shots))
	for _, s := range facts.Shots {
		shotModels = append(shotModels, shotToModel(s, parents[s.EventID]))
	}
	carryModels := make([]carryTableModel, 0, len(facts.Carries))
	for _, c := range facts.Carries {
		carryModels = append(carryModels, carryToModel(c, parents[c.EventID]))
	}
	lineupModels := make([]lineupTableModel, 0, len(facts.Lineups))
	for _, l := range facts.Lineups {
		lineupModels = append(lineupModels, lineupTableModel{
			MatchID:      l.MatchID,
			TeamID:       l.TeamID,
			PlayerID:     l.PlayerID,
			PlayerName:   l.PlayerName,
			JerseyNumber: l.JerseyNumber,
			Position:     l.Position,
			IsStarter:    l.IsStarter,
		})
	}
	frameModels := make([]freezeFrameTableModel, 0, len(facts.FreezeFrames))
	for _, f := range facts.FreezeFrames {
		frameModels = append(frameModels, freezeFrameTableModel{
			ShotEventID: f.ShotEventID,
			MatchID:     f.MatchID,
			PlayerID:    f.PlayerID,
			PlayerName:  f.PlayerName,
			Position:    f.Position,
			LocationX:   f.LocationX,
			LocationY:   f.LocationY,
			IsTeammate:  f.IsTeammate,
		})
	}

	if err := insertBatched(ctx, tx, "fact_events", eventModels); err != nil {
		return err
	}
	if err := insertBatched(ctx, tx, "fact_passes", passModels); err != nil {
		return err
	}
	if err := insertBatched(ctx, tx, "fact_shots", shotModels); err != nil {
		return err
	}
	if err := insertBatched(ctx, tx, "fact_carries", carryModels); err != nil {
		return err
	}
	if err := insertBatched(ctx, tx, "fact_lineups", lineupModels); err != nil {
		return err
	}
	if err := insertBatched(ctx, tx, "bridge_shot_freeze_frame", frameModels); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit insert match facts tx: %w", err)
	}
	return nil
}

func insertBatched[T any](ctx context.Context, tx *sqlx.Tx, table string, models []T) error {
	for _, batch := range chunk(models, 500) {
		query, args, err := qb.InsertModels(table, batch, "")
		if err != nil {
			return fmt.Errorf("build insert %s query: %w", table, err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert %s rows: %w", table, err)
		}
	}
	return nil
}

func (r *EventRepository) ListEventsByMatch(ctx context.Context, matchID int64) ([]event.Event, error) {
	query, args, err := qb.Select("*").From("fact_events").
		Where(qb.Eq("match_id", matchID)).
		OrderBy(`"index"`).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select events query: %w", err)
	}

	var rows []eventTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select events match=%d: %w", matchID, err)
	}

	out := make([]event.Event, 0, len(rows))
	for _, row := range rows {
		out = append(out, modelToEvent(row))
	}
	return out, nil
}

func (r *EventRepository) ListPassDetailsByMatch(ctx context.Context, matchID int64) ([]event.PassDetail, error) {
	query, args, err := qb.Select("*").From("fact_passes").
		Where(qb.Eq("match_id", matchID)).
		OrderBy("period", "minute", "second", "event_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select passes query: %w", err)
	}

	var rows []passTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select passes match=%d: %w", matchID, err)
	}

	out := make([]event.PassDetail, 0, len(rows))
	for _, row := range rows {
		out = append(out, modelToPassDetail(row))
	}
	return out, nil
}

func (r *EventRepository) ListShotDetailsByMatch(ctx context.Context, matchID int64) ([]event.ShotDetail, error) {
	query, args, err := qb.Select("*").From("fact_shots").
		Where(qb.Eq("match_id", matchID)).
		OrderBy("period", "minute", "second", "event_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select shots query: %w", err)
	}

	var rows []shotTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select shots match=%d: %w", matchID, err)
	}

	out := make([]event.ShotDetail, 0, len(rows))
	for _, row := range rows {
		out = append(out, modelToShotDetail(row))
	}
	return out, nil
}

func (r *EventRepository) ListCarryDetailsByMatch(ctx context.Context, matchID int64) ([]event.CarryDetail, error) {
	query, args, err := qb.Select("*").From("fact_carries").
		Where(qb.Eq("match_id", matchID)).
		OrderBy("period", "minute", "second", "event_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select carries query: %w", err)
	}

	var rows []carryTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select carries match=%d: %w", matchID, err)
	}

	out := make([]event.CarryDetail, 0, len(rows))
	for _, row := range rows {
		out = append(out, modelToCarryDetail(row))
	}
	return out, nil
}

func (r *EventRepository) ListLineupsByMatch(ctx context.Context, matchID int64) ([]event.LineupEntry, error) {
	query, args, err := qb.Select("*").From("fact_lineups").
		Where(qb.Eq("match_id", matchID)).
		OrderBy("team_id", "player_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select lineups query: %w", err)
	}

	var rows []lineupTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select lineups match=%d: %w", matchID, err)
	}

	out := make([]event.LineupEntry, 0, len(rows))
	for _, row := range rows {
		out = append(out, event.LineupEntry{
			MatchID:      row.MatchID,
			TeamID:       row.TeamID,
			PlayerID:     row.PlayerID,
			PlayerName:   row.PlayerName,
			JerseyNumber: row.JerseyNumber,
			Position:     row.Position,
			IsStarter:    row.IsStarter,
		})
	}
	return out, nil
}
