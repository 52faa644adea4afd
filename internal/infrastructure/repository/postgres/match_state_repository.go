package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/pitchmart/internal/domain/matchstate"
	qb "github.com/riskibarqy/pitchmart/internal/platform/querybuilder"
)

type matchStateTableModel struct {
	MatchID       int64     `db:"match_id"`
	Status        string    `db:"status"`
	EventCount    int64     `db:"event_count"`
	RejectedCount int64     `db:"rejected_count"`
	FailureReason *string   `db:"failure_reason"`
	UpdatedAt     time.Time `db:"updated_at"`
}

type MatchStateRepository struct {
	db *sqlx.DB
}

func NewMatchStateRepository(db *sqlx.DB) *MatchStateRepository {
	return &MatchStateRepository{db: db}
}

func (r *MatchStateRepository) Get(ctx context.Context, matchID int64) (*matchstate.State, error) {
	query, args, err := qb.Select("*").From("pipeline_match_state").
		Where(qb.Eq("match_id", matchID)).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select match state query: %w", err)
	}

	var row matchStateTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("select match state match=%d: %w", matchID, err)
	}

	return &matchstate.State{
		MatchID:       row.MatchID,
		Status:        row.Status,
		EventCount:    row.EventCount,
		RejectedCount: row.RejectedCount,
		FailureReason: row.FailureReason,
		UpdatedAt:     row.UpdatedAt,
	}, nil
}

func (r *MatchStateRepository) MarkMaterialized(ctx context.Context, matchID, eventCount, rejectedCount int64) error {
	return r.upsert(ctx, matchStateTableModel{
		MatchID:       matchID,
		Status:        matchstate.StatusMaterialized,
		EventCount:    eventCount,
		RejectedCount: rejectedCount,
		UpdatedAt:     time.Now().UTC(),
	})
}

func (r *MatchStateRepository) MarkFailed(ctx context.Context, matchID int64, reason string) error {
	return r.upsert(ctx, matchStateTableModel{
		MatchID:       matchID,
		Status:        matchstate.StatusFailed,
		FailureReason: &reason,
		UpdatedAt:     time.Now().UTC(),
	})
}

func (r *MatchStateRepository) upsert(ctx context.Context, model matchStateTableModel) error {
	query, args, err := qb.InsertModel("pipeline_match_state", model, `ON CONFLICT (match_id)
DO UPDATE SET
    status = EXCLUDED.status,
    event_count = EXCLUDED.event_count,
    rejected_count = EXCLUDED.rejected_count,
    failure_reason = EXCLUDED.failure_reason,
    updated_at = EXCLUDED.updated_at`)
	if err != nil {
		return fmt.Errorf("build upsert match state query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert match state match=%d: %w", model.MatchID, err)
	}
	return nil
}

func (r *MatchStateRepository) ListMaterializedIDs(ctx context.Context) ([]int64, error) {
	query, args, err := qb.Select("match_id").From("pipeline_match_state").
		Where(qb.Eq("status", matchstate.StatusMaterialized)).
		OrderBy("match_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select materialized ids query: %w", err)
	}

	var ids []int64
	if err := r.db.SelectContext(ctx, &ids, query, args...); err != nil {
		return nil, fmt.Errorf("select materialized ids: %w", err)
	}
	return ids, nil
}
