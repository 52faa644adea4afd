package gold

import "context"

// Repository persists the gold aggregates. Replace semantics keep
// reruns idempotent: each call deletes the previous rows for its scope
// and inserts the new ones in one transaction.
type Repository interface {
	ReplaceMatchAggregates(ctx context.Context, aggregates MatchAggregates) error
	ReplaceXT(ctx context.Context, grid []XTGridRow, players []XTPlayerRow) error
	ReplacePPDATeam(ctx context.Context, rows []PPDATeamRow) error
}
