package event

import "context"

// Repository persists and reads back the silver fact tables.
// InsertMatchFacts must be all-or-nothing per match.
type Repository interface {
	InsertMatchFacts(ctx context.Context, facts MatchFacts) error
	ListEventsByMatch(ctx context.Context, matchID int64) ([]Event, error)
	ListPassDetailsByMatch(ctx context.Context, matchID int64) ([]PassDetail, error)
	ListShotDetailsByMatch(ctx context.Context, matchID int64) ([]ShotDetail, error)
	ListCarryDetailsByMatch(ctx context.Context, matchID int64) ([]CarryDetail, error)
	ListLineupsByMatch(ctx context.Context, matchID int64) ([]LineupEntry, error)
}
