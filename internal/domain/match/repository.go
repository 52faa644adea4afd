package match

import "context"

type Repository interface {
	UpsertMany(ctx context.Context, items []Match) error
	ListBySeason(ctx context.Context, competitionID, seasonID int64) ([]Match, error)
	Get(ctx context.Context, matchID int64) (*Match, error)
}
