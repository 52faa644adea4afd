package matchstate

import "context"

type Repository interface {
	Get(ctx context.Context, matchID int64) (*State, error)
	MarkMaterialized(ctx context.Context, matchID, eventCount, rejectedCount int64) error
	MarkFailed(ctx context.Context, matchID int64, reason string) error
	ListMaterializedIDs(ctx context.Context) ([]int64, error)
}
