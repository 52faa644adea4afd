package competition

import "context"

// Repository persists the competition dimension.
type Repository interface {
	UpsertMany(ctx context.Context, items []Competition) error
	List(ctx context.Context) ([]Competition, error)
}
