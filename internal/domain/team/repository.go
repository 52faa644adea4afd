package team

import "context"

type Repository interface {
	UpsertMany(ctx context.Context, items []Team) error
}
