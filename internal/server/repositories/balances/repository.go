package balances

import "context"

type Repository interface {
	Get(ctx context.Context, userID string) (int64, error)
	Set(ctx context.Context, userID string, balance int64) error
}
