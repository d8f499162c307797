package accounts

import "context"

type Repository interface {
	EnsureSchema(ctx context.Context) error
	FindByUsername(ctx context.Context, userName string) (*Account, error)
	Insert(ctx context.Context, userName string, passwordHash []byte) (*Account, error)
	Count(ctx context.Context) (int64, error)
	Close() error
}
