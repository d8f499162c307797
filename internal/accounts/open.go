package accounts

import (
	"context"
	"fmt"
)

// Open connects to the store selected by driver ("sqlite" or "postgres")
// and makes sure the schema exists.
func Open(ctx context.Context, driver, dsn string) (Repository, error) {
	var (
		repo Repository
		err  error
	)

	switch driver {
	case "sqlite":
		repo, err = OpenSQLite(dsn)
	case "postgres":
		repo, err = OpenPostgres(ctx, dsn)
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", driver)
	}
	if err != nil {
		return nil, err
	}

	if err := repo.EnsureSchema(ctx); err != nil {
		_ = repo.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return repo, nil
}
