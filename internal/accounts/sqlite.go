package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/eazyshop/internal/common"
	"github.com/dmitrijs2005/eazyshop/internal/dbx"
	"github.com/dmitrijs2005/eazyshop/internal/filex"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

// busyTimeout lets a second process wait for the write lock instead of
// failing immediately with SQLITE_BUSY.
const busyTimeout = "_pragma=busy_timeout(5000)"

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// OpenSQLite opens (creating if needed) the database file at dsn.
func OpenSQLite(dsn string) (*SQLiteRepository, error) {
	if _, err := filex.EnsureParentDir(dsn); err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if !strings.Contains(dsn, "busy_timeout") {
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		dsn = dsn + sep + busyTimeout
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// SQLite has a single writer; one connection keeps writers queued in Go
	// instead of racing for the file lock.
	db.SetMaxOpenConns(1)
	return NewSQLiteRepository(db), nil
}

func (r *SQLiteRepository) EnsureSchema(ctx context.Context) error {
	return runMigrations(ctx, r.db, goose.DialectSQLite3, "sqlite")
}

func (r *SQLiteRepository) FindByUsername(ctx context.Context, userName string) (*Account, error) {
	query :=
		`SELECT id, username, password_hash, created_at FROM users
		 WHERE username = ?`

	var createdAt int64
	acc := &Account{}
	err := r.db.QueryRowContext(ctx, query, userName).Scan(&acc.ID, &acc.UserName, &acc.PasswordHash, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	acc.CreatedAt = time.Unix(createdAt, 0).UTC()
	return acc, nil
}

func (r *SQLiteRepository) Insert(ctx context.Context, userName string, passwordHash []byte) (*Account, error) {
	query :=
		`INSERT INTO users (username, password_hash)
		 VALUES (?, ?)
		 RETURNING id, created_at`

	acc := &Account{UserName: userName, PasswordHash: passwordHash}
	var createdAt int64

	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return tx.QueryRowContext(ctx, query, userName, passwordHash).Scan(&acc.ID, &createdAt)
	})
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, fmt.Errorf("username %q: %w", userName, common.ErrorAlreadyExists)
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	acc.CreatedAt = time.Unix(createdAt, 0).UTC()
	return acc, nil
}

func (r *SQLiteRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}
