// Package accounts is the credential store: durable persistence of
// (username, password hash) rows with a uniqueness constraint on username.
//
// Two implementations share the Repository interface:
//
//   - SQLiteRepository, backed by a local file through modernc.org/sqlite;
//   - PostgresRepository, backed by pgx's database/sql driver.
//
// Schema creation is owned by the store (EnsureSchema) and runs the embedded
// goose migrations for the repository's dialect, so it is idempotent and
// safe to call on every start.
//
// # Errors
//
// FindByUsername returns common.ErrorNotFound for an unknown username and
// Insert returns common.ErrorAlreadyExists when the username is taken. Any
// other error means the storage itself failed.
package accounts
