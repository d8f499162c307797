package accounts

import "time"

// Account is a stored username/password-hash pair. PasswordHash is opaque
// to the store.
type Account struct {
	ID           int64
	UserName     string
	PasswordHash []byte
	CreatedAt    time.Time
}
