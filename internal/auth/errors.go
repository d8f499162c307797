package auth

import "errors"

// Errors returned by Service. All of them are recoverable: the caller shows
// a message and lets the user retry.
var (
	ErrEmptyField         = errors.New("all fields are required")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrPasswordTooLong    = errors.New("password too long")

	errUnrecognizedHash = errors.New("unrecognized password hash format")
)
