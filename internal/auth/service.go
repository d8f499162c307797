package auth

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/eazyshop/internal/accounts"
	"github.com/dmitrijs2005/eazyshop/internal/common"
	"github.com/dmitrijs2005/eazyshop/internal/logging"
)

// dummyPassword is hashed once at start-up. Logins for unknown usernames
// are verified against that hash so they cost as much as a real mismatch.
var dummyPassword = []byte("eazy-shop/unknown-user")

// Service registers accounts and verifies logins. It keeps no state
// between calls besides its dependencies.
type Service struct {
	repo      accounts.Repository
	hasher    Hasher
	verifiers []Hasher
	logger    logging.Logger
	dummyHash []byte
}

// NewService creates accounts with hasher. Stored hashes are verified by
// whichever of hasher, bcrypt or argon2id recognizes them, so switching the
// configured algorithm does not lock existing users out.
func NewService(repo accounts.Repository, hasher Hasher, logger logging.Logger) (*Service, error) {
	dummy, err := hasher.Hash(dummyPassword)
	if err != nil {
		return nil, fmt.Errorf("prepare dummy hash: %w", err)
	}

	return &Service{
		repo:   repo,
		hasher: hasher,
		verifiers: []Hasher{
			hasher,
			NewBcryptHasher(0),
			&Argon2idHasher{},
		},
		logger:    logger.With("component", "auth"),
		dummyHash: dummy,
	}, nil
}

// Register hashes password with a fresh salt and stores a new account.
//
// It returns ErrEmptyField for a blank username or password,
// ErrPasswordTooLong when the hasher cannot take the password,
// ErrUsernameTaken when the username exists and ErrStorageUnavailable
// (wrapping the cause) for any other storage failure. On error no row is
// written.
func (s *Service) Register(ctx context.Context, userName string, password []byte) error {
	userName = strings.TrimSpace(userName)
	if userName == "" || len(bytes.TrimSpace(password)) == 0 {
		return ErrEmptyField
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		if errors.Is(err, ErrPasswordTooLong) {
			return err
		}
		return fmt.Errorf("hash password: %w", err)
	}

	acc, err := s.repo.Insert(ctx, userName, hash)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			s.logger.Info(ctx, "registration rejected, username taken", "username", userName)
			return ErrUsernameTaken
		}
		s.logger.Error(ctx, "registration failed", "username", userName, "error", err)
		return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}

	s.logger.Info(ctx, "account registered", "username", userName, "id", acc.ID)
	return nil
}

// Login reports whether password matches the account stored for userName.
// An unknown username and a wrong password both give (false, nil); only an
// unreadable store returns an error (ErrStorageUnavailable).
func (s *Service) Login(ctx context.Context, userName string, password []byte) (bool, error) {
	userName = strings.TrimSpace(userName)

	acc, err := s.repo.FindByUsername(ctx, userName)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			_, _ = s.hasher.Verify(s.dummyHash, password)
			s.logger.Info(ctx, "login failed", "username", userName)
			return false, nil
		}
		s.logger.Error(ctx, "login lookup failed", "username", userName, "error", err)
		return false, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}

	ok, err := s.verify(acc.PasswordHash, password)
	if err != nil {
		s.logger.Error(ctx, "stored hash unreadable", "username", userName, "error", err)
		return false, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}

	if !ok {
		s.logger.Info(ctx, "login failed", "username", userName)
		return false, nil
	}

	s.logger.Info(ctx, "login succeeded", "username", userName)
	return true, nil
}

// SignIn is Login for the presentation layer: it returns the username to
// hand off on success and ErrInvalidCredentials otherwise, without saying
// which of username or password was wrong.
func (s *Service) SignIn(ctx context.Context, userName string, password []byte) (string, error) {
	ok, err := s.Login(ctx, userName, password)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrInvalidCredentials
	}
	return strings.TrimSpace(userName), nil
}

func (s *Service) verify(hash, password []byte) (bool, error) {
	for _, h := range s.verifiers {
		if h.Recognizes(hash) {
			return h.Verify(hash, password)
		}
	}
	return false, errUnrecognizedHash
}
