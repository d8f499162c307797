// Package auth is the authenticator: it turns plaintext credentials into
// credential-store operations using a salted, deliberately slow one-way
// hash, and never persists or logs the plaintext.
package auth

import (
	"bytes"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/eazyshop/internal/common"
	"github.com/dmitrijs2005/eazyshop/internal/config"
	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

// Hasher produces and checks password hashes. Every Hash call uses a
// fresh random salt, so equal passwords give different hashes.
type Hasher interface {
	Hash(password []byte) ([]byte, error)

	// Verify returns (true, nil) on match and (false, nil) on mismatch.
	// An error means the stored hash could not be parsed.
	Verify(hash, password []byte) (bool, error)

	// Recognizes reports whether hash was produced by this algorithm.
	Recognizes(hash []byte) bool
}

// NewHasher returns the hasher new accounts are created with.
func NewHasher(cfg *config.Config) (Hasher, error) {
	switch cfg.Hasher {
	case config.HasherBcrypt:
		return NewBcryptHasher(cfg.BcryptCost), nil
	case config.HasherArgon2id:
		return NewArgon2idHasher(cfg.Argon2Time, cfg.Argon2MemoryKiB, cfg.Argon2Threads), nil
	default:
		return nil, fmt.Errorf("unknown hasher %q", cfg.Hasher)
	}
}

type BcryptHasher struct {
	cost int
}

func NewBcryptHasher(cost int) *BcryptHasher {
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(password []byte) ([]byte, error) {
	hash, err := bcrypt.GenerateFromPassword(password, h.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, ErrPasswordTooLong
		}
		return nil, err
	}
	return hash, nil
}

// Verify compares in constant time (bcrypt uses subtle internally).
func (h *BcryptHasher) Verify(hash, password []byte) (bool, error) {
	err := bcrypt.CompareHashAndPassword(hash, password)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword),
		errors.Is(err, bcrypt.ErrPasswordTooLong):
		return false, nil
	default:
		return false, err
	}
}

func (h *BcryptHasher) Recognizes(hash []byte) bool {
	for _, prefix := range []string{"$2a$", "$2b$", "$2y$"} {
		if bytes.HasPrefix(hash, []byte(prefix)) {
			return true
		}
	}
	return false
}

const (
	argon2SaltLen = 16
	argon2KeyLen  = 32
	argon2Prefix  = "$argon2id$"
)

// Argon2idHasher encodes hashes in the PHC string format:
//
//	$argon2id$v=19$m=65536,t=1,p=4$<salt>$<hash>
//
// Verify reads the parameters from the stored string, so hashes made with
// other parameters keep verifying.
type Argon2idHasher struct {
	time    uint32
	memory  uint32
	threads uint8
}

func NewArgon2idHasher(time, memoryKiB uint32, threads uint8) *Argon2idHasher {
	return &Argon2idHasher{time: time, memory: memoryKiB, threads: threads}
}

func (h *Argon2idHasher) Hash(password []byte) ([]byte, error) {
	salt := common.GenerateRandByteArray(argon2SaltLen)
	key := argon2.IDKey(password, salt, h.time, h.memory, h.threads, argon2KeyLen)
	defer common.WipeByteArray(key)

	encoded := fmt.Sprintf(
		"%sv=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2Prefix,
		argon2.Version,
		h.memory,
		h.time,
		h.threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	)
	return []byte(encoded), nil
}

func (h *Argon2idHasher) Verify(hash, password []byte) (bool, error) {
	parts := strings.Split(string(hash), "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return false, errUnrecognizedHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return false, fmt.Errorf("argon2id version: %w", err)
	}
	if version != argon2.Version {
		return false, fmt.Errorf("argon2id version %d not supported", version)
	}

	var memory, time, threads uint32
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return false, fmt.Errorf("argon2id params: %w", err)
	}
	if threads == 0 || threads > 255 || time == 0 {
		return false, fmt.Errorf("argon2id params out of range")
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false, fmt.Errorf("argon2id salt: %w", err)
	}
	expected, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return false, fmt.Errorf("argon2id key: %w", err)
	}
	if len(expected) == 0 || len(expected) > 1024 {
		return false, fmt.Errorf("argon2id key length %d", len(expected))
	}

	candidate := argon2.IDKey(password, salt, time, memory, uint8(threads), uint32(len(expected)))
	defer common.WipeByteArray(candidate)

	return subtle.ConstantTimeCompare(candidate, expected) == 1, nil
}

func (h *Argon2idHasher) Recognizes(hash []byte) bool {
	return bytes.HasPrefix(hash, []byte(argon2Prefix))
}
