// Package handoff carries the authenticated username from the login screen
// to the dashboard view. A successful login is turned into a short-lived
// signed token (HS256 JWT) that the dashboard redeems exactly once.
package handoff

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/eazyshop/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const issuerName = "eazy-shop-login"

// Issuer mints and redeems handoff tokens. It is safe for concurrent use.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time

	mu       sync.Mutex
	redeemed map[string]time.Time
}

// NewIssuer uses secret to sign tokens; an empty secret is replaced by 32
// random bytes, which is enough when login and dashboard share a process.
func NewIssuer(secret []byte, ttl time.Duration) *Issuer {
	if len(secret) == 0 {
		secret = common.GenerateRandByteArray(32)
	}
	return &Issuer{
		secret:   secret,
		ttl:      ttl,
		now:      time.Now,
		redeemed: make(map[string]time.Time),
	}
}

// Issue returns a token naming userName as its subject.
func (i *Issuer) Issue(userName string) (string, error) {
	if userName == "" {
		return "", errors.New("handoff: empty username")
	}

	now := i.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    issuerName,
		Subject:   userName,
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
	})

	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("handoff: sign token: %w", err)
	}
	return signed, nil
}

// Redeem validates token and returns the username it carries. Expired
// tokens give common.ErrTokenExpired; forged, malformed or already
// redeemed tokens give common.ErrInvalidToken.
func (i *Issuer) Redeem(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}

	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuerName),
		jwt.WithTimeFunc(i.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", fmt.Errorf("%w: %w", common.ErrInvalidToken, err)
	}

	if claims.ID == "" || claims.Subject == "" {
		return "", common.ErrInvalidToken
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	i.forgetExpired()
	if _, seen := i.redeemed[claims.ID]; seen {
		return "", fmt.Errorf("%w: already redeemed", common.ErrInvalidToken)
	}
	i.redeemed[claims.ID] = claims.ExpiresAt.Time

	return claims.Subject, nil
}

// forgetExpired drops redeemed IDs whose tokens could no longer validate.
// Callers hold i.mu.
func (i *Issuer) forgetExpired() {
	now := i.now()
	for id, exp := range i.redeemed {
		if now.After(exp) {
			delete(i.redeemed, id)
		}
	}
}
