package handoff

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/eazyshop/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndRedeem_Success(t *testing.T) {
	t.Parallel()

	iss := NewIssuer([]byte("super-secret"), time.Minute)

	tok, err := iss.Issue("alice")
	require.NoError(t, err)

	got, err := iss.Redeem(tok)
	require.NoError(t, err)
	assert.Equal(t, "alice", got)
}

func TestRedeem_OnlyOnce(t *testing.T) {
	t.Parallel()

	iss := NewIssuer(nil, time.Minute)
	tok, err := iss.Issue("alice")
	require.NoError(t, err)

	_, err = iss.Redeem(tok)
	require.NoError(t, err)

	_, err = iss.Redeem(tok)
	require.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestRedeem_ConcurrentReplay(t *testing.T) {
	t.Parallel()

	iss := NewIssuer(nil, time.Minute)
	tok, err := iss.Issue("alice")
	require.NoError(t, err)

	const n = 8
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		accepted int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := iss.Redeem(tok); err == nil {
				mu.Lock()
				accepted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, accepted)
}

func TestRedeem_Expired(t *testing.T) {
	t.Parallel()

	iss := NewIssuer([]byte("secret"), time.Minute)
	base := time.Now()
	iss.now = func() time.Time { return base }

	tok, err := iss.Issue("alice")
	require.NoError(t, err)

	iss.now = func() time.Time { return base.Add(2 * time.Minute) }
	_, err = iss.Redeem(tok)
	require.ErrorIs(t, err, common.ErrTokenExpired)
}

func TestRedeem_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := NewIssuer([]byte("right-secret"), time.Minute).Issue("alice")
	require.NoError(t, err)

	_, err = NewIssuer([]byte("wrong-secret"), time.Minute).Redeem(tok)
	require.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestRedeem_Tampered(t *testing.T) {
	t.Parallel()

	iss := NewIssuer([]byte("secret"), time.Minute)
	tok, err := iss.Issue("alice")
	require.NoError(t, err)

	parts := strings.Split(tok, ".")
	require.Len(t, parts, 3)

	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "mallory"})
	forgedStr, err := forged.SignedString([]byte("secret"))
	require.NoError(t, err)
	forgedParts := strings.Split(forgedStr, ".")

	// alice's signature on mallory's payload
	_, err = iss.Redeem(parts[0] + "." + forgedParts[1] + "." + parts[2])
	require.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestRedeem_ForeignIssuerOrNoExpiry(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")
	iss := NewIssuer(secret, time.Minute)

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer: issuerName, Subject: "alice", ID: "x",
	}).SignedString(secret)
	require.NoError(t, err)
	_, err = iss.Redeem(noExp)
	require.ErrorIs(t, err, common.ErrInvalidToken)

	foreign, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer: "someone-else", Subject: "alice", ID: "y",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
	}).SignedString(secret)
	require.NoError(t, err)
	_, err = iss.Redeem(foreign)
	require.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestRedeem_Malformed(t *testing.T) {
	t.Parallel()

	_, err := NewIssuer(nil, time.Minute).Redeem("not.a.jwt")
	require.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestIssue_EmptyUsername(t *testing.T) {
	t.Parallel()

	_, err := NewIssuer(nil, time.Minute).Issue("")
	require.Error(t, err)
}

func TestRedeemed_IDsArePrunedAfterExpiry(t *testing.T) {
	t.Parallel()

	iss := NewIssuer(nil, time.Minute)
	base := time.Now()
	iss.now = func() time.Time { return base }

	tok, err := iss.Issue("alice")
	require.NoError(t, err)
	_, err = iss.Redeem(tok)
	require.NoError(t, err)

	iss.now = func() time.Time { return base.Add(5 * time.Minute) }
	tok2, err := iss.Issue("bob")
	require.NoError(t, err)
	_, err = iss.Redeem(tok2)
	require.NoError(t, err)

	iss.mu.Lock()
	defer iss.mu.Unlock()
	assert.Len(t, iss.redeemed, 1)
}
