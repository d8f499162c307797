package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/dmitrijs2005/eazyshop/internal/auth"
	"github.com/dmitrijs2005/eazyshop/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuth struct {
	regUser string
	regPass []byte
	regErr  error

	signUser string
	signPass []byte
	signName string
	signErr  error
}

func (f *fakeAuth) Register(_ context.Context, user string, pass []byte) error {
	f.regUser, f.regPass = user, append([]byte(nil), pass...)
	return f.regErr
}

func (f *fakeAuth) SignIn(_ context.Context, user string, pass []byte) (string, error) {
	f.signUser, f.signPass = user, append([]byte(nil), pass...)
	return f.signName, f.signErr
}

type fakeHandoff struct {
	issued    []string
	issueErr  error
	redeemFor string
	redeemErr error
}

func (f *fakeHandoff) Issue(userName string) (string, error) {
	if f.issueErr != nil {
		return "", f.issueErr
	}
	f.issued = append(f.issued, userName)
	return "token-for-" + userName, nil
}

func (f *fakeHandoff) Redeem(token string) (string, error) {
	if f.redeemErr != nil {
		return "", f.redeemErr
	}
	if f.redeemFor != "" {
		return f.redeemFor, nil
	}
	return strings.TrimPrefix(token, "token-for-"), nil
}

func newTestApp(as AuthService, h Handoff) *App {
	return NewApp(as, h, logging.Discard(), strings.NewReader(""), io.Discard)
}

func TestRegister_Messages(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantMsg string
	}{
		{"success", nil, msgAccountCreated},
		{"empty field", auth.ErrEmptyField, msgFieldsRequired},
		{"taken", auth.ErrUsernameTaken, msgUsernameTaken},
		{"too long", auth.ErrPasswordTooLong, msgPasswordTooLong},
		{"storage", fmt.Errorf("%w: disk I/O", auth.ErrStorageUnavailable), msgStorageDown},
		{"other", errors.New("boom"), msgUnexpected},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := captureOutput(t)
			pw := []byte("secret")
			stubInputs(t, "alice@example.org", pw)

			f := &fakeAuth{regErr: tt.err}
			a := newTestApp(f, &fakeHandoff{})

			err := a.Register(context.Background())
			if tt.err == nil {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, tt.err)
			}

			assert.Equal(t, []string{tt.wantMsg}, out())
			assert.Equal(t, "alice@example.org", f.regUser)
			assert.Equal(t, []byte("secret"), f.regPass)
			assert.Equal(t, make([]byte, len(pw)), pw, "password must be wiped")
		})
	}
}

func TestLogin_SuccessIssuesToken(t *testing.T) {
	out := captureOutput(t)
	stubInputs(t, " alice ", []byte("secret"))

	f := &fakeAuth{signName: "alice"}
	h := &fakeHandoff{}
	a := newTestApp(f, h)

	require.NoError(t, a.Login(context.Background()))

	assert.True(t, a.isLoggedIn())
	assert.Equal(t, []string{"alice"}, h.issued)
	assert.Equal(t, []string{msgWelcome}, out())
}

func TestLogin_Failures(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantMsg string
	}{
		{"invalid", auth.ErrInvalidCredentials, msgInvalidLogin},
		{"storage", fmt.Errorf("%w: locked", auth.ErrStorageUnavailable), msgStorageDown},
		{"other", errors.New("boom"), msgUnexpected},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := captureOutput(t)
			stubInputs(t, "alice", []byte("wrong"))

			h := &fakeHandoff{}
			a := newTestApp(&fakeAuth{signErr: tt.err}, h)

			err := a.Login(context.Background())
			require.ErrorIs(t, err, tt.err)

			assert.False(t, a.isLoggedIn())
			assert.Empty(t, h.issued)
			assert.Equal(t, []string{tt.wantMsg}, out())
		})
	}
}

func TestLogin_IssueFails(t *testing.T) {
	out := captureOutput(t)
	stubInputs(t, "alice", []byte("secret"))

	a := newTestApp(&fakeAuth{signName: "alice"}, &fakeHandoff{issueErr: errors.New("no key")})

	require.Error(t, a.Login(context.Background()))
	assert.False(t, a.isLoggedIn())
	assert.Equal(t, []string{msgUnexpected}, out())
}

func TestLogin_InputError(t *testing.T) {
	captureOutput(t)
	a := newTestApp(&fakeAuth{}, &fakeHandoff{})

	// no stubs: reading from the empty reader hits EOF
	stubNoTerminal(t)
	err := a.Login(context.Background())
	require.ErrorIs(t, err, io.EOF)
}
