package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/eazyshop/internal/auth"
	"github.com/dmitrijs2005/eazyshop/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

const (
	msgFieldsRequired  = "All fields are required!"
	msgUsernameTaken   = "Email already exists!"
	msgAccountCreated  = "Account created successfully!"
	msgInvalidLogin    = "Invalid email or password"
	msgWelcome         = "Welcome to Eazy-Shop!"
	msgStorageDown     = "Storage unavailable, please retry"
	msgPasswordTooLong = "Password is too long!"
	msgUnexpected      = "Something went wrong, please retry"
)

// Register prompts for an email and password and creates the account.
// The outcome is printed; the returned error is the service error, if any.
func (a *App) Register(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	err = a.authService.Register(ctx, userName, password)
	switch {
	case err == nil:
		printlnFn(msgAccountCreated)
	case errors.Is(err, auth.ErrEmptyField):
		printlnFn(msgFieldsRequired)
	case errors.Is(err, auth.ErrUsernameTaken):
		printlnFn(msgUsernameTaken)
	case errors.Is(err, auth.ErrPasswordTooLong):
		printlnFn(msgPasswordTooLong)
	case errors.Is(err, auth.ErrStorageUnavailable):
		printlnFn(msgStorageDown)
	default:
		a.logger.Error(ctx, "register failed", "error", err)
		printlnFn(msgUnexpected)
	}
	return err
}

// Login prompts for credentials and, on success, issues the handoff token
// that the dashboard redeems. The password is wiped before returning.
func (a *App) Login(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	canonical, err := a.authService.SignIn(ctx, userName, password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidCredentials):
			printlnFn(msgInvalidLogin)
		case errors.Is(err, auth.ErrStorageUnavailable):
			printlnFn(msgStorageDown)
		default:
			a.logger.Error(ctx, "login failed", "error", err)
			printlnFn(msgUnexpected)
		}
		return err
	}

	token, err := a.handoff.Issue(canonical)
	if err != nil {
		a.logger.Error(ctx, "issue handoff token", "username", canonical, "error", err)
		printlnFn(msgUnexpected)
		return err
	}

	a.token = token
	printlnFn(msgWelcome)
	return nil
}
