package cli

import (
	"bufio"
	"context"
	"io"

	"github.com/dmitrijs2005/eazyshop/internal/logging"
)

// AuthService is the part of auth.Service the front end uses.
type AuthService interface {
	Register(ctx context.Context, userName string, password []byte) error
	SignIn(ctx context.Context, userName string, password []byte) (string, error)
}

// Handoff mints and consumes the token passed from login to dashboard.
type Handoff interface {
	Issue(userName string) (string, error)
	Redeem(token string) (string, error)
}

type App struct {
	authService AuthService
	handoff     Handoff
	logger      logging.Logger
	reader      *bufio.Reader
	out         io.Writer

	token string
}

func NewApp(as AuthService, h Handoff, logger logging.Logger, in io.Reader, out io.Writer) *App {
	return &App{
		authService: as,
		handoff:     h,
		logger:      logger.With("component", "cli"),
		reader:      bufio.NewReader(in),
		out:         out,
	}
}

// Run shows the login screen and, once a user signs in, the dashboard.
func (a *App) Run(ctx context.Context) error {
	printlnFn("Welcome to Eazy-Shop CLI (type 'help' for commands)")

	runREPL(ctx, a, a.reader)

	if !a.isLoggedIn() {
		return nil
	}
	return a.Dashboard(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.token != ""
}
