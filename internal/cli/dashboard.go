package cli

import (
	"context"
	"fmt"
)

// Dashboard redeems the pending handoff token and greets its user. The
// token is cleared whether or not it is accepted.
func (a *App) Dashboard(ctx context.Context) error {
	token := a.token
	a.token = ""

	userName, err := a.handoff.Redeem(token)
	if err != nil {
		a.logger.Warn(ctx, "handoff rejected", "error", err)
		printlnFn("Session expired, please log in again")
		return fmt.Errorf("dashboard: %w", err)
	}

	printlnFn(fmt.Sprintf("Dashboard: logged in as %s", userName))
	return nil
}
