package cli

import (
	"context"
	"os"

	"github.com/nishant0207/online-filesharing/internal/client/session"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for a username, email and password and creates a new
// account. Registration does not start a session; the user logs in
// afterwards.
func (a *App) Register(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}

	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	if err := a.session.Register(ctx, username, email, password); err != nil {
		return err
	}

	printlnFn("Account created. You can log in now.")
	return nil
}

// Login prompts for credentials, authenticates, and fetches both file
// listings so the first "list" after login shows fresh data.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	if err := a.session.Authenticate(ctx, email, password); err != nil {
		return err
	}

	printlnFn("Logged in as", a.session.Session().Identity)
	a.refreshAll(ctx)
	return nil
}

// Logout ends the session deliberately. The session-end hook takes care of
// clearing the catalog and printing the notice.
func (a *App) Logout(ctx context.Context) error {
	a.session.EndSession(ctx, session.ReasonExplicit)
	return nil
}
