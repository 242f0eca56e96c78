package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/NomadNiko/nomadsoft-rn-boiler/internal/client/client"
	"github.com/NomadNiko/nomadsoft-rn-boiler/internal/client/models"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for the account details and creates the account. The
// user logs in separately afterwards.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	first, err := GetOptionalText(a.reader, "First name", a.out)
	if err != nil {
		return err
	}
	last, err := GetOptionalText(a.reader, "Last name", a.out)
	if err != nil {
		return err
	}

	req := models.RegisterRequest{Email: email, Password: password, FirstName: first, LastName: last}
	if err := a.auth.Register(ctx, req); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Account created, you can login now.")
	return nil
}

// Login prompts for credentials, stores the session, warms every feed tab
// and shows the last selected one.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	user, err := a.auth.Login(ctx, email, password)
	if err != nil {
		if errors.Is(err, client.ErrValidation) || errors.Is(err, client.ErrUnauthorized) {
			return fmt.Errorf("login failed: %w", err)
		}
		return err
	}
	a.user = user.DisplayName()
	fmt.Fprintf(a.out, "Welcome, %s!\n", a.user)

	if err := a.feed.PreloadAll(ctx); err != nil {
		a.log.Warn(ctx, "feed preload incomplete", "error", err)
	}
	if err := a.ctrl.Mount(ctx); err != nil {
		a.log.Warn(ctx, "feed load failed", "error", err)
	}
	return a.Feed(ctx)
}

// Logout ends the session locally and remotely and wipes cached data.
func (a *App) Logout(ctx context.Context) error {
	err := a.auth.Logout(ctx)
	a.user = ""
	// Re-render the empty logged-out feed state.
	_ = a.ctrl.Focus(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

func (a *App) Me(ctx context.Context) error {
	u, err := a.auth.CurrentUser(ctx)
	if err != nil {
		return err
	}
	a.user = u.DisplayName()
	renderUser(a.out, u)
	return nil
}
