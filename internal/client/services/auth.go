// Package services contains the application services of the feed client:
// authentication, the feed sync layer, social graph and file uploads.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/NomadNiko/nomadsoft-rn-boiler/internal/client/client"
	"github.com/NomadNiko/nomadsoft-rn-boiler/internal/client/models"
	"github.com/NomadNiko/nomadsoft-rn-boiler/internal/client/repositories/metadata"
	"github.com/NomadNiko/nomadsoft-rn-boiler/internal/common"
	"github.com/NomadNiko/nomadsoft-rn-boiler/internal/logging"
)

// Session is the token holder the auth service writes to.
type Session interface {
	Authenticated() bool
	Set(ctx context.Context, access, refresh string) error
	Clear(ctx context.Context) error
}

// CacheClearer drops locally cached feed data.
type CacheClearer interface {
	Clear(ctx context.Context) error
}

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Login: authenticate and store the token pair.
//   - Register: create a new account; the caller logs in afterwards.
//   - Logout: best-effort remote logout; local tokens, the feed cache and
//     cached stats are always wiped.
//   - CheckSession: true when a token is present and the backend accepts it.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*models.User, error)
	Register(ctx context.Context, req models.RegisterRequest) error
	Logout(ctx context.Context) error
	CheckSession(ctx context.Context) (bool, error)
	CurrentUser(ctx context.Context) (*models.User, error)
	UpdateProfile(ctx context.Context, upd models.ProfileUpdate) (*models.User, error)
}

type authService struct {
	client  client.Client
	session Session
	feed    CacheClearer
	meta    metadata.Repository
	log     logging.Logger
}

// NewAuthService constructs an AuthService. feed and meta may be nil.
func NewAuthService(client client.Client, session Session, feed CacheClearer, meta metadata.Repository, log logging.Logger) AuthService {
	return &authService{client: client, session: session, feed: feed, meta: meta, log: log.With("component", "auth")}
}

func (a *authService) Login(ctx context.Context, email, password string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, common.ErrEmptyInput
	}

	resp, err := a.client.Login(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("login error: %w", err)
	}
	if resp.Token == "" {
		return nil, fmt.Errorf("login error: %w", common.ErrInvalidToken)
	}

	if err := a.session.Set(ctx, resp.Token, resp.RefreshToken); err != nil {
		// The in-memory session is usable; only a restart would lose it.
		a.log.Warn(ctx, "tokens not persisted", "error", err)
	}
	a.log.Info(ctx, "logged in", "user", resp.User.ID)
	return &resp.User, nil
}

func (a *authService) Register(ctx context.Context, req models.RegisterRequest) error {
	if req.Email == "" || req.Password == "" {
		return common.ErrEmptyInput
	}
	if err := a.client.Register(ctx, req); err != nil {
		return fmt.Errorf("register error: %w", err)
	}
	return nil
}

func (a *authService) Logout(ctx context.Context) error {
	if a.session.Authenticated() {
		if err := a.client.Logout(ctx); err != nil {
			a.log.Warn(ctx, "remote logout failed", "error", err)
		}
	}

	var errs []error
	if err := a.session.Clear(ctx); err != nil {
		errs = append(errs, err)
	}
	if a.feed != nil {
		if err := a.feed.Clear(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if a.meta != nil {
		if err := a.meta.Delete(ctx, common.KeySocialStats); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (a *authService) CheckSession(ctx context.Context) (bool, error) {
	if !a.session.Authenticated() {
		return false, nil
	}
	if _, err := a.client.Me(ctx); err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (a *authService) CurrentUser(ctx context.Context) (*models.User, error) {
	if !a.session.Authenticated() {
		return nil, common.ErrNoSession
	}
	return a.client.Me(ctx)
}

func (a *authService) UpdateProfile(ctx context.Context, upd models.ProfileUpdate) (*models.User, error) {
	if upd.Empty() {
		return nil, common.ErrEmptyInput
	}
	u, err := a.client.UpdateMe(ctx, upd)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return u, nil
}
