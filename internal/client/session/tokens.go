// Package session keeps the caller's bearer/refresh token pair in memory,
// mirrored to the device key-value store.
package session

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/NomadNiko/nomadsoft-rn-boiler/internal/client/repositories/metadata"
	"github.com/NomadNiko/nomadsoft-rn-boiler/internal/common"
	"github.com/NomadNiko/nomadsoft-rn-boiler/internal/dbx"
)

// TokenStore holds the current token pair. It is safe for concurrent use;
// writes are last-write-wins.
type TokenStore struct {
	db   *sql.DB
	repo metadata.Repository

	mu      sync.RWMutex
	access  string
	refresh string
}

func NewTokenStore(db *sql.DB) *TokenStore {
	return &TokenStore{db: db, repo: metadata.NewSQLiteRepository(db)}
}

// Load restores the persisted pair into memory. Calling it again simply
// re-reads storage.
func (s *TokenStore) Load(ctx context.Context) error {
	access, err := s.repo.Get(ctx, common.KeyAccessToken)
	if err != nil {
		return fmt.Errorf("load access token: %w", err)
	}
	refresh, err := s.repo.Get(ctx, common.KeyRefreshToken)
	if err != nil {
		return fmt.Errorf("load refresh token: %w", err)
	}

	s.mu.Lock()
	s.access, s.refresh = string(access), string(refresh)
	s.mu.Unlock()
	return nil
}

// AccessToken returns the current access token, "" when absent.
func (s *TokenStore) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.access
}

// RefreshToken returns the current refresh token, "" when absent.
func (s *TokenStore) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refresh
}

func (s *TokenStore) Authenticated() bool {
	return s.AccessToken() != ""
}

// Set replaces the pair in memory and persists both values in one
// transaction. Memory is updated even if persisting fails.
func (s *TokenStore) Set(ctx context.Context, access, refresh string) error {
	s.mu.Lock()
	s.access, s.refresh = access, refresh
	s.mu.Unlock()

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, common.KeyAccessToken, []byte(access)); err != nil {
			return err
		}
		return repo.Set(ctx, common.KeyRefreshToken, []byte(refresh))
	})
	if err != nil {
		return fmt.Errorf("persist tokens: %w", err)
	}
	return nil
}

// Clear forgets the pair in memory and in storage.
func (s *TokenStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.access, s.refresh = "", ""
	s.mu.Unlock()

	if err := s.repo.Delete(ctx, common.KeyAccessToken, common.KeyRefreshToken); err != nil {
		return fmt.Errorf("clear tokens: %w", err)
	}
	return nil
}
