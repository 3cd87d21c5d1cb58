package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"todolist/internal/model"
	"todolist/internal/repository"
)

// ErrTokenNotAllowlisted is returned when a token id has no live allowlist entry.
var ErrTokenNotAllowlisted = errors.New("token not allowlisted")

// TokenStoreInterface defines the interface for token allowlist operations.
type TokenStoreInterface interface {
	Allow(ctx context.Context, token *IssuedToken, userID uint) error
	Lookup(ctx context.Context, jti, aud string) (*model.AllowlistedJWT, error)
	Revoke(ctx context.Context, jti, aud string, userID uint) error
	PurgeExpired(ctx context.Context) (int64, error)
}

// TokenStore keeps the allowlist of issued token ids in the database.
type TokenStore struct {
	repo repository.AllowlistedJWTRepository
	now  func() time.Time
}

// Ensure TokenStore implements TokenStoreInterface
var _ TokenStoreInterface = (*TokenStore)(nil)

// NewTokenStore creates a new token store. A nil clock means time.Now.
func NewTokenStore(repo repository.AllowlistedJWTRepository, now func() time.Time) *TokenStore {
	if now == nil {
		now = time.Now
	}
	return &TokenStore{repo: repo, now: now}
}

// Allow records an issued token so it is accepted until it expires or is revoked.
func (s *TokenStore) Allow(ctx context.Context, token *IssuedToken, userID uint) error {
	entry := &model.AllowlistedJWT{
		JTI:    token.JTI,
		Aud:    token.Aud,
		Exp:    token.ExpiresAt,
		UserID: userID,
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		return fmt.Errorf("allowlist token: %w", err)
	}
	return nil
}

// Lookup returns the live allowlist entry for jti and aud.
func (s *TokenStore) Lookup(ctx context.Context, jti, aud string) (*model.AllowlistedJWT, error) {
	entry, err := s.repo.FindByJTI(ctx, jti, aud)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTokenNotAllowlisted
	}
	if err != nil {
		return nil, fmt.Errorf("lookup token: %w", err)
	}
	if !entry.Exp.After(s.now()) {
		return nil, ErrTokenNotAllowlisted
	}
	return entry, nil
}

// Revoke removes the entry for jti. Revoking an unknown token is not an error.
func (s *TokenStore) Revoke(ctx context.Context, jti, aud string, userID uint) error {
	if _, err := s.repo.Delete(ctx, jti, aud, userID); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// PurgeExpired deletes entries whose expiry has passed.
func (s *TokenStore) PurgeExpired(ctx context.Context) (int64, error) {
	n, err := s.repo.DeleteExpired(ctx, s.now())
	if err != nil {
		return 0, fmt.Errorf("purge expired tokens: %w", err)
	}
	return n, nil
}
