package client

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/plana/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/plana/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Tokens is the pair of JWTs issued by the API.
type Tokens struct {
	Access  string
	Refresh string
}

// TokenStore persists the current token pair between runs.
type TokenStore interface {
	Tokens(ctx context.Context) (Tokens, error)
	// Save stores the non-empty fields of t and keeps the others.
	Save(ctx context.Context, t Tokens) error
	Clear(ctx context.Context) error
}

// MetadataTokenStore keeps tokens in the local metadata table.
type MetadataTokenStore struct {
	repo metadata.Repository
}

func NewMetadataTokenStore(repo metadata.Repository) *MetadataTokenStore {
	return &MetadataTokenStore{repo: repo}
}

func (s *MetadataTokenStore) Tokens(ctx context.Context) (Tokens, error) {
	var t Tokens
	var err error
	if t.Access, _, err = s.repo.Get(ctx, common.AccessTokenKey); err != nil {
		return Tokens{}, fmt.Errorf("%w: %v", ErrLocalDataNotAvailable, err)
	}
	if t.Refresh, _, err = s.repo.Get(ctx, common.RefreshTokenKey); err != nil {
		return Tokens{}, fmt.Errorf("%w: %v", ErrLocalDataNotAvailable, err)
	}
	return t, nil
}

func (s *MetadataTokenStore) Save(ctx context.Context, t Tokens) error {
	values := make(map[string]string, 2)
	if t.Access != "" {
		values[common.AccessTokenKey] = t.Access
	}
	if t.Refresh != "" {
		values[common.RefreshTokenKey] = t.Refresh
	}
	if len(values) == 0 {
		return nil
	}
	return s.repo.SetMany(ctx, values)
}

func (s *MetadataTokenStore) Clear(ctx context.Context) error {
	return s.repo.Delete(ctx, common.AccessTokenKey, common.RefreshTokenKey)
}

// accessExpired reports whether the token's exp claim is in the past.
// The signature is not verified here; the API still validates the token.
func accessExpired(token string, now time.Time) bool {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return !claims.ExpiresAt.After(now)
}
