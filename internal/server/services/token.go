// Package services contains server-side business logic. This file implements
// TokenService, which checks credentials and issues/validates access tokens.
package services

import (
	"context"

	"github.com/dmitrijs2005/irispredictor/internal/server/auth"
	"github.com/dmitrijs2005/irispredictor/internal/server/credentials"
)

// TokenValidator validates bearer tokens. PredictionService depends on this
// rather than on TokenService directly.
type TokenValidator interface {
	Validate(token string) (*auth.Claims, error)
}

// TokenService issues access tokens for known credentials.
type TokenService struct {
	credentials credentials.Store
	signer      *auth.Signer
}

var _ TokenValidator = (*TokenService)(nil)

// NewTokenService constructs a TokenService.
func NewTokenService(store credentials.Store, signer *auth.Signer) *TokenService {
	return &TokenService{credentials: store, signer: signer}
}

// Issue verifies username/password and returns a signed token whose subject
// is username. A mismatch yields common.ErrInvalidCredentials.
func (s *TokenService) Issue(ctx context.Context, username, password string) (string, error) {
	if err := s.credentials.Verify(ctx, username, password); err != nil {
		return "", err
	}
	token, _, err := s.signer.GenerateToken(username)
	if err != nil {
		return "", err
	}
	return token, nil
}

// Validate returns the token's claims, or one of common.ErrMissingToken,
// common.ErrInvalidToken, common.ErrTokenExpired.
func (s *TokenService) Validate(token string) (*auth.Claims, error) {
	return s.signer.ParseToken(token)
}
