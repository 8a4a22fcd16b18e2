// Package auth mints and parses the service's signed access tokens (JWT,
// HMAC family).
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/irispredictor/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims carries the registered claims plus the login name. Subject and
// Username hold the same value.
type Claims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
}

// Signer issues and validates tokens with one secret and one algorithm.
type Signer struct {
	secret []byte
	method jwt.SigningMethod
	ttl    time.Duration
	now    func() time.Time
}

// SignerOption customizes a Signer.
type SignerOption func(*Signer)

// WithClock replaces time.Now, used by tests to move past expiry.
func WithClock(now func() time.Time) SignerOption {
	return func(s *Signer) { s.now = now }
}

// NewSigner returns a Signer for an HMAC algorithm name ("HS256", "HS384",
// "HS512").
func NewSigner(secret []byte, algorithm string, ttl time.Duration, opts ...SignerOption) (*Signer, error) {
	method, ok := jwt.GetSigningMethod(algorithm).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("unsupported signing algorithm %q", algorithm)
	}
	if len(secret) == 0 {
		return nil, errors.New("empty signing secret")
	}

	s := &Signer{secret: secret, method: method, ttl: ttl, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// TTL returns the configured token lifetime.
func (s *Signer) TTL() time.Duration {
	return s.ttl
}

// GenerateToken signs a token for username valid for the configured TTL.
func (s *Signer) GenerateToken(username string) (string, *Claims, error) {
	issuedAt := s.now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.ttl)),
		},
		Username: username,
	}

	tokenString, err := jwt.NewWithClaims(s.method, claims).SignedString(s.secret)
	if err != nil {
		return "", nil, err
	}
	return tokenString, claims, nil
}

// ParseToken verifies signature, algorithm and expiry and returns the claims.
//
// Errors: common.ErrMissingToken for "", common.ErrTokenExpired once
// now >= exp, common.ErrInvalidToken for everything else (bad signature,
// other algorithm, malformed, no exp, no subject).
func (s *Signer) ParseToken(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, common.ErrMissingToken
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) {
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{s.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	if !token.Valid || claims.Subject == "" {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
