// Package credentials holds the identities allowed to log in. Today that is a
// single principal seeded from configuration.
package credentials

import (
	"context"
	"crypto/subtle"
	"fmt"

	"github.com/dmitrijs2005/irispredictor/internal/common"
	"golang.org/x/crypto/bcrypt"
)

// Store verifies a username/password pair.
type Store interface {
	// Verify returns nil on an exact match and common.ErrInvalidCredentials
	// otherwise.
	Verify(ctx context.Context, username, password string) error
}

// StaticStore is a Store with exactly one seeded entry. Only a bcrypt hash of
// the password is retained.
type StaticStore struct {
	username string
	hash     []byte
}

var _ Store = (*StaticStore)(nil)

// NewStaticStore seeds the store with one identity.
func NewStaticStore(username, password string) (*StaticStore, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("empty test identity")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}
	return &StaticStore{username: username, hash: hash}, nil
}

func (s *StaticStore) Verify(_ context.Context, username, password string) error {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) == 1
	passErr := bcrypt.CompareHashAndPassword(s.hash, []byte(password))
	if !userOK || passErr != nil {
		return common.ErrInvalidCredentials
	}
	return nil
}
