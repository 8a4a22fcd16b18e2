// Package common defines the sentinel errors and shared constants used by the
// server and client layers. Callers should match errors with errors.Is.
package common

import "errors"

var (
	// Auth errors.
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrMissingToken       = errors.New("missing token")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token has expired")

	// Request validation errors.
	ErrValidation = errors.New("validation error")

	// Storage errors.
	ErrPersistence = errors.New("database error")
)
