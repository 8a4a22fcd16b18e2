package credentials

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/irispredictor/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticStore_Verify(t *testing.T) {
	s, err := NewStaticStore("admin", "s3cret")
	require.NoError(t, err)
	ctx := context.Background()

	tests := []struct {
		name     string
		username string
		password string
		wantErr  error
	}{
		{"exact match", "admin", "s3cret", nil},
		{"wrong password", "admin", "s3cre", common.ErrInvalidCredentials},
		{"wrong username", "Admin", "s3cret", common.ErrInvalidCredentials},
		{"password with trailing space", "admin", "s3cret ", common.ErrInvalidCredentials},
		{"empty", "", "", common.ErrInvalidCredentials},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.Verify(ctx, tt.username, tt.password)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestStaticStore_DoesNotKeepPlaintext(t *testing.T) {
	s, err := NewStaticStore("admin", "s3cret")
	require.NoError(t, err)
	assert.NotContains(t, string(s.hash), "s3cret")
}

func TestNewStaticStore_RequiresIdentity(t *testing.T) {
	_, err := NewStaticStore("", "x")
	assert.Error(t, err)
	_, err = NewStaticStore("x", "")
	assert.Error(t, err)
}
