package auth

import (
	"context"
	"testing"

	"github.com/staffdesk/staffdesk/internal/domain/auth"
	"github.com/staffdesk/staffdesk/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testAccessExp = "1h"
	testSecret    = "test-secret-key-for-jwt"
)

func newTestAuthService(t *testing.T) auth.AuthService {
	credential, err := NewAdminCredential("admin", "password")
	require.NoError(t, err)
	return NewAuthService(credential, jwt.NewJWTService(testSecret, testAccessExp))
}

func TestAuthService_Login_Success(t *testing.T) {
	ctx := context.Background()
	authService := newTestAuthService(t)

	response, err := authService.Login(ctx, auth.LoginRequest{Username: "admin", Password: "password"})

	assert.NoError(t, err)
	assert.NotEmpty(t, response.Token)
}

func TestAuthService_Login_InvalidPairs(t *testing.T) {
	ctx := context.Background()
	authService := newTestAuthService(t)

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"wrong password", "admin", "wrongpassword"},
		{"wrong username", "root", "password"},
		{"both wrong", "root", "hunter2"},
		{"empty password", "admin", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := authService.Login(ctx, auth.LoginRequest{Username: tt.username, Password: tt.password})
			assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
		})
	}
}

func TestAdminCredential_CheckerIsSwappable(t *testing.T) {
	// AuthService only sees the CredentialChecker interface; any
	// implementation can stand in for the fixed admin pair.
	var _ auth.CredentialChecker = (*AdminCredential)(nil)
}
