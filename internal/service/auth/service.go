package auth

import (
	"context"
	"fmt"

	"github.com/staffdesk/staffdesk/internal/domain/auth"
	"github.com/staffdesk/staffdesk/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	credentials auth.CredentialChecker
	jwt.Service
}

func NewAuthService(credentials auth.CredentialChecker, jwtService jwt.Service) auth.AuthService {
	return &AuthServiceImpl{
		credentials: credentials,
		Service:     jwtService,
	}
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, loginReq auth.LoginRequest) (auth.TokenResponse, error) {
	if err := a.credentials.Check(ctx, loginReq.Username, loginReq.Password); err != nil {
		return auth.TokenResponse{}, err
	}

	token, _, err := a.Service.GenerateAccessToken(loginReq.Username)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}

	return auth.TokenResponse{Token: token}, nil
}

// AdminCredential accepts exactly one username/password pair. The password is
// bcrypt-hashed at construction so the plaintext is not retained.
type AdminCredential struct {
	username     string
	passwordHash []byte
}

func NewAdminCredential(username, password string) (*AdminCredential, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash admin password: %w", err)
	}
	return &AdminCredential{username: username, passwordHash: hash}, nil
}

// Check implements auth.CredentialChecker.
func (c *AdminCredential) Check(ctx context.Context, username, password string) error {
	if username != c.username {
		return auth.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(c.passwordHash, []byte(password)); err != nil {
		return auth.ErrInvalidCredentials
	}
	return nil
}
