package auth

import (
	"context"
)

type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)
}

// CredentialChecker decides whether a username/password pair is accepted.
// The reference deployment uses a single fixed admin credential; a real user
// store can be swapped in without touching AuthService callers.
type CredentialChecker interface {
	Check(ctx context.Context, username, password string) error
}
