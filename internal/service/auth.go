package service

import (
	"context"

	"marina-server/shared/models"
)

// AuthService defines the interface for authentication and token handling.
type AuthService interface {
	// Login checks the credentials and issues a bearer token. Unknown email and
	// wrong password both return models.ErrInvalidCredentials.
	Login(ctx context.Context, email, password string) (*models.LoginResult, error)
	// Logout revokes the token described by claims until it would have expired.
	Logout(ctx context.Context, claims *models.Claims) error
	// VerifyToken checks signature, expiry, claims shape and revocation.
	VerifyToken(ctx context.Context, tokenString string) (*models.Claims, error)
	// Authenticate verifies the token and resolves its user.
	Authenticate(ctx context.Context, tokenString string) (*models.User, *models.Claims, error)
	IssueToken(ctx context.Context, user *models.User) (*models.TokenDetails, error)
}
