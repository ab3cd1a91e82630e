package interfaces

import (
	"context"
	"time"
)

// TokenRepository keeps the list of tokens revoked before their expiry.
type TokenRepository interface {
	// RevokeToken marks tokenID as revoked for ttl. A non-positive ttl is a no-op.
	RevokeToken(ctx context.Context, tokenID string, ttl time.Duration) error
	IsTokenRevoked(ctx context.Context, tokenID string) (bool, error)
}
