package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"marina-server/shared/interfaces"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Compile-time check to ensure redisTokenRepository implements TokenRepository
var _ interfaces.TokenRepository = (*redisTokenRepository)(nil)

const revokedTokenKeyPrefix = "revoked_token:"

type redisTokenRepository struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisTokenRepository creates a Redis-backed revocation list.
func NewRedisTokenRepository(client *redis.Client, logger *zap.Logger) interfaces.TokenRepository {
	return &redisTokenRepository{
		client: client,
		logger: logger.Named("RedisTokenRepo"),
	}
}

func revokedTokenKey(tokenID string) string {
	return revokedTokenKeyPrefix + tokenID
}

func (r *redisTokenRepository) RevokeToken(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := r.client.Set(ctx, revokedTokenKey(tokenID), "1", ttl).Err(); err != nil {
		r.logger.Error("Failed to store revoked token", zap.String("tokenID", tokenID), zap.Error(err))
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	r.logger.Debug("Token revoked", zap.String("tokenID", tokenID), zap.Duration("ttl", ttl))
	return nil
}

func (r *redisTokenRepository) IsTokenRevoked(ctx context.Context, tokenID string) (bool, error) {
	_, err := r.client.Get(ctx, revokedTokenKey(tokenID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		r.logger.Error("Failed to check revoked token", zap.String("tokenID", tokenID), zap.Error(err))
		return false, fmt.Errorf("failed to check token revocation: %w", err)
	}
	return true, nil
}
