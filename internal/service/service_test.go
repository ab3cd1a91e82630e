package service

import (
	"time"

	"marina-server/internal/config"

	"golang.org/x/crypto/bcrypt"
)

func newTestConfig() *config.Config {
	return &config.Config{
		JWTSecret:      "test-jwt-secret",
		PasswordPepper: "test-pepper",
		TokenTTL:       24 * time.Hour,
		BcryptCost:     bcrypt.MinCost,
	}
}
