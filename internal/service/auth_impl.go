package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"marina-server/internal/config"
	"marina-server/shared/interfaces"
	"marina-server/shared/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	tokenIssuer = "marina-server"
	// dummyPassword is hashed once so unknown emails still pay for a bcrypt comparison.
	dummyPassword = "marina-server-dummy-password"
)

// Compile-time check to ensure authServiceImpl implements AuthService
var _ AuthService = (*authServiceImpl)(nil)

type authServiceImpl struct {
	userRepo  interfaces.UserRepository
	tokenRepo interfaces.TokenRepository
	cfg       *config.Config
	logger    *zap.Logger
	now       func() time.Time

	// comparePassword is checkPasswordHash outside of tests.
	comparePassword func(password, hash, pepper string) bool
	dummyHash       string
}

// NewAuthService creates a new instance of authServiceImpl.
func NewAuthService(userRepo interfaces.UserRepository, tokenRepo interfaces.TokenRepository, cfg *config.Config, logger *zap.Logger) AuthService {
	s := &authServiceImpl{
		userRepo:        userRepo,
		tokenRepo:       tokenRepo,
		cfg:             cfg,
		logger:          logger.Named("AuthService"),
		now:             time.Now,
		comparePassword: checkPasswordHash,
	}
	dummyHash, err := hashPassword(dummyPassword, cfg.PasswordPepper, cfg.BcryptCost)
	if err != nil {
		s.logger.Error("Failed to precompute dummy password hash", zap.Error(err))
	}
	s.dummyHash = dummyHash
	return s
}

func (s *authServiceImpl) Login(ctx context.Context, email, password string) (*models.LoginResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, models.NewValidationError("Email and password are required")
	}

	s.logger.Info("Login attempt", zap.String("email", email))
	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			s.logger.Warn("Login failed: user not found", zap.String("email", email))
			s.comparePassword(password, s.dummyHash, s.cfg.PasswordPepper)
			return nil, models.ErrInvalidCredentials
		}
		s.logger.Error("Login failed: error getting user from repository", zap.Error(err), zap.String("email", email))
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !s.comparePassword(password, user.PasswordHash, s.cfg.PasswordPepper) {
		s.logger.Warn("Login failed: invalid password", zap.String("email", email), zap.String("userID", user.ID.Hex()))
		return nil, models.ErrInvalidCredentials
	}

	td, err := s.IssueToken(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info("User logged in successfully", zap.String("userID", user.ID.Hex()))
	return &models.LoginResult{Token: td, User: user}, nil
}

func (s *authServiceImpl) Logout(ctx context.Context, claims *models.Claims) error {
	if claims == nil || claims.ID == "" {
		return models.ErrTokenInvalid
	}
	var ttl time.Duration
	if claims.ExpiresAt != nil {
		ttl = claims.ExpiresAt.Sub(s.now())
	}
	if err := s.tokenRepo.RevokeToken(ctx, claims.ID, ttl); err != nil {
		s.logger.Error("Failed to revoke token during logout", zap.String("tokenID", claims.ID), zap.Error(err))
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	s.logger.Info("User logged out", zap.String("userID", claims.UserID), zap.String("tokenID", claims.ID))
	return nil
}

// VerifyToken parses and validates a bearer token string.
func (s *authServiceImpl) VerifyToken(ctx context.Context, tokenString string) (*models.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	}, jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			s.logger.Debug("Token verification failed: expired")
			return nil, models.ErrTokenExpired
		}
		if errors.Is(err, jwt.ErrTokenMalformed) {
			s.logger.Warn("Token verification failed: malformed")
			return nil, models.ErrTokenMalformed
		}
		s.logger.Warn("Failed to parse token", zap.Error(err))
		return nil, models.ErrTokenInvalid
	}

	claims, ok := token.Claims.(*models.Claims)
	if !ok || !token.Valid || claims.UserID == "" || claims.ID == "" {
		s.logger.Warn("Token verification failed: invalid claims")
		return nil, models.ErrTokenInvalid
	}

	revoked, err := s.tokenRepo.IsTokenRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("error checking token revocation: %w", err)
	}
	if revoked {
		s.logger.Debug("Token was revoked", zap.String("tokenID", claims.ID))
		return nil, models.ErrTokenInvalid
	}
	return claims, nil
}

func (s *authServiceImpl) Authenticate(ctx context.Context, tokenString string) (*models.User, *models.Claims, error) {
	claims, err := s.VerifyToken(ctx, tokenString)
	if err != nil {
		return nil, nil, err
	}
	user, err := s.userRepo.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			s.logger.Warn("Token refers to a user that no longer exists", zap.String("userID", claims.UserID))
			return nil, nil, models.ErrTokenInvalid
		}
		return nil, nil, fmt.Errorf("failed to resolve token user: %w", err)
	}
	return user, claims, nil
}

// IssueToken signs an HS256 token bound to the user id.
func (s *authServiceImpl) IssueToken(_ context.Context, user *models.User) (*models.TokenDetails, error) {
	now := s.now()
	userID := user.ID.Hex()
	td := &models.TokenDetails{
		TokenID:   uuid.NewString(),
		ExpiresAt: now.Add(s.cfg.TokenTTL).UTC(),
	}

	claims := &models.Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        td.TokenID,
			Subject:   userID,
			Issuer:    tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(td.ExpiresAt),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		s.logger.Error("Failed to sign token", zap.Error(err), zap.String("userID", userID))
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}
	td.AccessToken = signed
	return td, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
