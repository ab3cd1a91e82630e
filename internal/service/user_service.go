package service

import (
	"context"
	"fmt"
	"strings"

	"marina-server/internal/config"
	"marina-server/shared/interfaces"
	"marina-server/shared/models"

	"go.uber.org/zap"
)

// CreateUserInput is the payload of an account creation.
type CreateUserInput struct {
	Username string
	Email    string
	Password string
}

// UpdateUserInput is a partial profile update. Email is accepted only when it
// equals the current address.
type UpdateUserInput struct {
	Username *string
	Email    *string
	Password *string
}

// UserService manages harbour office accounts.
type UserService interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	GetUser(ctx context.Context, email string) (*models.User, error)
	CreateUser(ctx context.Context, input CreateUserInput) (*models.User, error)
	UpdateUser(ctx context.Context, email string, input UpdateUserInput) (*models.User, error)
	DeleteUser(ctx context.Context, email string) (*models.User, error)
	// EnsureBootstrapUser creates the given account when no user exists yet.
	// It reports whether an account was created.
	EnsureBootstrapUser(ctx context.Context, input CreateUserInput) (bool, error)
}

var _ UserService = (*userServiceImpl)(nil)

type userServiceImpl struct {
	repo      interfaces.UserRepository
	publisher interfaces.EventPublisher
	cfg       *config.Config
	logger    *zap.Logger
}

func NewUserService(repo interfaces.UserRepository, publisher interfaces.EventPublisher, cfg *config.Config, logger *zap.Logger) UserService {
	return &userServiceImpl{
		repo:      repo,
		publisher: publisher,
		cfg:       cfg,
		logger:    logger.Named("UserService"),
	}
}

func (s *userServiceImpl) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (s *userServiceImpl) GetUser(ctx context.Context, email string) (*models.User, error) {
	user, err := s.repo.GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (s *userServiceImpl) CreateUser(ctx context.Context, input CreateUserInput) (*models.User, error) {
	username := strings.TrimSpace(input.Username)
	email := normalizeEmail(input.Email)

	var msgs []string
	msgs = append(msgs, validateUsername(username)...)
	msgs = append(msgs, validateEmail(email)...)
	msgs = append(msgs, validatePassword(input.Password)...)
	if err := models.NewValidationError(msgs...); err != nil {
		return nil, err
	}

	hash, err := hashPassword(input.Password, s.cfg.PasswordPepper, s.cfg.BcryptCost)
	if err != nil {
		s.logger.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{Username: username, Email: email, PasswordHash: hash}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	publishEvent(ctx, s.publisher, s.logger, models.MarinaEvent{
		EventType: models.EventUserCreated,
		Key:       user.Email,
		Data:      user,
	})
	return user, nil
}

func (s *userServiceImpl) UpdateUser(ctx context.Context, email string, input UpdateUserInput) (*models.User, error) {
	email = normalizeEmail(email)

	var (
		msgs []string
		upd  models.UserUpdate
	)
	if input.Email != nil && normalizeEmail(*input.Email) != email {
		msgs = append(msgs, "Email cannot be changed")
	}
	if input.Username != nil {
		username := strings.TrimSpace(*input.Username)
		msgs = append(msgs, validateUsername(username)...)
		upd.Username = &username
	}
	if input.Password != nil {
		msgs = append(msgs, validatePassword(*input.Password)...)
	}
	if err := models.NewValidationError(msgs...); err != nil {
		return nil, err
	}

	if input.Password != nil {
		hash, err := hashPassword(*input.Password, s.cfg.PasswordPepper, s.cfg.BcryptCost)
		if err != nil {
			s.logger.Error("Failed to hash password", zap.Error(err))
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		upd.PasswordHash = &hash
	}
	if upd.IsEmpty() {
		return nil, models.NewValidationError("No updatable fields provided")
	}

	user, err := s.repo.UpdateUserByEmail(ctx, email, upd)
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

func (s *userServiceImpl) DeleteUser(ctx context.Context, email string) (*models.User, error) {
	user, err := s.repo.DeleteUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, fmt.Errorf("failed to delete user: %w", err)
	}
	publishEvent(ctx, s.publisher, s.logger, models.MarinaEvent{
		EventType: models.EventUserDeleted,
		Key:       user.Email,
	})
	return user, nil
}

func (s *userServiceImpl) EnsureBootstrapUser(ctx context.Context, input CreateUserInput) (bool, error) {
	count, err := s.repo.CountUsers(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to count users: %w", err)
	}
	if count > 0 {
		s.logger.Debug("Users already exist, bootstrap account skipped", zap.Int64("count", count))
		return false, nil
	}
	user, err := s.CreateUser(ctx, input)
	if err != nil {
		return false, fmt.Errorf("failed to create bootstrap user: %w", err)
	}
	s.logger.Info("Bootstrap account created", zap.String("email", user.Email))
	return true, nil
}
