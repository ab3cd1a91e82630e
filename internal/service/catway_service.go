package service

import (
	"context"
	"fmt"
	"strings"

	"marina-server/shared/interfaces"
	"marina-server/shared/models"

	"go.uber.org/zap"
)

// CreateCatwayInput is the payload of a catway creation.
type CreateCatwayInput struct {
	Number string
	Type   string
	State  string
}

// CatwayService manages berths. Only the state of a catway is mutable.
type CatwayService interface {
	ListCatways(ctx context.Context) ([]models.Catway, error)
	GetCatway(ctx context.Context, number string) (*models.Catway, error)
	CreateCatway(ctx context.Context, input CreateCatwayInput) (*models.Catway, error)
	UpdateCatwayState(ctx context.Context, number string, state *string) (*models.Catway, error)
	// DeleteCatway removes the catway. Its reservations are left in place.
	DeleteCatway(ctx context.Context, number string) (*models.Catway, error)
}

var _ CatwayService = (*catwayServiceImpl)(nil)

type catwayServiceImpl struct {
	repo      interfaces.CatwayRepository
	publisher interfaces.EventPublisher
	logger    *zap.Logger
}

func NewCatwayService(repo interfaces.CatwayRepository, publisher interfaces.EventPublisher, logger *zap.Logger) CatwayService {
	return &catwayServiceImpl{
		repo:      repo,
		publisher: publisher,
		logger:    logger.Named("CatwayService"),
	}
}

func (s *catwayServiceImpl) ListCatways(ctx context.Context) ([]models.Catway, error) {
	catways, err := s.repo.ListCatways(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list catways: %w", err)
	}
	return catways, nil
}

func (s *catwayServiceImpl) GetCatway(ctx context.Context, number string) (*models.Catway, error) {
	catway, err := s.repo.GetCatwayByNumber(ctx, strings.TrimSpace(number))
	if err != nil {
		return nil, fmt.Errorf("failed to get catway: %w", err)
	}
	return catway, nil
}

func (s *catwayServiceImpl) CreateCatway(ctx context.Context, input CreateCatwayInput) (*models.Catway, error) {
	catway := &models.Catway{
		Number: strings.TrimSpace(input.Number),
		Type:   models.CatwayType(strings.TrimSpace(input.Type)),
		State:  strings.TrimSpace(input.State),
	}

	var msgs []string
	if catway.Number == "" {
		msgs = append(msgs, "Catway number is required")
	}
	if !catway.Type.Valid() {
		msgs = append(msgs, "Catway type must be 'long' or 'short'")
	}
	msgs = append(msgs, validateCatwayState(catway.State)...)
	if err := models.NewValidationError(msgs...); err != nil {
		return nil, err
	}

	if err := s.repo.CreateCatway(ctx, catway); err != nil {
		return nil, fmt.Errorf("failed to create catway: %w", err)
	}

	publishEvent(ctx, s.publisher, s.logger, models.MarinaEvent{
		EventType:    models.EventCatwayCreated,
		Key:          catway.Number,
		CatwayNumber: catway.Number,
		Data:         catway,
	})
	return catway, nil
}

func (s *catwayServiceImpl) UpdateCatwayState(ctx context.Context, number string, state *string) (*models.Catway, error) {
	var newState string
	if state != nil {
		newState = strings.TrimSpace(*state)
	}
	if err := models.NewValidationError(validateCatwayState(newState)...); err != nil {
		return nil, err
	}

	number = strings.TrimSpace(number)
	catway, err := s.repo.UpdateCatwayState(ctx, number, newState)
	if err != nil {
		return nil, fmt.Errorf("failed to update catway: %w", err)
	}

	publishEvent(ctx, s.publisher, s.logger, models.MarinaEvent{
		EventType:    models.EventCatwayUpdated,
		Key:          catway.Number,
		CatwayNumber: catway.Number,
		Data:         catway,
	})
	return catway, nil
}

func (s *catwayServiceImpl) DeleteCatway(ctx context.Context, number string) (*models.Catway, error) {
	catway, err := s.repo.DeleteCatwayByNumber(ctx, strings.TrimSpace(number))
	if err != nil {
		return nil, fmt.Errorf("failed to delete catway: %w", err)
	}
	publishEvent(ctx, s.publisher, s.logger, models.MarinaEvent{
		EventType:    models.EventCatwayDeleted,
		Key:          catway.Number,
		CatwayNumber: catway.Number,
	})
	return catway, nil
}
