package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"marina-server/internal/config"
	"marina-server/shared/interfaces"
	"marina-server/shared/models"

	"go.uber.org/zap"
)

// CreateReservationInput is the payload of a reservation creation. Dates are
// RFC 3339 timestamps or YYYY-MM-DD dates. CatwayNumber is ignored: the
// reservation always belongs to the catway of the URL.
type CreateReservationInput struct {
	CatwayNumber string
	ClientName   string
	BoatName     string
	StartDate    string
	EndDate      string
}

// UpdateReservationInput is a partial reservation update. CatwayNumber is
// accepted only when it equals the current catway.
type UpdateReservationInput struct {
	CatwayNumber *string
	ClientName   *string
	BoatName     *string
	StartDate    *string
	EndDate      *string
}

// ReservationService manages reservations, always scoped to one catway.
type ReservationService interface {
	ListReservations(ctx context.Context, catwayNumber string) ([]models.Reservation, error)
	GetReservation(ctx context.Context, catwayNumber, id string) (*models.Reservation, error)
	CreateReservation(ctx context.Context, catwayNumber string, input CreateReservationInput) (*models.Reservation, error)
	UpdateReservation(ctx context.Context, catwayNumber, id string, input UpdateReservationInput) (*models.Reservation, error)
	DeleteReservation(ctx context.Context, catwayNumber, id string) (*models.Reservation, error)
}

var _ ReservationService = (*reservationServiceImpl)(nil)

type reservationServiceImpl struct {
	repo         interfaces.ReservationRepository
	catwayRepo   interfaces.CatwayRepository
	publisher    interfaces.EventPublisher
	overlapCheck bool
	logger       *zap.Logger
}

func NewReservationService(
	repo interfaces.ReservationRepository,
	catwayRepo interfaces.CatwayRepository,
	publisher interfaces.EventPublisher,
	cfg *config.Config,
	logger *zap.Logger,
) ReservationService {
	return &reservationServiceImpl{
		repo:         repo,
		catwayRepo:   catwayRepo,
		publisher:    publisher,
		overlapCheck: cfg.ReservationOverlapCheck,
		logger:       logger.Named("ReservationService"),
	}
}

func (s *reservationServiceImpl) ListReservations(ctx context.Context, catwayNumber string) ([]models.Reservation, error) {
	reservations, err := s.repo.ListReservationsByCatway(ctx, strings.TrimSpace(catwayNumber))
	if err != nil {
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}
	return reservations, nil
}

func (s *reservationServiceImpl) GetReservation(ctx context.Context, catwayNumber, id string) (*models.Reservation, error) {
	reservation, err := s.repo.GetReservation(ctx, strings.TrimSpace(catwayNumber), id)
	if err != nil {
		return nil, fmt.Errorf("failed to get reservation: %w", err)
	}
	return reservation, nil
}

func (s *reservationServiceImpl) CreateReservation(ctx context.Context, catwayNumber string, input CreateReservationInput) (*models.Reservation, error) {
	catwayNumber = strings.TrimSpace(catwayNumber)
	// The catway is checked before the body, a missing catway is always 404.
	if _, err := s.catwayRepo.GetCatwayByNumber(ctx, catwayNumber); err != nil {
		return nil, fmt.Errorf("failed to check catway: %w", err)
	}

	reservation := &models.Reservation{
		CatwayNumber: catwayNumber,
		ClientName:   strings.TrimSpace(input.ClientName),
		BoatName:     strings.TrimSpace(input.BoatName),
	}
	var msgs []string
	if reservation.ClientName == "" {
		msgs = append(msgs, "Client name is required")
	}
	if reservation.BoatName == "" {
		msgs = append(msgs, "Boat name is required")
	}
	reservation.StartDate = requiredDate("Start date", input.StartDate, &msgs)
	reservation.EndDate = requiredDate("End date", input.EndDate, &msgs)
	if len(msgs) == 0 && !reservation.StartDate.Before(reservation.EndDate) {
		msgs = append(msgs, "End date must be after start date")
	}
	if err := models.NewValidationError(msgs...); err != nil {
		return nil, err
	}

	if err := s.ensureNoOverlap(ctx, catwayNumber, reservation.StartDate, reservation.EndDate, ""); err != nil {
		return nil, err
	}

	if err := s.repo.CreateReservation(ctx, reservation); err != nil {
		return nil, fmt.Errorf("failed to create reservation: %w", err)
	}

	publishEvent(ctx, s.publisher, s.logger, models.MarinaEvent{
		EventType:    models.EventReservationCreated,
		Key:          reservation.ID.Hex(),
		CatwayNumber: catwayNumber,
		Data:         reservation,
	})
	return reservation, nil
}

func (s *reservationServiceImpl) UpdateReservation(ctx context.Context, catwayNumber, id string, input UpdateReservationInput) (*models.Reservation, error) {
	catwayNumber = strings.TrimSpace(catwayNumber)

	var (
		msgs []string
		upd  models.ReservationUpdate
	)
	if input.CatwayNumber != nil && strings.TrimSpace(*input.CatwayNumber) != catwayNumber {
		msgs = append(msgs, "Catway number cannot be changed")
	}
	if input.ClientName != nil {
		name := strings.TrimSpace(*input.ClientName)
		if name == "" {
			msgs = append(msgs, "Client name is required")
		}
		upd.ClientName = &name
	}
	if input.BoatName != nil {
		name := strings.TrimSpace(*input.BoatName)
		if name == "" {
			msgs = append(msgs, "Boat name is required")
		}
		upd.BoatName = &name
	}
	if input.StartDate != nil {
		start := requiredDate("Start date", *input.StartDate, &msgs)
		upd.StartDate = &start
	}
	if input.EndDate != nil {
		end := requiredDate("End date", *input.EndDate, &msgs)
		upd.EndDate = &end
	}
	if err := models.NewValidationError(msgs...); err != nil {
		return nil, err
	}
	if upd.IsEmpty() {
		return nil, models.NewValidationError("No updatable fields provided")
	}

	current, err := s.repo.GetReservation(ctx, catwayNumber, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get reservation: %w", err)
	}

	if upd.StartDate != nil || upd.EndDate != nil {
		start, end := current.StartDate, current.EndDate
		if upd.StartDate != nil {
			start = *upd.StartDate
		}
		if upd.EndDate != nil {
			end = *upd.EndDate
		}
		if !start.Before(end) {
			return nil, models.NewValidationError("End date must be after start date")
		}
		if err := s.ensureNoOverlap(ctx, catwayNumber, start, end, id); err != nil {
			return nil, err
		}
	}

	reservation, err := s.repo.UpdateReservation(ctx, catwayNumber, id, upd)
	if err != nil {
		return nil, fmt.Errorf("failed to update reservation: %w", err)
	}

	publishEvent(ctx, s.publisher, s.logger, models.MarinaEvent{
		EventType:    models.EventReservationUpdated,
		Key:          reservation.ID.Hex(),
		CatwayNumber: catwayNumber,
		Data:         reservation,
	})
	return reservation, nil
}

func (s *reservationServiceImpl) DeleteReservation(ctx context.Context, catwayNumber, id string) (*models.Reservation, error) {
	catwayNumber = strings.TrimSpace(catwayNumber)
	reservation, err := s.repo.DeleteReservation(ctx, catwayNumber, id)
	if err != nil {
		return nil, fmt.Errorf("failed to delete reservation: %w", err)
	}
	publishEvent(ctx, s.publisher, s.logger, models.MarinaEvent{
		EventType:    models.EventReservationDeleted,
		Key:          reservation.ID.Hex(),
		CatwayNumber: catwayNumber,
	})
	return reservation, nil
}

// ensureNoOverlap is a no-op unless RESERVATION_OVERLAP_CHECK is enabled.
func (s *reservationServiceImpl) ensureNoOverlap(ctx context.Context, catwayNumber string, start, end time.Time, excludeID string) error {
	if !s.overlapCheck {
		return nil
	}
	other, err := s.repo.FindOverlapping(ctx, catwayNumber, start, end, excludeID)
	if err != nil {
		return fmt.Errorf("failed to check overlapping reservations: %w", err)
	}
	if other != nil {
		s.logger.Info("Reservation rejected: overlapping period",
			zap.String("catwayNumber", catwayNumber),
			zap.String("conflictsWith", other.ID.Hex()),
		)
		return models.ErrReservationOverlap
	}
	return nil
}
