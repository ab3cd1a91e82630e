package interfaces

import (
	"context"
	"marina-server/shared/models"
	"time"
)

// ReservationRepository defines persistence of reservations. Every lookup by ID
// is scoped to a catway number, so a reservation is only reachable through the
// catway it belongs to.
type ReservationRepository interface {
	CreateReservation(ctx context.Context, reservation *models.Reservation) error
	ListReservationsByCatway(ctx context.Context, catwayNumber string) ([]models.Reservation, error)
	// GetReservation returns models.ErrReservationNotFound when the ID is malformed,
	// unknown, or belongs to another catway.
	GetReservation(ctx context.Context, catwayNumber, id string) (*models.Reservation, error)
	UpdateReservation(ctx context.Context, catwayNumber, id string, upd models.ReservationUpdate) (*models.Reservation, error)
	DeleteReservation(ctx context.Context, catwayNumber, id string) (*models.Reservation, error)
	// FindOverlapping returns the first reservation of the catway whose period
	// intersects [start, end), ignoring excludeID (may be empty). Nil when none.
	FindOverlapping(ctx context.Context, catwayNumber string, start, end time.Time, excludeID string) (*models.Reservation, error)
}
