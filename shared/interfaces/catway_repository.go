package interfaces

import (
	"context"
	"marina-server/shared/models"
)

// CatwayRepository defines persistence of catways keyed by their number.
type CatwayRepository interface {
	// CreateCatway returns models.ErrCatwayAlreadyExists when the number is taken.
	CreateCatway(ctx context.Context, catway *models.Catway) error
	// GetCatwayByNumber returns models.ErrCatwayNotFound when absent.
	GetCatwayByNumber(ctx context.Context, number string) (*models.Catway, error)
	ListCatways(ctx context.Context) ([]models.Catway, error)
	// UpdateCatwayState changes only the state and returns the updated catway.
	UpdateCatwayState(ctx context.Context, number, state string) (*models.Catway, error)
	// DeleteCatwayByNumber returns the deleted catway or models.ErrCatwayNotFound.
	DeleteCatwayByNumber(ctx context.Context, number string) (*models.Catway, error)
}
