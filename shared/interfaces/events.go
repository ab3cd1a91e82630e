package interfaces

import (
	"context"
	"marina-server/shared/models"
)

// EventPublisher publishes domain events (catway, reservation and user changes).
type EventPublisher interface {
	PublishEvent(ctx context.Context, event models.MarinaEvent) error
	Close() error
}
