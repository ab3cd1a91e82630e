package service

import (
	"context"
	"time"

	"marina-server/shared/interfaces"
	"marina-server/shared/models"

	"go.uber.org/zap"
)

const publishTimeout = 3 * time.Second

// publishEvent sends event and only logs failures: a broker outage never fails a request.
func publishEvent(ctx context.Context, publisher interfaces.EventPublisher, logger *zap.Logger, event models.MarinaEvent) {
	if publisher == nil {
		return
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := publisher.PublishEvent(pubCtx, event); err != nil {
		logger.Warn("Failed to publish event",
			zap.String("eventType", string(event.EventType)),
			zap.String("key", event.Key),
			zap.Error(err),
		)
	}
}
