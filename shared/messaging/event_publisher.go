package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"marina-server/shared/interfaces"
	"marina-server/shared/models"

	"github.com/google/uuid"
	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// DefaultEventsExchange is the topic exchange marina events are published to.
const DefaultEventsExchange = "marina_events"

var _ interfaces.EventPublisher = (*RabbitMQEventPublisher)(nil)

// RabbitMQEventPublisher publishes domain events to a durable topic exchange.
// The event type is the routing key. The connection is owned by the caller.
type RabbitMQEventPublisher struct {
	ch       *amqp091.Channel
	exchange string
	logger   *zap.Logger
}

// NewRabbitMQEventPublisher opens a channel on conn and declares the exchange.
func NewRabbitMQEventPublisher(conn *amqp091.Connection, exchange string, logger *zap.Logger) (*RabbitMQEventPublisher, error) {
	if conn == nil {
		return nil, fmt.Errorf("rabbitmq connection is nil")
	}
	if exchange == "" {
		exchange = DefaultEventsExchange
	}
	log := logger.Named("EventPublisher")

	ch, err := conn.Channel()
	if err != nil {
		log.Error("Failed to open a channel", zap.Error(err))
		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		exchange, // name
		"topic",  // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		_ = ch.Close()
		log.Error("Failed to declare exchange", zap.String("exchange", exchange), zap.Error(err))
		return nil, fmt.Errorf("failed to declare exchange '%s': %w", exchange, err)
	}

	log.Info("Events exchange declared", zap.String("exchange", exchange))
	return &RabbitMQEventPublisher{ch: ch, exchange: exchange, logger: log}, nil
}

// PublishEvent publishes event with its type as routing key.
func (p *RabbitMQEventPublisher) PublishEvent(ctx context.Context, event models.MarinaEvent) error {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}
	body, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("Failed to marshal event", zap.String("eventType", string(event.EventType)), zap.Error(err))
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	err = p.ch.PublishWithContext(ctx,
		p.exchange,
		string(event.EventType),
		false, // mandatory
		false, // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			MessageId:    uuid.NewString(),
			Timestamp:    event.OccurredAt,
			Body:         body,
		},
	)
	if err != nil {
		p.logger.Error("Failed to publish event",
			zap.String("eventType", string(event.EventType)),
			zap.String("key", event.Key),
			zap.Error(err),
		)
		return fmt.Errorf("failed to publish event: %w", err)
	}

	p.logger.Debug("Event published", zap.String("eventType", string(event.EventType)), zap.String("key", event.Key))
	return nil
}

// Close closes the channel. The connection stays open.
func (p *RabbitMQEventPublisher) Close() error {
	if p.ch != nil {
		return p.ch.Close()
	}
	return nil
}

// NoopEventPublisher drops every event. Used when no broker is configured.
type NoopEventPublisher struct{}

var _ interfaces.EventPublisher = NoopEventPublisher{}

func (NoopEventPublisher) PublishEvent(context.Context, models.MarinaEvent) error { return nil }
func (NoopEventPublisher) Close() error                                           { return nil }
