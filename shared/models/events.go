package models

import "time"

// EventType identifies a domain change published to the message broker.
// Values double as AMQP routing keys.
type EventType string

const (
	EventCatwayCreated      EventType = "catway.created"
	EventCatwayUpdated      EventType = "catway.updated"
	EventCatwayDeleted      EventType = "catway.deleted"
	EventReservationCreated EventType = "reservation.created"
	EventReservationUpdated EventType = "reservation.updated"
	EventReservationDeleted EventType = "reservation.deleted"
	EventUserCreated        EventType = "user.created"
	EventUserDeleted        EventType = "user.deleted"
)

// MarinaEvent is the payload of a published domain event.
type MarinaEvent struct {
	EventType    EventType `json:"event_type"`
	Key          string    `json:"key"`                     // catway number, reservation id or user email
	CatwayNumber string    `json:"catway_number,omitempty"` // set for catway and reservation events
	OccurredAt   time.Time `json:"occurred_at"`
	Data         any       `json:"data,omitempty"` // omitted for delete events
}
