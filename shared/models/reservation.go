package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Reservation is a booking of a catway by a client's boat for a date range.
type Reservation struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CatwayNumber string             `bson:"catwayNumber" json:"catwayNumber"`
	ClientName   string             `bson:"clientName" json:"clientName"`
	BoatName     string             `bson:"boatName" json:"boatName"`
	StartDate    time.Time          `bson:"startDate" json:"startDate"`
	EndDate      time.Time          `bson:"endDate" json:"endDate"`
	CreatedAt    time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updatedAt"`
}

// ReservationUpdate lists the mutable reservation fields. Nil fields are left untouched.
// The catway number of a reservation never changes.
type ReservationUpdate struct {
	ClientName *string
	BoatName   *string
	StartDate  *time.Time
	EndDate    *time.Time
}

// IsEmpty reports whether the update would not change anything.
func (u ReservationUpdate) IsEmpty() bool {
	return u.ClientName == nil && u.BoatName == nil && u.StartDate == nil && u.EndDate == nil
}
