package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CatwayType is the berth length class.
type CatwayType string

const (
	CatwayTypeLong  CatwayType = "long"
	CatwayTypeShort CatwayType = "short"
)

// Valid reports whether t is one of the known catway types.
func (t CatwayType) Valid() bool {
	return t == CatwayTypeLong || t == CatwayTypeShort
}

// MaxCatwayStateLength bounds the free-text state description.
const MaxCatwayStateLength = 500

// Catway is a berth identified by its unique number.
type Catway struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Number    string             `bson:"catwayNumber" json:"catwayNumber"`
	Type      CatwayType         `bson:"catwayType" json:"catwayType"`
	State     string             `bson:"catwayState" json:"catwayState"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updatedAt"`
}
