package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a harbour office account.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username     string             `bson:"username" json:"username"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password_hash" json:"-"` // Не отдаем хеш пароля
	CreatedAt    time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updatedAt"`
}

// UserUpdate lists the fields a profile update may change. Nil fields are left untouched.
type UserUpdate struct {
	Username     *string
	PasswordHash *string
}

// IsEmpty reports whether the update would not change anything.
func (u UserUpdate) IsEmpty() bool {
	return u.Username == nil && u.PasswordHash == nil
}
