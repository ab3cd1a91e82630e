package database

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names.
const (
	UsersCollection        = "users"
	CatwaysCollection      = "catways"
	ReservationsCollection = "reservations"
)

// Index names, created by the migrations in migrations/.
const (
	UsersEmailIndex         = "users_email_key"
	UsersUsernameIndex      = "users_username_key"
	CatwaysNumberIndex      = "catways_number_key"
	ReservationsPeriodIndex = "reservations_catway_period_idx"
)

// Connect opens a client for uri and pings the primary.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to create mongo client: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}
	return client, nil
}

// duplicateKeyIndex reports whether err is a duplicate key error and, when it
// can tell, which unique index was violated.
func duplicateKeyIndex(err error) (string, bool) {
	if !mongo.IsDuplicateKeyError(err) {
		return "", false
	}
	msg := err.Error()
	for _, idx := range []string{UsersEmailIndex, UsersUsernameIndex, CatwaysNumberIndex} {
		if strings.Contains(msg, idx) {
			return idx, true
		}
	}
	return "", true
}

func isNoDocuments(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}

// now returns the current time at the precision MongoDB stores.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
