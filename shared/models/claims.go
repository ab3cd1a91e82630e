package models

import "github.com/golang-jwt/jwt/v5"

// Claims represents the JWT claims of an access token.
type Claims struct {
	UserID               string `json:"user_id"` // hex ObjectID of the user
	jwt.RegisteredClaims        // Issuer, Subject, ExpiresAt, IssuedAt, ID (JTI)
}
