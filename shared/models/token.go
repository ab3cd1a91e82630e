package models

import "time"

// TokenDetails holds a freshly issued bearer token.
type TokenDetails struct {
	AccessToken string    `json:"token"`
	TokenID     string    `json:"-"` // jti, usually not exposed
	ExpiresAt   time.Time `json:"expiresAt"`
}

// LoginResult is what a successful login hands back to the client.
type LoginResult struct {
	Token *TokenDetails
	User  *User
}
