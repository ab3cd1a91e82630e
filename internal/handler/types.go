package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"marina-server/shared/models"
)

// flexString accepts a JSON string or number. Catway numbers are sent both ways.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected a string or a number, got %s", data)
	}
	*f = flexString(n.String())
	return nil
}

func (f *flexString) ptr() *string {
	if f == nil {
		return nil
	}
	s := string(*f)
	return &s
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      *models.User `json:"user"`
}

type createUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type updateUserRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

type createCatwayRequest struct {
	CatwayNumber flexString `json:"catwayNumber"`
	CatwayType   string     `json:"catwayType"`
	CatwayState  string     `json:"catwayState"`
}

// updateCatwayRequest reads only the state; any other field in the body is ignored.
type updateCatwayRequest struct {
	CatwayState *string `json:"catwayState"`
}

type createReservationRequest struct {
	CatwayNumber flexString `json:"catwayNumber"`
	ClientName   string     `json:"clientName"`
	BoatName     string     `json:"boatName"`
	StartDate    string     `json:"startDate"`
	EndDate      string     `json:"endDate"`
}

type updateReservationRequest struct {
	CatwayNumber *flexString `json:"catwayNumber"`
	ClientName   *string     `json:"clientName"`
	BoatName     *string     `json:"boatName"`
	StartDate    *string     `json:"startDate"`
	EndDate      *string     `json:"endDate"`
}
