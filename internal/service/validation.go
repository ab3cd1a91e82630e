package service

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"marina-server/shared/models"
)

const (
	minUsernameLength = 3
	minPasswordLength = 6
	dateLayout        = "2006-01-02"
)

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

func validateUsername(username string) []string {
	switch {
	case username == "":
		return []string{"Username is required"}
	case utf8.RuneCountInString(username) < minUsernameLength:
		return []string{fmt.Sprintf("Username must be at least %d characters", minUsernameLength)}
	}
	return nil
}

func validateEmail(email string) []string {
	switch {
	case email == "":
		return []string{"Email is required"}
	case !emailPattern.MatchString(email):
		return []string{"Please provide a valid email address"}
	}
	return nil
}

func validatePassword(password string) []string {
	switch {
	case password == "":
		return []string{"Password is required"}
	case utf8.RuneCountInString(password) < minPasswordLength:
		return []string{fmt.Sprintf("Password must be at least %d characters", minPasswordLength)}
	}
	return nil
}

func validateCatwayState(state string) []string {
	switch {
	case state == "":
		return []string{"Catway state is required"}
	case utf8.RuneCountInString(state) > models.MaxCatwayStateLength:
		return []string{fmt.Sprintf("Catway state must be at most %d characters", models.MaxCatwayStateLength)}
	}
	return nil
}

// parseDate accepts an RFC 3339 timestamp or a YYYY-MM-DD date (UTC midnight).
func parseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// requiredDate parses a mandatory date field, appending a message to msgs on failure.
func requiredDate(field, value string, msgs *[]string) time.Time {
	if strings.TrimSpace(value) == "" {
		*msgs = append(*msgs, field+" is required")
		return time.Time{}
	}
	t, err := parseDate(value)
	if err != nil {
		*msgs = append(*msgs, field+" must be a valid date (YYYY-MM-DD or RFC 3339)")
		return time.Time{}
	}
	return t
}
