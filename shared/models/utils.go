package models

// StringPtr returns a pointer to the given string.
// Useful for optional fields of update structs.
func StringPtr(s string) *string {
	return &s
}
