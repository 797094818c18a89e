package users

import "strings"

// CreateUserRequest is the payload for POST /api/users.
type CreateUserRequest struct {
	Email    string  `json:"email" validate:"required,email"`
	Name     *string `json:"name,omitempty" validate:"omitempty,max=200"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=8,max=128"`
}

// NormalizeEmail trims and lower-cases an address so lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
