package models

import "strings"

// User is an account record. Password holds the bcrypt hash and never leaves the server.
type User struct {
	ID       int64  `json:"id" db:"id"`
	Username string `json:"username" db:"username"`
	Password string `json:"-" db:"password"`
}

// CreateUserRequest is the input of user creation
type CreateUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// MinPasswordLength is the shortest accepted password
const MinPasswordLength = 8

// Validate checks the user payload
func (r *CreateUserRequest) Validate() error {
	r.Username = strings.TrimSpace(r.Username)
	if r.Username == "" {
		return NewValidationError("username", "must not be empty")
	}
	if len(r.Password) < MinPasswordLength {
		return NewValidationError("password", "must be at least 8 characters")
	}
	return nil
}
