// Package types provides type definitions for structured data used throughout the hiring portal.
package types

import (
	"github.com/go-playground/validator/v10"
)

// Role is the authorization level of a session.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// UserRecord is a credential record from the users fixture.
// Password is either plaintext or a bcrypt hash.
type UserRecord struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     Role   `json:"role"`
}

// Session is the authenticated identity. It never carries a credential.
type Session struct {
	UserID string `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   Role   `json:"role"`
}

// IsAdmin reports whether the session may use administrative views.
func (s Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}

// SessionFromUser strips the credential from a user record.
func SessionFromUser(u UserRecord) Session {
	return Session{
		UserID: u.ID,
		Email:  u.Email,
		Name:   u.Name,
		Role:   u.Role,
	}
}

// LoginRequest represents the login request. The email is matched verbatim,
// so its format is not checked here.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse represents the login response with the session and its bearer token.
type LoginResponse struct {
	Session  Session `json:"session"`
	Token    string  `json:"token"`
	Redirect string  `json:"redirect"`
}

// Validate validates the LoginRequest using the validator.
func (r *LoginRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
