package domain

import (
	"errors"
	"time"
)

const (
	RoleClient = "client"
	RoleStaff  = "staff"
)

var (
	ErrMissingFields      = errors.New("missing required fields")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrTooManyAttempts    = errors.New("too many login attempts")
)

// User models an account in the clinic: a patient (client) or a staff member.
// The role is fixed at creation time; no operation changes or deletes a user.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	DOB          string    `json:"dob,omitempty"`
	Role         string    `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// PublicProfile strips a user down to the fields safe to return to callers.
type PublicProfile struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
	DOB   string `json:"dob,omitempty"`
	Role  string `json:"role"`
}

// Public returns the response-safe view of the user.
func (u *User) Public() PublicProfile {
	return PublicProfile{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Phone: u.Phone,
		DOB:   u.DOB,
		Role:  u.Role,
	}
}
