package ports

import (
	"context"

	"github.com/smilecare/clinic-api/internal/core/domain"
)

// RegisterInput carries the self-service registration fields. Phone and DOB
// are optional; everything else is required.
type RegisterInput struct {
	Name     string
	Email    string
	Phone    string
	DOB      string
	Password string
}

// AuthResult is returned on successful registration or login.
type AuthResult struct {
	Token string
	User  UserSummary
}

// UserSummary is the minimal identity echoed back alongside a token.
type UserSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

// AuthService orchestrates registration, login and profile lookup.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	CurrentUser(ctx context.Context, userID string) (*domain.PublicProfile, error)
	// EnsureStaffAccount idempotently seeds the staff login at startup.
	EnsureStaffAccount(ctx context.Context, name, email, password string) error
}
