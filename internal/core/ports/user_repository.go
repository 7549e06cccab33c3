package ports

import (
	"context"

	"github.com/smilecare/clinic-api/internal/core/domain"
)

// UserRepository defines the credential store consumed by the auth service.
type UserRepository interface {
	// Create inserts a new user and returns it with its assigned ID.
	// A uniqueness violation on email yields domain.ErrEmailTaken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// FindByEmail looks a user up by normalized (lowercase) email.
	// Yields domain.ErrUserNotFound when no record matches.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindByID looks a user up by its ID.
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// ListClients returns every client-role user sorted by name.
	ListClients(ctx context.Context) ([]domain.User, error)
}
