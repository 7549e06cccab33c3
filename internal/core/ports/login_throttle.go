package ports

import "context"

// LoginThrottle tracks failed login attempts per email. Implementations are
// advisory: callers treat backend errors as "allowed" so an unavailable
// throttle store cannot lock the clinic out.
type LoginThrottle interface {
	// Allowed reports whether another attempt may proceed for this email.
	Allowed(ctx context.Context, email string) (bool, error)
	// RecordFailure counts one failed attempt.
	RecordFailure(ctx context.Context, email string) error
	// Reset clears the counter after a successful login.
	Reset(ctx context.Context, email string) error
}
