package ports

import "errors"

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// Claims are the verified fields carried by a session token. Once Verify has
// returned them they are trusted for the remainder of the request.
type Claims struct {
	UserID string
	Role   string
	Name   string
}

// TokenSigner mints and verifies the signed, time-limited session tokens.
type TokenSigner interface {
	// Issue produces a signed token embedding the claims and an expiry.
	Issue(userID, role, name string) (string, error)
	// Verify checks signature and expiry. A bad signature or malformed
	// input yields ErrInvalidToken; a past expiry yields ErrTokenExpired.
	Verify(token string) (*Claims, error)
}
