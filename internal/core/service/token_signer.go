package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/smilecare/clinic-api/internal/core/ports"
)

// DefaultTokenTTL is the session lifetime: tokens die by expiry only, there
// is no server-side revocation.
const DefaultTokenTTL = 7 * 24 * time.Hour

type sessionClaims struct {
	Name string `json:"name"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// JWTSigner implements ports.TokenSigner with HS256-signed JWTs.
type JWTSigner struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewJWTSigner builds a signer for the given process-wide secret. A
// non-positive ttl falls back to DefaultTokenTTL.
func NewJWTSigner(secret string, ttl time.Duration) *JWTSigner {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &JWTSigner{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// WithClock overrides the signer's clock. Intended for tests.
func (s *JWTSigner) WithClock(now func() time.Time) *JWTSigner {
	s.now = now
	return s
}

func (s *JWTSigner) Issue(userID, role, name string) (string, error) {
	issued := s.now().UTC()
	claims := sessionClaims{
		Name: name,
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(issued.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify rejects any token not signed HS256 with this signer's secret. An
// expired-but-authentic token is reported distinctly so callers can say so.
func (s *JWTSigner) Verify(token string) (*ports.Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)

	claims := &sessionClaims{}
	parsed, err := parser.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ports.ErrTokenExpired
		}
		return nil, ports.ErrInvalidToken
	}
	if !parsed.Valid {
		return nil, ports.ErrInvalidToken
	}

	return &ports.Claims{
		UserID: claims.Subject,
		Role:   claims.Role,
		Name:   claims.Name,
	}, nil
}
