package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/smilecare/clinic-api/internal/core/domain"
	"github.com/smilecare/clinic-api/internal/core/ports"
)

func TestJWTSigner_RoundTrip(t *testing.T) {
	signer := NewJWTSigner("secret", time.Hour)

	token, err := signer.Issue("user_1", domain.RoleClient, "Ann")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	claims, err := signer.Verify(token)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if claims.UserID != "user_1" || claims.Role != domain.RoleClient || claims.Name != "Ann" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestJWTSigner_DefaultTTLIsSevenDays(t *testing.T) {
	issued := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	signer := NewJWTSigner("secret", 0).WithClock(func() time.Time { return issued })

	token, err := signer.Issue("user_1", domain.RoleClient, "Ann")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	parsed := &sessionClaims{}
	if _, err := jwt.ParseWithClaims(token, parsed, func(t *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	}, jwt.WithTimeFunc(func() time.Time { return issued })); err != nil {
		t.Fatalf("parse: %v", err)
	}

	want := issued.Add(7 * 24 * time.Hour)
	if !parsed.ExpiresAt.Time.Equal(want) {
		t.Fatalf("expected expiry %v, got %v", want, parsed.ExpiresAt.Time)
	}
}

func TestJWTSigner_RejectsOtherSecret(t *testing.T) {
	token, err := NewJWTSigner("secret-a", time.Hour).Issue("user_1", domain.RoleClient, "Ann")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	if _, err := NewJWTSigner("secret-b", time.Hour).Verify(token); !errors.Is(err, ports.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestJWTSigner_RejectsTamperedPayload(t *testing.T) {
	signer := NewJWTSigner("secret", time.Hour)
	token, err := signer.Issue("user_1", domain.RoleClient, "Ann")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	// Flip one character in the claims segment; the signature no longer matches.
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %s", token)
	}
	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	if _, err := signer.Verify(tampered); !errors.Is(err, ports.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestJWTSigner_RejectsExpiredToken(t *testing.T) {
	issued := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clock := issued
	signer := NewJWTSigner("secret", time.Hour).WithClock(func() time.Time { return clock })

	token, err := signer.Issue("user_1", domain.RoleClient, "Ann")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	clock = issued.Add(2 * time.Hour)
	if _, err := signer.Verify(token); !errors.Is(err, ports.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestJWTSigner_RejectsGarbage(t *testing.T) {
	signer := NewJWTSigner("secret", time.Hour)

	for _, raw := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := signer.Verify(raw); !errors.Is(err, ports.ErrInvalidToken) {
			t.Fatalf("expected ErrInvalidToken for %q, got %v", raw, err)
		}
	}
}
