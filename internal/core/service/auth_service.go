package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/smilecare/clinic-api/internal/api/metrics"
	"github.com/smilecare/clinic-api/internal/core/domain"
	"github.com/smilecare/clinic-api/internal/core/ports"
)

// AuthService implements registration, login and profile lookup. It is the
// only code path that touches password hashes.
type AuthService struct {
	users    ports.UserRepository
	hasher   ports.PasswordHasher
	signer   ports.TokenSigner
	throttle ports.LoginThrottle
	logger   zerolog.Logger
}

// NewAuthService wires the service. throttle may be nil, in which case login
// attempts are never rate limited.
func NewAuthService(users ports.UserRepository, hasher ports.PasswordHasher, signer ports.TokenSigner, throttle ports.LoginThrottle, logger zerolog.Logger) *AuthService {
	return &AuthService{
		users:    users,
		hasher:   hasher,
		signer:   signer,
		throttle: throttle,
		logger:   logger,
	}
}

// Register creates a client account and returns a freshly minted session.
// Self-service registration always yields the client role; staff accounts
// exist only through the startup seed.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*ports.AuthResult, error) {
	if input.Name == "" || input.Email == "" || input.Password == "" {
		return nil, domain.ErrMissingFields
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:         input.Name,
		Email:        normalizeEmail(input.Email),
		Phone:        input.Phone,
		DOB:          input.DOB,
		Role:         domain.RoleClient,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	metrics.RegistrationsTotal.Inc()
	s.logger.Info().Str("user_id", created.ID).Msg("client registered")

	return s.mintSession(created)
}

// Login authenticates by email and password. An unknown email and a wrong
// password produce the same error so callers cannot enumerate accounts.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	if email == "" || password == "" {
		return nil, domain.ErrMissingFields
	}
	email = normalizeEmail(email)

	if blocked := s.throttled(ctx, email); blocked {
		metrics.LoginsTotal.WithLabelValues("throttled").Inc()
		return nil, domain.ErrTooManyAttempts
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.recordFailure(ctx, email)
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Check(password, user.PasswordHash) {
		s.recordFailure(ctx, email)
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	if s.throttle != nil {
		if err := s.throttle.Reset(ctx, email); err != nil {
			s.logger.Warn().Err(err).Msg("login throttle reset failed")
		}
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return s.mintSession(user)
}

// CurrentUser returns the public profile for a verified session's user id.
func (s *AuthService) CurrentUser(ctx context.Context, userID string) (*domain.PublicProfile, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile := user.Public()
	return &profile, nil
}

// EnsureStaffAccount seeds the staff login once at startup. It is idempotent:
// an existing account (including one created by a concurrent replica) leaves
// the store untouched.
func (s *AuthService) EnsureStaffAccount(ctx context.Context, name, email, password string) error {
	email = normalizeEmail(email)

	_, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	_, err = s.users.Create(ctx, &domain.User{
		Name:         name,
		Email:        email,
		Role:         domain.RoleStaff,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if errors.Is(err, domain.ErrEmailTaken) {
		// lost the race to another replica
		return nil
	}
	if err != nil {
		return err
	}

	s.logger.Info().Str("email", email).Msg("seeded staff account")
	return nil
}

func (s *AuthService) mintSession(user *domain.User) (*ports.AuthResult, error) {
	token, err := s.signer.Issue(user.ID, user.Role, user.Name)
	if err != nil {
		return nil, err
	}
	return &ports.AuthResult{
		Token: token,
		User:  ports.UserSummary{ID: user.ID, Name: user.Name, Role: user.Role},
	}, nil
}

// throttled is advisory: a throttle backend error counts as "not throttled"
// so the clinic cannot be locked out by an unavailable store.
func (s *AuthService) throttled(ctx context.Context, email string) bool {
	if s.throttle == nil {
		return false
	}
	allowed, err := s.throttle.Allowed(ctx, email)
	if err != nil {
		s.logger.Warn().Err(err).Msg("login throttle check failed")
		return false
	}
	return !allowed
}

func (s *AuthService) recordFailure(ctx context.Context, email string) {
	if s.throttle == nil {
		return
	}
	if err := s.throttle.RecordFailure(ctx, email); err != nil {
		s.logger.Warn().Err(err).Msg("login throttle record failed")
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
