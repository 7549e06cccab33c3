package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/smilecare/clinic-api/internal/core/domain"
	"github.com/smilecare/clinic-api/internal/core/ports"
)

type stubUserRepo struct {
	byEmail map[string]*domain.User
	nextID  int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byEmail: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.byEmail[user.Email]; exists {
		return nil, domain.ErrEmailTaken
	}
	r.nextID++
	created := cloneUser(user)
	created.ID = fmt.Sprintf("user_%d", r.nextID)
	r.byEmail[created.Email] = cloneUser(created)
	return created, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if u, ok := r.byEmail[email]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	for _, u := range r.byEmail {
		if u.ID == id {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) ListClients(_ context.Context) ([]domain.User, error) {
	var out []domain.User
	for _, u := range r.byEmail {
		if u.Role == domain.RoleClient {
			out = append(out, *u)
		}
	}
	return out, nil
}

type stubThrottle struct {
	allowed  bool
	checkErr error
	failures int
	resets   int
}

func (t *stubThrottle) Allowed(_ context.Context, _ string) (bool, error) {
	return t.allowed, t.checkErr
}

func (t *stubThrottle) RecordFailure(_ context.Context, _ string) error {
	t.failures++
	return nil
}

func (t *stubThrottle) Reset(_ context.Context, _ string) error {
	t.resets++
	return nil
}

func newTestAuthService(repo ports.UserRepository, throttle ports.LoginThrottle) *AuthService {
	hasher := NewBcryptHasher()
	signer := NewJWTSigner("secret", time.Hour)
	return NewAuthService(repo, hasher, signer, throttle, zerolog.Nop())
}

func TestAuthService_RegisterThenLogin(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo(), nil)

	registered, err := svc.Register(context.Background(), ports.RegisterInput{
		Name:     "Ann",
		Email:    "Ann@X.com",
		Password: "pw123456",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if registered.Token == "" {
		t.Fatalf("expected a session token")
	}
	if registered.User.Role != domain.RoleClient {
		t.Fatalf("self-registration must yield role client, got %s", registered.User.Role)
	}

	// Email matching is case-insensitive: stored lowercase, looked up lowercase.
	loggedIn, err := svc.Login(context.Background(), "ann@x.com", "pw123456")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if loggedIn.User.ID != registered.User.ID {
		t.Fatalf("login id %s does not match registered id %s", loggedIn.User.ID, registered.User.ID)
	}

	if _, err := svc.Login(context.Background(), "ann@x.com", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Register_MissingFields(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo(), nil)

	inputs := []ports.RegisterInput{
		{Email: "a@x.com", Password: "pw"},
		{Name: "Ann", Password: "pw"},
		{Name: "Ann", Email: "a@x.com"},
	}
	for _, input := range inputs {
		if _, err := svc.Register(context.Background(), input); !errors.Is(err, domain.ErrMissingFields) {
			t.Fatalf("expected ErrMissingFields for %+v, got %v", input, err)
		}
	}
}

func TestAuthService_Register_DuplicateEmailAnyCase(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo(), nil)

	if _, err := svc.Register(context.Background(), ports.RegisterInput{Name: "Ann", Email: "ann@x.com", Password: "pw"}); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := svc.Register(context.Background(), ports.RegisterInput{Name: "Ann", Email: "ANN@X.COM", Password: "pw"}); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestAuthService_Register_NeverLeaksHash(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo, nil)

	result, err := svc.Register(context.Background(), ports.RegisterInput{Name: "Ann", Email: "ann@x.com", Password: "pw123456"})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	stored := repo.byEmail["ann@x.com"]
	if stored.PasswordHash == "" || stored.PasswordHash == "pw123456" {
		t.Fatalf("expected a stored hash distinct from the plaintext")
	}
	if result.User != (ports.UserSummary{ID: stored.ID, Name: "Ann", Role: domain.RoleClient}) {
		t.Fatalf("summary must carry only id, name and role: %+v", result.User)
	}
}

func TestAuthService_Login_NoEnumerationSignal(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo(), nil)

	if _, err := svc.Register(context.Background(), ports.RegisterInput{Name: "Ann", Email: "ann@x.com", Password: "pw123456"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	_, wrongPassword := svc.Login(context.Background(), "ann@x.com", "wrong")
	_, unknownEmail := svc.Login(context.Background(), "ghost@x.com", "whatever")

	if !errors.Is(wrongPassword, domain.ErrInvalidCredentials) || !errors.Is(unknownEmail, domain.ErrInvalidCredentials) {
		t.Fatalf("both failures must be ErrInvalidCredentials, got %v and %v", wrongPassword, unknownEmail)
	}
	if wrongPassword.Error() != unknownEmail.Error() {
		t.Fatalf("failure messages must be indistinguishable")
	}
}

func TestAuthService_Login_MissingFields(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo(), nil)

	if _, err := svc.Login(context.Background(), "", "pw"); !errors.Is(err, domain.ErrMissingFields) {
		t.Fatalf("expected ErrMissingFields, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "a@x.com", ""); !errors.Is(err, domain.ErrMissingFields) {
		t.Fatalf("expected ErrMissingFields, got %v", err)
	}
}

func TestAuthService_Login_Throttled(t *testing.T) {
	throttle := &stubThrottle{allowed: false}
	svc := newTestAuthService(newStubUserRepo(), throttle)

	if _, err := svc.Login(context.Background(), "ann@x.com", "pw"); !errors.Is(err, domain.ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
}

func TestAuthService_Login_ThrottleFailsOpen(t *testing.T) {
	throttle := &stubThrottle{allowed: false, checkErr: errors.New("redis down")}
	svc := newTestAuthService(newStubUserRepo(), throttle)

	if _, err := svc.Register(context.Background(), ports.RegisterInput{Name: "Ann", Email: "ann@x.com", Password: "pw123456"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if _, err := svc.Login(context.Background(), "ann@x.com", "pw123456"); err != nil {
		t.Fatalf("throttle errors must not block login, got %v", err)
	}
	if throttle.resets != 1 {
		t.Fatalf("expected throttle reset after success, got %d", throttle.resets)
	}
}

func TestAuthService_Login_RecordsFailures(t *testing.T) {
	throttle := &stubThrottle{allowed: true}
	svc := newTestAuthService(newStubUserRepo(), throttle)

	if _, err := svc.Register(context.Background(), ports.RegisterInput{Name: "Ann", Email: "ann@x.com", Password: "pw123456"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	_, _ = svc.Login(context.Background(), "ann@x.com", "wrong")
	_, _ = svc.Login(context.Background(), "ghost@x.com", "whatever")

	if throttle.failures != 2 {
		t.Fatalf("expected 2 recorded failures, got %d", throttle.failures)
	}
}

func TestAuthService_CurrentUser(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo(), nil)

	registered, err := svc.Register(context.Background(), ports.RegisterInput{
		Name:     "Ann",
		Email:    "Ann@X.com",
		Phone:    "555-0101",
		DOB:      "1990-04-01",
		Password: "pw123456",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	profile, err := svc.CurrentUser(context.Background(), registered.User.ID)
	if err != nil {
		t.Fatalf("CurrentUser returned error: %v", err)
	}
	if profile.Email != "ann@x.com" || profile.Phone != "555-0101" || profile.DOB != "1990-04-01" {
		t.Fatalf("unexpected profile: %+v", profile)
	}

	if _, err := svc.CurrentUser(context.Background(), "missing"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAuthService_EnsureStaffAccount_Idempotent(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo, nil)

	for i := 0; i < 2; i++ {
		if err := svc.EnsureStaffAccount(context.Background(), "Clinic Staff", "staff@smilecare.com", "password123"); err != nil {
			t.Fatalf("seed run %d failed: %v", i+1, err)
		}
	}
	if len(repo.byEmail) != 1 {
		t.Fatalf("expected exactly one seeded account, got %d", len(repo.byEmail))
	}

	result, err := svc.Login(context.Background(), "staff@smilecare.com", "password123")
	if err != nil {
		t.Fatalf("seeded staff login failed: %v", err)
	}
	if result.User.Role != domain.RoleStaff {
		t.Fatalf("expected role staff, got %s", result.User.Role)
	}
}
