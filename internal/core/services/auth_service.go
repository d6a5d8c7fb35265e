package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"credit-admin/internal/adapters/persistence/repositories"
	"credit-admin/internal/core/domain"
	"credit-admin/internal/pkg/password"
	"credit-admin/internal/pkg/validate"
)

// IdentityStore owns the roster and the single active session. Every
// operation holds the store mutex for its read-modify-write.
type IdentityStore struct {
	mu       sync.Mutex
	users    repositories.UserRepository
	sessions repositories.SessionRepository
	verifier CredentialVerifier
	latency  time.Duration
	current  *domain.User
}

// IdentityOption configures an IdentityStore
type IdentityOption func(*IdentityStore)

// WithCredentialVerifier replaces the default demo credential rule
func WithCredentialVerifier(v CredentialVerifier) IdentityOption {
	return func(s *IdentityStore) { s.verifier = v }
}

// WithIdentityLatency delays every operation by d
func WithIdentityLatency(d time.Duration) IdentityOption {
	return func(s *IdentityStore) { s.latency = d }
}

// NewIdentityStore creates a new identity store
func NewIdentityStore(
	users repositories.UserRepository,
	sessions repositories.SessionRepository,
	opts ...IdentityOption,
) *IdentityStore {
	s := &IdentityStore{
		users:    users,
		sessions: sessions,
		verifier: DemoCredentials{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LoginInput represents login input
type LoginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Login looks the user up by exact email, checks the credential rule and
// makes it the session user
func (s *IdentityStore) Login(ctx context.Context, input *LoginInput) (*domain.User, error) {
	if err := validate.Struct(input); err != nil {
		return nil, err
	}
	if err := simulateLatency(ctx, s.latency); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.users.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, domain.ErrEmailNotFound
		}
		return nil, err
	}

	if err := s.verifier.Verify(user, input.Password); err != nil {
		return nil, err
	}

	if err := s.sessions.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}
	s.current = user.Clone()

	log.Printf("✅ Login: %s (%s)", user.Email, user.Role)
	return user, nil
}

// Logout clears the session. It never fails to clear the in-memory session;
// the returned error only reports the persisted record.
func (s *IdentityStore) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = nil
	if err := s.sessions.Delete(ctx); err != nil {
		log.Printf("⚠️ Failed to delete persisted session: %v", err)
		return err
	}
	return nil
}

// Current returns a copy of the session user, or nil when signed out
func (s *IdentityStore) Current() *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.Clone()
}

// Restore reads the persisted session once at startup. A session naming a
// user that is no longer on the roster is discarded.
func (s *IdentityStore) Restore(ctx context.Context) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, err := s.sessions.Load(ctx)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, nil
	}

	user, err := s.users.GetByID(ctx, stored.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			log.Printf("⚠️ Discarding persisted session for unknown user %s", stored.ID)
			return nil, s.sessions.Delete(ctx)
		}
		return nil, err
	}

	s.current = user.Clone()
	log.Printf("✅ Session restored: %s", user.Email)
	return user, nil
}

// ============================================================
// Credential rules
// ============================================================

// DemoCredentials accepts any password of at least MinPasswordLen characters
type DemoCredentials struct{}

// Verify implements CredentialVerifier
func (DemoCredentials) Verify(_ *domain.User, pw string) error {
	return checkPasswordLength(pw)
}

// StrictCredentials checks the password against the user's bcrypt hash
type StrictCredentials struct{}

// Verify implements CredentialVerifier
func (StrictCredentials) Verify(user *domain.User, pw string) error {
	if err := checkPasswordLength(pw); err != nil {
		return err
	}
	if user.PasswordHash == "" || !password.Verify(pw, user.PasswordHash) {
		return domain.ErrInvalidCredentials
	}
	if password.NeedsRehash(user.PasswordHash) {
		log.Printf("⚠️ Password hash for %s uses an outdated bcrypt cost", user.Email)
	}
	return nil
}

func checkPasswordLength(pw string) error {
	if password.CheckLength(pw) != nil {
		return domain.NewValidationError("password",
			fmt.Sprintf("must be at least %d characters", domain.MinPasswordLen))
	}
	return nil
}
