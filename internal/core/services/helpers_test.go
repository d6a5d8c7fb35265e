package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"credit-admin/internal/adapters/persistence/kv"
	"credit-admin/internal/adapters/persistence/repositories"
	"credit-admin/internal/core/domain"
	"credit-admin/internal/pkg/password"

	"golang.org/x/crypto/bcrypt"
)

func init() {
	password.Cost = bcrypt.MinCost
}

var (
	john  = &domain.User{ID: "1", Name: "John Okoh", Email: "john@example.com", Role: domain.RoleUser, Image: "https://randomuser.me/api/portraits/men/1.jpg"}
	jane  = &domain.User{ID: "2", Name: "Jane Smith", Email: "jane@example.com", Role: domain.RoleVerifier}
	admin = &domain.User{ID: "3", Name: "Admin User", Email: "admin@example.com", Role: domain.RoleAdmin}
)

type fixture struct {
	store    *IdentityStore
	kv       *kv.MemoryStore
	sessions repositories.SessionRepository
}

func newFixture(t *testing.T, opts ...IdentityOption) *fixture {
	t.Helper()

	mem := kv.NewMemoryStore()
	sessions := repositories.NewSessionRepository(mem, "")
	store := NewIdentityStore(repositories.NewUserRepository(), sessions, opts...)
	if err := store.SeedUsers(context.Background(), []*domain.User{john, jane, admin}); err != nil {
		t.Fatalf("SeedUsers failed: %v", err)
	}
	return &fixture{store: store, kv: mem, sessions: sessions}
}

func (f *fixture) login(t *testing.T, email string) *domain.User {
	t.Helper()
	u, err := f.store.Login(context.Background(), &LoginInput{Email: email, Password: "secret1"})
	if err != nil {
		t.Fatalf("Login(%s) failed: %v", email, err)
	}
	return u
}

// recordingNotifier keeps every published event
type recordingNotifier struct {
	mu     sync.Mutex
	events []LoanEvent
	err    error
}

func (n *recordingNotifier) Publish(_ context.Context, e LoanEvent) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, e)
	return n.err
}

func (n *recordingNotifier) types() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, len(n.events))
	for i, e := range n.events {
		out[i] = e.Type
	}
	return out
}

// fakeClock advances by step on every read
type fakeClock struct {
	mu   sync.Mutex
	now  time.Time
	step time.Duration
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.now
	c.now = c.now.Add(c.step)
	return t
}

func newLedger(opts LedgerOptions) (*LoanLedger, *recordingNotifier) {
	n := &recordingNotifier{}
	return NewLoanLedger(repositories.NewLoanRepository(), n, opts), n
}

func validApply() *ApplyInput {
	return &ApplyInput{
		Amount:      10000,
		Purpose:     domain.PurposePersonal,
		Description: "Working capital for the shop expansion",
	}
}
