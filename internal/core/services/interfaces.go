package services

import (
	"context"
	"time"

	"credit-admin/internal/core/domain"
)

// Note: IdentityStore is split between auth_service.go (session) and user_service.go (roster)
// Note: LoanLedger implementation is in loan_service.go

// Notifier receives loan lifecycle events. Delivery is best effort.
type Notifier interface {
	Publish(ctx context.Context, event LoanEvent) error
}

// CredentialVerifier decides whether a password is acceptable for a user
type CredentialVerifier interface {
	Verify(user *domain.User, password string) error
}

// NopNotifier drops every event
type NopNotifier struct{}

// Publish implements Notifier
func (NopNotifier) Publish(context.Context, LoanEvent) error { return nil }

// simulateLatency waits d before an operation touches state. A cancelled
// context aborts the wait.
func simulateLatency(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
