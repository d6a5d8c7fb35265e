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
	"credit-admin/internal/pkg/validate"

	"github.com/google/uuid"
)

// LedgerOptions switches the ledger between the permissive default and the
// hardened behaviour
type LedgerOptions struct {
	// StrictTransitions rejects status changes that are not edges of the
	// review workflow
	StrictTransitions bool
	// EnforceRoles checks the actor against the capability table
	EnforceRoles bool

	SubmitLatency time.Duration
	ReviewLatency time.Duration
}

// LoanLedger owns the loan collection and the review state machine
type LoanLedger struct {
	mu       sync.Mutex
	loans    repositories.LoanRepository
	notifier Notifier
	opts     LedgerOptions
	now      func() time.Time
}

// NewLoanLedger creates a new loan ledger
func NewLoanLedger(
	loans repositories.LoanRepository,
	notifier Notifier,
	opts LedgerOptions,
) *LoanLedger {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &LoanLedger{
		loans:    loans,
		notifier: notifier,
		opts:     opts,
		now:      time.Now,
	}
}

// SetClock replaces the time source
func (l *LoanLedger) SetClock(now func() time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.now = now
}

// ApplyInput represents loan application input
type ApplyInput struct {
	Amount      float64            `json:"amount" validate:"required,gte=5000,lte=1000000"`
	Purpose     domain.LoanPurpose `json:"purpose" validate:"required,loan_purpose"`
	Description string             `json:"description" validate:"required,min=20,max=500"`
}

// ReviewInput represents the optional note of a review transition
type ReviewInput struct {
	Notes string `json:"notes" validate:"max=500"`
}

// ApplyForLoan records a new pending application submitted by actor
func (l *LoanLedger) ApplyForLoan(ctx context.Context, input *ApplyInput, actor *domain.User) (*domain.LoanApplication, error) {
	if actor == nil {
		return nil, domain.ErrNoSession
	}
	if input.Purpose == "" {
		input.Purpose = domain.PurposePersonal
	}
	if err := validate.Struct(input); err != nil {
		return nil, err
	}
	if l.opts.EnforceRoles && !actor.Role.Can(domain.CapApply) {
		return nil, fmt.Errorf("%s cannot apply: %w", actor.Role, domain.ErrForbidden)
	}
	if err := simulateLatency(ctx, l.opts.SubmitLatency); err != nil {
		return nil, err
	}

	l.mu.Lock()
	now := l.now()
	loan := &domain.LoanApplication{
		ID:           "loan-" + uuid.NewString(),
		UserID:       actor.ID,
		OfficerName:  actor.Name,
		OfficerImage: actor.Image,
		Amount:       input.Amount,
		Purpose:      input.Purpose,
		Description:  input.Description,
		Status:       domain.LoanPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	err := l.loans.Create(ctx, loan)
	l.mu.Unlock()
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Loan submitted: %s %.2f by %s", loan.ID, loan.Amount, actor.ID)
	l.publish(ctx, EventLoanSubmitted, loan, actor)
	return loan, nil
}

// VerifyLoan marks a loan verified by actor
func (l *LoanLedger) VerifyLoan(ctx context.Context, id string, input *ReviewInput, actor *domain.User) (*domain.LoanApplication, error) {
	return l.transition(ctx, id, domain.LoanVerified, input, actor)
}

// RejectLoan marks a loan rejected
func (l *LoanLedger) RejectLoan(ctx context.Context, id string, input *ReviewInput, actor *domain.User) (*domain.LoanApplication, error) {
	return l.transition(ctx, id, domain.LoanRejected, input, actor)
}

// ApproveLoan marks a loan approved by actor
func (l *LoanLedger) ApproveLoan(ctx context.Context, id string, input *ReviewInput, actor *domain.User) (*domain.LoanApplication, error) {
	return l.transition(ctx, id, domain.LoanApproved, input, actor)
}

func (l *LoanLedger) transition(
	ctx context.Context,
	id string,
	to domain.LoanStatus,
	input *ReviewInput,
	actor *domain.User,
) (*domain.LoanApplication, error) {
	if actor == nil {
		return nil, domain.ErrNoSession
	}
	if input == nil {
		input = &ReviewInput{}
	}
	if err := validate.Struct(input); err != nil {
		return nil, err
	}
	if l.opts.EnforceRoles && !actor.Role.Can(domain.CapabilityFor(to)) {
		return nil, fmt.Errorf("%s cannot mark a loan %s: %w", actor.Role, to, domain.ErrForbidden)
	}
	if err := simulateLatency(ctx, l.opts.ReviewLatency); err != nil {
		return nil, err
	}

	l.mu.Lock()
	loan, err := l.loans.GetByID(ctx, id)
	if err != nil {
		l.mu.Unlock()
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, domain.ErrLoanNotFound
		}
		return nil, err
	}

	if l.opts.StrictTransitions && !domain.CanTransition(loan.Status, to) {
		l.mu.Unlock()
		return nil, &domain.TransitionError{From: loan.Status, To: to}
	}

	loan.Status = to
	switch to {
	case domain.LoanVerified:
		loan.VerifiedBy = actor.ID
	case domain.LoanApproved:
		loan.ApprovedBy = actor.ID
	}
	if input.Notes != "" {
		loan.Notes = input.Notes
	}
	loan.UpdatedAt = l.now()
	if loan.UpdatedAt.Before(loan.CreatedAt) {
		loan.UpdatedAt = loan.CreatedAt
	}

	err = l.loans.Update(ctx, loan)
	l.mu.Unlock()
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Loan %s: %s by %s", to, loan.ID, actor.ID)
	l.publish(ctx, eventFor(to), loan, actor)
	return loan, nil
}

// GetLoan gets a loan by ID
func (l *LoanLedger) GetLoan(ctx context.Context, id string) (*domain.LoanApplication, error) {
	loan, err := l.loans.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, domain.ErrLoanNotFound
		}
		return nil, err
	}
	return loan, nil
}

// ListLoans lists loans newest first. A limit of 0 returns every match.
func (l *LoanLedger) ListLoans(ctx context.Context, filter repositories.LoanFilter, offset, limit int) ([]*domain.LoanApplication, int64, error) {
	return l.loans.List(ctx, filter, offset, limit)
}

// AllLoans returns the whole collection newest first
func (l *LoanLedger) AllLoans(ctx context.Context) ([]*domain.LoanApplication, error) {
	return l.loans.All(ctx)
}

// SeedLoans loads generated applications without notifications
func (l *LoanLedger) SeedLoans(ctx context.Context, loans []*domain.LoanApplication) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, loan := range loans {
		if err := l.loans.Create(ctx, loan); err != nil {
			return err
		}
	}
	return nil
}

func (l *LoanLedger) publish(ctx context.Context, eventType string, loan *domain.LoanApplication, actor *domain.User) {
	event := NewLoanEvent(eventType, loan, actor)
	if err := l.notifier.Publish(ctx, event); err != nil {
		log.Printf("⚠️ Failed to publish %s for %s: %v", eventType, loan.ID, err)
	}
}
