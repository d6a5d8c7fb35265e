package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"credit-admin/internal/adapters/persistence/repositories"
	"credit-admin/internal/core/domain"
)

func TestApplyForLoan_RoundTrip(t *testing.T) {
	ledger, notifier := newLedger(LedgerOptions{})
	ctx := context.Background()

	loan, err := ledger.ApplyForLoan(ctx, validApply(), john)
	if err != nil {
		t.Fatalf("ApplyForLoan failed: %v", err)
	}

	got, err := ledger.GetLoan(ctx, loan.ID)
	if err != nil {
		t.Fatalf("GetLoan failed: %v", err)
	}
	if !strings.HasPrefix(got.ID, "loan-") {
		t.Errorf("Unexpected id %s", got.ID)
	}
	if got.Status != domain.LoanPending {
		t.Errorf("Expected pending, got %s", got.Status)
	}
	if !got.CreatedAt.Equal(got.UpdatedAt) {
		t.Errorf("createdAt %v != updatedAt %v", got.CreatedAt, got.UpdatedAt)
	}
	if got.UserID != john.ID || got.OfficerName != john.Name || got.OfficerImage != john.Image {
		t.Errorf("Actor fields not copied: %+v", got)
	}
	if got.VerifiedBy != "" || got.ApprovedBy != "" || got.Notes != "" {
		t.Errorf("New loan should carry no review fields: %+v", got)
	}
	if types := notifier.types(); len(types) != 1 || types[0] != EventLoanSubmitted {
		t.Errorf("Expected one submitted event, got %v", types)
	}
}

func TestApplyForLoan_NewestFirst(t *testing.T) {
	ledger, _ := newLedger(LedgerOptions{})
	ctx := context.Background()

	first, _ := ledger.ApplyForLoan(ctx, validApply(), john)
	second, _ := ledger.ApplyForLoan(ctx, validApply(), jane)

	loans, total, err := ledger.ListLoans(ctx, repositories.LoanFilter{}, 0, 0)
	if err != nil {
		t.Fatalf("ListLoans failed: %v", err)
	}
	if total != 2 || loans[0].ID != second.ID || loans[1].ID != first.ID {
		t.Errorf("Expected newest first, got %d loans", total)
	}
}

func TestApplyForLoan_NoActor(t *testing.T) {
	ledger, notifier := newLedger(LedgerOptions{})
	ctx := context.Background()

	if _, err := ledger.ApplyForLoan(ctx, validApply(), nil); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("Expected ErrUnauthenticated, got %v", err)
	}
	if all, _ := ledger.AllLoans(ctx); len(all) != 0 {
		t.Errorf("No loan should be created, got %d", len(all))
	}
	if len(notifier.types()) != 0 {
		t.Error("No event should be published")
	}
}

func TestApplyForLoan_Validation(t *testing.T) {
	ledger, _ := newLedger(LedgerOptions{})
	ctx := context.Background()

	tests := []struct {
		name  string
		edit  func(in *ApplyInput)
		field string
	}{
		{"amount too small", func(in *ApplyInput) { in.Amount = 4999 }, "amount"},
		{"amount too large", func(in *ApplyInput) { in.Amount = 1000001 }, "amount"},
		{"unknown purpose", func(in *ApplyInput) { in.Purpose = "Holiday" }, "purpose"},
		{"short description", func(in *ApplyInput) { in.Description = "too short" }, "description"},
		{"long description", func(in *ApplyInput) { in.Description = strings.Repeat("x", 501) }, "description"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validApply()
			tt.edit(in)
			_, err := ledger.ApplyForLoan(ctx, in, john)
			var verr *domain.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Expected ValidationError, got %v", err)
			}
			if _, ok := verr.Fields[tt.field]; !ok {
				t.Errorf("Expected %s error, got %v", tt.field, verr.Fields)
			}
		})
	}

	// bounds are inclusive
	for _, amount := range []float64{domain.MinLoanAmount, domain.MaxLoanAmount} {
		in := validApply()
		in.Amount = amount
		if _, err := ledger.ApplyForLoan(ctx, in, john); err != nil {
			t.Errorf("Amount %.0f should be accepted: %v", amount, err)
		}
	}
}

func TestApplyForLoan_DefaultPurpose(t *testing.T) {
	ledger, _ := newLedger(LedgerOptions{})

	in := validApply()
	in.Purpose = ""
	loan, err := ledger.ApplyForLoan(context.Background(), in, john)
	if err != nil {
		t.Fatalf("ApplyForLoan failed: %v", err)
	}
	if loan.Purpose != domain.PurposePersonal {
		t.Errorf("Expected Personal, got %s", loan.Purpose)
	}
}

func TestReview_EndToEnd(t *testing.T) {
	ledger, notifier := newLedger(LedgerOptions{})
	ctx := context.Background()

	in := validApply()
	in.Amount = 10000
	in.Purpose = domain.PurposePersonal
	loan, err := ledger.ApplyForLoan(ctx, in, john)
	if err != nil {
		t.Fatalf("ApplyForLoan failed: %v", err)
	}

	if _, err := ledger.VerifyLoan(ctx, loan.ID, &ReviewInput{Notes: "looks good"}, jane); err != nil {
		t.Fatalf("VerifyLoan failed: %v", err)
	}
	final, err := ledger.ApproveLoan(ctx, loan.ID, &ReviewInput{Notes: "approved for disbursement"}, admin)
	if err != nil {
		t.Fatalf("ApproveLoan failed: %v", err)
	}

	if final.Status != domain.LoanApproved {
		t.Errorf("Expected approved, got %s", final.Status)
	}
	if final.VerifiedBy != jane.ID || final.ApprovedBy != admin.ID {
		t.Errorf("Unexpected reviewers %s / %s", final.VerifiedBy, final.ApprovedBy)
	}
	if final.Notes != "approved for disbursement" {
		t.Errorf("Unexpected notes %q", final.Notes)
	}
	if final.UpdatedAt.Before(final.CreatedAt) {
		t.Error("updatedAt must not precede createdAt")
	}

	want := []string{EventLoanSubmitted, EventLoanVerified, EventLoanApproved}
	got := notifier.types()
	if len(got) != len(want) {
		t.Fatalf("Expected events %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Event %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestReview_EmptyNotesKeepPrevious(t *testing.T) {
	ledger, _ := newLedger(LedgerOptions{})
	ctx := context.Background()

	loan, _ := ledger.ApplyForLoan(ctx, validApply(), john)
	_, _ = ledger.VerifyLoan(ctx, loan.ID, &ReviewInput{Notes: "documents checked"}, jane)

	got, err := ledger.RejectLoan(ctx, loan.ID, nil, jane)
	if err != nil {
		t.Fatalf("RejectLoan failed: %v", err)
	}
	if got.Notes != "documents checked" {
		t.Errorf("Notes should be kept, got %q", got.Notes)
	}
	if got.VerifiedBy != jane.ID || got.ApprovedBy != "" {
		t.Errorf("Reject must not touch reviewer fields: %+v", got)
	}
}

func TestReview_NoGuardByDefault(t *testing.T) {
	ledger, _ := newLedger(LedgerOptions{})
	ctx := context.Background()

	loan, _ := ledger.ApplyForLoan(ctx, validApply(), john)
	if _, err := ledger.RejectLoan(ctx, loan.ID, &ReviewInput{Notes: "incomplete"}, jane); err != nil {
		t.Fatalf("RejectLoan failed: %v", err)
	}

	// terminal states are still overwritten
	got, err := ledger.ApproveLoan(ctx, loan.ID, &ReviewInput{Notes: "overridden"}, admin)
	if err != nil {
		t.Fatalf("ApproveLoan on rejected loan failed: %v", err)
	}
	if got.Status != domain.LoanApproved || got.ApprovedBy != admin.ID || got.Notes != "overridden" {
		t.Errorf("Unexpected state %+v", got)
	}

	got, err = ledger.VerifyLoan(ctx, loan.ID, nil, jane)
	if err != nil {
		t.Fatalf("VerifyLoan on approved loan failed: %v", err)
	}
	if got.Status != domain.LoanVerified || got.ApprovedBy != admin.ID {
		t.Errorf("approvedBy must never be cleared: %+v", got)
	}

	// roles are not checked inside the ledger either
	if _, err := ledger.ApproveLoan(ctx, loan.ID, nil, john); err != nil {
		t.Errorf("Default ledger trusts the caller, got %v", err)
	}
}

func TestReview_StrictTransitions(t *testing.T) {
	ledger, notifier := newLedger(LedgerOptions{StrictTransitions: true})
	ctx := context.Background()

	loan, _ := ledger.ApplyForLoan(ctx, validApply(), john)

	_, err := ledger.ApproveLoan(ctx, loan.ID, nil, admin)
	var terr *domain.TransitionError
	if !errors.As(err, &terr) || !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("Expected TransitionError, got %v", err)
	}
	if terr.From != domain.LoanPending || terr.To != domain.LoanApproved {
		t.Errorf("Unexpected transition %s -> %s", terr.From, terr.To)
	}
	if got, _ := ledger.GetLoan(ctx, loan.ID); got.Status != domain.LoanPending || got.ApprovedBy != "" {
		t.Errorf("Rejected transition mutated the loan: %+v", got)
	}

	if _, err := ledger.VerifyLoan(ctx, loan.ID, nil, jane); err != nil {
		t.Fatalf("VerifyLoan failed: %v", err)
	}
	if _, err := ledger.ApproveLoan(ctx, loan.ID, nil, admin); err != nil {
		t.Fatalf("ApproveLoan failed: %v", err)
	}
	for _, fn := range []func(context.Context, string, *ReviewInput, *domain.User) (*domain.LoanApplication, error){
		ledger.VerifyLoan, ledger.RejectLoan, ledger.ApproveLoan,
	} {
		if _, err := fn(ctx, loan.ID, nil, admin); !errors.Is(err, domain.ErrInvalidTransition) {
			t.Errorf("Approved loan must be terminal, got %v", err)
		}
	}

	if n := len(notifier.types()); n != 3 {
		t.Errorf("Expected 3 events, got %d", n)
	}
}

func TestReview_EnforceRoles(t *testing.T) {
	ledger, _ := newLedger(LedgerOptions{EnforceRoles: true})
	ctx := context.Background()

	loan, err := ledger.ApplyForLoan(ctx, validApply(), john)
	if err != nil {
		t.Fatalf("Every role may apply: %v", err)
	}

	if _, err := ledger.VerifyLoan(ctx, loan.ID, nil, john); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("User verify: expected ErrForbidden, got %v", err)
	}
	if _, err := ledger.ApproveLoan(ctx, loan.ID, nil, jane); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("Verifier approve: expected ErrForbidden, got %v", err)
	}
	if _, err := ledger.VerifyLoan(ctx, loan.ID, nil, jane); err != nil {
		t.Errorf("Verifier verify failed: %v", err)
	}
	if _, err := ledger.ApproveLoan(ctx, loan.ID, nil, admin); err != nil {
		t.Errorf("Admin approve failed: %v", err)
	}
}

func TestReview_Errors(t *testing.T) {
	ledger, notifier := newLedger(LedgerOptions{})
	ctx := context.Background()

	if _, err := ledger.VerifyLoan(ctx, "loan-missing", nil, jane); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}

	loan, _ := ledger.ApplyForLoan(ctx, validApply(), john)
	if _, err := ledger.ApproveLoan(ctx, loan.ID, &ReviewInput{Notes: "x"}, nil); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Errorf("Expected ErrUnauthenticated, got %v", err)
	}
	got, _ := ledger.GetLoan(ctx, loan.ID)
	if got.Status != domain.LoanPending || got.Notes != "" || !got.UpdatedAt.Equal(got.CreatedAt) {
		t.Errorf("Unauthenticated transition mutated the loan: %+v", got)
	}
	if n := len(notifier.types()); n != 1 {
		t.Errorf("Only the submission should be published, got %d", n)
	}
}

func TestReview_NotifierFailureIgnored(t *testing.T) {
	ledger, notifier := newLedger(LedgerOptions{})
	notifier.err = errors.New("broker down")

	loan, err := ledger.ApplyForLoan(context.Background(), validApply(), john)
	if err != nil {
		t.Fatalf("Publish failure must not fail the mutation: %v", err)
	}
	if _, err := ledger.VerifyLoan(context.Background(), loan.ID, nil, jane); err != nil {
		t.Fatalf("Publish failure must not fail the mutation: %v", err)
	}
}

func TestReview_CancelledDuringLatency(t *testing.T) {
	ledger, _ := newLedger(LedgerOptions{ReviewLatency: time.Hour})
	loan, _ := ledger.ApplyForLoan(context.Background(), validApply(), john)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if _, err := ledger.VerifyLoan(ctx, loan.ID, nil, jane); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Expected context.DeadlineExceeded, got %v", err)
	}
	if got, _ := ledger.GetLoan(context.Background(), loan.ID); got.Status != domain.LoanPending {
		t.Errorf("Aborted transition mutated the loan: %s", got.Status)
	}
}

func TestReview_UpdatedAtAdvances(t *testing.T) {
	ledger, _ := newLedger(LedgerOptions{})
	clock := &fakeClock{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC), step: time.Minute}
	ledger.SetClock(clock.Now)
	ctx := context.Background()

	loan, _ := ledger.ApplyForLoan(ctx, validApply(), john)
	got, _ := ledger.VerifyLoan(ctx, loan.ID, nil, jane)

	if !got.UpdatedAt.After(got.CreatedAt) {
		t.Errorf("Expected updatedAt after createdAt, got %v / %v", got.CreatedAt, got.UpdatedAt)
	}
	if !got.CreatedAt.Equal(loan.CreatedAt) {
		t.Error("createdAt must not change")
	}
}
