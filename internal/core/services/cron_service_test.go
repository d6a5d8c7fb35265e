package services

import (
	"context"
	"testing"
)

func TestRunReminder(t *testing.T) {
	ledger, _ := newLedger(LedgerOptions{})
	notifier := &recordingNotifier{}
	svc := NewCronService(ledger, notifier, "")
	ctx := context.Background()

	backlog, err := svc.RunReminder(ctx)
	if err != nil {
		t.Fatalf("RunReminder failed: %v", err)
	}
	if backlog.Pending != 0 || len(notifier.types()) != 0 {
		t.Errorf("Empty ledger should not publish, got %+v", backlog)
	}

	a, _ := ledger.ApplyForLoan(ctx, validApply(), john)
	b, _ := ledger.ApplyForLoan(ctx, validApply(), john)
	c, _ := ledger.ApplyForLoan(ctx, validApply(), john)
	_, _ = ledger.VerifyLoan(ctx, b.ID, nil, jane)
	_, _ = ledger.RejectLoan(ctx, c.ID, nil, jane)
	_ = a

	backlog, err = svc.RunReminder(ctx)
	if err != nil {
		t.Fatalf("RunReminder failed: %v", err)
	}
	if backlog.Pending != 1 || backlog.Verified != 1 || backlog.Amount != 20000 {
		t.Errorf("Unexpected backlog %+v", backlog)
	}
	if types := notifier.types(); len(types) != 1 || types[0] != EventReviewBacklog {
		t.Errorf("Expected one backlog event, got %v", types)
	}
}

func TestCronService_InvalidSpec(t *testing.T) {
	ledger, _ := newLedger(LedgerOptions{})
	svc := NewCronService(ledger, nil, "not a cron line")
	if err := svc.Start(); err == nil {
		svc.Stop()
		t.Fatal("Expected an error for an invalid schedule")
	}
}

func TestCronService_StartStop(t *testing.T) {
	ledger, _ := newLedger(LedgerOptions{})
	svc := NewCronService(ledger, nil, DefaultReminderSpec)
	if err := svc.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	svc.Stop()
}
