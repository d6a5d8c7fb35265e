package services

import (
	"context"
	"log"
	"time"

	"credit-admin/internal/core/domain"

	"github.com/robfig/cron/v3"
)

// DefaultReminderSpec fires the review reminder at 08:30 every day
const DefaultReminderSpec = "30 8 * * *"

// ReviewBacklog summarises loans still waiting for a reviewer
type ReviewBacklog struct {
	Pending  int     `json:"pending"`
	Verified int     `json:"verified"`
	Amount   float64 `json:"amount"`
}

// CronService runs the scheduled review reminder
type CronService struct {
	ledger   *LoanLedger
	notifier Notifier
	spec     string
	cron     *cron.Cron
}

// NewCronService creates a new cron service
func NewCronService(ledger *LoanLedger, notifier Notifier, spec string) *CronService {
	if spec == "" {
		spec = DefaultReminderSpec
	}
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &CronService{
		ledger:   ledger,
		notifier: notifier,
		spec:     spec,
		cron:     cron.New(),
	}
}

// Start schedules the reminder and starts the scheduler
func (s *CronService) Start() error {
	if _, err := s.cron.AddFunc(s.spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if _, err := s.RunReminder(ctx); err != nil {
			log.Printf("❌ Review reminder failed: %v", err)
		}
	}); err != nil {
		return err
	}

	s.cron.Start()
	log.Printf("🚀 CronService started [reminder: %s]", s.spec)
	return nil
}

// Stop stops the scheduler and waits for a running job
func (s *CronService) Stop() {
	<-s.cron.Stop().Done()
	log.Println("🛑 CronService stopped")
}

// RunReminder counts the review backlog and publishes it when non-empty
func (s *CronService) RunReminder(ctx context.Context) (*ReviewBacklog, error) {
	loans, err := s.ledger.AllLoans(ctx)
	if err != nil {
		return nil, err
	}

	backlog := &ReviewBacklog{}
	for _, loan := range loans {
		switch loan.Status {
		case domain.LoanPending:
			backlog.Pending++
		case domain.LoanVerified:
			backlog.Verified++
		default:
			continue
		}
		backlog.Amount += loan.Amount
	}

	if backlog.Pending == 0 && backlog.Verified == 0 {
		log.Println("✅ Review reminder: nothing waiting")
		return backlog, nil
	}

	log.Printf("⏰ Review reminder: %d pending, %d awaiting approval (%.2f)",
		backlog.Pending, backlog.Verified, backlog.Amount)

	event := LoanEvent{
		Type:       EventReviewBacklog,
		Amount:     backlog.Amount,
		Pending:    backlog.Pending,
		Verified:   backlog.Verified,
		OccurredAt: time.Now().UTC(),
	}
	if err := s.notifier.Publish(ctx, event); err != nil {
		log.Printf("⚠️ Failed to publish review reminder: %v", err)
	}
	return backlog, nil
}
