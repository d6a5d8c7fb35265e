package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"credit-admin/internal/core/domain"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Loan lifecycle event types
const (
	EventLoanSubmitted = "loan.submitted"
	EventLoanVerified  = "loan.verified"
	EventLoanRejected  = "loan.rejected"
	EventLoanApproved  = "loan.approved"
	EventReviewBacklog = "loan.review_backlog"
)

// DefaultEventQueue is the durable queue loan events are published to
const DefaultEventQueue = "loan.events"

const (
	// DefaultDialTimeout bounds the TCP connect and AMQP handshake
	DefaultDialTimeout = 2 * time.Second

	// DefaultRedialBackoff is how long publishes fail fast after a failed dial
	DefaultRedialBackoff = 5 * time.Second
)

// ErrBrokerUnavailable is returned while a failed dial is backing off
var ErrBrokerUnavailable = errors.New("rabbitmq unavailable")

func eventFor(status domain.LoanStatus) string {
	switch status {
	case domain.LoanVerified:
		return EventLoanVerified
	case domain.LoanRejected:
		return EventLoanRejected
	case domain.LoanApproved:
		return EventLoanApproved
	}
	return EventLoanSubmitted
}

// LoanEvent is the JSON message published for every ledger mutation
type LoanEvent struct {
	Type       string            `json:"type"`
	LoanID     string            `json:"loan_id,omitempty"`
	Status     domain.LoanStatus `json:"status,omitempty"`
	Amount     float64           `json:"amount,omitempty"`
	OwnerID    string            `json:"owner_id,omitempty"`
	ActorID    string            `json:"actor_id,omitempty"`
	ActorRole  domain.Role       `json:"actor_role,omitempty"`
	Notes      string            `json:"notes,omitempty"`
	Pending    int               `json:"pending,omitempty"`
	Verified   int               `json:"verified,omitempty"`
	OccurredAt time.Time         `json:"occurred_at"`
}

// NewLoanEvent builds the event for a mutation of loan by actor
func NewLoanEvent(eventType string, loan *domain.LoanApplication, actor *domain.User) LoanEvent {
	event := LoanEvent{
		Type:       eventType,
		LoanID:     loan.ID,
		Status:     loan.Status,
		Amount:     loan.Amount,
		OwnerID:    loan.UserID,
		Notes:      loan.Notes,
		OccurredAt: loan.UpdatedAt.UTC(),
	}
	if actor != nil {
		event.ActorID = actor.ID
		event.ActorRole = actor.Role
	}
	return event
}

// NotificationService publishes loan events to RabbitMQ. With no broker URL
// configured every publish is a no-op.
type NotificationService struct {
	url         string
	queue       string
	dialTimeout time.Duration
	backoff     time.Duration

	mu          sync.Mutex
	conn        *amqp.Connection
	ch          *amqp.Channel
	redialAfter time.Time
}

// NewNotificationService creates a new notification service
func NewNotificationService(url, queue string) *NotificationService {
	if queue == "" {
		queue = DefaultEventQueue
	}
	return &NotificationService{
		url:         url,
		queue:       queue,
		dialTimeout: DefaultDialTimeout,
		backoff:     DefaultRedialBackoff,
	}
}

// IsEnabled checks if notification is enabled
func (s *NotificationService) IsEnabled() bool {
	return s.url != ""
}

// Connect dials the broker and declares the durable event queue
func (s *NotificationService) Connect() error {
	if !s.IsEnabled() {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.connectLocked()
}

func (s *NotificationService) connectLocked() error {
	if time.Now().Before(s.redialAfter) {
		return ErrBrokerUnavailable
	}

	conn, err := amqp.DialConfig(s.url, amqp.Config{
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
		Dial:      amqp.DefaultDial(s.dialTimeout),
	})
	if err != nil {
		s.redialAfter = time.Now().Add(s.backoff)
		return fmt.Errorf("rabbitmq dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("rabbitmq channel: %w", err)
	}

	if _, err := ch.QueueDeclare(
		s.queue, // name
		true,    // durable
		false,   // autoDelete
		false,   // exclusive
		false,   // noWait
		nil,     // args
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return fmt.Errorf("rabbitmq queue declare: %w", err)
	}

	s.conn, s.ch = conn, ch
	log.Printf("✅ RabbitMQ connected [queue: %s]", s.queue)
	return nil
}

// Publish implements Notifier. A dropped connection is re-dialled once, and
// after a failed dial publishes return ErrBrokerUnavailable until the
// backoff elapses.
func (s *NotificationService) Publish(ctx context.Context, event LoanEvent) error {
	if !s.IsEnabled() {
		return nil
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ch == nil || s.ch.IsClosed() {
		s.closeLocked()
		if err := s.connectLocked(); err != nil {
			return err
		}
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Type:         event.Type,
		Body:         body,
	}

	if err := s.ch.PublishWithContext(ctx,
		"",      // default exchange
		s.queue, // routing key = queue name
		false,   // mandatory
		false,   // immediate
		pub,
	); err != nil {
		return fmt.Errorf("rabbitmq publish: %w", err)
	}
	return nil
}

// Close closes the broker connection
func (s *NotificationService) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closeLocked()
}

func (s *NotificationService) closeLocked() {
	if s.ch != nil {
		_ = s.ch.Close()
		s.ch = nil
	}
	if s.conn != nil {
		_ = s.conn.Close()
		s.conn = nil
	}
}
