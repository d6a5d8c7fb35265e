package repositories

import (
	"context"
	"errors"

	"credit-admin/internal/core/domain"
)

// ErrRecordNotFound is returned by repositories when no record matches
var ErrRecordNotFound = errors.New("record not found")

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*domain.User, error)
	Count(ctx context.Context) (int64, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// LoanFilter narrows a loan listing. Zero values match everything.
type LoanFilter struct {
	Search string
	Status domain.LoanStatus
	UserID string
}

// LoanRepository defines loan repository interface
type LoanRepository interface {
	Create(ctx context.Context, loan *domain.LoanApplication) error
	GetByID(ctx context.Context, id string) (*domain.LoanApplication, error)
	Update(ctx context.Context, loan *domain.LoanApplication) error
	List(ctx context.Context, filter LoanFilter, offset, limit int) ([]*domain.LoanApplication, int64, error)
	All(ctx context.Context) ([]*domain.LoanApplication, error)
}

// SessionRepository persists the single active session
type SessionRepository interface {
	Load(ctx context.Context) (*domain.User, error)
	Save(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context) error
	Ping(ctx context.Context) error
}
