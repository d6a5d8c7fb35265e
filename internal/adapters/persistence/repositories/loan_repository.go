package repositories

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"credit-admin/internal/core/domain"
)

// loanRepository implements LoanRepository in memory, newest first
type loanRepository struct {
	mu    sync.RWMutex
	loans []*domain.LoanApplication
}

// NewLoanRepository creates a new loan repository
func NewLoanRepository() LoanRepository {
	return &loanRepository{}
}

// Create prepends a loan so listings stay newest first
func (r *loanRepository) Create(ctx context.Context, loan *domain.LoanApplication) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loans = append([]*domain.LoanApplication{loan.Clone()}, r.loans...)
	return nil
}

// GetByID gets a loan by ID
func (r *loanRepository) GetByID(ctx context.Context, id string) (*domain.LoanApplication, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if i := r.indexOf(id); i >= 0 {
		return r.loans[i].Clone(), nil
	}
	return nil, ErrRecordNotFound
}

// Update replaces the stored loan with the same ID
func (r *loanRepository) Update(ctx context.Context, loan *domain.LoanApplication) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(loan.ID)
	if i < 0 {
		return ErrRecordNotFound
	}
	r.loans[i] = loan.Clone()
	return nil
}

// List lists loans matching filter with pagination
func (r *loanRepository) List(ctx context.Context, filter LoanFilter, offset, limit int) ([]*domain.LoanApplication, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*domain.LoanApplication
	for _, l := range r.loans {
		if matches(l, filter) {
			matched = append(matched, l)
		}
	}

	total := int64(len(matched))
	if offset < 0 {
		offset = 0
	}
	if offset >= len(matched) {
		return []*domain.LoanApplication{}, total, nil
	}
	end := len(matched)
	if limit > 0 && limit < end-offset {
		end = offset + limit
	}

	out := make([]*domain.LoanApplication, 0, end-offset)
	for _, l := range matched[offset:end] {
		out = append(out, l.Clone())
	}
	return out, total, nil
}

// All returns every loan, newest first
func (r *loanRepository) All(ctx context.Context) ([]*domain.LoanApplication, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.LoanApplication, len(r.loans))
	for i, l := range r.loans {
		out[i] = l.Clone()
	}
	return out, nil
}

func (r *loanRepository) indexOf(id string) int {
	for i, l := range r.loans {
		if l.ID == id {
			return i
		}
	}
	return -1
}

// matches applies the loan list search: officer name, purpose, amount and
// status, case-insensitive substring.
func matches(l *domain.LoanApplication, f LoanFilter) bool {
	if f.Status != "" && l.Status != f.Status {
		return false
	}
	if f.UserID != "" && l.UserID != f.UserID {
		return false
	}
	if f.Search == "" {
		return true
	}
	q := strings.ToLower(f.Search)
	amount := strconv.FormatFloat(l.Amount, 'f', -1, 64)
	return strings.Contains(strings.ToLower(l.OfficerName), q) ||
		strings.Contains(strings.ToLower(string(l.Purpose)), q) ||
		strings.Contains(amount, q) ||
		strings.Contains(strings.ToLower(string(l.Status)), q)
}
