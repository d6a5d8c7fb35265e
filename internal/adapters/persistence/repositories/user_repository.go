package repositories

import (
	"context"
	"sync"

	"credit-admin/internal/core/domain"
)

// userRepository implements UserRepository over an in-memory roster.
// Insertion order is preserved.
type userRepository struct {
	mu    sync.RWMutex
	users []*domain.User
}

// NewUserRepository creates a new user repository
func NewUserRepository() UserRepository {
	return &userRepository{}
}

// Create appends a user to the roster
func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users = append(r.users, user.Clone())
	return nil
}

// GetByID gets a user by ID
func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if i := r.indexOf(id); i >= 0 {
		return r.users[i].Clone(), nil
	}
	return nil, ErrRecordNotFound
}

// GetByEmail gets a user by exact email match
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Email == email {
			return u.Clone(), nil
		}
	}
	return nil, ErrRecordNotFound
}

// Update replaces the stored user with the same ID
func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(user.ID)
	if i < 0 {
		return ErrRecordNotFound
	}
	r.users[i] = user.Clone()
	return nil
}

// Delete removes a user from the roster
func (r *userRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(id)
	if i < 0 {
		return ErrRecordNotFound
	}
	r.users = append(r.users[:i], r.users[i+1:]...)
	return nil
}

// List returns the whole roster
func (r *userRepository) List(ctx context.Context) ([]*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.User, len(r.users))
	for i, u := range r.users {
		out[i] = u.Clone()
	}
	return out, nil
}

// Count returns the roster size
func (r *userRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.users)), nil
}

// ExistsByEmail checks if email exists (case-sensitive)
func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	if err == ErrRecordNotFound {
		return false, nil
	}
	return err == nil, err
}

func (r *userRepository) indexOf(id string) int {
	for i, u := range r.users {
		if u.ID == id {
			return i
		}
	}
	return -1
}
