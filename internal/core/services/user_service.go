package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"credit-admin/internal/adapters/persistence/repositories"
	"credit-admin/internal/core/domain"
	"credit-admin/internal/pkg/password"
	"credit-admin/internal/pkg/validate"

	"github.com/google/uuid"
)

// AddUserInput represents add user input (admin)
type AddUserInput struct {
	Name     string      `json:"name" validate:"required,max=100"`
	Email    string      `json:"email" validate:"required,email"`
	Role     domain.Role `json:"role" validate:"required,role"`
	Image    string      `json:"image" validate:"omitempty,url"`
	Password string      `json:"password" validate:"omitempty,min=6"`
}

// UpdateUserInput represents a partial update. Nil fields are left untouched.
type UpdateUserInput struct {
	Name  *string      `json:"name" validate:"omitempty,min=1,max=100"`
	Email *string      `json:"email" validate:"omitempty,email"`
	Role  *domain.Role `json:"role" validate:"omitempty,role"`
	Image *string      `json:"image" validate:"omitempty,url"`
}

func (in *UpdateUserInput) patch() domain.UserPatch {
	return domain.UserPatch{Name: in.Name, Email: in.Email, Role: in.Role, Image: in.Image}
}

// AddUser appends a new user to the roster. Duplicate emails (exact match)
// are rejected.
func (s *IdentityStore) AddUser(ctx context.Context, input *AddUserInput) (*domain.User, error) {
	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	var hash string
	if input.Password != "" {
		h, err := password.Hash(input.Password)
		if err != nil {
			return nil, err
		}
		hash = h
	}

	if err := simulateLatency(ctx, s.latency); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	exists, err := s.users.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrEmailAlreadyInUse
	}

	user := &domain.User{
		ID:           "user-" + uuid.NewString(),
		Name:         input.Name,
		Email:        input.Email,
		Role:         input.Role,
		Image:        input.Image,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	log.Printf("✅ User added: %s (%s)", user.Email, user.Role)
	return user, nil
}

// RemoveUser removes a user from the roster. The session user cannot remove
// itself.
func (s *IdentityStore) RemoveUser(ctx context.Context, id string) error {
	if err := simulateLatency(ctx, s.latency); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current != nil && s.current.ID == id {
		return domain.ErrCannotRemoveSelf
	}

	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	log.Printf("✅ User removed: %s", id)
	return nil
}

// UpdateUser merges the given fields into a roster entry. When the entry is
// the session user the session is updated and persisted as well.
func (s *IdentityStore) UpdateUser(ctx context.Context, id string, input *UpdateUserInput) (*domain.User, error) {
	if err := validate.Struct(input); err != nil {
		return nil, err
	}
	if err := simulateLatency(ctx, s.latency); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	// email must stay unique
	if input.Email != nil && *input.Email != user.Email {
		exists, err := s.users.ExistsByEmail(ctx, *input.Email)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, domain.ErrEmailAlreadyInUse
		}
	}

	input.patch().Apply(user)
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	if s.current != nil && s.current.ID == id {
		if err := s.sessions.Save(ctx, user); err != nil {
			return nil, fmt.Errorf("persist session: %w", err)
		}
		s.current = user.Clone()
	}

	return user, nil
}

// ListUsers returns the roster in insertion order
func (s *IdentityStore) ListUsers(ctx context.Context) ([]*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.users.List(ctx)
}

// GetUser gets a roster entry by ID
func (s *IdentityStore) GetUser(ctx context.Context, id string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// SeedUsers loads fixed roster entries, skipping emails already present
func (s *IdentityStore) SeedUsers(ctx context.Context, users []*domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range users {
		exists, err := s.users.ExistsByEmail(ctx, u.Email)
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		if err := s.users.Create(ctx, u); err != nil {
			return err
		}
	}
	return nil
}
