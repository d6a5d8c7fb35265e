package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"credit-admin/internal/adapters/persistence/kv"
	"credit-admin/internal/core/domain"
)

// DefaultSessionKey is the fixed key the session record lives under
const DefaultSessionKey = "user"

// sessionRepository stores the session user as a JSON blob under one key
type sessionRepository struct {
	store kv.Store
	key   string
}

// NewSessionRepository creates a session repository on top of a KV store
func NewSessionRepository(store kv.Store, key string) SessionRepository {
	if key == "" {
		key = DefaultSessionKey
	}
	return &sessionRepository{store: store, key: key}
}

// Load returns the persisted session user, or nil when none is stored
func (r *sessionRepository) Load(ctx context.Context) (*domain.User, error) {
	raw, err := r.store.Get(ctx, r.key)
	if err != nil {
		if errors.Is(err, kv.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var user domain.User
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &user, nil
}

// Save persists the session user
func (r *sessionRepository) Save(ctx context.Context, user *domain.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	return r.store.Set(ctx, r.key, raw)
}

// Delete removes the persisted session
func (r *sessionRepository) Delete(ctx context.Context) error {
	return r.store.Delete(ctx, r.key)
}

// Ping checks the backing store
func (r *sessionRepository) Ping(ctx context.Context) error {
	return r.store.Ping(ctx)
}
