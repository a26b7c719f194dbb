package memory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"pet-adoption/internal/domain/errs"
	"pet-adoption/internal/domain/users"
)

type userRepo struct {
	mu   sync.RWMutex
	byID map[string]users.User
}

func NewUserRepo() users.Repository {
	return &userRepo{
		byID: make(map[string]users.User),
	}
}

func (r *userRepo) Create(ctx context.Context, u users.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(u.ID) == "" {
		return errors.New("user id required")
	}
	if _, exists := r.byID[u.ID]; exists {
		return fmt.Errorf("%w: user already exists", errs.ErrConflict)
	}
	r.byID[u.ID] = u

	onRollback(ctx, func() {
		r.mu.Lock()
		delete(r.byID, u.ID)
		r.mu.Unlock()
	})
	return nil
}

func (r *userRepo) Update(ctx context.Context, u users.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev, exists := r.byID[u.ID]
	if !exists {
		return errs.ErrNotFound
	}
	r.byID[u.ID] = u

	onRollback(ctx, func() {
		r.mu.Lock()
		r.byID[prev.ID] = prev
		r.mu.Unlock()
	})
	return nil
}

func (r *userRepo) GetByID(ctx context.Context, id string) (users.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return users.User{}, errs.ErrNotFound
	}
	return u, nil
}
