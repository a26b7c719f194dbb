package memory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"pet-adoption/internal/domain/errs"
	"pet-adoption/internal/domain/pets"
)

type petRepo struct {
	mu   sync.RWMutex
	byID map[string]pets.Pet
}

func NewPetRepo() pets.Repository {
	return &petRepo{
		byID: make(map[string]pets.Pet),
	}
}

func (r *petRepo) Create(ctx context.Context, p pets.Pet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return errors.New("pet id required")
	}
	if _, exists := r.byID[p.ID]; exists {
		return fmt.Errorf("%w: pet already exists", errs.ErrConflict)
	}
	r.byID[p.ID] = p

	onRollback(ctx, func() {
		r.mu.Lock()
		delete(r.byID, p.ID)
		r.mu.Unlock()
	})
	return nil
}

func (r *petRepo) Update(ctx context.Context, p pets.Pet, expectedVersion int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev, exists := r.byID[p.ID]
	if !exists {
		return errs.ErrNotFound
	}
	if prev.Version != expectedVersion {
		return errs.ErrStaleWrite
	}
	r.byID[p.ID] = p

	onRollback(ctx, func() {
		r.mu.Lock()
		r.byID[prev.ID] = prev
		r.mu.Unlock()
	})
	return nil
}

func (r *petRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return pets.Pet{}, errs.ErrNotFound
	}
	return p, nil
}

func (r *petRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]pets.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]pets.Pet, 0)
	for _, p := range r.byID {
		if p.OwnerUserID == ownerUserID {
			out = append(out, p)
		}
	}

	sortPetsNewestFirst(out)
	return out, nil
}

func (r *petRepo) List(ctx context.Context, filter pets.ListFilter) ([]pets.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]pets.Pet, 0)
	for _, p := range r.byID {
		if filter.Matches(p) {
			out = append(out, p)
		}
	}

	sortPetsNewestFirst(out)
	if limit := filter.NormalizedLimit(); len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Igual que el ORDER BY de Postgres: created_at desc, id desc.
func sortPetsNewestFirst(out []pets.Pet) {
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
}
