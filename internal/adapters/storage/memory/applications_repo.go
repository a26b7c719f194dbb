package memory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"pet-adoption/internal/domain/applications"
	"pet-adoption/internal/domain/errs"
)

// applicationRepo replica en memoria los índices únicos parciales de Postgres.
type applicationRepo struct {
	mu   sync.RWMutex
	byID map[string]applications.Application
}

func NewApplicationRepo() applications.Repository {
	return &applicationRepo{
		byID: make(map[string]applications.Application),
	}
}

func (r *applicationRepo) Create(ctx context.Context, a applications.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(a.ID) == "" {
		return errors.New("application id required")
	}
	if _, exists := r.byID[a.ID]; exists {
		return fmt.Errorf("%w: application already exists", errs.ErrConflict)
	}
	if a.Status.Active() {
		for _, o := range r.byID {
			if o.PetID == a.PetID && o.AdopterID == a.AdopterID && o.Status.Active() {
				return errs.ErrDuplicateApplication
			}
		}
	}
	if err := r.checkSingleApproved(a); err != nil {
		return err
	}

	r.byID[a.ID] = a

	onRollback(ctx, func() {
		r.mu.Lock()
		delete(r.byID, a.ID)
		r.mu.Unlock()
	})
	return nil
}

func (r *applicationRepo) Update(ctx context.Context, a applications.Application, expectedVersion int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev, exists := r.byID[a.ID]
	if !exists {
		return errs.ErrNotFound
	}
	if prev.Version != expectedVersion {
		return errs.ErrStaleWrite
	}
	if err := r.checkSingleApproved(a); err != nil {
		return err
	}

	r.byID[a.ID] = a

	onRollback(ctx, func() {
		r.mu.Lock()
		r.byID[prev.ID] = prev
		r.mu.Unlock()
	})
	return nil
}

// checkSingleApproved requiere r.mu tomado.
func (r *applicationRepo) checkSingleApproved(a applications.Application) error {
	if a.Status != applications.StatusApproved {
		return nil
	}
	for _, o := range r.byID {
		if o.ID != a.ID && o.PetID == a.PetID && o.Status == applications.StatusApproved {
			return errs.ErrConflict
		}
	}
	return nil
}

func (r *applicationRepo) GetByID(ctx context.Context, id string) (applications.Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return applications.Application{}, errs.ErrNotFound
	}
	return a, nil
}

func (r *applicationRepo) ListByPet(ctx context.Context, petID string) ([]applications.Application, error) {
	return r.where(func(a applications.Application) bool { return a.PetID == petID }), nil
}

func (r *applicationRepo) ListByAdopter(ctx context.Context, adopterID string) ([]applications.Application, error) {
	return r.where(func(a applications.Application) bool { return a.AdopterID == adopterID }), nil
}

func (r *applicationRepo) ListByPets(ctx context.Context, petIDs []string) (map[string][]applications.Application, error) {
	want := make(map[string]struct{}, len(petIDs))
	for _, id := range petIDs {
		want[id] = struct{}{}
	}

	out := make(map[string][]applications.Application)
	for _, a := range r.where(func(a applications.Application) bool {
		_, ok := want[a.PetID]
		return ok
	}) {
		out[a.PetID] = append(out[a.PetID], a)
	}
	return out, nil
}

func (r *applicationRepo) where(keep func(applications.Application) bool) []applications.Application {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]applications.Application, 0)
	for _, a := range r.byID {
		if keep(a) {
			out = append(out, a)
		}
	}
	applications.SortNewestFirst(out)
	return out
}
