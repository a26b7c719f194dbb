package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"pet-adoption/internal/domain/activity"
	"pet-adoption/internal/domain/errs"
)

// eventRepo es append-only: un slice en orden de llegada más un índice por id.
type eventRepo struct {
	mu     sync.RWMutex
	events []activity.Event
	byID   map[string]int
}

func NewEventRepo() activity.Repository {
	return &eventRepo{
		byID: make(map[string]int),
	}
}

func (r *eventRepo) Append(ctx context.Context, e activity.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e.ID == "" {
		return errors.New("event id required")
	}
	if _, exists := r.byID[e.ID]; exists {
		return fmt.Errorf("%w: event already exists", errs.ErrConflict)
	}

	e.SubjectIDs = append([]string(nil), e.SubjectIDs...)
	r.byID[e.ID] = len(r.events)
	r.events = append(r.events, e)

	onRollback(ctx, func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		i, ok := r.byID[e.ID]
		if !ok {
			return
		}
		r.events = append(r.events[:i], r.events[i+1:]...)
		delete(r.byID, e.ID)
		for j := i; j < len(r.events); j++ {
			r.byID[r.events[j].ID] = j
		}
	})
	return nil
}

func (r *eventRepo) GetByID(ctx context.Context, id string) (activity.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.byID[id]
	if !ok {
		return activity.Event{}, errs.ErrNotFound
	}
	return r.events[i], nil
}

func (r *eventRepo) List(ctx context.Context, filter activity.ListFilter) ([]activity.Event, error) {
	out := r.matching(filter)
	activity.SortNewestFirst(out)
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (r *eventRepo) Count(ctx context.Context, filter activity.ListFilter) (int, error) {
	return len(r.matching(filter)), nil
}

func (r *eventRepo) matching(filter activity.ListFilter) []activity.Event {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]activity.Event, 0)
	for _, e := range r.events {
		if filter.Matches(e) {
			out = append(out, e)
		}
	}
	return out
}

type watermarkRepo struct {
	mu     sync.Mutex
	byUser map[string]activity.Cursor
}

func NewWatermarkRepo() activity.WatermarkStore {
	return &watermarkRepo{
		byUser: make(map[string]activity.Cursor),
	}
}

func (r *watermarkRepo) Get(ctx context.Context, userID string) (activity.Cursor, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.byUser[userID]
	return c, ok, nil
}

func (r *watermarkRepo) Advance(ctx context.Context, userID string, c activity.Cursor) (activity.Cursor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if userID == "" {
		return activity.Cursor{}, errors.New("user id required")
	}
	cur, ok := r.byUser[userID]
	if ok && !cur.Before(c) {
		return cur, nil
	}
	r.byUser[userID] = c
	return c, nil
}
