package activity

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

// Recorder es lo que los ciclos de vida necesitan para emitir eventos.
type Recorder interface {
	Record(ctx context.Context, kind Kind, subjectIDs []string, summary string) (Event, error)
}

// Log es el único autor de eventos de actividad.
type Log struct {
	repo  Repository
	now   func() time.Time
	newID func() string
}

func NewLog(repo Repository) *Log {
	return &Log{
		repo: repo,
		now:  time.Now,
		// v7: ordenable por tiempo, desempata de forma estable eventos del mismo instante.
		newID: func() string { return uuid.Must(uuid.NewV7()).String() },
	}
}

// Record agrega un evento. Debe llamarse dentro de la misma transacción que
// la transición que lo origina.
func (l *Log) Record(ctx context.Context, kind Kind, subjectIDs []string, summary string) (Event, error) {
	if kind == "" {
		return Event{}, ErrInvalidInput
	}

	subjects := make([]string, 0, len(subjectIDs))
	seen := map[string]struct{}{}
	for _, s := range subjectIDs {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		subjects = append(subjects, s)
	}
	if len(subjects) == 0 {
		return Event{}, ErrInvalidInput
	}

	e := Event{
		ID:         l.newID(),
		Kind:       kind,
		SubjectIDs: subjects,
		// Postgres guarda microsegundos; truncamos para que memoria y SQL ordenen igual.
		OccurredAt: l.now().UTC().Truncate(time.Microsecond),
		Summary:    strings.TrimSpace(summary),
	}

	if err := l.repo.Append(ctx, e); err != nil {
		return Event{}, err
	}
	return e, nil
}

func (l *Log) GetByID(ctx context.Context, id string) (Event, error) {
	return l.repo.GetByID(ctx, strings.TrimSpace(id))
}

func (l *Log) List(ctx context.Context, filter ListFilter) ([]Event, error) {
	return l.repo.List(ctx, filter)
}

func (l *Log) Count(ctx context.Context, filter ListFilter) (int, error) {
	return l.repo.Count(ctx, filter)
}
