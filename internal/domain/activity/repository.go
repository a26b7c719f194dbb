package activity

import (
	"context"
	"sort"
)

// Repository es append-only: no existe Update ni Delete.
type Repository interface {
	Append(ctx context.Context, e Event) error
	GetByID(ctx context.Context, id string) (Event, error)
	List(ctx context.Context, filter ListFilter) ([]Event, error)
	Count(ctx context.Context, filter ListFilter) (int, error)
}

// ListFilter selecciona el conjunto visible de eventos.
// All ignora SubjectIDs (vista admin). Sin All y sin SubjectIDs no hay resultados.
type ListFilter struct {
	All        bool
	SubjectIDs []string
	After      *Cursor // estrictamente posteriores
	Limit      int     // <= 0: sin límite (solo Count lo usa así)
}

// Matches aplica el filtro en memoria (sin Limit).
func (f ListFilter) Matches(e Event) bool {
	if !f.All {
		if len(f.SubjectIDs) == 0 {
			return false
		}
		if !e.References(idSet(f.SubjectIDs)) {
			return false
		}
	}
	if f.After != nil && !f.After.Before(CursorOf(e)) {
		return false
	}
	return true
}

// WatermarkStore guarda hasta dónde leyó cada usuario su feed.
type WatermarkStore interface {
	Get(ctx context.Context, userID string) (Cursor, bool, error)
	// Advance solo avanza: si c no es posterior al actual, deja el actual.
	// Devuelve el cursor vigente tras la operación.
	Advance(ctx context.Context, userID string, c Cursor) (Cursor, error)
}

// SortNewestFirst ordena por (timestamp desc, id desc).
func SortNewestFirst(events []Event) {
	sort.SliceStable(events, func(i, j int) bool {
		return CursorOf(events[j]).Before(CursorOf(events[i]))
	})
}

func idSet(ids []string) map[string]struct{} {
	out := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		out[id] = struct{}{}
	}
	return out
}
