package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"pet-adoption/internal/domain/activity"
)

// EventsRepo es append-only: no hay UPDATE ni DELETE sobre activity_events.
type EventsRepo struct {
	db *sql.DB
}

func NewEventsRepo(db *sql.DB) *EventsRepo {
	return &EventsRepo{db: db}
}

func (r *EventsRepo) Append(ctx context.Context, e activity.Event) error {
	_, err := conn(ctx, r.db).ExecContext(ctx, `
		INSERT INTO activity_events (id, kind, subject_ids, occurred_at, summary)
		VALUES ($1,$2,$3,$4,$5)
	`,
		e.ID,
		string(e.Kind),
		e.SubjectIDs,
		e.OccurredAt,
		e.Summary,
	)
	return mapError(err)
}

func (r *EventsRepo) GetByID(ctx context.Context, id string) (activity.Event, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return activity.Event{}, mapError(sql.ErrNoRows)
	}

	row := conn(ctx, r.db).QueryRowContext(ctx, `
		SELECT id, kind, subject_ids, occurred_at, summary
		FROM activity_events
		WHERE id = $1
	`, id)
	e, err := scanEvent(row)
	if err != nil {
		return activity.Event{}, mapError(err)
	}
	return e, nil
}

func (r *EventsRepo) List(ctx context.Context, filter activity.ListFilter) ([]activity.Event, error) {
	where, args, ok := eventWhere(filter)
	if !ok {
		return []activity.Event{}, nil
	}

	query := `SELECT id, kind, subject_ids, occurred_at, summary FROM activity_events` +
		where + ` ORDER BY occurred_at DESC, id DESC`
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", len(args)+1)
		args = append(args, filter.Limit)
	}

	rows, err := conn(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]activity.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *EventsRepo) Count(ctx context.Context, filter activity.ListFilter) (int, error) {
	where, args, ok := eventWhere(filter)
	if !ok {
		return 0, nil
	}

	var n int
	err := conn(ctx, r.db).QueryRowContext(ctx, `SELECT count(*) FROM activity_events`+where, args...).Scan(&n)
	return n, err
}

// eventWhere arma el WHERE del conjunto visible. ok=false significa conjunto
// vacío (sin All y sin sujetos).
func eventWhere(filter activity.ListFilter) (string, []any, bool) {
	conds := []string{}
	args := []any{}

	if !filter.All {
		subjects := make([]string, 0, len(filter.SubjectIDs))
		for _, s := range filter.SubjectIDs {
			if s != "" {
				subjects = append(subjects, s)
			}
		}
		if len(subjects) == 0 {
			return "", nil, false
		}
		args = append(args, subjects)
		conds = append(conds, fmt.Sprintf("subject_ids && $%d::text[]", len(args)))
	}

	if filter.After != nil {
		args = append(args, filter.After.At, filter.After.ID)
		conds = append(conds, fmt.Sprintf("(occurred_at, id) > ($%d, $%d)", len(args)-1, len(args)))
	}

	if len(conds) == 0 {
		return "", args, true
	}
	return " WHERE " + strings.Join(conds, " AND "), args, true
}

func scanEvent(row rowScanner) (activity.Event, error) {
	var e activity.Event
	var kind string
	var subjects []string
	if err := row.Scan(
		&e.ID,
		&kind,
		textArray(&subjects),
		&e.OccurredAt,
		&e.Summary,
	); err != nil {
		return activity.Event{}, err
	}

	e.Kind = activity.Kind(kind)
	e.SubjectIDs = subjects
	e.OccurredAt = e.OccurredAt.UTC()
	return e, nil
}

// WatermarksRepo guarda el cursor de lectura del feed por usuario.
type WatermarksRepo struct {
	db *sql.DB
}

func NewWatermarksRepo(db *sql.DB) *WatermarksRepo {
	return &WatermarksRepo{db: db}
}

func (r *WatermarksRepo) Get(ctx context.Context, userID string) (activity.Cursor, bool, error) {
	var c activity.Cursor
	err := conn(ctx, r.db).QueryRowContext(ctx, `
		SELECT occurred_at, event_id
		FROM feed_watermarks
		WHERE user_id = $1
	`, userID).Scan(&c.At, &c.ID)
	if errors.Is(err, sql.ErrNoRows) {
		return activity.Cursor{}, false, nil
	}
	if err != nil {
		return activity.Cursor{}, false, err
	}
	c.At = c.At.UTC()
	return c, true, nil
}

// Advance hace el upsert solo si el cursor nuevo es posterior; la comparación
// por fila la resuelve Postgres, así dos acks concurrentes no retroceden.
func (r *WatermarksRepo) Advance(ctx context.Context, userID string, c activity.Cursor) (activity.Cursor, error) {
	if strings.TrimSpace(userID) == "" {
		return activity.Cursor{}, errors.New("user id required")
	}

	var out activity.Cursor
	err := conn(ctx, r.db).QueryRowContext(ctx, `
		WITH up AS (
			INSERT INTO feed_watermarks (user_id, occurred_at, event_id, updated_at)
			VALUES ($1, $2, $3, now())
			ON CONFLICT (user_id) DO UPDATE
			SET occurred_at = EXCLUDED.occurred_at,
				event_id = EXCLUDED.event_id,
				updated_at = EXCLUDED.updated_at
			WHERE (feed_watermarks.occurred_at, feed_watermarks.event_id) < (EXCLUDED.occurred_at, EXCLUDED.event_id)
			RETURNING occurred_at, event_id
		)
		SELECT occurred_at, event_id FROM up
		UNION ALL
		SELECT occurred_at, event_id FROM feed_watermarks
		WHERE user_id = $1 AND NOT EXISTS (SELECT 1 FROM up)
	`, userID, c.At, c.ID).Scan(&out.At, &out.ID)
	if err != nil {
		return activity.Cursor{}, err
	}
	out.At = out.At.UTC()
	return out, nil
}
