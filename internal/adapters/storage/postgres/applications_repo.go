package postgres

import (
	"context"
	"database/sql"
	"strings"

	"pet-adoption/internal/domain/applications"
)

const applicationColumns = `
	id, pet_id, adopter_id, message,
	status, version,
	applied_at, decided_at, decided_by, updated_at`

// ApplicationsRepo delega las invariantes de unicidad en los índices
// parciales de schema.sql.
type ApplicationsRepo struct {
	db *sql.DB
}

func NewApplicationsRepo(db *sql.DB) *ApplicationsRepo {
	return &ApplicationsRepo{db: db}
}

func (r *ApplicationsRepo) Create(ctx context.Context, a applications.Application) error {
	_, err := conn(ctx, r.db).ExecContext(ctx, `
		INSERT INTO applications (`+applicationColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`,
		a.ID,
		a.PetID,
		a.AdopterID,
		a.Message,
		string(a.Status),
		a.Version,
		a.AppliedAt,
		toNullTime(a.DecidedAt),
		a.DecidedBy,
		a.UpdatedAt,
	)
	return mapError(err)
}

func (r *ApplicationsRepo) Update(ctx context.Context, a applications.Application, expectedVersion int64) error {
	q := conn(ctx, r.db)
	res, err := q.ExecContext(ctx, `
		UPDATE applications
		SET
			message = $3,
			status = $4,
			version = $5,
			decided_at = $6,
			decided_by = $7,
			updated_at = $8
		WHERE id = $1 AND version = $2
	`,
		a.ID,
		expectedVersion,
		a.Message,
		string(a.Status),
		a.Version,
		toNullTime(a.DecidedAt),
		a.DecidedBy,
		a.UpdatedAt,
	)
	if err != nil {
		return mapError(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return versionMiss(ctx, q, "applications", a.ID)
	}
	return nil
}

func (r *ApplicationsRepo) GetByID(ctx context.Context, id string) (applications.Application, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return applications.Application{}, mapError(sql.ErrNoRows)
	}

	row := conn(ctx, r.db).QueryRowContext(ctx, `SELECT `+applicationColumns+` FROM applications WHERE id = $1`, id)
	a, err := scanApplication(row)
	if err != nil {
		return applications.Application{}, mapError(err)
	}
	return a, nil
}

func (r *ApplicationsRepo) ListByPet(ctx context.Context, petID string) ([]applications.Application, error) {
	return r.query(ctx, `
		SELECT `+applicationColumns+`
		FROM applications
		WHERE pet_id = $1
		ORDER BY applied_at DESC, id DESC
	`, strings.TrimSpace(petID))
}

func (r *ApplicationsRepo) ListByAdopter(ctx context.Context, adopterID string) ([]applications.Application, error) {
	return r.query(ctx, `
		SELECT `+applicationColumns+`
		FROM applications
		WHERE adopter_id = $1
		ORDER BY applied_at DESC, id DESC
	`, strings.TrimSpace(adopterID))
}

func (r *ApplicationsRepo) ListByPets(ctx context.Context, petIDs []string) (map[string][]applications.Application, error) {
	out := make(map[string][]applications.Application)
	if len(petIDs) == 0 {
		return out, nil
	}

	list, err := r.query(ctx, `
		SELECT `+applicationColumns+`
		FROM applications
		WHERE pet_id = ANY($1)
		ORDER BY applied_at DESC, id DESC
	`, petIDs)
	if err != nil {
		return nil, err
	}
	for _, a := range list {
		out[a.PetID] = append(out[a.PetID], a)
	}
	return out, nil
}

func (r *ApplicationsRepo) query(ctx context.Context, query string, args ...any) ([]applications.Application, error) {
	rows, err := conn(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]applications.Application, 0)
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func scanApplication(row rowScanner) (applications.Application, error) {
	var a applications.Application
	var status string
	var decidedAt sql.NullTime
	if err := row.Scan(
		&a.ID,
		&a.PetID,
		&a.AdopterID,
		&a.Message,
		&status,
		&a.Version,
		&a.AppliedAt,
		&decidedAt,
		&a.DecidedBy,
		&a.UpdatedAt,
	); err != nil {
		return applications.Application{}, err
	}

	a.Status = applications.Status(status)
	a.AppliedAt = a.AppliedAt.UTC()
	a.UpdatedAt = a.UpdatedAt.UTC()
	a.DecidedAt = fromNullTime(decidedAt)
	return a, nil
}
