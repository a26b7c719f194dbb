package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"pet-adoption/internal/domain/pets"
)

const petColumns = `
	id, owner_user_id,
	name, species, breed, gender,
	age_value, age_unit, size,
	description, color,
	vaccinated, neutered, microchipped,
	good_with_kids, good_with_dogs, good_with_cats,
	activity_level, rehoming_reason, rehoming_fee,
	urgency, location, primary_image,
	status, version,
	created_at, updated_at`

type PetsRepo struct {
	db *sql.DB
}

func NewPetsRepo(db *sql.DB) *PetsRepo {
	return &PetsRepo{db: db}
}

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) error {
	_, err := conn(ctx, r.db).ExecContext(ctx, `
		INSERT INTO pets (`+petColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23,$24,$25,$26,$27)
	`,
		p.ID,
		p.OwnerUserID,
		p.Name,
		p.Species,
		p.Breed,
		string(p.Gender),
		p.Age.Value,
		string(p.Age.Unit),
		string(p.Size),
		p.Description,
		p.Color,
		p.Health.Vaccinated,
		p.Health.Neutered,
		p.Health.Microchipped,
		p.Compatibility.GoodWithKids,
		p.Compatibility.GoodWithDogs,
		p.Compatibility.GoodWithCats,
		string(p.ActivityLevel),
		p.RehomingReason,
		p.RehomingFee,
		string(p.Urgency),
		p.Location,
		p.PrimaryImage,
		string(p.Status),
		p.Version,
		p.CreatedAt,
		p.UpdatedAt,
	)
	return mapError(err)
}

// Update escribe solo si la fila sigue en expectedVersion.
func (r *PetsRepo) Update(ctx context.Context, p pets.Pet, expectedVersion int64) error {
	q := conn(ctx, r.db)
	res, err := q.ExecContext(ctx, `
		UPDATE pets
		SET
			name = $3,
			species = $4,
			breed = $5,
			gender = $6,
			age_value = $7,
			age_unit = $8,
			size = $9,
			description = $10,
			color = $11,
			vaccinated = $12,
			neutered = $13,
			microchipped = $14,
			good_with_kids = $15,
			good_with_dogs = $16,
			good_with_cats = $17,
			activity_level = $18,
			rehoming_reason = $19,
			rehoming_fee = $20,
			urgency = $21,
			location = $22,
			primary_image = $23,
			status = $24,
			version = $25,
			updated_at = $26
		WHERE id = $1 AND version = $2
	`,
		p.ID,
		expectedVersion,
		p.Name,
		p.Species,
		p.Breed,
		string(p.Gender),
		p.Age.Value,
		string(p.Age.Unit),
		string(p.Size),
		p.Description,
		p.Color,
		p.Health.Vaccinated,
		p.Health.Neutered,
		p.Health.Microchipped,
		p.Compatibility.GoodWithKids,
		p.Compatibility.GoodWithDogs,
		p.Compatibility.GoodWithCats,
		string(p.ActivityLevel),
		p.RehomingReason,
		p.RehomingFee,
		string(p.Urgency),
		p.Location,
		p.PrimaryImage,
		string(p.Status),
		p.Version,
		p.UpdatedAt,
	)
	if err != nil {
		return mapError(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return versionMiss(ctx, q, "pets", p.ID)
	}
	return nil
}

func (r *PetsRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return pets.Pet{}, mapError(sql.ErrNoRows)
	}

	row := conn(ctx, r.db).QueryRowContext(ctx, `SELECT `+petColumns+` FROM pets WHERE id = $1`, id)
	p, err := scanPet(row)
	if err != nil {
		return pets.Pet{}, mapError(err)
	}
	return p, nil
}

func (r *PetsRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]pets.Pet, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return nil, nil
	}
	return r.query(ctx, `
		SELECT `+petColumns+`
		FROM pets
		WHERE owner_user_id = $1
		ORDER BY created_at DESC, id DESC
	`, ownerUserID)
}

func (r *PetsRepo) List(ctx context.Context, filter pets.ListFilter) ([]pets.Pet, error) {
	query, args := buildPetListQuery(filter)
	return r.query(ctx, query, args...)
}

func (r *PetsRepo) query(ctx context.Context, query string, args ...any) ([]pets.Pet, error) {
	rows, err := conn(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]pets.Pet, 0)
	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// buildPetListQuery arma el SELECT con los filtros presentes, en el mismo
// orden que ListFilter.Matches.
func buildPetListQuery(filter pets.ListFilter) (string, []any) {
	sb := strings.Builder{}
	sb.WriteString(`SELECT ` + petColumns + ` FROM pets WHERE true`)

	args := []any{}
	argN := 1
	eq := func(column, value string) {
		if value == "" {
			return
		}
		sb.WriteString(fmt.Sprintf(" AND %s = $%d", column, argN))
		args = append(args, value)
		argN++
	}
	eqFold := func(column, value string) {
		if value == "" {
			return
		}
		sb.WriteString(fmt.Sprintf(" AND lower(%s) = lower($%d)", column, argN))
		args = append(args, value)
		argN++
	}
	flag := func(column string, value *bool) {
		if value == nil {
			return
		}
		sb.WriteString(fmt.Sprintf(" AND %s = $%d", column, argN))
		args = append(args, *value)
		argN++
	}

	eq("status", string(filter.Status))
	eqFold("species", filter.Species)
	eqFold("breed", filter.Breed)
	eq("gender", string(filter.Gender))
	eq("size", string(filter.Size))
	eq("urgency", string(filter.Urgency))

	if loc := strings.TrimSpace(filter.Location); loc != "" {
		sb.WriteString(fmt.Sprintf(" AND location ILIKE $%d", argN))
		args = append(args, "%"+likeEscape(loc)+"%")
		argN++
	}

	flag("good_with_kids", filter.GoodWithKids)
	flag("good_with_dogs", filter.GoodWithDogs)
	flag("good_with_cats", filter.GoodWithCats)

	if q := strings.TrimSpace(filter.Query); q != "" {
		sb.WriteString(fmt.Sprintf(" AND (name ILIKE $%d OR breed ILIKE $%d OR description ILIKE $%d)", argN, argN, argN))
		args = append(args, "%"+likeEscape(q)+"%")
		argN++
	}

	sb.WriteString(" ORDER BY created_at DESC, id DESC")
	sb.WriteString(fmt.Sprintf(" LIMIT $%d", argN))
	args = append(args, filter.NormalizedLimit())

	return sb.String(), args
}

func likeEscape(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPet(row rowScanner) (pets.Pet, error) {
	var p pets.Pet
	var gender, ageUnit, size, activity, urgency, status string
	if err := row.Scan(
		&p.ID,
		&p.OwnerUserID,
		&p.Name,
		&p.Species,
		&p.Breed,
		&gender,
		&p.Age.Value,
		&ageUnit,
		&size,
		&p.Description,
		&p.Color,
		&p.Health.Vaccinated,
		&p.Health.Neutered,
		&p.Health.Microchipped,
		&p.Compatibility.GoodWithKids,
		&p.Compatibility.GoodWithDogs,
		&p.Compatibility.GoodWithCats,
		&activity,
		&p.RehomingReason,
		&p.RehomingFee,
		&urgency,
		&p.Location,
		&p.PrimaryImage,
		&status,
		&p.Version,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return pets.Pet{}, err
	}

	p.Gender = pets.Gender(gender)
	p.Age.Unit = pets.AgeUnit(ageUnit)
	p.Size = pets.Size(size)
	p.ActivityLevel = pets.ActivityLevel(activity)
	p.Urgency = pets.Urgency(urgency)
	p.Status = pets.Status(status)
	p.CreatedAt = p.CreatedAt.UTC()
	p.UpdatedAt = p.UpdatedAt.UTC()
	return p, nil
}
