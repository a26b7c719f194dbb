package postgres

import (
	"context"
	"database/sql"
	"strings"

	"pet-adoption/internal/domain/access"
	"pet-adoption/internal/domain/errs"
	"pet-adoption/internal/domain/users"
)

type UsersRepo struct {
	db *sql.DB
}

func NewUsersRepo(db *sql.DB) *UsersRepo {
	return &UsersRepo{db: db}
}

func (r *UsersRepo) Create(ctx context.Context, u users.User) error {
	_, err := conn(ctx, r.db).ExecContext(ctx, `
		INSERT INTO users (id, role, display_name, email, phone, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
	`,
		u.ID,
		string(u.Role),
		u.DisplayName,
		u.Email,
		u.Phone,
		u.CreatedAt,
		u.UpdatedAt,
	)
	return mapError(err)
}

func (r *UsersRepo) Update(ctx context.Context, u users.User) error {
	res, err := conn(ctx, r.db).ExecContext(ctx, `
		UPDATE users
		SET
			display_name = $2,
			email = $3,
			phone = $4,
			updated_at = $5
		WHERE id = $1
	`,
		u.ID,
		u.DisplayName,
		u.Email,
		u.Phone,
		u.UpdatedAt,
	)
	if err != nil {
		return mapError(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (r *UsersRepo) GetByID(ctx context.Context, id string) (users.User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return users.User{}, errs.ErrNotFound
	}

	var u users.User
	var role string
	err := conn(ctx, r.db).QueryRowContext(ctx, `
		SELECT id, role, display_name, email, phone, created_at, updated_at
		FROM users
		WHERE id = $1
	`, id).Scan(
		&u.ID,
		&role,
		&u.DisplayName,
		&u.Email,
		&u.Phone,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return users.User{}, mapError(err)
	}

	u.Role = access.Role(role)
	u.CreatedAt = u.CreatedAt.UTC()
	u.UpdatedAt = u.UpdatedAt.UTC()
	return u, nil
}
