// Copyright (c) 2026 Wayfarer Travel. All rights reserved.
// Author: dev@wayfarer.travel

package auth

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wayfarer-travel/wayfarer/internal/platform/dberr"
	"github.com/wayfarer-travel/wayfarer/internal/platform/sec"
	"github.com/wayfarer-travel/wayfarer/pkg/uuid"
)

// userColumns is the canonical select list shared by every user read.
const userColumns = `
	id, name, email, photo, role, password_hash,
	password_changed_at, password_reset_token, password_reset_expires,
	active, created_at, updated_at`

// PostgresUserRepository implements UserRepository on top of pgx.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresUserRepository constructs a repository bound to the given pool.
func NewPostgresUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

func (r *PostgresUserRepository) Create(ctx context.Context, user *User) error {
	query := `
		INSERT INTO users (id, name, email, photo, role, password_hash, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`

	user.ID = uuid.New()
	err := r.pool.QueryRow(ctx, query,
		user.ID, user.Name, user.Email, nullableText(user.Photo),
		string(user.Role), user.PasswordHash, user.Active,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "user")
	}
	return nil
}

func (r *PostgresUserRepository) FindByID(ctx context.Context, id string, includeInactive bool) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	if !includeInactive {
		query += ` AND active`
	}
	return r.findOne(ctx, query, id)
}

func (r *PostgresUserRepository) FindByEmail(ctx context.Context, email string, includeInactive bool) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	if !includeInactive {
		query += ` AND active`
	}
	return r.findOne(ctx, query, email)
}

func (r *PostgresUserRepository) FindByResetTokenHash(ctx context.Context, tokenHash string) (*User, error) {
	// Expiry is evaluated in the database so the comparison uses a single
	// clock.
	query := `SELECT ` + userColumns + ` FROM users
		WHERE password_reset_token = $1
		  AND password_reset_expires > now()
		  AND active`
	return r.findOne(ctx, query, tokenHash)
}

func (r *PostgresUserRepository) SetResetToken(ctx context.Context, userID, tokenHash string, expires time.Time) error {
	query := `
		UPDATE users
		SET password_reset_token = $2, password_reset_expires = $3, updated_at = now()
		WHERE id = $1 AND active`

	tag, err := r.pool.Exec(ctx, query, userID, tokenHash, expires)
	if err != nil {
		return dberr.Wrap(err, "user")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "user")
	}
	return nil
}

func (r *PostgresUserRepository) UpdatePassword(ctx context.Context, userID, passwordHash string, changedAt time.Time) error {
	// One statement: the new hash lands, the change time is stamped, and any
	// outstanding reset token dies together.
	query := `
		UPDATE users
		SET password_hash = $2,
		    password_changed_at = $3,
		    password_reset_token = NULL,
		    password_reset_expires = NULL,
		    updated_at = now()
		WHERE id = $1 AND active`

	tag, err := r.pool.Exec(ctx, query, userID, passwordHash, changedAt)
	if err != nil {
		return dberr.Wrap(err, "user")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "user")
	}
	return nil
}

func (r *PostgresUserRepository) findOne(ctx context.Context, query string, arg any) (*User, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, dberr.Wrap(err, "user")
	}
	user, err := pgx.CollectExactlyOneRow(rows, scanUser)
	if err != nil {
		return nil, dberr.Wrap(err, "user")
	}
	return user, nil
}

// scanUser maps one row of userColumns into the entity.
func scanUser(row pgx.CollectableRow) (*User, error) {
	var (
		u          User
		photo      *string
		resetToken *string
		role       string
	)
	err := row.Scan(
		&u.ID, &u.Name, &u.Email, &photo, &role, &u.PasswordHash,
		&u.PasswordChangedAt, &resetToken, &u.PasswordResetExpires,
		&u.Active, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if photo != nil {
		u.Photo = *photo
	}
	if resetToken != nil {
		u.PasswordResetToken = *resetToken
	}
	u.Role = sec.Role(role)
	return &u, nil
}

// nullableText maps the empty string to SQL NULL.
func nullableText(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
