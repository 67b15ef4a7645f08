// Copyright (c) 2026 Wayfarer Travel. All rights reserved.
// Author: dev@wayfarer.travel

package account

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wayfarer-travel/wayfarer/internal/platform/dberr"
	"github.com/wayfarer-travel/wayfarer/internal/platform/sec"
	"github.com/wayfarer-travel/wayfarer/internal/users/auth"
	"github.com/wayfarer-travel/wayfarer/pkg/pagination"
)

// profileColumns deliberately omits credential fields: nothing in this
// package ever needs a password hash or reset token.
const profileColumns = `
	id, name, email, photo, role, active, created_at, updated_at`

// PostgresUserStore implements UserStore on top of pgx.
type PostgresUserStore struct {
	pool *pgxpool.Pool
}

// NewPostgresUserStore constructs a store bound to the given pool.
func NewPostgresUserStore(pool *pgxpool.Pool) *PostgresUserStore {
	return &PostgresUserStore{pool: pool}
}

func (s *PostgresUserStore) FindByID(ctx context.Context, id string, includeInactive bool) (*auth.User, error) {
	query := `SELECT ` + profileColumns + ` FROM users WHERE id = $1`
	if !includeInactive {
		query += ` AND active`
	}

	rows, err := s.pool.Query(ctx, query, id)
	if err != nil {
		return nil, dberr.Wrap(err, "user")
	}
	user, err := pgx.CollectExactlyOneRow(rows, scanProfile)
	if err != nil {
		return nil, dberr.Wrap(err, "user")
	}
	return user, nil
}

func (s *PostgresUserStore) List(ctx context.Context, params pagination.Params, includeInactive bool) ([]auth.User, int, error) {
	filter := ""
	if !includeInactive {
		filter = ` WHERE active`
	}

	var total int
	if err := s.pool.QueryRow(ctx, `SELECT count(*) FROM users`+filter).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "user")
	}

	query := `SELECT ` + profileColumns + ` FROM users` + filter +
		` ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := s.pool.Query(ctx, query, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, "user")
	}
	users, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (auth.User, error) {
		u, err := scanProfile(row)
		if err != nil {
			return auth.User{}, err
		}
		return *u, nil
	})
	if err != nil {
		return nil, 0, dberr.Wrap(err, "user")
	}
	return users, total, nil
}

func (s *PostgresUserStore) UpdateProfile(ctx context.Context, id string, update ProfileUpdate) (*auth.User, error) {
	set, args := buildSet(update, AdminUpdate{})
	return s.update(ctx, id, set, args, ` AND active`)
}

func (s *PostgresUserStore) UpdateAdmin(ctx context.Context, id string, update AdminUpdate) (*auth.User, error) {
	set, args := buildSet(update.ProfileUpdate, update)
	return s.update(ctx, id, set, args, "")
}

func (s *PostgresUserStore) update(ctx context.Context, id string, set []string, args []interface{}, scope string) (*auth.User, error) {
	if len(set) == 0 {
		return s.FindByID(ctx, id, scope == "")
	}

	set = append(set, "updated_at = now()")
	args = append(args, id)
	query := fmt.Sprintf(`UPDATE users SET %s WHERE id = $%d%s RETURNING `+profileColumns,
		strings.Join(set, ", "), len(args), scope)

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "user")
	}
	user, err := pgx.CollectExactlyOneRow(rows, scanProfile)
	if err != nil {
		return nil, dberr.Wrap(err, "user")
	}
	return user, nil
}

func (s *PostgresUserStore) Deactivate(ctx context.Context, id string) error {
	query := `UPDATE users SET active = false, updated_at = now() WHERE id = $1 AND active`

	tag, err := s.pool.Exec(ctx, query, id)
	if err != nil {
		return dberr.Wrap(err, "user")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "user")
	}
	return nil
}

func (s *PostgresUserStore) Delete(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return dberr.Wrap(err, "user")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "user")
	}
	return nil
}

// buildSet assembles the dynamic SET clause for whichever fields are present.
func buildSet(profile ProfileUpdate, admin AdminUpdate) ([]string, []interface{}) {
	var (
		set  []string
		args []interface{}
	)
	add := func(column string, value interface{}) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if profile.Name != nil {
		add("name", *profile.Name)
	}
	if profile.Email != nil {
		add("email", *profile.Email)
	}
	if profile.Photo != nil {
		add("photo", *profile.Photo)
	}
	if admin.Role != nil {
		add("role", *admin.Role)
	}
	if admin.Active != nil {
		add("active", *admin.Active)
	}
	return set, args
}

func scanProfile(row pgx.CollectableRow) (*auth.User, error) {
	var (
		u     auth.User
		photo *string
		role  string
	)
	err := row.Scan(&u.ID, &u.Name, &u.Email, &photo, &role,
		&u.Active, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if photo != nil {
		u.Photo = *photo
	}
	u.Role = sec.Role(role)
	return &u, nil
}
