// Copyright (c) 2026 Wayfarer Travel. All rights reserved.
// Author: dev@wayfarer.travel

package auth

import (
	"context"
	"time"
)

// # Repository Contract

// UserRepository is the persistence boundary for user records.
//
// Read operations take an explicit includeInactive flag instead of filtering
// deactivated rows implicitly; callers must state whether soft-deleted users
// are in scope. The auth flows always pass false — a deactivated account can
// neither log in nor be resolved from a token — while admin tooling passes
// true to see the full population.
type UserRepository interface {
	// Create persists a new user and fills in the generated ID and
	// timestamps. A duplicate email surfaces as a conflict error.
	Create(ctx context.Context, user *User) error

	// FindByID returns the user with the given ID.
	FindByID(ctx context.Context, id string, includeInactive bool) (*User, error)

	// FindByEmail returns the user with the given email.
	FindByEmail(ctx context.Context, email string, includeInactive bool) (*User, error)

	// FindByResetTokenHash returns the active user holding an unexpired
	// reset token with the given hash. An expired or unknown hash is a
	// not-found.
	FindByResetTokenHash(ctx context.Context, tokenHash string) (*User, error)

	// SetResetToken records a reset-token hash and its expiry on the user row.
	SetResetToken(ctx context.Context, userID, tokenHash string, expires time.Time) error

	// UpdatePassword atomically installs a new password hash, stamps the
	// change time, and clears any outstanding reset token in one statement,
	// so a redeemed token can never be replayed against a half-updated row.
	UpdatePassword(ctx context.Context, userID, passwordHash string, changedAt time.Time) error
}
