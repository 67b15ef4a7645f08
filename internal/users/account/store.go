// Copyright (c) 2026 Wayfarer Travel. All rights reserved.
// Author: dev@wayfarer.travel

/*
Package account implements user profile management: self-service operations
for the logged-in user (view, update, deactivate) and the admin-only user
administration surface.

Authentication concerns (passwords, tokens) live in the auth package; this
package never touches a credential except when an admin provisions a new
account.
*/
package account

import (
	"context"

	"github.com/wayfarer-travel/wayfarer/internal/users/auth"
	"github.com/wayfarer-travel/wayfarer/pkg/pagination"
)

// ProfileUpdate carries the self-service mutable fields. Nil means "leave
// unchanged".
type ProfileUpdate struct {
	Name  *string
	Email *string
	Photo *string
}

// AdminUpdate extends ProfileUpdate with the fields only an administrator
// may touch.
type AdminUpdate struct {
	ProfileUpdate
	Role   *string
	Active *bool
}

// UserStore is the persistence boundary for profile management.
//
// Admin reads pass includeInactive=true to see soft-deleted accounts; the
// self-service paths always scope to active users.
type UserStore interface {
	FindByID(ctx context.Context, id string, includeInactive bool) (*auth.User, error)

	// List returns a page of users ordered by creation time, with the total
	// row count for pagination metadata.
	List(ctx context.Context, params pagination.Params, includeInactive bool) ([]auth.User, int, error)

	// UpdateProfile applies a self-service update to an active user.
	UpdateProfile(ctx context.Context, id string, update ProfileUpdate) (*auth.User, error)

	// UpdateAdmin applies an administrative update, including role changes
	// and reactivation.
	UpdateAdmin(ctx context.Context, id string, update AdminUpdate) (*auth.User, error)

	// Deactivate soft-deletes a user. The row survives; the account simply
	// stops matching active-scoped reads.
	Deactivate(ctx context.Context, id string) error

	// Delete removes a user row permanently. Admin-only.
	Delete(ctx context.Context, id string) error
}
