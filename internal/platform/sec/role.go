// Copyright (c) 2026 Wayfarer Travel. All rights reserved.
// Author: dev@wayfarer.travel

package sec

// # User Roles

// Role represents the authorization level granted to an account.
//
// The set is closed: authorization is a set-membership check against an
// explicit allow-list per route, not a numeric hierarchy. A lead guide is
// not a superset of a guide; routes name exactly the roles they admit.
type Role string

const (
	// Default role for standard registered users
	RoleUser Role = "user"

	// Leads tours in the field
	RoleGuide Role = "guide"

	// Plans tours and manages guides
	RoleLeadGuide Role = "lead-guide"

	// Unrestricted system access
	RoleAdmin Role = "admin"
)

// AllRoles enumerates every valid role, in ascending order of privilege.
var AllRoles = []Role{RoleUser, RoleGuide, RoleLeadGuide, RoleAdmin}

// Valid reports whether r is one of the closed role enumeration.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleGuide, RoleLeadGuide, RoleAdmin:
		return true
	default:
		return false
	}
}

// In reports whether r is a member of the allowed set.
func (r Role) In(allowed ...Role) bool {
	for _, a := range allowed {
		if r == a {
			return true
		}
	}
	return false
}

// # Resolved Identity

// Identity is the authenticated user attached to the request context by the
// auth middleware after the full verification chain (token signature, user
// existence, password-change freshness) has passed.
type Identity struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}
