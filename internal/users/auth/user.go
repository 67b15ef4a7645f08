// Copyright (c) 2026 Wayfarer Travel. All rights reserved.
// Author: dev@wayfarer.travel

/*
Package auth implements the user identity layer: the credential store and
every authentication flow (signup, login, password recovery and rotation).

# Architecture

This layer is the "Truth" of the system for accounts. The entity defined
here encapsulates the credential-lifecycle rules — password hashing is
performed before any persist call, the plaintext confirmation value never
reaches a repository, and reset secrets are only ever stored as one-way
hashes.
*/
package auth

import (
	"time"

	"github.com/wayfarer-travel/wayfarer/internal/platform/sec"
)

// # Credential Constraints

const (
	// ResetTokenTTL is how long a password-reset secret remains redeemable.
	ResetTokenTTL = 10 * time.Minute

	// MinPasswordLength is the minimum accepted password length.
	MinPasswordLength = 8

	// passwordChangedAtSkew is subtracted from the recorded change time so a
	// token issued within the same second as the change is still rejected by
	// the strictly-later comparison.
	passwordChangedAtSkew = 1 * time.Second
)

// # Domain Entity

// User represents a registered member of the Wayfarer platform.
//
// Secret and lifecycle fields are excluded from JSON serialization: the
// password hash, reset-token hash, and active flag never appear in any
// API response.
type User struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Email string   `json:"email"`
	Photo string   `json:"photo,omitempty"`
	Role  sec.Role `json:"role"`

	PasswordHash         string     `json:"-"`
	PasswordChangedAt    *time.Time `json:"-"`
	PasswordResetToken   string     `json:"-"` // SHA-256 hex of the reset secret
	PasswordResetExpires *time.Time `json:"-"`
	Active               bool       `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Identity projects the entity into the context-carried authentication value.
func (u *User) Identity() *sec.Identity {
	return &sec.Identity{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}
}

// PasswordChangedAfter reports whether the stored password was changed
// strictly later than issuedAt. A user who has never changed their password
// after creation always reports false.
//
// This is the stateless-token revocation hook: the auth middleware rejects
// any token whose issued-at predates the last password change.
func (u *User) PasswordChangedAfter(issuedAt time.Time) bool {
	if u.PasswordChangedAt == nil {
		return false
	}
	return u.PasswordChangedAt.After(issuedAt)
}

// MarkPasswordChanged records a password mutation. The timestamp is set
// slightly in the past to absorb clock granularity between hashing the new
// password and issuing the next token.
func (u *User) MarkPasswordChanged(now time.Time) {
	changed := now.Add(-passwordChangedAtSkew)
	u.PasswordChangedAt = &changed
}

// NewPasswordResetToken generates a fresh reset secret for the user.
//
// The plaintext secret is returned exactly once for out-of-band delivery;
// only its SHA-256 hash and the absolute expiry are recorded on the entity.
func (u *User) NewPasswordResetToken(now time.Time) (plaintext string, err error) {
	plaintext, err = sec.GenerateSecureToken(sec.ResetTokenLength)
	if err != nil {
		return "", err
	}

	expires := now.Add(ResetTokenTTL)
	u.PasswordResetToken = sec.HashToken(plaintext)
	u.PasswordResetExpires = &expires

	return plaintext, nil
}

// ClearPasswordResetToken invalidates any outstanding reset secret.
func (u *User) ClearPasswordResetToken() {
	u.PasswordResetToken = ""
	u.PasswordResetExpires = nil
}

// # Field Identifiers

// Global field names for validation in the authentication domain.
const (
	FieldName            = "name"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldPasswordConfirm = "password_confirm"
	FieldPasswordCurrent = "password_current"
	FieldPhoto           = "photo"
	FieldRole            = "role"
	FieldToken           = "token"
)
