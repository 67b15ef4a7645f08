// Copyright (c) 2026 Wayfarer Travel. All rights reserved.
// Author: dev@wayfarer.travel

package auth

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/wayfarer-travel/wayfarer/internal/platform/apperr"
	"github.com/wayfarer-travel/wayfarer/internal/platform/sec"
)

// # Service Dependencies

// TokenIssuer mints signed access tokens for authenticated users.
type TokenIssuer interface {
	Issue(userID string) (string, error)
}

// Service implements the authentication flows on top of the repository.
type Service struct {
	users  UserRepository
	tokens TokenIssuer
	logger *slog.Logger

	// now is injectable for deterministic tests.
	now func() time.Time
}

// NewService wires the authentication service.
func NewService(users UserRepository, tokens TokenIssuer, logger *slog.Logger) *Service {
	return &Service{
		users:  users,
		tokens: tokens,
		logger: logger,
		now:    time.Now,
	}
}

// normalizeEmail canonicalizes an address for storage and lookup; the
// unique index is case-insensitive.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// # Inputs

// SignupInput carries the fields accepted at registration. Role is not
// among them: every signup becomes a regular user, and only an admin can
// promote an account afterwards.
type SignupInput struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Photo           string `json:"photo"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"passwordConfirm"`
}

// LoginInput carries the credential pair presented at login.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ResetPasswordInput carries the replacement password for a reset flow.
type ResetPasswordInput struct {
	Password        string `json:"password"`
	PasswordConfirm string `json:"passwordConfirm"`
}

// UpdatePasswordInput carries a password rotation for a logged-in user.
type UpdatePasswordInput struct {
	PasswordCurrent string `json:"passwordCurrent"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"passwordConfirm"`
}

// # Authentication Flows

// Signup registers a new user and returns the entity together with a fresh
// access token.
//
// The password confirmation is checked before the password is hashed, so a
// mismatched pair never reaches the repository.
func (s *Service) Signup(ctx context.Context, input SignupInput) (*User, string, error) {
	if input.Password != input.PasswordConfirm {
		return nil, "", apperr.ValidationError("Passwords are not the same!")
	}

	hash, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, "", apperr.Internal(err)
	}

	user := &User{
		Name:         input.Name,
		Email:        normalizeEmail(input.Email),
		Photo:        input.Photo,
		Role:         sec.RoleUser,
		PasswordHash: hash,
		Active:       true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", apperr.Internal(err)
	}

	s.logger.InfoContext(ctx, "user signed up", "user_id", user.ID)
	return user, token, nil
}

// Login verifies a credential pair and returns the user with a fresh access
// token. An unknown email and a wrong password produce the same error, so
// the response does not reveal which half failed.
func (s *Service) Login(ctx context.Context, input LoginInput) (*User, string, error) {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(input.Email), false)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, "", apperr.Unauthenticated("Incorrect email or password")
		}
		return nil, "", err
	}

	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, "", apperr.Unauthenticated("Incorrect email or password")
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", apperr.Internal(err)
	}

	s.logger.InfoContext(ctx, "user logged in", "user_id", user.ID)
	return user, token, nil
}

// ForgotPassword starts a password-recovery flow for the given email and
// returns the plaintext reset secret for out-of-band delivery. The secret
// is stored only as a SHA-256 hash, valid for ResetTokenTTL.
func (s *Service) ForgotPassword(ctx context.Context, email string) (string, error) {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(email), false)
	if err != nil {
		if apperr.IsNotFound(err) {
			return "", apperr.NotFoundMessage("There is no user with email address.")
		}
		return "", err
	}

	plaintext, err := user.NewPasswordResetToken(s.now())
	if err != nil {
		return "", apperr.Internal(err)
	}

	if err := s.users.SetResetToken(ctx, user.ID, user.PasswordResetToken, *user.PasswordResetExpires); err != nil {
		return "", err
	}

	s.logger.InfoContext(ctx, "password reset token issued", "user_id", user.ID)
	return plaintext, nil
}

// ResetPassword redeems a reset secret and installs a new password.
//
// Redemption is single-use: the same UPDATE that installs the new hash
// clears the token, so a second redemption with the same secret finds no
// matching row.
func (s *Service) ResetPassword(ctx context.Context, plaintext string, input ResetPasswordInput) (*User, string, error) {
	user, err := s.users.FindByResetTokenHash(ctx, sec.HashToken(plaintext))
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, "", apperr.ValidationError("Token is invalid or has expired")
		}
		return nil, "", err
	}

	if input.Password != input.PasswordConfirm {
		return nil, "", apperr.ValidationError("Passwords are not the same!")
	}

	if err := s.rotatePassword(ctx, user, input.Password); err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", apperr.Internal(err)
	}

	s.logger.InfoContext(ctx, "password reset", "user_id", user.ID)
	return user, token, nil
}

// UpdatePassword rotates the password of a logged-in user after verifying
// their current one, then returns a fresh token so the session survives
// the rotation it just caused.
func (s *Service) UpdatePassword(ctx context.Context, userID string, input UpdatePasswordInput) (*User, string, error) {
	user, err := s.users.FindByID(ctx, userID, false)
	if err != nil {
		return nil, "", err
	}

	if !sec.CheckPasswordHash(input.PasswordCurrent, user.PasswordHash) {
		return nil, "", apperr.Unauthenticated("Your current password is wrong.")
	}

	if input.Password != input.PasswordConfirm {
		return nil, "", apperr.ValidationError("Passwords are not the same!")
	}

	if err := s.rotatePassword(ctx, user, input.Password); err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", apperr.Internal(err)
	}

	s.logger.InfoContext(ctx, "password updated", "user_id", user.ID)
	return user, token, nil
}

// rotatePassword hashes and persists a new password, stamping the change
// time just behind the wall clock so tokens minted immediately afterwards
// stay valid while every earlier token dies.
func (s *Service) rotatePassword(ctx context.Context, user *User, password string) error {
	hash, err := sec.HashPassword(password)
	if err != nil {
		return apperr.Internal(err)
	}

	user.MarkPasswordChanged(s.now())
	user.PasswordHash = hash
	user.ClearPasswordResetToken()

	return s.users.UpdatePassword(ctx, user.ID, hash, *user.PasswordChangedAt)
}

// # Token Identity Resolution

// ResolveIdentity maps a verified token subject to a live identity. It is
// the middleware hook that ties stateless tokens back to account state:
// a deleted (or deactivated) user and a password change after issuance both
// invalidate every outstanding token.
func (s *Service) ResolveIdentity(ctx context.Context, userID string, issuedAt time.Time) (*sec.Identity, error) {
	user, err := s.users.FindByID(ctx, userID, false)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.Unauthenticated("The user belonging to this token does no longer exist.")
		}
		return nil, err
	}

	if user.PasswordChangedAfter(issuedAt) {
		return nil, apperr.Unauthenticated("User recently changed password! Please log in again.")
	}

	return user.Identity(), nil
}
