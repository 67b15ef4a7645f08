// Copyright (c) 2026 Wayfarer Travel. All rights reserved.
// Author: dev@wayfarer.travel

package account

import (
	"context"
	"log/slog"
	"strings"

	"github.com/wayfarer-travel/wayfarer/internal/platform/apperr"
	"github.com/wayfarer-travel/wayfarer/internal/platform/sec"
	"github.com/wayfarer-travel/wayfarer/internal/users/auth"
	"github.com/wayfarer-travel/wayfarer/pkg/pagination"
)

// Service implements profile management on top of the store.
type Service struct {
	store UserStore
	// creds is used only by admin provisioning, the one path here that
	// creates a credentialed record.
	creds  auth.UserRepository
	logger *slog.Logger
}

// NewService wires the account service.
func NewService(store UserStore, creds auth.UserRepository, logger *slog.Logger) *Service {
	return &Service{store: store, creds: creds, logger: logger}
}

// normalizeEmail canonicalizes an address before it reaches the store. The
// unique index and the login lookup both operate on the lowered form, so an
// email persisted with uppercase letters would lock its owner out.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// # Self-Service

// GetMe returns the profile of the logged-in user.
func (s *Service) GetMe(ctx context.Context, userID string) (*auth.User, error) {
	return s.store.FindByID(ctx, userID, false)
}

// UpdateMe applies a self-service profile update.
func (s *Service) UpdateMe(ctx context.Context, userID string, update ProfileUpdate) (*auth.User, error) {
	if update.Email != nil {
		normalized := normalizeEmail(*update.Email)
		update.Email = &normalized
	}

	user, err := s.store.UpdateProfile(ctx, userID, update)
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "profile updated", "user_id", userID)
	return user, nil
}

// DeleteMe deactivates the logged-in user's account. The record survives as
// an inactive row: no read scoped to active users will ever return it, and
// the user can no longer authenticate.
func (s *Service) DeleteMe(ctx context.Context, userID string) error {
	if err := s.store.Deactivate(ctx, userID); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "account deactivated", "user_id", userID)
	return nil
}

// # Administration

// CreateUserInput carries the fields for admin user provisioning.
type CreateUserInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// CreateUser provisions an account with an explicit role. Unlike signup it
// is admin-only and may create guides and other elevated roles directly.
func (s *Service) CreateUser(ctx context.Context, input CreateUserInput) (*auth.User, error) {
	role := sec.Role(input.Role)
	if input.Role == "" {
		role = sec.RoleUser
	}
	if !role.Valid() {
		return nil, apperr.ValidationError("Invalid role: " + input.Role)
	}

	hash, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	user := &auth.User{
		Name:         input.Name,
		Email:        normalizeEmail(input.Email),
		Role:         role,
		PasswordHash: hash,
		Active:       true,
	}
	if err := s.creds.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "user provisioned by admin", "user_id", user.ID, "role", string(role))
	return user, nil
}

// ListUsers returns a page of all users, soft-deleted accounts included.
func (s *Service) ListUsers(ctx context.Context, params pagination.Params) ([]auth.User, int, error) {
	return s.store.List(ctx, params, true)
}

// GetUser returns any user by ID, soft-deleted accounts included.
func (s *Service) GetUser(ctx context.Context, id string) (*auth.User, error) {
	return s.store.FindByID(ctx, id, true)
}

// UpdateUser applies an administrative update. Role values are validated
// against the known set before they reach the store.
func (s *Service) UpdateUser(ctx context.Context, id string, update AdminUpdate) (*auth.User, error) {
	if update.Role != nil && !sec.Role(*update.Role).Valid() {
		return nil, apperr.ValidationError("Invalid role: " + *update.Role)
	}
	if update.Email != nil {
		normalized := normalizeEmail(*update.Email)
		update.Email = &normalized
	}

	user, err := s.store.UpdateAdmin(ctx, id, update)
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "user updated by admin", "user_id", id)
	return user, nil
}

// DeleteUser permanently removes a user.
func (s *Service) DeleteUser(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "user deleted by admin", "user_id", id)
	return nil
}
