// Copyright (c) 2026 Wayfarer Travel. All rights reserved.
// Author: dev@wayfarer.travel

package auth_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wayfarer-travel/wayfarer/internal/platform/apperr"
	"github.com/wayfarer-travel/wayfarer/internal/platform/sec"
	"github.com/wayfarer-travel/wayfarer/internal/users/auth"
)

// # Test Doubles

// fakeUserRepository is an in-memory UserRepository keyed by user ID.
type fakeUserRepository struct {
	users       map[string]*auth.User
	createCalls int
	createErr   error
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: map[string]*auth.User{}}
}

func (f *fakeUserRepository) Create(_ context.Context, user *auth.User) error {
	f.createCalls++
	if f.createErr != nil {
		return f.createErr
	}
	if user.ID == "" {
		user.ID = "user-" + user.Email
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

func (f *fakeUserRepository) FindByID(_ context.Context, id string, includeInactive bool) (*auth.User, error) {
	u, ok := f.users[id]
	if !ok || (!includeInactive && !u.Active) {
		return nil, apperr.NotFound("user")
	}
	clone := *u
	return &clone, nil
}

func (f *fakeUserRepository) FindByEmail(_ context.Context, email string, includeInactive bool) (*auth.User, error) {
	for _, u := range f.users {
		if u.Email == email && (includeInactive || u.Active) {
			clone := *u
			return &clone, nil
		}
	}
	return nil, apperr.NotFound("user")
}

func (f *fakeUserRepository) FindByResetTokenHash(_ context.Context, tokenHash string) (*auth.User, error) {
	now := time.Now()
	for _, u := range f.users {
		if u.Active && u.PasswordResetToken == tokenHash &&
			u.PasswordResetExpires != nil && u.PasswordResetExpires.After(now) {
			clone := *u
			return &clone, nil
		}
	}
	return nil, apperr.NotFound("user")
}

func (f *fakeUserRepository) SetResetToken(_ context.Context, userID, tokenHash string, expires time.Time) error {
	u, ok := f.users[userID]
	if !ok {
		return apperr.NotFound("user")
	}
	u.PasswordResetToken = tokenHash
	u.PasswordResetExpires = &expires
	return nil
}

func (f *fakeUserRepository) UpdatePassword(_ context.Context, userID, passwordHash string, changedAt time.Time) error {
	u, ok := f.users[userID]
	if !ok {
		return apperr.NotFound("user")
	}
	u.PasswordHash = passwordHash
	u.PasswordChangedAt = &changedAt
	u.ClearPasswordResetToken()
	return nil
}

// fakeIssuer mints predictable tokens.
type fakeIssuer struct {
	issued int
}

func (f *fakeIssuer) Issue(userID string) (string, error) {
	f.issued++
	return "token-for-" + userID, nil
}

func newTestService(repo *fakeUserRepository) *auth.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return auth.NewService(repo, &fakeIssuer{}, logger)
}

// seedUser creates an active user with the given password directly in the fake.
func seedUser(t *testing.T, repo *fakeUserRepository, email, password string) *auth.User {
	t.Helper()
	hash, err := sec.HashPassword(password)
	require.NoError(t, err)

	u := &auth.User{
		Name:         "Test User",
		Email:        email,
		Role:         sec.RoleUser,
		PasswordHash: hash,
		Active:       true,
	}
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

// # Signup

/*
TestSignup covers registration, confirmation mismatch, and the forced
default role.
*/
func TestSignup(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo := newFakeUserRepository()
		svc := newTestService(repo)

		user, token, err := svc.Signup(context.Background(), auth.SignupInput{
			Name:            "Ada",
			Email:           "Ada@Example.COM",
			Password:        "pass1234",
			PasswordConfirm: "pass1234",
		})
		require.NoError(t, err)
		require.NotNil(t, user)

		assert.NotEmpty(t, token)
		assert.Equal(t, sec.RoleUser, user.Role, "signup can never pick a role")
		assert.Equal(t, "ada@example.com", user.Email, "email is normalized")
		assert.NotEqual(t, "pass1234", user.PasswordHash)
		assert.True(t, sec.CheckPasswordHash("pass1234", user.PasswordHash))
	})

	t.Run("mismatched_confirmation_never_reaches_repository", func(t *testing.T) {
		repo := newFakeUserRepository()
		svc := newTestService(repo)

		_, _, err := svc.Signup(context.Background(), auth.SignupInput{
			Name:            "Ada",
			Email:           "ada@example.com",
			Password:        "pass1234",
			PasswordConfirm: "different",
		})
		require.Error(t, err)

		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "Passwords are not the same!", ae.Message)
		assert.Zero(t, repo.createCalls)
	})
}

// # Login

/*
TestLogin verifies both failure modes collapse into one message so the
response never reveals whether the email exists.
*/
func TestLogin(t *testing.T) {
	repo := newFakeUserRepository()
	seedUser(t, repo, "ada@example.com", "pass1234")
	svc := newTestService(repo)

	t.Run("success", func(t *testing.T) {
		user, token, err := svc.Login(context.Background(), auth.LoginInput{
			Email:    "ada@example.com",
			Password: "pass1234",
		})
		require.NoError(t, err)
		assert.Equal(t, "ada@example.com", user.Email)
		assert.NotEmpty(t, token)
	})

	t.Run("case_insensitive_email", func(t *testing.T) {
		_, _, err := svc.Login(context.Background(), auth.LoginInput{
			Email:    "ADA@example.com",
			Password: "pass1234",
		})
		assert.NoError(t, err)
	})

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"unknown_email", "ghost@example.com", "pass1234"},
		{"wrong_password", "ada@example.com", "wrong"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := svc.Login(context.Background(), auth.LoginInput{
				Email:    tt.email,
				Password: tt.password,
			})
			require.Error(t, err)

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, 401, ae.HTTPStatus)
			assert.Equal(t, "Incorrect email or password", ae.Message)
		})
	}

	t.Run("deactivated_account_cannot_log_in", func(t *testing.T) {
		u := seedUser(t, repo, "gone@example.com", "pass1234")
		repo.users[u.ID].Active = false

		_, _, err := svc.Login(context.Background(), auth.LoginInput{
			Email:    "gone@example.com",
			Password: "pass1234",
		})
		require.Error(t, err)
		assert.Equal(t, 401, apperr.As(err).HTTPStatus)
	})
}

// # Password Recovery

/*
TestForgotPassword verifies the plaintext secret is returned once while
only its hash lands in the store.
*/
func TestForgotPassword(t *testing.T) {
	repo := newFakeUserRepository()
	user := seedUser(t, repo, "ada@example.com", "pass1234")
	svc := newTestService(repo)

	t.Run("success", func(t *testing.T) {
		plaintext, err := svc.ForgotPassword(context.Background(), "ada@example.com")
		require.NoError(t, err)
		require.NotEmpty(t, plaintext)

		stored := repo.users[user.ID]
		assert.Equal(t, sec.HashToken(plaintext), stored.PasswordResetToken)
		assert.NotEqual(t, plaintext, stored.PasswordResetToken)
		require.NotNil(t, stored.PasswordResetExpires)
	})

	t.Run("unknown_email", func(t *testing.T) {
		_, err := svc.ForgotPassword(context.Background(), "ghost@example.com")
		require.Error(t, err)

		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, 404, ae.HTTPStatus)
		assert.Equal(t, "There is no user with email address.", ae.Message)
	})
}

/*
TestResetPassword covers redemption, single use, expiry, and the
confirmation check.
*/
func TestResetPassword(t *testing.T) {
	newFixture := func(t *testing.T) (*fakeUserRepository, *auth.Service, *auth.User, string) {
		repo := newFakeUserRepository()
		user := seedUser(t, repo, "ada@example.com", "oldpass12")
		svc := newTestService(repo)

		plaintext, err := svc.ForgotPassword(context.Background(), "ada@example.com")
		require.NoError(t, err)
		return repo, svc, user, plaintext
	}

	input := auth.ResetPasswordInput{Password: "newpass12", PasswordConfirm: "newpass12"}

	t.Run("success_and_single_use", func(t *testing.T) {
		repo, svc, user, plaintext := newFixture(t)

		got, token, err := svc.ResetPassword(context.Background(), plaintext, input)
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
		assert.NotEmpty(t, token)

		stored := repo.users[user.ID]
		assert.True(t, sec.CheckPasswordHash("newpass12", stored.PasswordHash))
		assert.Empty(t, stored.PasswordResetToken, "redemption clears the token")
		require.NotNil(t, stored.PasswordChangedAt)

		// A second redemption with the same secret must fail.
		_, _, err = svc.ResetPassword(context.Background(), plaintext, input)
		require.Error(t, err)
		assert.Equal(t, "Token is invalid or has expired", apperr.As(err).Message)
	})

	t.Run("unknown_token", func(t *testing.T) {
		_, svc, _, _ := newFixture(t)

		_, _, err := svc.ResetPassword(context.Background(), "not-a-real-secret", input)
		require.Error(t, err)

		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, 400, ae.HTTPStatus)
		assert.Equal(t, "Token is invalid or has expired", ae.Message)
	})

	t.Run("expired_token", func(t *testing.T) {
		repo, svc, user, plaintext := newFixture(t)

		expired := time.Now().Add(-time.Minute)
		repo.users[user.ID].PasswordResetExpires = &expired

		_, _, err := svc.ResetPassword(context.Background(), plaintext, input)
		require.Error(t, err)
		assert.Equal(t, "Token is invalid or has expired", apperr.As(err).Message)
	})

	t.Run("mismatched_confirmation", func(t *testing.T) {
		_, svc, _, plaintext := newFixture(t)

		_, _, err := svc.ResetPassword(context.Background(), plaintext, auth.ResetPasswordInput{
			Password:        "newpass12",
			PasswordConfirm: "different",
		})
		require.Error(t, err)
		assert.Equal(t, "Passwords are not the same!", apperr.As(err).Message)
	})
}

/*
TestUpdatePassword covers in-session rotation and its guard on the
current password.
*/
func TestUpdatePassword(t *testing.T) {
	repo := newFakeUserRepository()
	user := seedUser(t, repo, "ada@example.com", "oldpass12")
	svc := newTestService(repo)

	t.Run("wrong_current_password", func(t *testing.T) {
		_, _, err := svc.UpdatePassword(context.Background(), user.ID, auth.UpdatePasswordInput{
			PasswordCurrent: "nope",
			Password:        "newpass12",
			PasswordConfirm: "newpass12",
		})
		require.Error(t, err)

		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, 401, ae.HTTPStatus)
		assert.Equal(t, "Your current password is wrong.", ae.Message)
	})

	t.Run("success_returns_fresh_token", func(t *testing.T) {
		got, token, err := svc.UpdatePassword(context.Background(), user.ID, auth.UpdatePasswordInput{
			PasswordCurrent: "oldpass12",
			Password:        "newpass12",
			PasswordConfirm: "newpass12",
		})
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
		assert.NotEmpty(t, token)

		stored := repo.users[user.ID]
		assert.True(t, sec.CheckPasswordHash("newpass12", stored.PasswordHash))
		require.NotNil(t, stored.PasswordChangedAt)
		assert.True(t, stored.PasswordChangedAt.Before(time.Now()))
	})
}

// # Identity Resolution

/*
TestResolveIdentity ties stateless tokens back to live account state.
*/
func TestResolveIdentity(t *testing.T) {
	repo := newFakeUserRepository()
	user := seedUser(t, repo, "ada@example.com", "pass1234")
	svc := newTestService(repo)

	issuedAt := time.Now()

	t.Run("success", func(t *testing.T) {
		identity, err := svc.ResolveIdentity(context.Background(), user.ID, issuedAt)
		require.NoError(t, err)
		assert.Equal(t, user.ID, identity.ID)
		assert.Equal(t, sec.RoleUser, identity.Role)
	})

	t.Run("deleted_user", func(t *testing.T) {
		_, err := svc.ResolveIdentity(context.Background(), "missing", issuedAt)
		require.Error(t, err)

		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, 401, ae.HTTPStatus)
		assert.Equal(t, "The user belonging to this token does no longer exist.", ae.Message)
	})

	t.Run("deactivated_user", func(t *testing.T) {
		u := seedUser(t, repo, "gone@example.com", "pass1234")
		repo.users[u.ID].Active = false

		_, err := svc.ResolveIdentity(context.Background(), u.ID, issuedAt)
		require.Error(t, err)
		assert.Equal(t, 401, apperr.As(err).HTTPStatus)
	})

	t.Run("password_changed_after_issue", func(t *testing.T) {
		changed := issuedAt.Add(time.Minute)
		repo.users[user.ID].PasswordChangedAt = &changed

		_, err := svc.ResolveIdentity(context.Background(), user.ID, issuedAt)
		require.Error(t, err)
		assert.Equal(t, "User recently changed password! Please log in again.", apperr.As(err).Message)
	})
}
