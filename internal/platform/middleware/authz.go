// Copyright (c) 2026 Wayfarer Travel. All rights reserved.
// Author: dev@wayfarer.travel

package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/wayfarer-travel/wayfarer/internal/platform/apperr"
	"github.com/wayfarer-travel/wayfarer/internal/platform/constants"
	"github.com/wayfarer-travel/wayfarer/internal/platform/ctxutil"
	"github.com/wayfarer-travel/wayfarer/internal/platform/respond"
	"github.com/wayfarer-travel/wayfarer/internal/platform/sec"
)

// TokenVerifier defines the interface needed to verify bearer tokens.
//
// # Why an interface?
//
// Defining TokenVerifier here decouples the middleware from [sec.TokenService],
// allowing us to inject mocks during unit testing.
type TokenVerifier interface {
	Verify(tokenStr string) (*sec.AuthClaims, error)
}

// IdentityResolver turns a verified token subject into a live identity.
//
// Implementations must enforce the storage-side half of the authentication
// state machine: reject subjects whose account no longer exists (or is
// deactivated) and subjects whose password changed after issuedAt. Failures
// are returned as operational [apperr.AppError] values.
type IdentityResolver interface {
	ResolveIdentity(ctx context.Context, userID string, issuedAt time.Time) (*sec.Identity, error)
}

// Protect gates a route group behind full authentication.
//
// # Flow
//  1. Extract the bearer token from 'Authorization: Bearer <token>' or the
//     'jwt' cookie; absence aborts with 401.
//  2. Verify signature and expiry via [TokenVerifier]; failure aborts with 401.
//  3. Resolve the live user via [IdentityResolver]: a deleted/deactivated
//     account or a password change after the token's issued-at aborts with 401.
//  4. Attach the resolved [*sec.Identity] to the request context; proceed.
//
// Every failure short-circuits directly into the error funnel — no
// downstream handler runs.
func Protect(verifier TokenVerifier, resolver IdentityResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			// ── 1. Token Extraction ───────────────────────────────────────────
			tokenStr, ok := bearerToken(request)
			if !ok {
				respond.Error(writer, request, apperr.Unauthenticated(
					"You are not logged in! Please log in to get access.",
				))
				return
			}

			// ── 2. Token Verification ─────────────────────────────────────────
			claims, err := verifier.Verify(tokenStr)
			if err != nil {
				respond.Error(writer, request, apperr.Unauthenticated(
					"Invalid token or token has expired. Please log in again.",
				))
				return
			}

			// ── 3. Identity Resolution ────────────────────────────────────────
			issuedAt := time.Time{}
			if claims.IssuedAt != nil {
				issuedAt = claims.IssuedAt.Time
			}

			identity, err := resolver.ResolveIdentity(request.Context(), claims.Subject, issuedAt)
			if err != nil {
				respond.Error(writer, request, err)
				return
			}

			// ── 4. Context Injection ──────────────────────────────────────────
			ctx := ctxutil.WithAuthUser(request.Context(), identity)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireRole blocks authenticated requests whose role is not in the allowed
// set (the restrictTo gate).
//
// # Usage
//
// Must be registered AFTER [Protect]; it assumes an identity is already in
// the context and treats its absence as a programming error surfaced as 401.
//
// Authorization is plain set membership over the closed role enumeration —
// no hierarchy is implied between roles.
func RequireRole(allowed ...sec.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			identity := ctxutil.GetAuthUser(request.Context())

			if identity == nil {
				respond.Error(writer, request, apperr.Unauthenticated(
					"You are not logged in! Please log in to get access.",
				))
				return
			}

			if !identity.Role.In(allowed...) {
				respond.Error(writer, request, apperr.Forbidden(
					"You do not have permission to perform this action",
				))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}

// bearerToken extracts the access token from the Authorization header or,
// as an equivalent transport, the jwt cookie.
func bearerToken(request *http.Request) (string, bool) {
	authHeader := request.Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") && parts[1] != "" {
			return parts[1], true
		}
		return "", false
	}

	cookie, err := request.Cookie(constants.AccessTokenCookieName)
	if err == nil && cookie.Value != "" {
		return cookie.Value, true
	}

	return "", false
}
