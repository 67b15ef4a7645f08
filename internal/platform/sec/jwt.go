// Copyright (c) 2026 Wayfarer Travel. All rights reserved.
// Author: dev@wayfarer.travel

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (hashing, JWT signing,
// reset-token generation) from the domain logic. It acts as an
// Infrastructure service injected into the application layer via small
// interfaces ([middleware.TokenVerifier] and the auth service's
// TokenProvider).
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Sentinel verification failures.
//
// ErrTokenExpired is a distinguishable sub-kind of ErrTokenInvalid: callers
// that only care about validity may match ErrTokenInvalid alone, since both
// sentinels are attached to expired-token errors.
var (
	ErrTokenInvalid = errors.New("sec: invalid token")
	ErrTokenExpired = errors.New("sec: token expired")
)

// AuthClaims is the payload embedded in a Wayfarer access token.
//
// Tokens are stateless: they carry only the subject (user ID) and the
// standard time claims. Anything else about the user (role, email, account
// status) is resolved from storage on every request by the auth middleware
// so that deactivated accounts and stale-after-password-change tokens are
// rejected without a revocation list.
type AuthClaims struct {
	jwt.RegisteredClaims
}

// TokenService issues and verifies HMAC-signed (HS256) bearer tokens.
//
// The signing secret is process-wide immutable configuration supplied once
// at construction, never a per-call parameter.
type TokenService struct {
	secret    []byte
	issuer    string
	expiresIn time.Duration
}

// NewTokenService constructs a TokenService.
//
// # Parameters
//   - secret: the HMAC signing secret (from configuration).
//   - issuer: the standard 'iss' claim value.
//   - expiresIn: validity window applied to every issued token.
func NewTokenService(secret, issuer string, expiresIn time.Duration) (*TokenService, error) {
	if len(secret) < 32 {
		return nil, fmt.Errorf("sec: JWT secret must be at least 32 bytes, got %d", len(secret))
	}
	if expiresIn <= 0 {
		return nil, fmt.Errorf("sec: token lifetime must be positive")
	}

	return &TokenService{
		secret:    []byte(secret),
		issuer:    issuer,
		expiresIn: expiresIn,
	}, nil
}

// Issue creates a signed access token asserting {subject, issued-at} with
// the service-configured expiry.
func (service *TokenService) Issue(userID string) (string, error) {
	currentTime := time.Now()
	claims := AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(service.expiresIn)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// Verify checks the signature and validity of a token string and returns
// its claims.
//
// # Failure Modes
//   - [ErrTokenExpired] (also matching [ErrTokenInvalid]) when the embedded
//     expiry has passed.
//   - [ErrTokenInvalid] for a bad signature, wrong algorithm, or malformed
//     payload.
func (service *TokenService) Verify(tokenString string) (*AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return service.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: %w", ErrTokenInvalid, ErrTokenExpired)
		}
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	claims, ok := token.Claims.(*AuthClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
