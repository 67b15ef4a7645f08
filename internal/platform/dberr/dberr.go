// Copyright (c) 2026 Wayfarer Travel. All rights reserved.
// Author: dev@wayfarer.travel

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
package dberr

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/wayfarer-travel/wayfarer/internal/platform/apperr"
)

// PostgreSQL SQLSTATE codes we classify explicitly.
const (
	codeUniqueViolation = "23505"
	codeCheckViolation  = "23514"
)

// Wrap inspects a database error and maps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the
// error kind.
//
// # Mapping
//   - pgx.ErrNoRows            → 404 NotFound (named resource)
//   - SQLSTATE 23505 (unique)  → 409 DuplicateKey
//   - SQLSTATE 23514 (check)   → 400 ValidationError
//   - anything else            → 500 Internal (logged, never exposed)
func Wrap(err error, resource string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound(resource)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			return apperr.DuplicateKey("Duplicate field value for " + resource + ". Please use another value!")
		case codeCheckViolation:
			return apperr.ValidationError("Invalid input data for " + resource)
		}
	}

	return apperr.Internal(err)
}

// IsUniqueViolation reports whether err is a unique-constraint violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == codeUniqueViolation
}
