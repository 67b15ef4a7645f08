// Copyright (c) 2026 Wayfarer Travel. All rights reserved.
// Author: dev@wayfarer.travel

package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wayfarer-travel/wayfarer/internal/platform/apperr"
)

/*
TestConstructors verifies each constructor maps to the right status code
and message shape.
*/
func TestConstructors(t *testing.T) {
	tests := []struct {
		name       string
		err        *apperr.AppError
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{"not_found", apperr.NotFound("Tour"), http.StatusNotFound, "NOT_FOUND", "Tour not found"},
		{"route_not_found", apperr.RouteNotFound("/api/v1/nope"), http.StatusNotFound, "NOT_FOUND", "Can't find /api/v1/nope on this server!"},
		{"unauthenticated", apperr.Unauthenticated("no"), http.StatusUnauthorized, "UNAUTHENTICATED", "no"},
		{"forbidden", apperr.Forbidden("no"), http.StatusForbidden, "FORBIDDEN", "no"},
		{"duplicate", apperr.DuplicateKey("dup"), http.StatusConflict, "DUPLICATE_KEY", "dup"},
		{"validation", apperr.ValidationError("bad"), http.StatusBadRequest, "VALIDATION_ERROR", "bad"},
		{"too_many", apperr.TooManyRequests("slow down"), http.StatusTooManyRequests, "TOO_MANY_REQUESTS", "slow down"},
		{"too_large", apperr.PayloadTooLarge("big"), http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE", "big"},
		{"internal", apperr.Internal(errors.New("boom")), http.StatusInternalServerError, "INTERNAL_ERROR", "Something went very wrong!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantStatus, tt.err.HTTPStatus)
			assert.Equal(t, tt.wantCode, tt.err.Code)
			assert.Equal(t, tt.wantMsg, tt.err.Error())
		})
	}
}

/*
TestOperational verifies 4xx errors are operational and 5xx are not.
*/
func TestOperational(t *testing.T) {
	assert.True(t, apperr.NotFound("Tour").Operational())
	assert.True(t, apperr.ValidationError("bad").Operational())
	assert.False(t, apperr.Internal(errors.New("boom")).Operational())
}

/*
TestChainTraversal verifies As/IsNotFound walk wrapped error chains.
*/
func TestChainTraversal(t *testing.T) {
	wrapped := fmt.Errorf("loading tour: %w", apperr.NotFound("Tour"))

	assert.True(t, apperr.IsAppError(wrapped))
	assert.True(t, apperr.IsNotFound(wrapped))

	ae := apperr.As(wrapped)
	require.NotNil(t, ae)
	assert.Equal(t, http.StatusNotFound, ae.HTTPStatus)

	assert.False(t, apperr.IsNotFound(errors.New("plain")))
	assert.Nil(t, apperr.As(errors.New("plain")))
}

/*
TestUnwrap verifies the cause chain is reachable through errors.Is.
*/
func TestUnwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := apperr.Internal(cause)

	assert.ErrorIs(t, err, cause)
}
