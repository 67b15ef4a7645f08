// Copyright (c) 2026 Wayfarer Travel. All rights reserved.
// Author: dev@wayfarer.travel

package ctxutil_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wayfarer-travel/wayfarer/internal/platform/ctxutil"
	"github.com/wayfarer-travel/wayfarer/internal/platform/sec"
)

/*
TestRequestID verifies round-tripping and the zero value.
*/
func TestRequestID(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, ctxutil.GetRequestID(ctx))

	ctx = ctxutil.WithRequestID(ctx, "req-42")
	assert.Equal(t, "req-42", ctxutil.GetRequestID(ctx))
}

/*
TestLogger verifies a default logger is returned when none is attached.
*/
func TestLogger(t *testing.T) {
	assert.NotNil(t, ctxutil.GetLogger(context.Background()), "must never return nil")
}

/*
TestAuthUser verifies identity round-tripping and the anonymous default.
*/
func TestAuthUser(t *testing.T) {
	ctx := context.Background()
	assert.Nil(t, ctxutil.GetAuthUser(ctx))

	identity := &sec.Identity{ID: "user-1", Name: "Ada", Role: sec.RoleGuide}
	ctx = ctxutil.WithAuthUser(ctx, identity)

	got := ctxutil.GetAuthUser(ctx)
	require.NotNil(t, got)
	assert.Equal(t, "user-1", got.ID)
	assert.Equal(t, sec.RoleGuide, got.Role)
}

/*
TestDevMode verifies the flag defaults to false.
*/
func TestDevMode(t *testing.T) {
	ctx := context.Background()
	assert.False(t, ctxutil.IsDevMode(ctx))

	ctx = ctxutil.WithDevMode(ctx, true)
	assert.True(t, ctxutil.IsDevMode(ctx))

	assert.False(t, ctxutil.IsDevMode(ctxutil.WithDevMode(context.Background(), false)))
}
