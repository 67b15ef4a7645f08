// Copyright (c) 2026 Wayfarer Travel. All rights reserved.
// Author: dev@wayfarer.travel

package limiter

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/*
TestMemoryLimiter_FixedWindow pins the window semantics with a fake
clock: the budget never replenishes mid-window, no matter how the
requests are spread, and the whole budget returns when the window rolls.
*/
func TestMemoryLimiter_FixedWindow(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	const max = 3
	window := time.Hour

	current := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	l := NewMemoryLimiter(ctx, max, window)
	l.now = func() time.Time { return current }

	exhaust := func(t *testing.T) {
		t.Helper()
		for i := 0; i < max; i++ {
			allowed, _, err := l.Allow(ctx, "192.0.2.1")
			require.NoError(t, err)
			require.True(t, allowed, "request %d should pass", i+1)
		}
	}

	exhaust(t)

	t.Run("no_refill_mid_window", func(t *testing.T) {
		// Spread the follow-ups across the window; every one must fail.
		for i := 0; i < 4; i++ {
			current = current.Add(10 * time.Minute)

			allowed, retryAfter, err := l.Allow(ctx, "192.0.2.1")
			require.NoError(t, err)
			assert.False(t, allowed, "request at +%d min must be rejected", (i+1)*10)
			assert.Greater(t, retryAfter, time.Duration(0))
			assert.LessOrEqual(t, retryAfter, window)
		}
	})

	t.Run("retry_after_counts_down_to_window_end", func(t *testing.T) {
		// 50 minutes into the window, 10 remain.
		current = current.Add(10 * time.Minute)

		_, retryAfter, err := l.Allow(ctx, "192.0.2.1")
		require.NoError(t, err)
		assert.Equal(t, 10*time.Minute, retryAfter)
	})

	t.Run("window_roll_restores_budget", func(t *testing.T) {
		current = current.Add(10 * time.Minute)
		exhaust(t)
	})
}
