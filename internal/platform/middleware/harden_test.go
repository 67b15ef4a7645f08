// Copyright (c) 2026 Wayfarer Travel. All rights reserved.
// Author: dev@wayfarer.travel

package middleware_test

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wayfarer-travel/wayfarer/internal/platform/constants"
	"github.com/wayfarer-travel/wayfarer/internal/platform/limiter"
	"github.com/wayfarer-travel/wayfarer/internal/platform/middleware"
)

/*
TestSecurityHeaders verifies every hardening header lands on the response.
*/
func TestSecurityHeaders(t *testing.T) {
	handler := middleware.SecurityHeaders()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.Equal(t, "0", rec.Header().Get("X-XSS-Protection"))
	assert.Equal(t, "no-referrer", rec.Header().Get("Referrer-Policy"))
	assert.NotEmpty(t, rec.Header().Get("Content-Security-Policy"))
	assert.NotEmpty(t, rec.Header().Get("Strict-Transport-Security"))
}

/*
TestRateLimit_Window exercises the budget boundary: request max passes,
request max+1 is rejected with 429 and a Retry-After header.
*/
func TestRateLimit_Window(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	const max = 5
	rl := middleware.RateLimit(limiter.NewMemoryLimiter(ctx, max, time.Hour))
	handler := rl(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	send := func(path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.RemoteAddr = "203.0.113.7:1234"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	for i := 1; i <= max; i++ {
		rec := send("/api/v1/tours")
		require.Equal(t, http.StatusOK, rec.Code, "request %d within budget", i)
	}

	rec := send("/api/v1/tours")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
	assert.Contains(t, rec.Body.String(), "Too many requests from this IP, please try again in an hour!")

	// Non-API paths stay exempt even for an exhausted client.
	rec = send("/public/tour-1-cover.jpg")
	assert.Equal(t, http.StatusOK, rec.Code)
}

/*
TestRateLimit_PerClient verifies budgets are tracked per client IP.
*/
func TestRateLimit_PerClient(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rl := middleware.RateLimit(limiter.NewMemoryLimiter(ctx, 1, time.Hour))
	handler := rl(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	send := func(ip string) int {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/tours", nil)
		req.RemoteAddr = ip + ":1234"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, send("198.51.100.1"))
	assert.Equal(t, http.StatusTooManyRequests, send("198.51.100.1"))
	assert.Equal(t, http.StatusOK, send("198.51.100.2"), "fresh client has its own budget")
}

/*
TestBodyLimit verifies oversized bodies surface as 413 through the
sanitizer's read.
*/
func TestBodyLimit(t *testing.T) {
	chain := middleware.BodyLimit(64)(middleware.SanitizeInput()(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})))

	t.Run("within_limit", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/tours", strings.NewReader(`{"name":"ok"}`))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		chain.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("oversized", func(t *testing.T) {
		big := fmt.Sprintf(`{"name":%q}`, strings.Repeat("x", 200))
		req := httptest.NewRequest(http.MethodPost, "/api/v1/tours", strings.NewReader(big))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		chain.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	})
}

/*
TestSanitizeInput verifies operator keys and script payloads are scrubbed
from bodies and query strings before the handler reads them.
*/
func TestSanitizeInput(t *testing.T) {
	var seenBody string
	var seenQuery string
	handler := middleware.SanitizeInput()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		seenBody = string(raw)
		seenQuery = r.URL.RawQuery
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("strips_operator_keys_from_body", func(t *testing.T) {
		body := `{"email":{"$gt":""},"name":"Ada"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/users/login", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.NotContains(t, seenBody, "$gt")
		assert.Contains(t, seenBody, "Ada")
	})

	t.Run("strips_script_from_body_values", func(t *testing.T) {
		body := `{"name":"<script>alert(1)</script>Ada"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/users/signup", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.NotContains(t, seenBody, "<script>")
		assert.Contains(t, seenBody, "Ada")
	})

	t.Run("scrubs_query_string", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/tours?sort=price&email%5B%24gt%5D=", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.NotContains(t, seenQuery, "%24gt")
		assert.Contains(t, seenQuery, "sort=price")
	})

	t.Run("malformed_json_passes_through", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/tours", strings.NewReader(`{broken`))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, `{broken`, seenBody, "handler's decoder owns the error")
	})
}

/*
TestCollapseDuplicateParams verifies pollution collapsing keeps the last
occurrence except for allow-listed filter fields.
*/
func TestCollapseDuplicateParams(t *testing.T) {
	var seen map[string][]string
	handler := middleware.CollapseDuplicateParams(constants.DuplicateParamAllowList)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = r.URL.Query()
			w.WriteHeader(http.StatusOK)
		}))

	t.Run("collapses_to_last", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/tours?sort=price&sort=-name", nil)
		handler.ServeHTTP(httptest.NewRecorder(), req)

		require.Len(t, seen["sort"], 1)
		assert.Equal(t, "-name", seen["sort"][0])
	})

	t.Run("allow_listed_field_repeats", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/tours?duration=5&duration=9", nil)
		handler.ServeHTTP(httptest.NewRecorder(), req)

		assert.Len(t, seen["duration"], 2)
	})

	t.Run("operator_suffix_uses_base_name", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/tours?price%5Bgte%5D=100&price%5Bgte%5D=200", nil)
		handler.ServeHTTP(httptest.NewRecorder(), req)

		assert.Len(t, seen["price[gte]"], 2, "price is allow-listed")
	})
}
