// Copyright (c) 2026 Wayfarer Travel. All rights reserved.
// Author: dev@wayfarer.travel

package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/wayfarer-travel/wayfarer/internal/platform/apperr"
	"github.com/wayfarer-travel/wayfarer/internal/platform/constants"
	"github.com/wayfarer-travel/wayfarer/internal/platform/ctxutil"
	"github.com/wayfarer-travel/wayfarer/internal/platform/limiter"
	"github.com/wayfarer-travel/wayfarer/internal/platform/respond"
	"github.com/wayfarer-travel/wayfarer/internal/platform/sanitize"
)

// # Security Headers

// SecurityHeaders applies baseline security response headers to every request.
// It runs first in the chain, before any handler can write a response.
func SecurityHeaders() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			header := writer.Header()
			header.Set("X-Content-Type-Options", "nosniff")
			header.Set("X-Frame-Options", "DENY")
			header.Set("X-XSS-Protection", "0")
			header.Set("Referrer-Policy", "no-referrer")
			header.Set("Content-Security-Policy", "default-src 'self'")
			header.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")

			next.ServeHTTP(writer, request)
		})
	}
}

// # Rate Limiting

// RateLimit rejects clients that exceed their request budget on /api paths.
// It runs before body parsing and authentication so abusive clients cannot
// trigger any expensive work. Non-API paths (static assets) are exempt.
//
// If the limiter backend itself fails (e.g. Redis unreachable), the request
// is allowed through: availability over strictness for a hardening layer.
func RateLimit(l limiter.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			if !strings.HasPrefix(request.URL.Path, constants.APIPathPrefix) {
				next.ServeHTTP(writer, request)
				return
			}

			clientIP := RealIP(request)

			allowed, retryAfter, err := l.Allow(request.Context(), clientIP)
			if err != nil {
				ctxutil.GetLogger(request.Context()).Warn("rate_limiter_backend_error", "error", err.Error())
				next.ServeHTTP(writer, request)
				return
			}

			if !allowed {
				writer.Header().Set("Retry-After", formatSeconds(retryAfter))
				respond.Error(writer, request, apperr.TooManyRequests(
					"Too many requests from this IP, please try again in an hour!",
				))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}

// # Body Parsing & Sanitization

// BodyLimit enforces a hard ceiling on request body size. Oversized bodies
// fail with 413 when read by the sanitizer or a handler's decoder.
func BodyLimit(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if request.Body != nil {
				request.Body = http.MaxBytesReader(writer, request.Body, maxBytes)
			}
			next.ServeHTTP(writer, request)
		})
	}
}

// SanitizeInput scrubs JSON bodies and query strings of datastore-operator
// keys and script payloads before any handler decodes them.
//
// It must run after BodyLimit (the read here honors the ceiling) and before
// routing, so handlers only ever observe sanitized input. Bodies that are
// not JSON pass through untouched.
func SanitizeInput() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			// Query string first: cheap and always applicable.
			request.URL.RawQuery = sanitize.Query(request.URL.Query()).Encode()

			if !hasJSONBody(request) {
				next.ServeHTTP(writer, request)
				return
			}

			raw, err := io.ReadAll(request.Body)
			if err != nil {
				var maxBytesErr *http.MaxBytesError
				if errors.As(err, &maxBytesErr) {
					respond.Error(writer, request, apperr.PayloadTooLarge(
						"Request body exceeds the allowed size",
					))
					return
				}
				respond.Error(writer, request, apperr.Internal(err))
				return
			}

			if len(bytes.TrimSpace(raw)) == 0 {
				request.Body = io.NopCloser(bytes.NewReader(raw))
				next.ServeHTTP(writer, request)
				return
			}

			var decoded interface{}
			if err := json.Unmarshal(raw, &decoded); err != nil {
				// Malformed JSON is the handler's validation concern; hand the
				// original bytes through so its decoder reports the failure.
				request.Body = io.NopCloser(bytes.NewReader(raw))
				next.ServeHTTP(writer, request)
				return
			}

			cleaned, err := json.Marshal(sanitize.Value(decoded))
			if err != nil {
				respond.Error(writer, request, apperr.Internal(err))
				return
			}

			request.Body = io.NopCloser(bytes.NewReader(cleaned))
			request.ContentLength = int64(len(cleaned))

			next.ServeHTTP(writer, request)
		})
	}
}

// # Parameter Pollution

// CollapseDuplicateParams rewrites the query string so that repeated
// parameters collapse to their last occurrence, except for names on the
// allow-list (filter fields that legitimately repeat).
func CollapseDuplicateParams(allowList []string) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(allowList))
	for _, name := range allowList {
		allowed[name] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			values := request.URL.Query()
			changed := false

			for key, items := range values {
				if len(items) > 1 && !allowed[baseParamName(key)] {
					values[key] = items[len(items)-1:]
					changed = true
				}
			}

			if changed {
				request.URL.RawQuery = values.Encode()
			}

			next.ServeHTTP(writer, request)
		})
	}
}

// baseParamName strips a filter-operator suffix: "price[gte]" → "price".
func baseParamName(key string) string {
	if i := strings.IndexByte(key, '['); i > 0 {
		return key[:i]
	}
	return key
}

// # Helpers

func hasJSONBody(request *http.Request) bool {
	if request.Body == nil || request.Body == http.NoBody {
		return false
	}
	switch request.Method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
	default:
		return false
	}
	contentType := request.Header.Get("Content-Type")
	return contentType == "" || strings.HasPrefix(contentType, "application/json")
}

func formatSeconds(d time.Duration) string {
	seconds := int(d.Seconds())
	if seconds < 1 {
		seconds = 1
	}
	return strconv.Itoa(seconds)
}
