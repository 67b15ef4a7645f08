// Copyright (c) 2026 Wayfarer Travel. All rights reserved.
// Author: dev@wayfarer.travel

/*
Package constants provides centralized, immutable values for the entire platform.

It defines default timeouts, payload limits, and cross-cutting keys that are
shared between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Request Hardening: Body size ceilings and parameter allow-lists.
  - Security: JWT issuer and cookie configuration.

Using this package ensures Magic Strings and Magic Numbers are eliminated
from the business logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "wayfarer-api"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Request Hardening

const (
	// MaxBodyBytes is the hard ceiling for JSON request bodies (10 KB).
	MaxBodyBytes = 10 << 10

	// RateLimitCleanupInterval is how often idle client entries are removed
	// from the in-memory limiter.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute

	// APIPathPrefix scopes rate limiting and the JSON 404 catch-all.
	APIPathPrefix = "/api"
)

// DuplicateParamAllowList names the query parameters that are permitted to
// repeat (filter fields); duplicates of any other parameter are collapsed
// to the last occurrence.
var DuplicateParamAllowList = []string{
	"duration",
	"ratings_quantity",
	"ratings_average",
	"max_group_size",
	"difficulty",
	"price",
}

// # Authentication

const (
	// AuthIssuer is the standard 'iss' claim in JWTs.
	AuthIssuer = "wayfarer.travel"

	// AccessTokenCookieName is the cookie used as an alternative bearer-token
	// transport to the Authorization header.
	AccessTokenCookieName = "jwt"
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
)

// # JSON Field Identifiers

const (
	FieldStatus  = "status"
	FieldMessage = "message"
	FieldData    = "data"
	FieldToken   = "token"
	FieldError   = "error"
	FieldCode    = "code"
)

// # Redis Prefixes

const (
	RedisPrefixRateLimit = "ratelimit:"
)
