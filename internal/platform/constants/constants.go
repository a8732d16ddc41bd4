// Copyright (c) 2026 Kong Demo Platform. All rights reserved.
// Author: muhammad.mk.dev@gmail.com

/*
Package constants provides centralized, immutable values shared by the four
demo services.

It defines default timeouts, rate limits, and cross-cutting keys that are
shared between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP servers.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Gateway: The forwarded-identity headers injected by the Kong JWT plugin.

Using this package ensures Magic Strings and Magic Numbers are eliminated
from the business logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "kong-demo"
	AppVersion = "1.0.0"
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

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 100.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 150

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # Gateway Headers

// Kong sits in front of every service, strips the /v1/<service> prefix, and
// forwards the verified consumer identity as plain request headers. Downstream
// services trust these headers and never decode tokens themselves.
const (
	// HeaderConsumerID carries the authenticated user's opaque ID.
	HeaderConsumerID = "X-Consumer-Custom-ID"

	// HeaderConsumerUsername carries the authenticated user's username.
	HeaderConsumerUsername = "X-Consumer-Username"

	// HeaderXRequestID is the log-correlation header.
	HeaderXRequestID = "X-Request-ID"

	// HeaderXRealIP is set by the gateway to the originating client address.
	HeaderXRealIP = "X-Real-IP"

	// HeaderXForwardedFor is the standard proxy chain header.
	HeaderXForwardedFor = "X-Forwarded-For"
)

// # JSON Field Identifiers

const (
	FieldSuccess = "success"
	FieldData    = "data"
	FieldError   = "error"
	FieldCode    = "code"
	FieldMessage = "message"
	FieldStatus  = "status"
	FieldService = "service"
	FieldVersion = "version"
	FieldChecks  = "checks"
)

// # Redis Prefixes (Cache Taxonomy)

const (
	// RedisPrefixDenylist prefixes revoked-token entries when the revocation
	// registry is externalized to Redis for multi-instance deployments.
	RedisPrefixDenylist = "auth:denylist:"
)
