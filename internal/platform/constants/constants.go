// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants provides centralized, immutable values for the entire client.

It defines default timeouts, header names, and storage keys that are shared
between the API client, the session layer, the CLI, and the stub API.

Categories:

  - Client Timing: Per-request timeout for calls to the salon API.
  - Server Timing: Read/Write/Idle timeouts for the development stub API.
  - Storage: The single key under which the bearer token is persisted.
  - Wire: Header names and JSON field identifiers of the response envelope.

Using this package ensures Magic Strings and Magic Numbers are eliminated
from the business logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "salonbook"
	AppVersion = "0.1.0-dev"
)

// # Client Timing

const (
	// DefaultRequestTimeout bounds every call the API client makes.
	DefaultRequestTimeout = 30 * time.Second

	// DefaultBaseURL is the API host used when API_BASE_URL is not set.
	DefaultBaseURL = "http://localhost:8000"

	// DefaultAPIPrefix is prepended to every endpoint path.
	DefaultAPIPrefix = "/api"
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

	// GlobalRequestTimeout cancels stub handlers that run longer than this.
	GlobalRequestTimeout = 8 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 10 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP on the stub API.
	DefaultRateLimitRPS = 50.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 100

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # Storage

const (
	// TokenStorageKey is the fixed key the bearer token is persisted under.
	TokenStorageKey = "auth_token"

	// RedisPrefixStorage namespaces client storage keys inside a shared Redis.
	RedisPrefixStorage = "salonbook:storage:"

	// RedisPrefixRevoked namespaces revoked token IDs of the stub API.
	RedisPrefixRevoked = "salonbook:stub:revoked:"

	// DefaultTokenFile is the storage file name, relative to the user config dir.
	DefaultTokenFile = "salonbook/storage.json"
)

// # Stub API

const (
	// AuthIssuer is the "iss" claim of tokens signed by the stub API.
	AuthIssuer = "salonbook-stub"

	// DefaultTokenTTL is how long a stub-issued access token stays valid.
	DefaultTokenTTL = 24 * time.Hour

	// VerificationCodeDigits is the length of email verification codes.
	VerificationCodeDigits = 6
)

// # Headers

const (
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"
	HeaderAccept        = "Accept"
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"

	MimeJSON     = "application/json"
	BearerPrefix = "Bearer "
)

// # JSON Field Identifiers

const (
	FieldSuccess     = "success"
	FieldMessage     = "message"
	FieldData        = "data"
	FieldErrors      = "errors"
	FieldAccessToken = "access_token"
)
