// Copyright (c) 2026 Kong Demo Platform. All rights reserved.
// Author: muhammad.mk.dev@gmail.com

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, JWT Signing) from
// the domain logic. It acts as an Infrastructure service injected into the
// Application layer via small interfaces.
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Muhammad-Mk/kong-microservices/pkg/uuid"
)

// # Token Types

// TokenType discriminates the two credentials minted per login.
type TokenType string

const (
	// TokenTypeAccess is the short-lived credential presented on every request.
	TokenTypeAccess TokenType = "access"

	// TokenTypeRefresh is the long-lived credential exchanged for new access tokens.
	TokenTypeRefresh TokenType = "refresh"
)

// Claims represents the payload embedded inside a signed token.
//
// # Minimal Disclosure
//
// Email and Username are present only on access tokens. A refresh token lives
// much longer, so it carries nothing beyond the subject and bookkeeping claims.
type Claims struct {
	jwt.RegisteredClaims

	Email     string    `json:"email,omitempty"`
	Username  string    `json:"username,omitempty"`
	TokenType TokenType `json:"type"`
}

// # Decode Errors

// Sentinel errors returned by [Codec.Decode]. Callers branch on these with
// [errors.Is] to map protocol failures to the right HTTP response.
var (
	// ErrTokenMalformed means the string cannot be parsed as a compact JWS.
	ErrTokenMalformed = errors.New("sec: token is malformed")

	// ErrTokenSignatureInvalid means the body parses but the MAC check fails.
	ErrTokenSignatureInvalid = errors.New("sec: token signature is invalid")

	// ErrTokenExpired means the signature is valid but exp is in the past.
	ErrTokenExpired = errors.New("sec: token has expired")
)

// # Codec

// Codec encodes and decodes signed claims to and from the compact JWS wire
// representation (three dot-separated base64url segments).
//
// # Concurrency
//
// A Codec is immutable after construction and safe for concurrent use. It is
// a pure function of the (secret, algorithm, issuer) triple supplied at
// construction; all state lives in its collaborators.
type Codec struct {
	secret []byte
	method jwt.SigningMethod
	issuer string
}

// NewCodec constructs a [Codec] for the given HMAC-SHA algorithm.
//
// Only the HS256/HS384/HS512 family is accepted: the demo gateway verifies
// tokens with a shared secret, and restricting the family here is what makes
// the algorithm-confusion rejection in [Codec.Decode] airtight.
func NewCodec(secret, algorithm, issuer string) (*Codec, error) {
	var method jwt.SigningMethod

	switch algorithm {
	case "HS256":
		method = jwt.SigningMethodHS256
	case "HS384":
		method = jwt.SigningMethodHS384
	case "HS512":
		method = jwt.SigningMethodHS512
	default:
		return nil, fmt.Errorf("sec: unsupported signing algorithm %q", algorithm)
	}

	if secret == "" {
		return nil, errors.New("sec: signing secret must not be empty")
	}

	return &Codec{
		secret: []byte(secret),
		method: method,
		issuer: issuer,
	}, nil
}

// Issuer returns the 'iss' claim stamped on every minted token.
func (codec *Codec) Issuer() string {
	return codec.issuer
}

/*
Encode mints a signed compact token string for the given subject.

Description: Every call produces a fresh jti (UUIDv7), so two tokens minted
for identical inputs are never byte-equal and never collide in a replay table.

Parameters:
  - subject: Opaque user ID placed in 'sub'
  - email: Access tokens only; empty for refresh tokens
  - username: Access tokens only; empty for refresh tokens
  - tokenType: TokenTypeAccess or TokenTypeRefresh
  - timeToLive: Duration until 'exp'

Returns:
  - string: Signed compact JWS
  - error: Signing failures
*/
func (codec *Codec) Encode(subject, email, username string, tokenType TokenType, timeToLive time.Duration) (string, error) {
	currentTime := time.Now()

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    codec.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(timeToLive)),
			ID:        uuid.New(),
		},
		Email:     email,
		Username:  username,
		TokenType: tokenType,
	}

	token := jwt.NewWithClaims(codec.method, claims)
	signedToken, err := token.SignedString(codec.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}

/*
Decode verifies the signature and expiry of a token string in one pass.

Description: The signing method is pinned to the single algorithm configured
at construction — it is never inferred from the token header, so an attacker
cannot downgrade HS512 to HS256 (or to "none") by rewriting the header.

Parameters:
  - tokenString: Compact JWS to verify

Returns:
  - *Claims: Verified claims
  - error: ErrTokenMalformed, ErrTokenSignatureInvalid, or ErrTokenExpired
*/
func (codec *Codec) Decode(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != codec.method.Alg() {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return codec.secret, nil
	}, jwt.WithValidMethods([]string{codec.method.Alg()}))

	if err != nil {
		return nil, classifyDecodeError(err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenMalformed
	}

	return claims, nil
}

/*
ExpiryHint extracts the 'exp' claim WITHOUT verifying the signature.

Description: Revocation accepts any string, including expired or garbage
tokens, and only needs a TTL for the denylist entry. This helper reads the
expiry on a best-effort basis; it must never be used to authorize anything.

Returns:
  - time.Time: The claimed expiry
  - bool: False when the string does not parse or carries no expiry
*/
func (codec *Codec) ExpiryHint(tokenString string) (time.Time, bool) {
	claims := &Claims{}

	_, _, err := jwt.NewParser().ParseUnverified(tokenString, claims)
	if err != nil || claims.ExpiresAt == nil {
		return time.Time{}, false
	}

	return claims.ExpiresAt.Time, true
}

// classifyDecodeError collapses the jwt library's error chain into the
// package's three sentinel variants.
//
// Order matters: jwt/v5 joins validation errors, and an expired token also
// carries ErrTokenInvalidClaims, so expiry is checked before the generic cases.
func classifyDecodeError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrTokenSignatureInvalid
	case errors.Is(err, jwt.ErrTokenUnverifiable):
		return ErrTokenSignatureInvalid
	default:
		return ErrTokenMalformed
	}
}
