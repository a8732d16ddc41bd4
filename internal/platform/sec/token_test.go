// Copyright (c) 2026 Kong Demo Platform. All rights reserved.
// Author: muhammad.mk.dev@gmail.com

package sec_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Muhammad-Mk/kong-microservices/internal/platform/sec"
)

const testSecret = "codec-test-secret"

func newTestCodec(t *testing.T) *sec.Codec {
	t.Helper()

	codec, err := sec.NewCodec(testSecret, "HS256", "kong-demo-auth")
	require.NoError(t, err)
	return codec
}

func TestNewCodec_AlgorithmGate(t *testing.T) {
	tests := []struct {
		name      string
		algorithm string
		secret    string
		wantError bool
	}{
		{"hs256", "HS256", testSecret, false},
		{"hs384", "HS384", testSecret, false},
		{"hs512", "HS512", testSecret, false},
		{"rs256_rejected", "RS256", testSecret, true},
		{"none_rejected", "none", testSecret, true},
		{"empty_secret_rejected", "HS256", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := sec.NewCodec(tt.secret, tt.algorithm, "issuer")
			if tt.wantError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCodec_RoundTrip(t *testing.T) {
	codec := newTestCodec(t)

	token, err := codec.Encode("user-42", "a@example.com", "alice", sec.TokenTypeAccess, time.Hour)
	require.NoError(t, err)

	// Wire format: three dot-separated base64url segments.
	assert.Len(t, strings.Split(token, "."), 3)

	claims, err := codec.Decode(token)
	require.NoError(t, err)

	assert.Equal(t, "user-42", claims.Subject)
	assert.Equal(t, "a@example.com", claims.Email)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, sec.TokenTypeAccess, claims.TokenType)
	assert.Equal(t, "kong-demo-auth", claims.Issuer)
	assert.NotEmpty(t, claims.ID)
}

func TestCodec_FreshJTIPerCall(t *testing.T) {
	codec := newTestCodec(t)

	// Identical inputs must still yield distinct tokens.
	first, err := codec.Encode("user-42", "", "", sec.TokenTypeRefresh, time.Hour)
	require.NoError(t, err)
	second, err := codec.Encode("user-42", "", "", sec.TokenTypeRefresh, time.Hour)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)

	firstClaims, err := codec.Decode(first)
	require.NoError(t, err)
	secondClaims, err := codec.Decode(second)
	require.NoError(t, err)

	assert.NotEqual(t, firstClaims.ID, secondClaims.ID)
}

func TestCodec_Decode_Expired(t *testing.T) {
	codec := newTestCodec(t)

	token, err := codec.Encode("user-42", "", "", sec.TokenTypeAccess, -time.Minute)
	require.NoError(t, err)

	_, err = codec.Decode(token)
	assert.ErrorIs(t, err, sec.ErrTokenExpired)
}

func TestCodec_Decode_WrongSecret(t *testing.T) {
	codec := newTestCodec(t)
	otherCodec, err := sec.NewCodec("a-different-secret", "HS256", "kong-demo-auth")
	require.NoError(t, err)

	token, err := otherCodec.Encode("user-42", "", "", sec.TokenTypeAccess, time.Hour)
	require.NoError(t, err)

	_, err = codec.Decode(token)
	assert.ErrorIs(t, err, sec.ErrTokenSignatureInvalid)
}

func TestCodec_Decode_Malformed(t *testing.T) {
	codec := newTestCodec(t)

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not-a-token"},
		{"two_segments", "abc.def"},
		{"four_segments", "a.b.c.d"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := codec.Decode(tt.token)
			assert.ErrorIs(t, err, sec.ErrTokenMalformed)
		})
	}
}

func TestCodec_Decode_AlgorithmPinned(t *testing.T) {
	// A token legitimately signed with HS512 must be refused by an HS256
	// codec — the verifier never trusts the token header's alg.
	hs512Codec, err := sec.NewCodec(testSecret, "HS512", "kong-demo-auth")
	require.NoError(t, err)
	hs256Codec := newTestCodec(t)

	token, err := hs512Codec.Encode("user-42", "", "", sec.TokenTypeAccess, time.Hour)
	require.NoError(t, err)

	_, err = hs256Codec.Decode(token)
	require.Error(t, err)
	assert.ErrorIs(t, err, sec.ErrTokenSignatureInvalid)
}

func TestCodec_ExpiryHint(t *testing.T) {
	codec := newTestCodec(t)

	t.Run("expired_token_still_readable", func(t *testing.T) {
		token, err := codec.Encode("user-42", "", "", sec.TokenTypeAccess, -time.Minute)
		require.NoError(t, err)

		expiry, ok := codec.ExpiryHint(token)
		require.True(t, ok)
		assert.WithinDuration(t, time.Now().Add(-time.Minute), expiry, 5*time.Second)
	})

	t.Run("garbage_has_no_hint", func(t *testing.T) {
		_, ok := codec.ExpiryHint("garbage")
		assert.False(t, ok)
	})
}
