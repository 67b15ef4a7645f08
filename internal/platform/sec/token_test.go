// Copyright (c) 2026 Wayfarer Travel. All rights reserved.
// Author: dev@wayfarer.travel

package sec_test

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wayfarer-travel/wayfarer/internal/platform/sec"
)

/*
TestGenerateSecureToken verifies generated secrets are hex, sized from the
byte length, and unique across calls.
*/
func TestGenerateSecureToken(t *testing.T) {
	first, err := sec.GenerateSecureToken(sec.ResetTokenLength)
	require.NoError(t, err)
	second, err := sec.GenerateSecureToken(sec.ResetTokenLength)
	require.NoError(t, err)

	assert.Len(t, first, sec.ResetTokenLength*2, "hex doubles the byte length")
	assert.NotEqual(t, first, second)

	_, err = hex.DecodeString(first)
	assert.NoError(t, err)
}

/*
TestHashToken verifies token hashing is deterministic, one-way in shape,
and distinguishes different inputs.
*/
func TestHashToken(t *testing.T) {
	hash := sec.HashToken("secret-token")

	assert.Equal(t, hash, sec.HashToken("secret-token"))
	assert.NotEqual(t, hash, sec.HashToken("secret-token2"))
	assert.NotEqual(t, "secret-token", hash)
	assert.Len(t, hash, 64, "SHA-256 hex digest")
}
