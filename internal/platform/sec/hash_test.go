// Copyright (c) 2026 Wayfarer Travel. All rights reserved.
// Author: dev@wayfarer.travel

package sec_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wayfarer-travel/wayfarer/internal/platform/sec"
)

/*
TestHashPassword_RoundTrip verifies a hashed password verifies against the
original and nothing else.
*/
func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := sec.HashPassword("correct horse battery staple")
	require.NoError(t, err)

	assert.NotEqual(t, "correct horse battery staple", hash)
	assert.True(t, strings.HasPrefix(hash, "$2"), "expected bcrypt format")

	assert.True(t, sec.CheckPasswordHash("correct horse battery staple", hash))
	assert.False(t, sec.CheckPasswordHash("correct horse battery stable", hash))
	assert.False(t, sec.CheckPasswordHash("", hash))
}

/*
TestHashPassword_Salted verifies that two hashes of the same password
differ, i.e. each hash embeds its own salt.
*/
func TestHashPassword_Salted(t *testing.T) {
	first, err := sec.HashPassword("pass12345")
	require.NoError(t, err)
	second, err := sec.HashPassword("pass12345")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, sec.CheckPasswordHash("pass12345", first))
	assert.True(t, sec.CheckPasswordHash("pass12345", second))
}

/*
TestCheckPasswordHash_Garbage verifies a malformed stored hash never
verifies and never panics.
*/
func TestCheckPasswordHash_Garbage(t *testing.T) {
	assert.False(t, sec.CheckPasswordHash("anything", "not-a-bcrypt-hash"))
	assert.False(t, sec.CheckPasswordHash("anything", ""))
}
