// Copyright (c) 2026 Wayfarer Travel. All rights reserved.
// Author: dev@wayfarer.travel

package sec

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// ResetTokenLength is the entropy, in bytes, of a password-reset secret.
const ResetTokenLength = 32

// GenerateSecureToken returns a hex-encoded, cryptographically random token
// of the given byte length.
//
// The plaintext token is handed to the user exactly once (out-of-band);
// only its [HashToken] digest is ever persisted.
func GenerateSecureToken(byteLength int) (string, error) {
	buf := make([]byte, byteLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("sec: failed to generate secure token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// HashToken returns the hex-encoded SHA-256 digest of a token.
//
// SHA-256 (not bcrypt) is deliberate here: reset tokens already carry 256
// bits of entropy, so a fast one-way hash is sufficient and keeps the
// lookup-by-hash path cheap.
func HashToken(token string) string {
	digest := sha256.Sum256([]byte(token))
	return hex.EncodeToString(digest[:])
}
