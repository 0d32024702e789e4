package auth

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
)

// The previous deployment authenticated with a trio of cookies:
// loggedInHash carried Digest(userId + "-" + secret), alongside plain
// userId and username cookies. The scheme has no expiry, no per-user
// salt and no domain separation from password hashing, so it is kept
// only as an opt-in verifier for cookies issued before the cutover.
// New sessions always use signed tokens (see token.go).

// Digest returns the lowercase hex SHA-512 of the input. Deterministic
// and stable across calls.
func Digest(input string) string {
	sum := sha512.Sum512([]byte(input))
	return hex.EncodeToString(sum[:])
}

// LegacyToken derives the old cookie token for a user id and shared secret.
func LegacyToken(userID, secret string) string {
	return Digest(userID + "-" + secret)
}

// legacyTokenEqual compares a presented token against the expected one in
// constant time. The original compared with ==.
func legacyTokenEqual(presented, expected string) bool {
	return hmac.Equal([]byte(presented), []byte(expected))
}
