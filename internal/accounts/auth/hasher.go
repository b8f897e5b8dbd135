// Copyright (c) 2026 WH64.DEV. All rights reserved.
// Author: dev@wh64.dev

package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
)

// Hasher produces and verifies salted iterated SHA-256 password digests.
//
// The digest chain is:
//
//	d0 = base64(sha256(password + ":" + salt))
//	dn = base64(sha256(d(n-1) + ":" + salt))
//
// repeated for the configured iteration count. Base64 re-encoding between
// rounds keeps every intermediate value printable, so digests stored by old
// deployments remain verifiable byte-for-byte.
//
// Hasher is stateless and safe for concurrent use.
type Hasher struct {
	saltSize   int
	iterations int
}

/*
NewHasher creates a Hasher with the given salt size and iteration count.

Parameters:
  - saltSize: byte length of generated salts. Values below 8 are raised to
    DefaultSaltSize.
  - iterations: digest rounds applied after the initial hash. Values below 1
    are raised to DefaultHashIterations.

Returns:
  - *Hasher: configured hasher.
*/
func NewHasher(saltSize, iterations int) *Hasher {
	if saltSize < 8 {
		saltSize = DefaultSaltSize
	}
	if iterations < 1 {
		iterations = DefaultHashIterations
	}

	return &Hasher{saltSize: saltSize, iterations: iterations}
}

/*
GenerateSalt produces a new random salt, base64-encoded for storage.

Returns:
  - string: base64 salt.
  - error: if the system entropy source fails.
*/
func (hasher *Hasher) GenerateSalt() (string, error) {
	raw := make([]byte, hasher.saltSize)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("generate_salt_failed: %w", err)
	}

	return base64.StdEncoding.EncodeToString(raw), nil
}

/*
Hash derives the stored digest for a password and salt.

Parameters:
  - password: plaintext password.
  - salt: base64 salt produced by GenerateSalt.

Returns:
  - string: base64 digest after all iterations.
*/
func (hasher *Hasher) Hash(password, salt string) string {
	digest := round(password, salt)
	for i := 0; i < hasher.iterations; i++ {
		digest = round(digest, salt)
	}

	return digest
}

/*
Verify reports whether a plaintext password matches a stored digest.

The comparison is constant-time so verification latency does not leak how
many digest bytes matched.

Parameters:
  - password: plaintext candidate.
  - salt: the account's stored salt.
  - expected: the account's stored digest.

Returns:
  - bool: true when the password is correct.
*/
func (hasher *Hasher) Verify(password, salt, expected string) bool {
	computed := hasher.Hash(password, salt)

	return subtle.ConstantTimeCompare([]byte(computed), []byte(expected)) == 1
}

// round applies one digest step: sha256 over "input:salt", base64-encoded.
func round(input, salt string) string {
	sum := sha256.Sum256([]byte(input + ":" + salt))

	return base64.StdEncoding.EncodeToString(sum[:])
}
