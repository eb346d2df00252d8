package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Argon2id parameters. The users collection is read by the client, so
// hashes are computed client-side.
const (
	argonTime    uint32 = 3
	argonMemory  uint32 = 64 * 1024
	argonThreads uint8  = 1
	argonKeyLen  uint32 = 32
)

const (
	saltLen    = 16
	hashScheme = "argon2id"
)

var b64 = base64.RawStdEncoding

// randBytes returns n cryptographically secure random bytes.
func randBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	_, err := rand.Read(b)
	return b, err
}

func hash(password, salt []byte) []byte {
	return argon2.IDKey(password, salt, argonTime, argonMemory, argonThreads, argonKeyLen)
}

// EncodePassword hashes password with a fresh salt and returns
// "argon2id$<salt>$<hash>".
func EncodePassword(password string) (string, error) {
	salt, err := randBytes(saltLen)
	if err != nil {
		return "", err
	}
	return hashScheme + "$" + b64.EncodeToString(salt) + "$" + b64.EncodeToString(hash([]byte(password), salt)), nil
}

// VerifyPassword checks password against an encoded hash. Anything that is
// not a well-formed argon2id record, plaintext included, never matches.
func VerifyPassword(password, encoded string) bool {
	parts := strings.Split(encoded, "$")
	if len(parts) != 3 || parts[0] != hashScheme {
		return false
	}
	salt, err := b64.DecodeString(parts[1])
	if err != nil || len(salt) == 0 {
		return false
	}
	want, err := b64.DecodeString(parts[2])
	if err != nil || len(want) == 0 {
		return false
	}
	return subtle.ConstantTimeCompare(hash([]byte(password), salt), want) == 1
}
