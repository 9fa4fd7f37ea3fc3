package tutoring

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// legacyFallbackPrefix marks hashes written by installs that had no digest
// primitive available: a reversible base64 encoding, kept verifiable for
// compatibility but never produced here.
const legacyFallbackPrefix = "fallback_"

// HashPassword returns the unsalted SHA-256 hex digest of the password's
// UTF-8 bytes. Identical passwords hash identically; see Config.StrongPasswords
// for the bcrypt alternative.
func HashPassword(pwd string) string {
	sum := sha256.Sum256([]byte(pwd))
	return hex.EncodeToString(sum[:])
}

// HashPasswordStrong returns a salted bcrypt hash.
func HashPasswordStrong(pwd string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword verifies a password against a stored hash of any of the
// three known forms: bcrypt, SHA-256 hex, or the legacy fallback encoding.
func CheckPassword(stored, pwd string) bool {
	switch {
	case strings.HasPrefix(stored, "$2"):
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(pwd)) == nil
	case strings.HasPrefix(stored, legacyFallbackPrefix):
		encoded := legacyFallbackPrefix + base64.StdEncoding.EncodeToString([]byte(pwd))
		return subtle.ConstantTimeCompare([]byte(stored), []byte(encoded)) == 1
	default:
		return subtle.ConstantTimeCompare([]byte(stored), []byte(HashPassword(pwd))) == 1
	}
}
