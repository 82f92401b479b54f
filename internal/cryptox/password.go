// Package cryptox wraps the password-hashing primitives used by the auth
// service. Hashes are bcrypt digests; the plaintext never leaves this package
// boundary unhashed.
package cryptox

import "golang.org/x/crypto/bcrypt"

// HashPassword returns a salted bcrypt digest of plain.
func HashPassword(plain string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
}

// CheckPassword reports whether plain matches the stored digest.
// bcrypt's comparison is constant-time over the digest.
func CheckPassword(hash []byte, plain string) bool {
	return bcrypt.CompareHashAndPassword(hash, []byte(plain)) == nil
}
