// Package cryptox derives the credentials a user proves knowledge of.
// The password never leaves the device: the server stores a salt and a
// verifier computed from an argon2id key.
package cryptox

import (
	"crypto/sha256"
	"crypto/subtle"

	"github.com/dmitrijs2005/pagekeeper/internal/common"
	"golang.org/x/crypto/argon2"
)

const (
	SaltSize = 32
	KeySize  = 32
)

// NewSalt returns a fresh random salt.
func NewSalt() []byte {
	return common.GenerateRandByteArray(SaltSize)
}

// DeriveMasterKey stretches password with argon2id.
func DeriveMasterKey(password []byte, salt []byte) []byte {
	return argon2.IDKey(password, salt, 1, 64*1024, 4, KeySize)
}

// MakeVerifier hashes a master key into the value the server stores.
func MakeVerifier(masterKey []byte) []byte {
	hash := sha256.Sum256(masterKey)
	return hash[:]
}

// Verifier derives the verifier for password and salt in one step. The
// intermediate key is wiped.
func Verifier(password, salt []byte) []byte {
	key := DeriveMasterKey(password, salt)
	defer common.WipeByteArray(key)
	return MakeVerifier(key)
}

// VerifyPassword reports whether password matches the stored verifier.
func VerifyPassword(password, salt, verifier []byte) bool {
	return subtle.ConstantTimeCompare(Verifier(password, salt), verifier) == 1
}
