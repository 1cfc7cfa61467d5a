// Package mac computes message authentication codes over a pluggable hash.
package mac

import (
	"crypto/hmac"
	"crypto/sha1"
	"crypto/sha256"
	"errors"
	"hash"

	"golang.org/x/crypto/md4"
)

// ErrUnknownHash is returned by ByName for an unsupported hash name.
var ErrUnknownHash = errors.New("mac: unknown hash")

// HashFunc returns a new hash.
type HashFunc func() hash.Hash

// Supported hash functions.
var (
	MD4    HashFunc = md4.New
	SHA1   HashFunc = sha1.New
	SHA256 HashFunc = sha256.New
)

var byName = map[string]HashFunc{
	"md4":    MD4,
	"sha1":   SHA1,
	"sha256": SHA256,
}

// ByName returns the hash function with the given name.
func ByName(name string) (HashFunc, error) {
	h, ok := byName[name]
	if !ok {
		return nil, ErrUnknownHash
	}
	return h, nil
}

// prefix represents a hash for a secret-prefix message authentication code.
type prefix struct {
	hash.Hash
	key []byte
}

// NewPrefix returns a hash computing H(key || message).
// Reset restores the keyed state.
func NewPrefix(h HashFunc, key []byte) hash.Hash {
	m := prefix{h(), append([]byte(nil), key...)}
	m.Reset()
	return m
}

// Reset resets the hash and writes the key.
func (m prefix) Reset() {
	m.Hash.Reset()
	if _, err := m.Hash.Write(m.key); err != nil {
		panic(err)
	}
}

// HMAC returns the HMAC of a message.
func HMAC(h HashFunc, key, msg []byte) []byte {
	m := hmac.New(h, key)
	m.Write(msg)
	return m.Sum(nil)
}

// Verify reports whether sum is the HMAC of a message, in constant time.
func Verify(h HashFunc, key, msg, sum []byte) bool {
	return hmac.Equal(HMAC(h, key, msg), sum)
}
