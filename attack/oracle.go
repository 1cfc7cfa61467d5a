// Package attack recovers secrets from misused block cipher modes
// by querying caller-supplied oracles.
//
// Oracles close over the secret key; the attacks never see it.
package attack

import (
	"errors"

	"github.com/pmaddams/blockbreak/rijndael"
)

var (
	// ErrBlockSize is returned when the output of an encryption oracle
	// never grows in block-sized steps.
	ErrBlockSize = errors.New("attack: block size not detected")

	// ErrNotECB is returned when identical input blocks do not
	// produce identical output blocks.
	ErrNotECB = errors.New("attack: ECB mode not detected")

	// ErrPrefix is returned when the prefix length cannot be determined.
	ErrPrefix = errors.New("attack: prefix length not detected")

	// ErrInconsistentOracle is returned when every candidate byte has been
	// tried at some position without the oracle confirming any of them.
	ErrInconsistentOracle = errors.New("attack: inconsistent oracle")
)

// An EncryptionOracle encrypts attacker-controlled data
// together with whatever secrets it holds.
type EncryptionOracle interface {
	Encrypt(buf []byte) []byte
}

// EncryptFunc adapts a function to EncryptionOracle.
type EncryptFunc func([]byte) []byte

// Encrypt calls f(buf).
func (f EncryptFunc) Encrypt(buf []byte) []byte {
	return f(buf)
}

// A PaddingOracle reports whether a ciphertext block, decrypted under
// the given IV, ends in valid PKCS#7 padding.
type PaddingOracle interface {
	ValidPadding(block, iv rijndael.Block) bool
}

// PaddingFunc adapts a function to PaddingOracle.
type PaddingFunc func(block, iv rijndael.Block) bool

// ValidPadding calls f(block, iv).
func (f PaddingFunc) ValidPadding(block, iv rijndael.Block) bool {
	return f(block, iv)
}

// An EditOracle replaces the plaintext of one block of a CTR ciphertext
// in place, re-encrypting it under the oracle's key and nonce.
type EditOracle interface {
	Edit(buf []byte, plaintext rijndael.Block, index int)
}

// EditFunc adapts a function to EditOracle.
type EditFunc func(buf []byte, plaintext rijndael.Block, index int)

// Edit calls f(buf, plaintext, index).
func (f EditFunc) Edit(buf []byte, plaintext rijndael.Block, index int) {
	f(buf, plaintext, index)
}

// A DecryptionOracle decrypts ciphertext and returns the plaintext,
// as an error message might.
type DecryptionOracle interface {
	Decrypt(buf []byte) []byte
}

// DecryptFunc adapts a function to DecryptionOracle.
type DecryptFunc func([]byte) []byte

// Decrypt calls f(buf).
func (f DecryptFunc) Decrypt(buf []byte) []byte {
	return f(buf)
}
