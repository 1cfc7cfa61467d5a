package rijndael

import (
	"crypto/cipher"
	"strconv"
)

// KeySizeError is returned for keys that are not 16 bytes long.
type KeySizeError int

func (k KeySizeError) Error() string {
	return "rijndael: invalid key size " + strconv.Itoa(int(k))
}

// blockCipher adapts the block functions to cipher.Block.
type blockCipher struct{ key Key }

// NewCipher returns an AES-128 cipher.Block using the from-scratch implementation.
func NewCipher(key []byte) (cipher.Block, error) {
	if len(key) != BlockSize {
		return nil, KeySizeError(len(key))
	}
	var c blockCipher
	copy(c.key[:], key)
	return c, nil
}

// BlockSize returns the cipher block size.
func (c blockCipher) BlockSize() int {
	return BlockSize
}

// Encrypt encrypts the first block in src into dst.
func (c blockCipher) Encrypt(dst, src []byte) {
	if len(src) < BlockSize || len(dst) < BlockSize {
		panic("rijndael: input not full block")
	}
	out := EncryptBlock(Block(src[:BlockSize]), c.key)
	copy(dst, out[:])
}

// Decrypt decrypts the first block in src into dst.
func (c blockCipher) Decrypt(dst, src []byte) {
	if len(src) < BlockSize || len(dst) < BlockSize {
		panic("rijndael: input not full block")
	}
	out := DecryptBlock(Block(src[:BlockSize]), c.key)
	copy(dst, out[:])
}
