// Package random supplies key, IV, and nonce material from crypto/rand.
package random

import (
	"crypto/rand"
	"encoding/binary"
	"math/big"

	"github.com/pmaddams/blockbreak/rijndael"
)

// Bytes returns a random buffer of the desired length.
func Bytes(n int) []byte {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	return buf
}

// Key returns a random AES-128 key.
func Key() rijndael.Key {
	return rijndael.Key(Bytes(rijndael.BlockSize))
}

// Block returns a random block, suitable for use as an IV.
func Block() rijndael.Block {
	return rijndael.Block(Bytes(rijndael.BlockSize))
}

// Uint64 returns a random 64-bit nonce.
func Uint64() uint64 {
	return binary.LittleEndian.Uint64(Bytes(8))
}

// Range returns a random integer in [lo, hi].
func Range(lo, hi int) int {
	if lo > hi {
		panic("Range: invalid range")
	}
	n, err := rand.Int(rand.Reader, big.NewInt(int64(hi-lo+1)))
	if err != nil {
		panic(err)
	}
	return lo + int(n.Int64())
}
