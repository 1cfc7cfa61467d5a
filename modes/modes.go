// Package modes implements the ECB, CBC, and CTR modes of operation
// over a pluggable block transform.
package modes

import (
	"encoding/binary"
	"errors"

	"github.com/pmaddams/blockbreak/pkcs7"
	"github.com/pmaddams/blockbreak/rijndael"
)

const blockSize = rijndael.BlockSize

// ErrLength is returned when a block mode is given a partial block.
var ErrLength = errors.New("modes: input not a multiple of the block size")

// BlockFunc transforms a single block under a key.
// rijndael.EncryptBlock and rijndael.DecryptBlock are both BlockFuncs.
type BlockFunc func(rijndael.Block, rijndael.Key) rijndael.Block

// Blocks divides a buffer into blocks of length n, dropping any remainder.
func Blocks(buf []byte, n int) [][]byte {
	var blocks [][]byte
	for len(buf) >= n {
		// Return pointers, not copies.
		blocks = append(blocks, buf[:n])
		buf = buf[n:]
	}
	return blocks
}

func xorBlock(dst *rijndael.Block, src rijndael.Block) {
	for i := range dst {
		dst[i] ^= src[i]
	}
}

// ECB transforms each block independently.
func ECB(buf []byte, key rijndael.Key, f BlockFunc) ([]byte, error) {
	if len(buf)%blockSize != 0 {
		return nil, ErrLength
	}
	res := make([]byte, 0, len(buf))
	for _, b := range Blocks(buf, blockSize) {
		out := f(rijndael.Block(b), key)
		res = append(res, out[:]...)
	}
	return res, nil
}

// CBCEncrypt chains each plaintext block with the previous ciphertext block
// before transforming it.
func CBCEncrypt(buf []byte, key rijndael.Key, iv rijndael.Block, f BlockFunc) ([]byte, error) {
	if len(buf)%blockSize != 0 {
		return nil, ErrLength
	}
	res := make([]byte, 0, len(buf))
	prev := iv
	for _, b := range Blocks(buf, blockSize) {
		tmp := rijndael.Block(b)
		xorBlock(&tmp, prev)
		prev = f(tmp, key)
		res = append(res, prev[:]...)
	}
	return res, nil
}

// CBCDecrypt transforms each ciphertext block and then XORs it
// with the previous ciphertext block.
func CBCDecrypt(buf []byte, key rijndael.Key, iv rijndael.Block, f BlockFunc) ([]byte, error) {
	if len(buf)%blockSize != 0 {
		return nil, ErrLength
	}
	res := make([]byte, 0, len(buf))
	prev := iv
	for _, b := range Blocks(buf, blockSize) {
		cur := rijndael.Block(b)
		out := f(cur, key)
		xorBlock(&out, prev)
		res = append(res, out[:]...)
		prev = cur
	}
	return res, nil
}

// ValidCBCPadding returns true if a single block decrypts under the
// given IV to plaintext with valid PKCS#7 padding.
func ValidCBCPadding(block, iv rijndael.Block, key rijndael.Key, f BlockFunc) bool {
	out := f(block, key)
	xorBlock(&out, iv)
	return pkcs7.Valid(out[:])
}

// CounterBlock returns the counter block for a nonce and block index:
// the nonce in little-endian order, followed by the index in big-endian order.
func CounterBlock(nonce, index uint64) rijndael.Block {
	var b rijndael.Block
	binary.LittleEndian.PutUint64(b[:8], nonce)
	binary.BigEndian.PutUint64(b[8:], index)
	return b
}

// CTR XORs a buffer with the keystream for a key and nonce.
// Encryption and decryption are the same operation.
func CTR(buf []byte, key rijndael.Key, nonce uint64, f BlockFunc) []byte {
	res := make([]byte, len(buf))
	for i := 0; i < len(buf); i += blockSize {
		ks := f(CounterBlock(nonce, uint64(i/blockSize)), key)
		for j := i; j < len(buf) && j < i+blockSize; j++ {
			res[j] = buf[j] ^ ks[j-i]
		}
	}
	return res
}

// EditCTR replaces the plaintext of block index in a CTR ciphertext, in place.
// Bytes that would fall past the end of the buffer are dropped.
func EditCTR(buf []byte, plaintext rijndael.Block, index int, key rijndael.Key, nonce uint64, f BlockFunc) {
	if index < 0 {
		return
	}
	ks := f(CounterBlock(nonce, uint64(index)), key)
	for i := range ks {
		pos := index*blockSize + i
		if pos >= len(buf) {
			break
		}
		buf[pos] = plaintext[i] ^ ks[i]
	}
}
