// Package pkcs7 implements PKCS#7 padding.
package pkcs7

import (
	"bytes"
	"errors"
)

// ErrInvalidPadding is the only error Unpad returns, so that callers
// cannot tell one kind of bad padding from another.
var ErrInvalidPadding = errors.New("pkcs7: invalid padding")

// Pad returns a copy of the buffer with PKCS#7 padding added.
func Pad(buf []byte, blockSize int) []byte {
	if blockSize <= 0 || blockSize > 0xff {
		panic("Pad: invalid block size")
	}
	// Find the number (and value) of padding bytes.
	n := blockSize - len(buf)%blockSize

	res := make([]byte, len(buf), len(buf)+n)
	copy(res, buf)
	return append(res, bytes.Repeat([]byte{byte(n)}, n)...)
}

// Unpad returns the buffer with PKCS#7 padding removed.
// The result shares memory with the input.
func Unpad(buf []byte) ([]byte, error) {
	if len(buf) == 0 {
		return nil, ErrInvalidPadding
	}
	// Examine the value of the last byte.
	b := buf[len(buf)-1]
	n := int(b)
	if n == 0 || n > len(buf) {
		return nil, ErrInvalidPadding
	}
	for _, c := range buf[len(buf)-n:] {
		if c != b {
			return nil, ErrInvalidPadding
		}
	}
	return buf[:len(buf)-n], nil
}

// Valid returns true if a buffer has valid PKCS#7 padding.
func Valid(buf []byte) bool {
	_, err := Unpad(buf)
	return err == nil
}
