// Package score ranks byte sequences by their resemblance to English text.
//
// Scores are only meaningful relative to one another: higher is more plausible.
package score

import (
	"errors"
	"math/bits"
)

// letters holds approximate English letter frequencies, per mille.
var letters = [26]int{
	82, 15, 28, 43, 127, 22, 20, 61, 70, 2, 8, 40, 24,
	67, 75, 19, 1, 60, 63, 91, 28, 10, 24, 2, 20, 7,
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\f', '\r':
		return true
	}
	return false
}

func isPunct(c byte) bool {
	return c >= '!' && c <= '/' || c >= ':' && c <= '@' ||
		c >= '[' && c <= '`' || c >= '{' && c <= '~'
}

// Byte returns the weight of a single byte.
func Byte(c byte) int {
	switch {
	case isSpace(c):
		return 140
	case isPunct(c):
		return 50
	case c >= 'a' && c <= 'z':
		// Lowercase is more common than uppercase.
		return 2 * letters[c-'a']
	case c >= 'A' && c <= 'Z':
		return letters[c-'A']
	}
	return 0
}

// Text adds up the weights of every byte in the buffer.
func Text(buf []byte) int {
	var res int
	for _, c := range buf {
		res += Byte(c)
	}
	return res
}

// HammingDistance returns the number of differing bits between two equal-length buffers.
func HammingDistance(b1, b2 []byte) (int, error) {
	if len(b1) != len(b2) {
		return 0, errors.New("HammingDistance: buffers must have equal length")
	}
	var res int
	for i := range b1 {
		res += bits.OnesCount8(b1[i] ^ b2[i])
	}
	return res, nil
}

// Hamming returns the negated Hamming distance, so that closer buffers score higher.
// It panics if the buffers differ in length.
func Hamming(b1, b2 []byte) int {
	n, err := HammingDistance(b1, b2)
	if err != nil {
		panic(err)
	}
	return -n
}
