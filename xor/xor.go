// Package xor combines buffers with XOR and breaks single-byte and repeating-key XOR.
package xor

import (
	"errors"
	"math"
	"sort"

	"github.com/pmaddams/blockbreak/score"
)

// Bytes produces the XOR combination of two buffers, up to the length
// of the shorter one, and returns the number of bytes written.
func Bytes(dst, b1, b2 []byte) int {
	n := min(len(b1), len(b2))
	for i := 0; i < n; i++ {
		dst[i] = b1[i] ^ b2[i]
	}
	return n
}

// Repeating produces the XOR combination of a buffer with a repeating key.
func Repeating(dst, src, key []byte) {
	// Panic if dst is smaller than src.
	for i := range src {
		dst[i] = src[i] ^ key[i%len(key)]
	}
}

// SingleByte produces the XOR combination of a buffer with a single byte.
func SingleByte(dst, src []byte, b byte) {
	for i := range src {
		dst[i] = src[i] ^ b
	}
}

// Candidate pairs a single-byte key with the score of the text it produces.
type Candidate struct {
	Key   byte
	Score int
}

// Candidates returns the n best single-byte keys for a buffer, best first.
func Candidates(buf []byte, n int) []Candidate {
	// Don't modify the original data.
	tmp := make([]byte, len(buf))
	res := make([]Candidate, 0, 256)

	// Use an integer as the loop variable to avoid overflow.
	for i := 0; i <= 0xff; i++ {
		SingleByte(tmp, buf, byte(i))
		res = append(res, Candidate{byte(i), score.Text(tmp)})
	}
	// Ties go to the higher key.
	sort.Slice(res, func(i, j int) bool {
		if res[i].Score != res[j].Score {
			return res[i].Score > res[j].Score
		}
		return res[i].Key > res[j].Key
	})
	if n < 0 {
		n = 0
	}
	if n < len(res) {
		res = res[:n]
	}
	return res
}

// BreakSingleByte returns the most likely single-byte XOR key and its score.
func BreakSingleByte(buf []byte) (byte, int) {
	best := Candidates(buf, 1)[0]
	return best.Key, best.Score
}

// Transpose makes a buffer out of the first byte of every buffer, another buffer
// out of the second byte of every buffer, and so on. Buffers may differ in length;
// each output buffer only collects from the inputs long enough to reach it.
func Transpose(bufs [][]byte) [][]byte {
	var res [][]byte
	for _, buf := range bufs {
		for i, b := range buf {
			if i == len(res) {
				res = append(res, nil)
			}
			res[i] = append(res[i], b)
		}
	}
	return res
}

// chunks divides a buffer into pieces of length n; the last may be shorter.
func chunks(buf []byte, n int) [][]byte {
	var res [][]byte
	for len(buf) > n {
		res = append(res, buf[:n])
		buf = buf[n:]
	}
	if len(buf) > 0 {
		res = append(res, buf)
	}
	return res
}

// normalizedDistance returns the average Hamming distance per byte between
// consecutive full chunks of length n.
func normalizedDistance(buf []byte, n int) float64 {
	var sum float64
	var pairs int
	for i := 0; i+2*n <= len(buf); i += n {
		d, _ := score.HammingDistance(buf[i:i+n], buf[i+n:i+2*n])
		sum += float64(d) / float64(n)
		pairs++
	}
	if pairs == 0 {
		return math.Inf(1)
	}
	return sum / float64(pairs)
}

// KeySizes returns up to n likely repeating-key lengths, most likely first.
func KeySizes(buf []byte, n int) []int {
	// Guess lower and upper bounds for the key size.
	const lower = 2
	upper := min(40, len(buf)/2)

	var sizes []int
	dist := make(map[int]float64)
	for size := lower; size <= upper; size++ {
		sizes = append(sizes, size)
		dist[size] = normalizedDistance(buf, size)
	}
	sort.SliceStable(sizes, func(i, j int) bool {
		return dist[sizes[i]] < dist[sizes[j]]
	})
	if n < 0 {
		n = 0
	}
	if n < len(sizes) {
		sizes = sizes[:n]
	}
	return sizes
}

// breakKey returns the most likely repeating key of the given size.
func breakKey(buf []byte, size int) []byte {
	key := make([]byte, size)
	for i, col := range Transpose(chunks(buf, size)) {
		key[i], _ = BreakSingleByte(col)
	}
	return key
}

// shortestKey looks for a shorter key that, repeated, agrees with at least
// three quarters of a recovered key. Keys recovered at a multiple of the true
// size overfit their short columns, so they are only mostly periodic.
func shortestKey(buf, key []byte) []byte {
	for size := 2; size < len(key); size++ {
		if len(key)%size != 0 {
			continue
		}
		short := breakKey(buf, size)
		var n int
		for i := range key {
			if key[i] == short[i%size] {
				n++
			}
		}
		if 4*n >= 3*len(key) {
			return short
		}
	}
	return key
}

// BreakRepeating tries the n most likely key sizes and returns the key
// whose decryption scores best, preferring shorter keys on ties.
func BreakRepeating(buf []byte, n int) ([]byte, error) {
	sizes := KeySizes(buf, n)
	if len(sizes) == 0 {
		return nil, errors.New("BreakRepeating: buffer too short")
	}
	tmp := make([]byte, len(buf))
	var (
		best int
		res  []byte
	)
	for _, size := range sizes {
		key := shortestKey(buf, breakKey(buf, size))
		Repeating(tmp, buf, key)
		s := score.Text(tmp)
		if res == nil || s > best || s == best && len(key) < len(res) {
			best = s
			res = key
		}
	}
	return res, nil
}
