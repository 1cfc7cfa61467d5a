// Package rijndael implements the AES-128 block cipher from field arithmetic up.
//
// The state is a 16-byte array in column-major order: byte i sits in
// column i/4 and row i%4.
package rijndael

import (
	"math/bits"

	"github.com/pmaddams/blockbreak/gf"
)

// AES always has a block size of 128 bits (16 bytes).
const BlockSize = 16

// Rounds is the number of AES-128 rounds.
const Rounds = 10

// Block is a single cipher block.
type Block [BlockSize]byte

// Key is an AES-128 key or round key.
type Key [BlockSize]byte

// affine is the forward S-box affine transform.
func affine(b byte) byte {
	return b ^ bits.RotateLeft8(b, 1) ^ bits.RotateLeft8(b, 2) ^
		bits.RotateLeft8(b, 3) ^ bits.RotateLeft8(b, 4) ^ 0x63
}

// invAffine is the inverse of affine.
func invAffine(s byte) byte {
	return bits.RotateLeft8(s, 1) ^ bits.RotateLeft8(s, 3) ^ bits.RotateLeft8(s, 6) ^ 0x05
}

func sboxTable() *[256]byte {
	var t [256]byte
	for i := range t {
		t[i] = affine(gf.Inverse(byte(i)))
	}
	return &t
}

func invSboxTable() *[256]byte {
	var t [256]byte
	for i := range t {
		t[i] = gf.Inverse(invAffine(byte(i)))
	}
	return &t
}

func rconTable() *[Rounds]byte {
	var t [Rounds]byte
	for i := range t {
		t[i] = gf.Pow(2, uint(i))
	}
	return &t
}

var (
	sbox    = sboxTable()
	invSbox = invSboxTable()
	rcon    = rconTable()
)

// SubByte applies the S-box to a single byte.
func SubByte(b byte) byte {
	return sbox[b]
}

// InvSubByte applies the inverse S-box to a single byte.
func InvSubByte(b byte) byte {
	return invSbox[b]
}

func subBytes(s *Block) {
	for i := range s {
		s[i] = sbox[s[i]]
	}
}

func invSubBytes(s *Block) {
	for i := range s {
		s[i] = invSbox[s[i]]
	}
}

// shifted returns the position that byte i moves to under ShiftRows.
func shifted(i int) int {
	row, col := i%4, i/4
	return (col+4-row)%4*4 + row
}

func shiftRows(s *Block) {
	tmp := *s
	for i := range tmp {
		s[shifted(i)] = tmp[i]
	}
}

func invShiftRows(s *Block) {
	tmp := *s
	for i := range tmp {
		s[i] = tmp[shifted(i)]
	}
}

func mixColumns(s *Block) {
	for col := 0; col < BlockSize; col += 4 {
		a0, a1, a2, a3 := s[col], s[col+1], s[col+2], s[col+3]
		s[col] = gf.Scale(a0, 2) ^ gf.Scale(a1, 3) ^ a2 ^ a3
		s[col+1] = a0 ^ gf.Scale(a1, 2) ^ gf.Scale(a2, 3) ^ a3
		s[col+2] = a0 ^ a1 ^ gf.Scale(a2, 2) ^ gf.Scale(a3, 3)
		s[col+3] = gf.Scale(a0, 3) ^ a1 ^ a2 ^ gf.Scale(a3, 2)
	}
}

func invMixColumns(s *Block) {
	for col := 0; col < BlockSize; col += 4 {
		a0, a1, a2, a3 := s[col], s[col+1], s[col+2], s[col+3]
		s[col] = gf.Scale(a0, 14) ^ gf.Scale(a1, 11) ^ gf.Scale(a2, 13) ^ gf.Scale(a3, 9)
		s[col+1] = gf.Scale(a0, 9) ^ gf.Scale(a1, 14) ^ gf.Scale(a2, 11) ^ gf.Scale(a3, 13)
		s[col+2] = gf.Scale(a0, 13) ^ gf.Scale(a1, 9) ^ gf.Scale(a2, 14) ^ gf.Scale(a3, 11)
		s[col+3] = gf.Scale(a0, 11) ^ gf.Scale(a1, 13) ^ gf.Scale(a2, 9) ^ gf.Scale(a3, 14)
	}
}

func addRoundKey(s *Block, k Key) {
	for i := range s {
		s[i] ^= k[i]
	}
}

// NextRoundKey derives round key n (1 through 10) from round key n-1.
func NextRoundKey(k Key, n int) Key {
	// RotWord and SubWord of the last word, fed into the first.
	for i := 0; i < 4; i++ {
		k[i] ^= sbox[k[12+(i+1)%4]]
	}
	k[0] ^= rcon[n-1]
	for i := 4; i < BlockSize; i++ {
		k[i] ^= k[i-4]
	}
	return k
}

// PreviousRoundKey recovers round key n-1 from round key n.
func PreviousRoundKey(k Key, n int) Key {
	for i := BlockSize - 1; i >= 4; i-- {
		k[i] ^= k[i-4]
	}
	for i := 0; i < 4; i++ {
		k[i] ^= sbox[k[12+(i+1)%4]]
	}
	k[0] ^= rcon[n-1]
	return k
}

// LastRoundKey runs the key schedule forward to the final round key.
func LastRoundKey(k Key) Key {
	for n := 1; n <= Rounds; n++ {
		k = NextRoundKey(k, n)
	}
	return k
}

// EncryptBlock encrypts a single block.
func EncryptBlock(p Block, k Key) Block {
	s := p
	addRoundKey(&s, k)
	for n := 1; n < Rounds; n++ {
		k = NextRoundKey(k, n)
		subBytes(&s)
		shiftRows(&s)
		mixColumns(&s)
		addRoundKey(&s, k)
	}
	k = NextRoundKey(k, Rounds)
	subBytes(&s)
	shiftRows(&s)
	addRoundKey(&s, k)
	return s
}

// DecryptBlock decrypts a single block.
func DecryptBlock(c Block, k Key) Block {
	s := c
	k = LastRoundKey(k)
	addRoundKey(&s, k)
	invShiftRows(&s)
	invSubBytes(&s)
	for n := Rounds; n > 1; n-- {
		k = PreviousRoundKey(k, n)
		addRoundKey(&s, k)
		invMixColumns(&s)
		invShiftRows(&s)
		invSubBytes(&s)
	}
	k = PreviousRoundKey(k, 1)
	addRoundKey(&s, k)
	return s
}
