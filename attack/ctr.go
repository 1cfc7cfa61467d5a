package attack

import (
	"github.com/pmaddams/blockbreak/rijndael"
	"github.com/pmaddams/blockbreak/xor"
)

// BreakCTREdit decrypts a CTR ciphertext using an edit oracle. Writing a zero
// block at every index turns a copy of the ciphertext into the keystream.
func BreakCTREdit(ciphertext []byte, o EditOracle) []byte {
	keystream := dup(ciphertext)
	var zero rijndael.Block
	for i := 0; i*rijndael.BlockSize < len(keystream); i++ {
		o.Edit(keystream, zero, i)
	}
	res := make([]byte, len(ciphertext))
	xor.Bytes(res, ciphertext, keystream)
	return res
}

// BreakFixedNonceCTR decrypts ciphertexts that were encrypted under the same key and nonce.
// Each keystream byte is guessed independently from the column of ciphertext bytes
// at its position, so columns covered by few ciphertexts are unreliable.
func BreakFixedNonceCTR(ciphertexts [][]byte) ([][]byte, []byte) {
	cols := xor.Transpose(ciphertexts)
	keystream := make([]byte, len(cols))
	for i, col := range cols {
		keystream[i], _ = xor.BreakSingleByte(col)
	}
	res := make([][]byte, len(ciphertexts))
	for i, buf := range ciphertexts {
		res[i] = make([]byte, len(buf))
		xor.Bytes(res[i], buf, keystream)
	}
	return res, keystream
}

// dup returns a copy of a buffer.
func dup(b1 []byte) []byte {
	b2 := make([]byte, len(b1))
	copy(b2, b1)
	return b2
}
