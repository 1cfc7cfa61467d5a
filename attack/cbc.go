package attack

import (
	"fmt"

	"github.com/pmaddams/blockbreak/modes"
	"github.com/pmaddams/blockbreak/rijndael"
)

// BreakCBCPaddingOracle decrypts a CBC ciphertext using a padding oracle.
// The result still carries its PKCS#7 padding.
func BreakCBCPaddingOracle(ciphertext []byte, iv rijndael.Block, o PaddingOracle) ([]byte, error) {
	if len(ciphertext)%rijndael.BlockSize != 0 {
		return nil, fmt.Errorf("BreakCBCPaddingOracle: %w", modes.ErrLength)
	}
	res := make([]byte, 0, len(ciphertext))
	prev := iv
	for i, buf := range modes.Blocks(ciphertext, rijndael.BlockSize) {
		block := rijndael.Block(buf)
		inter, err := intermediate(block, o)
		if err != nil {
			return nil, fmt.Errorf("BreakCBCPaddingOracle: block %d: %w", i, err)
		}
		for j := range inter {
			inter[j] ^= prev[j]
		}
		res = append(res, inter[:]...)
		prev = block
	}
	return res, nil
}

// intermediate recovers the raw block decryption of a ciphertext block,
// before it is XORed with the preceding block.
func intermediate(block rijndael.Block, o PaddingOracle) (rijndael.Block, error) {
	var inter, iv rijndael.Block
	for pos := rijndael.BlockSize - 1; pos >= 0; pos-- {
		pad := byte(rijndael.BlockSize - pos)
		for i := pos + 1; i < rijndael.BlockSize; i++ {
			iv[i] = inter[i] ^ pad
		}
		if !findValidIV(block, &iv, pos, o) {
			return rijndael.Block{}, fmt.Errorf("byte %d: %w", pos, ErrInconsistentOracle)
		}
		n := padLength(block, iv, o)
		if n == 0 {
			return rijndael.Block{}, fmt.Errorf("byte %d: %w", pos, ErrInconsistentOracle)
		}
		inter[pos] = iv[pos] ^ byte(n)
	}
	return inter, nil
}

// findValidIV searches for an IV byte at pos that makes the oracle accept the padding.
func findValidIV(block rijndael.Block, iv *rijndael.Block, pos int, o PaddingOracle) bool {
	for i := 0; i < maxProbe; i++ {
		iv[pos] = byte(i)
		if o.ValidPadding(block, *iv) {
			return true
		}
	}
	return false
}

// padLength returns the length of the valid padding produced by an IV,
// found by corrupting bytes from the front until the oracle rejects it.
// It returns 0 if the padding never breaks.
func padLength(block, iv rijndael.Block, o PaddingOracle) int {
	for i := range iv {
		iv[i] ^= 1
		if !o.ValidPadding(block, iv) {
			return rijndael.BlockSize - i
		}
	}
	return 0
}

// RecoverCBCIV recovers the IV from an oracle that decrypts CBC ciphertext
// and discloses the plaintext. Decrypting two zero blocks yields P1 = D(0) ^ IV
// and P2 = D(0), so their XOR is the IV.
func RecoverCBCIV(o DecryptionOracle) (rijndael.Block, error) {
	buf := o.Decrypt(make([]byte, 2*rijndael.BlockSize))
	if len(buf) < 2*rijndael.BlockSize {
		return rijndael.Block{}, fmt.Errorf("RecoverCBCIV: %w", ErrInconsistentOracle)
	}
	var iv rijndael.Block
	for i := range iv {
		iv[i] = buf[i] ^ buf[rijndael.BlockSize+i]
	}
	return iv, nil
}
