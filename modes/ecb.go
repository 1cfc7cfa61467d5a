package modes

import "crypto/cipher"

// ecb embeds cipher.Block, hiding its methods.
type ecb struct{ b cipher.Block }

// BlockSize returns the block size of the cipher.
func (x ecb) BlockSize() int {
	return x.b.BlockSize()
}

type ecbEncrypter struct{ ecb }

// NewECBEncrypter returns a block mode for ECB encryption.
func NewECBEncrypter(block cipher.Block) cipher.BlockMode {
	return ecbEncrypter{ecb{block}}
}

// CryptBlocks encrypts a buffer in ECB mode.
func (mode ecbEncrypter) CryptBlocks(dst, src []byte) {
	cryptBlocks(dst, src, mode.BlockSize(), mode.b.Encrypt)
}

type ecbDecrypter struct{ ecb }

// NewECBDecrypter returns a block mode for ECB decryption.
func NewECBDecrypter(block cipher.Block) cipher.BlockMode {
	return ecbDecrypter{ecb{block}}
}

// CryptBlocks decrypts a buffer in ECB mode.
func (mode ecbDecrypter) CryptBlocks(dst, src []byte) {
	cryptBlocks(dst, src, mode.BlockSize(), mode.b.Decrypt)
}

func cryptBlocks(dst, src []byte, n int, crypt func(dst, src []byte)) {
	if len(src)%n != 0 {
		panic("CryptBlocks: input not full blocks")
	}
	if len(dst) < len(src) {
		panic("CryptBlocks: output smaller than input")
	}
	for len(src) > 0 {
		crypt(dst[:n], src[:n])
		dst, src = dst[n:], src[n:]
	}
}
