// Package gf implements arithmetic in GF(2^8) modulo the AES polynomial.
package gf

// Modulus is x^8 + x^4 + x^3 + x + 1 without the implied x^8 term.
const Modulus = 0x1b

// Double multiplies an element by x.
func Double(x byte) byte {
	if x&0x80 != 0 {
		return x<<1 ^ Modulus
	}
	return x << 1
}

// Mul returns the product of two elements.
func Mul(x, y byte) byte {
	var res byte
	for y > 0 {
		if y&1 == 1 {
			res ^= x
		}
		x = Double(x)
		y >>= 1
	}
	return res
}

// Pow raises an element to the nth power by repeated squaring.
func Pow(x byte, n uint) byte {
	res := byte(1)
	for n > 0 {
		if n&1 == 1 {
			res = Mul(res, x)
		}
		x = Mul(x, x)
		n >>= 1
	}
	return res
}

// Inv returns the multiplicative inverse of a nonzero element.
// By convention, Inv(0) == 0.
func Inv(x byte) byte {
	// The multiplicative group has order 255.
	return Pow(x, 254)
}

// mulTable returns the products of every element with y.
func mulTable(y byte) *[256]byte {
	var t [256]byte
	for i := range t {
		t[i] = Mul(byte(i), y)
	}
	return &t
}

// invTable returns the inverse of every element.
func invTable() *[256]byte {
	var t [256]byte
	for i := range t {
		t[i] = Inv(byte(i))
	}
	return &t
}

// Precomputed once at package initialization and read-only afterward.
var (
	mul2  = mulTable(2)
	mul3  = mulTable(3)
	mul9  = mulTable(9)
	mul11 = mulTable(11)
	mul13 = mulTable(13)
	mul14 = mulTable(14)
	inv   = invTable()
)

// Scale multiplies x by the constant c, using a lookup table
// for the constants that appear in the AES column mixing.
func Scale(x, c byte) byte {
	switch c {
	case 1:
		return x
	case 2:
		return mul2[x]
	case 3:
		return mul3[x]
	case 9:
		return mul9[x]
	case 11:
		return mul11[x]
	case 13:
		return mul13[x]
	case 14:
		return mul14[x]
	}
	return Mul(x, c)
}

// Inverse is Inv backed by a lookup table.
func Inverse(x byte) byte {
	return inv[x]
}
