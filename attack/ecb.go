package attack

import (
	"bytes"
	"fmt"

	"github.com/pmaddams/blockbreak/modes"
)

// maxProbe bounds every search loop.
const maxProbe = 256

// DetectECB returns true if any block in the buffer appears more than once.
func DetectECB(buf []byte, blockSize int) bool {
	m := make(map[string]bool)
	for _, block := range modes.Blocks(buf, blockSize) {
		s := string(block)
		if m[s] {
			return true
		}
		m[s] = true
	}
	return false
}

// ecbBreaker contains state for attacking an ECB encryption oracle
// that computes ECB(prefix || attacker data || secret).
type ecbBreaker struct {
	oracle    EncryptionOracle
	blockSize int
	totalLen  int
	prefixLen int
}

// BreakECBSuffix recovers the secret that an ECB encryption oracle
// appends to attacker-controlled data, one byte at a time.
func BreakECBSuffix(o EncryptionOracle) ([]byte, error) {
	x := &ecbBreaker{oracle: o}
	if err := x.detectBlockSize(); err != nil {
		return nil, err
	}
	if err := x.detectECB(); err != nil {
		return nil, err
	}
	if err := x.detectPrefix(); err != nil {
		return nil, err
	}
	return x.breakSecret()
}

// detectBlockSize detects the block size and the combined length of prefix and secret.
func (x *ecbBreaker) detectBlockSize() error {
	initLen := len(x.oracle.Encrypt(nil))
	for n := 1; n <= maxProbe; n++ {
		nextLen := len(x.oracle.Encrypt(make([]byte, n)))
		if nextLen == initLen {
			continue
		}
		// The first jump happens when the padding spills into a new block.
		x.blockSize = nextLen - initLen
		x.totalLen = initLen - n
		if x.blockSize < 2 || initLen%x.blockSize != 0 || x.totalLen < 0 {
			return fmt.Errorf("detectBlockSize: %w", ErrBlockSize)
		}
		return nil
	}
	return fmt.Errorf("detectBlockSize: %w", ErrBlockSize)
}

// detectECB returns an error if the encryption oracle is not using ECB mode.
func (x *ecbBreaker) detectECB() error {
	// Three blocks guarantee two aligned ones, whatever the prefix length.
	probe := make([]byte, 3*x.blockSize)
	if !DetectECB(x.oracle.Encrypt(probe), x.blockSize) {
		return fmt.Errorf("detectECB: %w", ErrNotECB)
	}
	return nil
}

// detectPrefix finds the exact length of the oracle's prefix.
func (x *ecbBreaker) detectPrefix() error {
	n := x.blockSize

	// The first attacker byte lives in the first block that changes with it.
	c0 := x.oracle.Encrypt([]byte{0})
	c1 := x.oracle.Encrypt([]byte{1})
	block := -1
	for i := 0; (i+1)*n <= len(c0) && (i+1)*n <= len(c1); i++ {
		if !bytes.Equal(c0[i*n:(i+1)*n], c1[i*n:(i+1)*n]) {
			block = i
			break
		}
	}
	if block < 0 {
		return fmt.Errorf("detectPrefix: %w", ErrPrefix)
	}
	lo, hi := block*n, (block+1)*n

	// After enough filler, toggling the next byte no longer touches the block.
	for fill := 1; fill <= n; fill++ {
		probe := make([]byte, fill+1)
		c0 := x.oracle.Encrypt(probe)
		probe[fill] = 1
		c1 := x.oracle.Encrypt(probe)
		if len(c0) < hi || len(c1) < hi {
			return fmt.Errorf("detectPrefix: %w", ErrInconsistentOracle)
		}
		if bytes.Equal(c0[lo:hi], c1[lo:hi]) {
			x.prefixLen = hi - fill
			if x.prefixLen > x.totalLen {
				return fmt.Errorf("detectPrefix: %w", ErrPrefix)
			}
			return nil
		}
	}
	return fmt.Errorf("detectPrefix: %w", ErrPrefix)
}

// aligned encrypts data placed at the start of a fresh block after the prefix,
// and returns the ciphertext from that block onward.
func (x *ecbBreaker) aligned(data []byte) []byte {
	fill := x.blockSize - x.prefixLen%x.blockSize
	buf := x.oracle.Encrypt(append(make([]byte, fill), data...))
	if skip := x.prefixLen + fill; len(buf) > skip {
		return buf[skip:]
	}
	return nil
}

// breakSecret recovers the secret after the prefix has been measured.
func (x *ecbBreaker) breakSecret() ([]byte, error) {
	n := x.blockSize
	secretLen := x.totalLen - x.prefixLen

	// With k filler bytes, secret byte pos ends block pos/n when k == n-1-pos%n.
	refs := make([][]byte, n)
	for k := range refs {
		refs[k] = x.aligned(make([]byte, k))
	}

	known := make([]byte, n-1, n-1+secretLen)
	for pos := 0; pos < secretLen; pos++ {
		ref := refs[n-1-pos%n]
		j := pos / n
		if len(ref) < (j+1)*n {
			return nil, fmt.Errorf("breakSecret: byte %d: %w", pos, ErrInconsistentOracle)
		}
		b, err := x.breakByte(known[len(known)-(n-1):], ref[j*n:(j+1)*n])
		if err != nil {
			return nil, fmt.Errorf("breakSecret: byte %d: %w", pos, err)
		}
		known = append(known, b)
	}
	return known[n-1:], nil
}

// breakByte returns the byte that, following the probe, produces the given encrypted block.
func (x *ecbBreaker) breakByte(probe, block []byte) (byte, error) {
	buf := make([]byte, len(probe)+1)
	copy(buf, probe)

	// Use an integer as the loop variable to avoid overflow.
	for i := 0; i < maxProbe; i++ {
		buf[len(probe)] = byte(i)
		out := x.aligned(buf)
		if len(out) < len(block) {
			return 0, ErrInconsistentOracle
		}
		if bytes.Equal(out[:len(block)], block) {
			return byte(i), nil
		}
	}
	return 0, ErrInconsistentOracle
}
