package attack

import (
	"bytes"
	"encoding/base64"
	"errors"
	weak "math/rand"
	"testing"
	"time"

	"github.com/pmaddams/blockbreak/modes"
	"github.com/pmaddams/blockbreak/pkcs7"
	"github.com/pmaddams/blockbreak/rijndael"
)

// paddingOracle returns an oracle that decrypts single blocks under a fixed key.
func paddingOracle(key rijndael.Key) PaddingOracle {
	return PaddingFunc(func(block, iv rijndael.Block) bool {
		return modes.ValidCBCPadding(block, iv, key, rijndael.DecryptBlock)
	})
}

// plainOracle treats the block itself as the intermediate state.
var plainOracle = PaddingFunc(func(block, iv rijndael.Block) bool {
	for i := range block {
		block[i] ^= iv[i]
	}
	return pkcs7.Valid(block[:])
})

func TestPadLength(t *testing.T) {
	cases := []struct {
		block rijndael.Block
		want  int
	}{
		{
			rijndael.Block{'x', 'x', 'x', 'x', 'x', 'x', 'x', 'x', 'x', 'x', 'x', 'x', 4, 4, 4, 4},
			4,
		},
		{
			rijndael.Block{'x', 'x', 'x', 'x', 'x', 'x', 'x', 'x', 'x', 'x', 'x', 'x', 'x', 'x', 'x', 1},
			1,
		},
		{
			rijndael.Block{'x', 'x', 'x', 'x', 'x', 'x', 'x', 'x', 'x', 'x', 'x', 'x', 'x', 'x', 2, 2},
			2,
		},
		{
			rijndael.Block{16, 16, 16, 16, 16, 16, 16, 16, 16, 16, 16, 16, 16, 16, 16, 16},
			16,
		},
	}
	for _, c := range cases {
		if got := padLength(c.block, rijndael.Block{}, plainOracle); got != c.want {
			t.Errorf("padLength(%v) == %v, want %v", c.block, got, c.want)
		}
	}
}

func TestIntermediate(t *testing.T) {
	weak := weak.New(weak.NewSource(time.Now().UnixNano()))
	for i := 0; i < 10; i++ {
		block := rijndael.Block(randomBytes(weak, rijndael.BlockSize))
		got, err := intermediate(block, plainOracle)
		if err != nil {
			t.Fatal(err)
		}
		if got != block {
			t.Errorf("got %v, want %v", got, block)
		}
	}
}

func TestBreakCBCPaddingOracle(t *testing.T) {
	lines := []string{
		"MDAwMDAwTm93IHRoYXQgdGhlIHBhcnR5IGlzIGp1bXBpbmc=",
		"MDAwMDAxV2l0aCB0aGUgYmFzcyBraWNrZWQgaW4gYW5kIHRoZSBWZWdhJ3MgYXJlIHB1bXBpbic=",
		"MDAwMDAyUXVpY2sgdG8gdGhlIHBvaW50LCB0byB0aGUgcG9pbnQsIG5vIGZha2luZw==",
		"MDAwMDAzQ29va2luZyBNQydzIGxpa2UgYSBwb3VuZCBvZiBiYWNvbg==",
	}
	weak := weak.New(weak.NewSource(time.Now().UnixNano()))
	var msgs [][]byte
	for _, line := range lines {
		buf, err := base64.StdEncoding.DecodeString(line)
		if err != nil {
			t.Fatal(err)
		}
		msgs = append(msgs, buf)
	}
	for i := 0; i < 20; i++ {
		msgs = append(msgs, randomBytes(weak, weak.Intn(64)))
	}
	for _, msg := range msgs {
		key := randomKey(weak)
		iv := rijndael.Block(randomKey(weak))
		enc, err := modes.CBCEncrypt(pkcs7.Pad(msg, rijndael.BlockSize), key, iv, rijndael.EncryptBlock)
		if err != nil {
			t.Fatal(err)
		}
		dec, err := BreakCBCPaddingOracle(enc, iv, paddingOracle(key))
		if err != nil {
			t.Fatal(err)
		}
		got, err := pkcs7.Unpad(dec)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(got, msg) {
			t.Errorf("got %q, want %q", got, msg)
		}
	}
}

func TestBreakCBCPaddingOracleErrors(t *testing.T) {
	var iv rijndael.Block
	if _, err := BreakCBCPaddingOracle(make([]byte, 17), iv, plainOracle); !errors.Is(err, modes.ErrLength) {
		t.Errorf("got %v, want %v", err, modes.ErrLength)
	}
	cases := []PaddingOracle{
		PaddingFunc(func(block, iv rijndael.Block) bool { return false }),
		PaddingFunc(func(block, iv rijndael.Block) bool { return true }),
	}
	for _, o := range cases {
		if _, err := BreakCBCPaddingOracle(make([]byte, 32), iv, o); !errors.Is(err, ErrInconsistentOracle) {
			t.Errorf("got %v, want %v", err, ErrInconsistentOracle)
		}
	}
}

func TestRecoverCBCIV(t *testing.T) {
	weak := weak.New(weak.NewSource(time.Now().UnixNano()))
	key := randomKey(weak)
	iv := rijndael.Block(key)
	o := DecryptFunc(func(buf []byte) []byte {
		res, err := modes.CBCDecrypt(buf, key, iv, rijndael.DecryptBlock)
		if err != nil {
			panic(err)
		}
		return res
	})
	got, err := RecoverCBCIV(o)
	if err != nil {
		t.Fatal(err)
	}
	if got != iv {
		t.Errorf("got %v, want %v", got, iv)
	}
	short := DecryptFunc(func(buf []byte) []byte { return nil })
	if _, err := RecoverCBCIV(short); !errors.Is(err, ErrInconsistentOracle) {
		t.Errorf("got %v, want %v", err, ErrInconsistentOracle)
	}
}
