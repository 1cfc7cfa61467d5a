package mac

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha1"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	weak "math/rand"
	"testing"
	"time"

	"golang.org/x/crypto/md4"
)

func randomBytes(r *weak.Rand, n int) []byte {
	buf := make([]byte, n)
	r.Read(buf)
	return buf
}

func TestByName(t *testing.T) {
	cases := []struct {
		name string
		size int
	}{
		{"md4", md4.Size},
		{"sha1", sha1.Size},
		{"sha256", sha256.Size},
	}
	for _, c := range cases {
		h, err := ByName(c.name)
		if err != nil {
			t.Fatal(err)
		}
		if got := h().Size(); got != c.size {
			t.Errorf("%v: got size %v, want %v", c.name, got, c.size)
		}
	}
	if _, err := ByName("md5"); !errors.Is(err, ErrUnknownHash) {
		t.Errorf("got %v, want %v", err, ErrUnknownHash)
	}
}

func TestMD4(t *testing.T) {
	cases := []struct {
		s, want string
	}{
		{"", "31d6cfe0d16ae931b73c59d7e0c089c0"},
		{"abc", "a448017aaf21d8525fc10ae87aa6729d"},
		{"message digest", "d9130a8164549fe818874806e1c7014b"},
	}
	for _, c := range cases {
		h := MD4()
		h.Write([]byte(c.s))
		if got := hex.EncodeToString(h.Sum(nil)); got != c.want {
			t.Errorf("MD4(%q) == %v, want %v", c.s, got, c.want)
		}
	}
}

func TestNewPrefix(t *testing.T) {
	weak := weak.New(weak.NewSource(time.Now().UnixNano()))
	for _, fn := range []HashFunc{MD4, SHA1, SHA256} {
		key := randomBytes(weak, 1+weak.Intn(16))
		m := NewPrefix(fn, key)
		for i := 0; i < 10; i++ {
			buf := randomBytes(weak, 1+weak.Intn(1024))

			m.Reset()
			m.Write(buf)
			got := m.Sum(nil)

			h := fn()
			h.Write(append(append([]byte{}, key...), buf...))
			if want := h.Sum(nil); !bytes.Equal(got, want) {
				t.Errorf("got %x, want %x", got, want)
			}
		}
	}
}

func TestHMAC(t *testing.T) {
	weak := weak.New(weak.NewSource(time.Now().UnixNano()))
	for _, fn := range []HashFunc{MD4, SHA1, SHA256} {
		key := randomBytes(weak, weak.Intn(100))
		msg := randomBytes(weak, weak.Intn(1024))

		m := hmac.New(fn, key)
		m.Write(msg)
		want := m.Sum(nil)
		got := HMAC(fn, key, msg)
		if !bytes.Equal(got, want) {
			t.Errorf("got %x, want %x", got, want)
		}
		if !Verify(fn, key, msg, got) {
			t.Error("valid HMAC rejected")
		}
		got[0] ^= 1
		if Verify(fn, key, msg, got) {
			t.Error("invalid HMAC accepted")
		}
	}
}
