package gf

import "testing"

func TestDouble(t *testing.T) {
	cases := []struct {
		x    byte
		want byte
	}{
		{0x00, 0x00},
		{0x01, 0x02},
		{0x57, 0xae},
		{0xae, 0x47},
		{0x80, 0x1b},
	}
	for _, c := range cases {
		if got := Double(c.x); got != c.want {
			t.Errorf("Double(%#x) == %#x, want %#x", c.x, got, c.want)
		}
	}
}

func TestMul(t *testing.T) {
	cases := []struct {
		x, y byte
		want byte
	}{
		{3, 2, 6},
		{0x57, 0x83, 0xc1},
		{0x57, 0x13, 0xfe},
		{0x53, 0xca, 0x01},
		{0xff, 0x00, 0x00},
	}
	for _, c := range cases {
		if got := Mul(c.x, c.y); got != c.want {
			t.Errorf("Mul(%#x, %#x) == %#x, want %#x", c.x, c.y, got, c.want)
		}
		if got := Mul(c.y, c.x); got != c.want {
			t.Errorf("Mul(%#x, %#x) == %#x, want %#x", c.y, c.x, got, c.want)
		}
	}
}

func TestPow(t *testing.T) {
	const x = 37
	if got := Pow(x, 0); got != 1 {
		t.Errorf("got %v, want 1", got)
	}
	if got := Pow(x, 1); got != x {
		t.Errorf("got %v, want %v", got, x)
	}
	if got, want := Pow(x, 3), Mul(Mul(x, x), x); got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	for i := 1; i < 256; i++ {
		if got := Pow(byte(i), 255); got != 1 {
			t.Errorf("Pow(%v, 255) == %v, want 1", i, got)
		}
	}
}

func TestInv(t *testing.T) {
	if got := Inv(0); got != 0 {
		t.Errorf("Inv(0) == %v, want 0", got)
	}
	if got := Inv(0x53); got != 0xca {
		t.Errorf("Inv(0x53) == %#x, want 0xca", got)
	}
	for i := 1; i < 256; i++ {
		x := byte(i)
		if got := Mul(x, Inv(x)); got != 1 {
			t.Errorf("Mul(%#x, Inv(%#x)) == %#x, want 1", x, x, got)
		}
	}
}

func TestTablesMatchLoops(t *testing.T) {
	for _, c := range []byte{0, 1, 2, 3, 9, 11, 13, 14, 0x8d} {
		for i := 0; i < 256; i++ {
			x := byte(i)
			if got, want := Scale(x, c), Mul(x, c); got != want {
				t.Errorf("Scale(%#x, %#x) == %#x, want %#x", x, c, got, want)
			}
		}
	}
	for i := 0; i < 256; i++ {
		x := byte(i)
		if got, want := Inverse(x), Inv(x); got != want {
			t.Errorf("Inverse(%#x) == %#x, want %#x", x, got, want)
		}
	}
}
