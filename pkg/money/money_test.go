package money

import "testing"

func TestRound2(t *testing.T) {
	cases := []struct{ in, want float64 }{
		{0, 0},
		{110.004, 110.00},
		{110.005, 110.01},
		{0.1 + 0.2, 0.30},
		{560.0000000001, 560},
		{-12.345, -12.35},
	}
	for _, c := range cases {
		if got := Round2(c.in); got != c.want {
			t.Fatalf("Round2(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestEqual(t *testing.T) {
	if !Equal(0.1+0.2, 0.3) {
		t.Fatalf("0.1+0.2 should equal 0.3 at 2dp")
	}
	if Equal(1.01, 1.02) {
		t.Fatalf("1.01 must not equal 1.02")
	}
}

func TestIsZero(t *testing.T) {
	if !IsZero(0.0000001) {
		t.Fatalf("sub-cent residue should round to zero")
	}
	if IsZero(0.01) {
		t.Fatalf("one cent is not zero")
	}
}
