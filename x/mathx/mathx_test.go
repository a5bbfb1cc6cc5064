package mathx

import "testing"

func TestClamp(t *testing.T) {
	type C struct{ v, lo, hi, want int }
	for _, c := range []C{
		{5, 0, 10, 5},
		{-1, 0, 10, 0},
		{11, 0, 10, 10},
		{11, 10, 0, 10}, // swapped bounds
	} {
		if got := Clamp(c.v, c.lo, c.hi); got != c.want {
			t.Fatalf("Clamp(%d, %d, %d) = %d, want %d", c.v, c.lo, c.hi, got, c.want)
		}
	}
}

func TestRoundDiv(t *testing.T) {
	type C struct{ a, b, want uint32 }
	for _, c := range []C{
		{5, 2, 3},
		{4, 2, 2},
		{7, 0, 0},
		{127, 2, 64},
	} {
		if got := RoundDiv(c.a, c.b); got != c.want {
			t.Fatalf("RoundDiv(%d, %d) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}

func TestOr(t *testing.T) {
	if got := Or(uint32(0), 7); got != 7 {
		t.Fatalf("Or(0, 7) = %d, want 7", got)
	}
	if got := Or("led", "x"); got != "led" {
		t.Fatalf("Or(led, x) = %q", got)
	}
}
