package mmiotest

import "testing"

func TestRecorderTracesEveryAccessInOrder(t *testing.T) {
	r := New()
	r.Write32(0x10, 7)
	_ = r.Read32(0x10)
	r.Write32(0x10, 7)
	_ = r.Read32(0x14)

	want := []Access{Wr(0x10, 7), Rd(0x10, 7), Wr(0x10, 7), Rd(0x14, 0)}
	if d := Diff(r.Trace, want); d != "" {
		t.Fatalf("trace mismatch\n%s", d)
	}
	if got := r.Count(OpWrite, 0x10); got != 2 {
		t.Fatalf("Count(write, 0x10) = %d, want 2", got)
	}
}

func TestScriptDrainsThenFallsBack(t *testing.T) {
	r := New()
	r.Preset(0x18, 1)
	r.Script(0x18, 5, 6)

	for i, want := range []uint32{5, 6, 1, 1} {
		if got := r.Read32(0x18); got != want {
			t.Fatalf("read %d = %d, want %d", i, got, want)
		}
	}
	if len(r.Trace) != 4 {
		t.Fatalf("trace len = %d, want 4", len(r.Trace))
	}
	r.Reset()
	if len(r.Trace) != 0 || r.Value(0x18) != 1 {
		t.Fatalf("Reset must keep registers and drop trace")
	}
}
