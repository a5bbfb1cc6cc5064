package gpio

import (
	"testing"

	"pikernel-go/drivers/mmio"
	"pikernel-go/drivers/mmio/mmiotest"
)

func newTest() (*Controller, *mmiotest.Recorder, *[]uint32) {
	rec := mmiotest.New()
	var waits []uint32
	c := New(rec, WithWait(func(n uint32) { waits = append(waits, n) }))
	return c, rec, &waits
}

func slot(v uint32, pin uint8) uint32 { return (v >> (uint(pin%10) * 3)) & 0b111 }

func TestFunctionCodes(t *testing.T) {
	for f, want := range map[Function]uint32{
		Input:  0b000,
		Output: 0b001,
		Func0:  0b100,
		Func1:  0b101,
		Func2:  0b110,
		Func3:  0b111,
		Func4:  0b011,
		Func5:  0b010,
	} {
		if got := f.Code(); got != want {
			t.Fatalf("%v.Code() = %03b, want %03b", f, got, want)
		}
		if back := functionFromCode(want); back != f {
			t.Fatalf("functionFromCode(%03b) = %v, want %v", want, back, f)
		}
	}
}

func TestSetFunctionBlinkSetup(t *testing.T) {
	c, rec, _ := newTest()
	const pre = 0xFFFF_FFFF
	rec.Preset(GPFSEL0, pre)

	c.SetFunction(1<<4, Output)

	want := []mmiotest.Access{
		mmiotest.Rd(GPFSEL0, pre),
		mmiotest.Wr(GPFSEL0, pre&^(0b111<<12)|0b001<<12),
	}
	if d := mmiotest.Diff(rec.Trace, want); d != "" {
		t.Fatalf("trace mismatch\n%s", d)
	}
}

func TestSetFunctionUARTPins(t *testing.T) {
	c, rec, _ := newTest()
	const pre = 0x2492_4924 // arbitrary pattern in all slots
	rec.Preset(GPFSEL1, pre)

	c.SetFunction((1<<14)|(1<<15), Func0)

	got := rec.Value(GPFSEL1)
	if slot(got, 14) != 0b100 || slot(got, 15) != 0b100 {
		t.Fatalf("pins 14/15 slots = %03b/%03b, want 100/100", slot(got, 14), slot(got, 15))
	}
	keep := ^uint32(0b111<<12 | 0b111<<15)
	if got&keep != pre&keep {
		t.Fatalf("other slots changed: got %#08x, pre %#08x", got, pre)
	}
	if rec.Count(mmiotest.OpRead, GPFSEL1) != 1 || rec.Count(mmiotest.OpWrite, GPFSEL1) != 1 {
		t.Fatalf("want one read and one write of GPFSEL1, trace %v", rec.Trace)
	}
	if len(rec.Trace) != 2 {
		t.Fatalf("untouched banks were accessed: %v", rec.Trace)
	}
}

func TestSetFunctionMaskedUpdateAcrossBanks(t *testing.T) {
	type C struct {
		pins Pins
		f    Function
	}
	for _, tc := range []C{
		{PinMask(0, 9, 10, 53), Func4},
		{PinMask(20, 21, 22, 23, 24, 25, 26, 27, 28, 29), Func5},
		{Mask, Output},
		{PinMask(31, 32, 47) | 1<<60 | 1<<54, Func2},
	} {
		c, rec, _ := newTest()
		var pre [6]uint32
		for i, reg := range fselBank {
			pre[i] = 0x1234_5678 * uint32(i+1) & 0x3FFF_FFFF
			rec.Preset(reg, pre[i])
		}

		c.SetFunction(tc.pins, tc.f)

		for i, reg := range fselBank {
			touched := uint32(tc.pins&Mask>>(i*10))&0x3FF != 0
			reads, writes := rec.Count(mmiotest.OpRead, reg), rec.Count(mmiotest.OpWrite, reg)
			if touched && (reads != 1 || writes != 1) {
				t.Fatalf("bank %d: reads=%d writes=%d, want 1/1", i, reads, writes)
			}
			if !touched && (reads != 0 || writes != 0) {
				t.Fatalf("bank %d untouched but accessed: reads=%d writes=%d", i, reads, writes)
			}
		}
		for pin := uint8(0); pin < NumPins; pin++ {
			bank := pin / 10
			got := slot(rec.Value(fselBank[bank]), pin)
			want := slot(pre[bank], pin)
			if tc.pins.Has(pin) {
				want = tc.f.Code()
			}
			if got != want {
				t.Fatalf("pins %#x: pin %d slot = %03b, want %03b", uint64(tc.pins), pin, got, want)
			}
		}
		if got, want := rec.Value(GPFSEL5)>>12, pre[5]>>12; got != want {
			t.Fatalf("GPFSEL5 bits above pin 53 changed: %#x -> %#x", want, got)
		}
	}
}

func TestSetFunctionNoPinsNoAccess(t *testing.T) {
	c, rec, _ := newTest()
	c.SetFunction(1<<54|1<<63, Output)
	if len(rec.Trace) != 0 {
		t.Fatalf("want no access, got %v", rec.Trace)
	}
}

func TestOutputSetClearBlink(t *testing.T) {
	c, rec, _ := newTest()
	c.OutputSet(1 << 4)
	c.OutputClear(1 << 4)
	want := []mmiotest.Access{
		mmiotest.Wr(GPSET0, 0x10), mmiotest.Wr(GPSET1, 0),
		mmiotest.Wr(GPCLR0, 0x10), mmiotest.Wr(GPCLR1, 0),
	}
	if d := mmiotest.Diff(rec.Trace, want); d != "" {
		t.Fatalf("trace mismatch\n%s", d)
	}
}

func TestOutputSetSplitsHighWord(t *testing.T) {
	c, rec, _ := newTest()
	c.OutputSet(PinMask(0, 31, 32, 53))
	want := []mmiotest.Access{
		mmiotest.Wr(GPSET0, 0x8000_0001),
		mmiotest.Wr(GPSET1, 1|1<<21),
	}
	if d := mmiotest.Diff(rec.Trace, want); d != "" {
		t.Fatalf("trace mismatch\n%s", d)
	}
}

func TestOutputIdempotent(t *testing.T) {
	for _, op := range []struct {
		name string
		fn   func(*Controller, Pins)
	}{
		{"set", (*Controller).OutputSet},
		{"clear", (*Controller).OutputClear},
	} {
		c, rec, _ := newTest()
		op.fn(c, PinMask(3, 40))
		once := append([]mmiotest.Access(nil), rec.Trace...)
		rec.Reset()
		op.fn(c, PinMask(3, 40))
		if d := mmiotest.Diff(rec.Trace, once); d != "" {
			t.Fatalf("%s: second call differs\n%s", op.name, d)
		}
	}
}

func TestOutOfRangeDiscarded(t *testing.T) {
	c, rec, _ := newTest()
	c.OutputSet(1 << 60)
	want := []mmiotest.Access{mmiotest.Wr(GPSET0, 0), mmiotest.Wr(GPSET1, 0)}
	if d := mmiotest.Diff(rec.Trace, want); d != "" {
		t.Fatalf("trace mismatch\n%s", d)
	}
}

func TestSetPullModeSequence(t *testing.T) {
	type C struct {
		mode PullMode
		code uint32
	}
	for _, tc := range []C{{Disabled, 0}, {PullDown, 1}, {PullUp, 2}} {
		c, rec, waits := newTest()
		c.SetPullMode(PinMask(14, 15, 40), tc.mode)
		want := []mmiotest.Access{
			mmiotest.Wr(GPPUD, tc.code),
			mmiotest.Wr(GPPUDCLK0, 1<<14|1<<15),
			mmiotest.Wr(GPPUDCLK1, 1<<8),
			mmiotest.Wr(GPPUD, 0),
			mmiotest.Wr(GPPUDCLK0, 0),
			mmiotest.Wr(GPPUDCLK1, 0),
		}
		if d := mmiotest.Diff(rec.Trace, want); d != "" {
			t.Fatalf("%v: trace mismatch\n%s", tc.mode, d)
		}
		if len(*waits) != 2 || (*waits)[0] != 150 || (*waits)[1] != 150 {
			t.Fatalf("%v: waits = %v, want [150 150]", tc.mode, *waits)
		}
	}
}

func TestFunctionOfAndLevel(t *testing.T) {
	c, rec, _ := newTest()
	c.SetFunction(Pin(47), Func3)
	if got := c.FunctionOf(47); got != Func3 {
		t.Fatalf("FunctionOf(47) = %v, want alt3", got)
	}
	if got := c.FunctionOf(60); got != Input {
		t.Fatalf("FunctionOf(60) = %v, want in", got)
	}

	rec.Preset(GPLEV0, 1<<4|1<<5)
	rec.Preset(GPLEV1, 1<<(40-32))
	if got := c.Level(PinMask(4, 6, 40)); got != PinMask(4, 40) {
		t.Fatalf("Level = %#x, want %#x", uint64(got), uint64(PinMask(4, 40)))
	}
}

func TestParse(t *testing.T) {
	for s, want := range map[string]Function{"in": Input, "OUT": Output, "alt0": Func0, "func5": Func5, " Alt4 ": Func4} {
		if got, ok := ParseFunction(s); !ok || got != want {
			t.Fatalf("ParseFunction(%q) = %v,%v, want %v", s, got, ok, want)
		}
	}
	for _, s := range []string{"", "alt6", "alt", "pwm"} {
		if _, ok := ParseFunction(s); ok {
			t.Fatalf("ParseFunction(%q) accepted", s)
		}
	}
	for s, want := range map[string]PullMode{"off": Disabled, "up": PullUp, "PullDown": PullDown} {
		if got, ok := ParsePull(s); !ok || got != want {
			t.Fatalf("ParsePull(%q) = %v,%v, want %v", s, got, ok, want)
		}
	}
}

func TestBanksCoverAllPins(t *testing.T) {
	if NumPins > pinsPerBank*len(fselBank) {
		t.Fatalf("%d pins do not fit in %d select registers", NumPins, len(fselBank))
	}
	var _ mmio.Bus = mmiotest.New()
}
