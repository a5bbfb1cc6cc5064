package sim

import (
	"bytes"
	"errors"
	"testing"

	"pikernel-go/drivers/gpio"
	"pikernel-go/drivers/pl011"
)

func newDrivers(b *Board) (*gpio.Controller, *pl011.UART) {
	pins := gpio.New(b, gpio.WithWait(func(uint32) {}))
	return pins, pl011.New(b, pins)
}

func TestUnmappedAccess(t *testing.T) {
	b := New(nil)
	b.Write32(0x00003000, 0xFFFFFFFF)
	if v := b.Read32(0x00003000); v != 0 {
		t.Fatalf("unmapped read = %#x, want 0", v)
	}
}

func TestGPIOFunctionAndOutputs(t *testing.T) {
	var changes []gpio.Pins
	b := New(nil, WithOutputHook(func(changed, level gpio.Pins) {
		changes = append(changes, changed)
	}))
	pins, _ := newDrivers(b)

	pins.SetFunction(gpio.Pin(4)|gpio.Pin(47), gpio.Output)
	if f := b.Function(4); f != gpio.Output {
		t.Fatalf("Function(4) = %v, want out", f)
	}
	if f := pins.FunctionOf(47); f != gpio.Output {
		t.Fatalf("FunctionOf(47) = %v, want out", f)
	}

	pins.OutputSet(gpio.Pin(4) | gpio.Pin(47))
	if got := b.Outputs(); got != gpio.Pin(4)|gpio.Pin(47) {
		t.Fatalf("Outputs = %#x", uint64(got))
	}
	if got := pins.Level(gpio.Mask); got != gpio.Pin(4)|gpio.Pin(47) {
		t.Fatalf("Level = %#x", uint64(got))
	}
	pins.OutputClear(gpio.Pin(4))
	if got := b.Outputs(); got != gpio.Pin(47) {
		t.Fatalf("Outputs after clear = %#x", uint64(got))
	}

	// set 4|47 changes both (one hook call per register), clear 4 changes one.
	want := []gpio.Pins{gpio.Pin(4), gpio.Pin(47), gpio.Pin(4)}
	if len(changes) != len(want) {
		t.Fatalf("hook calls = %d, want %d", len(changes), len(want))
	}
	for i := range want {
		if changes[i] != want[i] {
			t.Fatalf("hook %d changed = %#x, want %#x", i, uint64(changes[i]), uint64(want[i]))
		}
	}
}

func TestGPIOSetAboveRangeIgnored(t *testing.T) {
	b := New(nil)
	b.Write32(gpio.GPSET1, 0xFFFFFFFF)
	if got := b.Outputs(); got != gpio.Mask&^(1<<32-1) {
		t.Fatalf("Outputs = %#x, want pins 32..53", uint64(got))
	}
}

func TestGPIOPullLatch(t *testing.T) {
	b := New(nil)
	pins, _ := newDrivers(b)

	pins.SetPullMode(gpio.Pin(17)|gpio.Pin(40), gpio.PullUp)
	pins.SetPullMode(gpio.Pin(18), gpio.PullDown)
	up, down := b.Pulls()
	if up != gpio.Pin(17)|gpio.Pin(40) || down != gpio.Pin(18) {
		t.Fatalf("pulls up=%#x down=%#x", uint64(up), uint64(down))
	}
	if got := pins.Level(gpio.Pin(17) | gpio.Pin(18)); got != gpio.Pin(17) {
		t.Fatalf("Level = %#x, want pin 17 only", uint64(got))
	}

	pins.SetPullMode(gpio.Pin(17), gpio.Disabled)
	if up, _ := b.Pulls(); up != gpio.Pin(40) {
		t.Fatalf("up after disable = %#x", uint64(up))
	}

	b.SetInputs(gpio.Pin(18))
	if got := pins.Level(gpio.Pin(18)); got != gpio.Pin(18) {
		t.Fatalf("externally driven pin reads %#x", uint64(got))
	}
}

func TestUARTInitAndEcho(t *testing.T) {
	var tx bytes.Buffer
	b := New(&tx)
	pins, u := newDrivers(b)

	u.Putc('x')
	if tx.Len() != 0 {
		t.Fatalf("transmitted %q before init", tx.String())
	}
	u.Configure(pl011.Config{BaudRate: 115200})
	if !b.UARTEnabled() {
		t.Fatalf("UART not enabled after Configure")
	}
	if i, f := b.Divisors(); i != 26 || f != 3 {
		t.Fatalf("divisors = %d/%d, want 26/3", i, f)
	}
	if pins.FunctionOf(pl011.PinTX) != gpio.Func0 || pins.FunctionOf(pl011.PinRX) != gpio.Func0 {
		t.Fatalf("UART pins not on alt0")
	}

	if _, ok := u.TryGetc(); ok {
		t.Fatalf("TryGetc on empty line returned data")
	}
	if n := b.Feed([]byte("hi")); n != 2 {
		t.Fatalf("Feed = %d", n)
	}
	u.Putc(u.Getc())
	u.Putc(u.Getc())
	u.Puts("!\r\n")
	if got := tx.String(); got != "hi!\r\n" {
		t.Fatalf("tx = %q", got)
	}
}

func TestUARTIdleHook(t *testing.T) {
	idles := 0
	var b *Board
	b = New(nil, WithIdle(func() {
		idles++
		if idles == 3 {
			b.Feed([]byte{'z'})
		}
	}))
	_, u := newDrivers(b)
	u.Init()
	if c := u.Getc(); c != 'z' {
		t.Fatalf("Getc = %q", c)
	}
	if idles != 3 {
		t.Fatalf("idle calls = %d, want 3", idles)
	}
}

func TestFeedStopsWhenFull(t *testing.T) {
	b := New(nil)
	big := make([]byte, RXDepth+10)
	if n := b.Feed(big); n != RXDepth {
		t.Fatalf("Feed = %d, want %d", n, RXDepth)
	}
	if b.RXSpace() != 0 {
		t.Fatalf("RXSpace = %d", b.RXSpace())
	}
}

type failWriter struct{}

func (failWriter) Write(p []byte) (int, error) { return 0, errors.New("closed") }

func TestTXErrorKept(t *testing.T) {
	b := New(failWriter{})
	_, u := newDrivers(b)
	u.Init()
	u.Puts("ab")
	if err := b.TXErr(); err == nil || err.Error() != "closed" {
		t.Fatalf("TXErr = %v", err)
	}
}
