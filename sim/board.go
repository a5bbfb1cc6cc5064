// Package sim is a host-side model of the BCM2837 registers the kernel
// uses: the GPIO block and UART0.
//
// A Board is an mmio.Bus, so the real drivers run against it unchanged.
// Reads outside the modelled windows return 0 and writes there are dropped.
package sim

import (
	"io"
	"sync"

	"pikernel-go/drivers/gpio"
	"pikernel-go/drivers/mmio"
	"pikernel-go/drivers/pl011"
	"pikernel-go/x/bytering"
)

// RXDepth is the size of the simulated receive queue.
const RXDepth = 64

// Board is safe for concurrent use: one goroutine may run the kernel
// while another feeds received bytes.
type Board struct {
	mu   sync.Mutex
	gpio gpioBlock
	uart uartBlock

	rx       *bytering.Ring
	idle     func()
	onOutput func(pins, level gpio.Pins)
}

// Option customises a Board.
type Option func(*Board)

// WithIdle installs fn, called without the lock whenever the kernel polls
// an empty receive FIFO. Use it to sleep instead of spinning.
func WithIdle(fn func()) Option {
	return func(b *Board) { b.idle = fn }
}

// WithOutputHook installs fn, called when GPSET/GPCLR change the level of
// any pin configured as an output.
func WithOutputHook(fn func(changed, level gpio.Pins)) Option {
	return func(b *Board) { b.onOutput = fn }
}

// New returns a board with every register at reset value. Bytes the
// kernel transmits are written to tx; nil discards them.
func New(tx io.Writer, opts ...Option) *Board {
	if tx == nil {
		tx = io.Discard
	}
	b := &Board{rx: bytering.New(RXDepth)}
	b.uart.tx = tx
	for _, o := range opts {
		o(b)
	}
	return b
}

func (b *Board) Read32(off mmio.Offset) uint32 {
	b.mu.Lock()
	var v uint32
	empty := false
	switch {
	case inWindow(off, gpio.Base):
		v = b.gpio.read(off)
	case inWindow(off, pl011.Base):
		v = b.uart.read(off, b.rx)
		empty = off == uartFR && v&frRXFE != 0
	}
	b.mu.Unlock()
	if empty && b.idle != nil {
		b.idle()
	}
	return v
}

func (b *Board) Write32(off mmio.Offset, v uint32) {
	b.mu.Lock()
	var changed, level gpio.Pins
	switch {
	case inWindow(off, gpio.Base):
		changed, level = b.gpio.write(off, v)
	case inWindow(off, pl011.Base):
		b.uart.write(off, v)
	}
	hook := b.onOutput
	b.mu.Unlock()
	if changed != 0 && hook != nil {
		hook(changed, level)
	}
}

// Feed queues bytes on the receive line and returns how many fit.
func (b *Board) Feed(p []byte) int { return b.rx.WriteFrom(p) }

// RXSpace is the room left in the receive queue.
func (b *Board) RXSpace() int { return b.rx.Space() }

// RXReadable fires when the receive queue goes from empty to non-empty.
func (b *Board) RXReadable() <-chan struct{} { return b.rx.Readable() }

// RXWritable fires when a full receive queue is drained by one byte.
func (b *Board) RXWritable() <-chan struct{} { return b.rx.Writable() }

// TXErr returns the first error from the transmit writer, if any.
func (b *Board) TXErr() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.uart.err
}

// Function reports the current function of pin n.
func (b *Board) Function(n uint8) gpio.Function {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.gpio.function(n)
}

// Outputs returns the output latch.
func (b *Board) Outputs() gpio.Pins {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.gpio.out
}

// Pulls returns the latched pull-up and pull-down pin sets.
func (b *Board) Pulls() (up, down gpio.Pins) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.gpio.up, b.gpio.down
}

// SetInputs drives the external level seen on input pins without a pull.
func (b *Board) SetInputs(p gpio.Pins) {
	b.mu.Lock()
	b.gpio.ext = p & gpio.Mask
	b.mu.Unlock()
}

// UARTEnabled reports whether the kernel has switched UART0 on.
func (b *Board) UARTEnabled() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.uart.cr&crUARTEN != 0
}

// Divisors returns the programmed IBRD and FBRD.
func (b *Board) Divisors() (ibrd, fbrd uint32) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.uart.ibrd, b.uart.fbrd
}

// Each peripheral block decodes 4 KiB.
const windowSize = 0x1000

func inWindow(off, base mmio.Offset) bool {
	return off >= base && off < base+windowSize
}

var _ mmio.Bus = (*Board)(nil)
