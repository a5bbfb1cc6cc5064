package pl011

import (
	"tinygo.org/x/drivers"

	"pikernel-go/drivers/gpio"
	"pikernel-go/drivers/mmio"
	"pikernel-go/x/mathx"
)

// UART pins (GPIO alternate function 0).
const (
	PinTX = 14
	PinRX = 15
)

// Config is optional line setup. The zero value keeps the divisors left
// by the firmware.
type Config struct {
	BaudRate uint32 // 0 = do not program IBRD/FBRD
	ClockHz  uint32 // UART reference clock; 0 = DefaultClockHz
}

// DefaultClockHz is the UART clock the Pi 3 firmware sets up.
const DefaultClockHz = 48_000_000

// UART is a handle on UART0. It holds no buffers; it is only valid once
// Init or Configure has run.
type UART struct {
	bus  mmio.Bus
	pins *gpio.Controller
}

func New(bus mmio.Bus, pins *gpio.Controller) *UART {
	return &UART{bus: bus, pins: pins}
}

// Init brings the UART up in polled 8N1 mode with FIFOs on:
// mux pins, drop pulls, disable, clear and mask interrupts, enable.
// Calling it again re-initialises.
func (u *UART) Init() { u.Configure(Config{}) }

// Configure is Init with optional baud programming. The divisors are
// written after the line control and before the interrupt mask.
func (u *UART) Configure(cfg Config) {
	uartPins := gpio.PinMask(PinTX, PinRX)
	u.pins.SetFunction(uartPins, gpio.Func0)
	u.pins.SetPullMode(uartPins, gpio.Disabled)

	u.bus.Write32(regCR, 0)
	u.bus.Write32(regICR, intAll)
	u.bus.Write32(regLCRH, lcrhFEN|lcrhWLEN8)
	if cfg.BaudRate != 0 {
		ibrd, fbrd := Divisors(cfg.ClockHz, cfg.BaudRate)
		u.bus.Write32(regIBRD, ibrd)
		u.bus.Write32(regFBRD, fbrd)
	}
	u.bus.Write32(regIMSC, intAll)
	u.bus.Write32(regCR, crUARTEN|crRXE|crTXE)
}

// Divisors computes IBRD and FBRD for baud given the reference clock:
// clock/(16*baud) as a 16.6 fixed point value, rounded.
func Divisors(clockHz, baud uint32) (ibrd, fbrd uint32) {
	if clockHz == 0 {
		clockHz = DefaultClockHz
	}
	if baud == 0 {
		return 0, 0
	}
	// 128 * clock / (16 * baud): one extra bit for rounding the fraction.
	div := 8 * uint64(clockHz) / uint64(baud)
	switch i := div >> 7; {
	case i == 0:
		return 1, 0
	case i >= 0xFFFF:
		return 0xFFFF, 0
	default:
		ibrd = uint32(i)
	}
	fbrd = mathx.Clamp(mathx.RoundDiv(uint32(div&0x7F), 2), 0, 63)
	return ibrd, fbrd
}

// Putc waits for room in the TX FIFO, then queues b.
func (u *UART) Putc(b byte) {
	for u.bus.Read32(regFR)&frTXFF != 0 {
	}
	u.bus.Write32(regDR, uint32(b))
}

// Puts sends s byte by byte. No newline translation.
func (u *UART) Puts(s string) {
	for i := 0; i < len(s); i++ {
		u.Putc(s[i])
	}
}

// Write implements io.Writer. It never fails.
func (u *UART) Write(p []byte) (int, error) {
	for _, b := range p {
		u.Putc(b)
	}
	return len(p), nil
}

// WriteByte implements io.ByteWriter.
func (u *UART) WriteByte(b byte) error {
	u.Putc(b)
	return nil
}

// Getc waits for a received byte and returns it.
func (u *UART) Getc() byte {
	for u.bus.Read32(regFR)&frRXFE != 0 {
	}
	return byte(u.bus.Read32(regDR) & 0xFF)
}

// TryGetc polls the RX FIFO once.
func (u *UART) TryGetc() (byte, bool) {
	if u.bus.Read32(regFR)&frRXFE != 0 {
		return 0, false
	}
	return byte(u.bus.Read32(regDR) & 0xFF), true
}

// Read blocks for the first byte, then takes whatever is already waiting
// in the RX FIFO, up to len(p).
func (u *UART) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	p[0] = u.Getc()
	n := 1
	for n < len(p) {
		b, ok := u.TryGetc()
		if !ok {
			break
		}
		p[n] = b
		n++
	}
	return n, nil
}

// Buffered reports whether received data is waiting. The FIFO depth is
// not visible through FR, so the answer is 0 or 1.
func (u *UART) Buffered() int {
	if u.bus.Read32(regFR)&frRXFE != 0 {
		return 0
	}
	return 1
}

// Flush waits until every queued byte has left the shifter.
func (u *UART) Flush() {
	for u.bus.Read32(regFR)&(frTXFE|frBUSY) != frTXFE {
	}
}

var _ drivers.UART = (*UART)(nil)
