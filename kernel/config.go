package kernel

import (
	"strings"

	"pikernel-go/drivers/gpio"
	"pikernel-go/drivers/pl011"
	"pikernel-go/errcode"
	"pikernel-go/x/mathx"
)

// Mode selects what Step does.
type Mode uint8

const (
	ModeEcho    Mode = iota // copy every received byte back, CR as CRLF
	ModeBlink               // toggle the LED forever
	ModeMonitor             // run console commands
)

func (m Mode) String() string {
	switch m {
	case ModeBlink:
		return "blink"
	case ModeMonitor:
		return "monitor"
	default:
		return "echo"
	}
}

func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "", "echo":
		return ModeEcho, nil
	case "blink":
		return ModeBlink, nil
	case "monitor", "mon":
		return ModeMonitor, nil
	}
	return ModeEcho, &errcode.E{C: errcode.InvalidParams, Op: "mode", Msg: s}
}

// Defaults used when a Config field is zero.
const (
	DefaultLEDPin     = 4
	DefaultBlinkTicks = 500_000
	DefaultBanner     = "pikernel: up"
)

// Config is the kernel setup. Zero values mean "use the default"; the LED
// therefore cannot be GPIO 0.
type Config struct {
	LEDPin      uint8  // GPIO driven by blink and "led on|off"
	BlinkTicks  uint32 // delay between LED edges
	Mode        Mode
	Baud        uint32 // 0 = keep the firmware's divisors
	UARTClockHz uint32 // UART reference clock
	Banner      string // printed once by Boot
}

func (c Config) withDefaults() Config {
	c.LEDPin = mathx.Clamp(mathx.Or(c.LEDPin, DefaultLEDPin), 1, gpio.NumPins-1)
	c.BlinkTicks = mathx.Or(c.BlinkTicks, DefaultBlinkTicks)
	c.UARTClockHz = mathx.Or(c.UARTClockHz, pl011.DefaultClockHz)
	c.Banner = mathx.Or(c.Banner, DefaultBanner)
	return c
}
