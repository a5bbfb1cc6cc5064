// Package kernel is the code above the drivers: it brings the console up,
// then blinks the LED, echoes the UART or runs the monitor.
package kernel

import (
	"pikernel-go/drivers/gpio"
	"pikernel-go/drivers/mmio"
	"pikernel-go/drivers/pl011"
	"pikernel-go/kernel/monitor"
	"pikernel-go/x/fmtx"
)

type Kernel struct {
	cfg   Config
	pins  *gpio.Controller
	uart  *pl011.UART
	mon   *monitor.Monitor
	led   gpio.Pins
	delay func(ticks uint32)
	halt  func()
}

// Option customises a Kernel.
type Option func(*Kernel)

// WithDelay replaces the busy-wait used between LED edges.
func WithDelay(fn func(ticks uint32)) Option {
	return func(k *Kernel) {
		if fn != nil {
			k.delay = fn
		}
	}
}

// WithHalt replaces the stop routine run on a fatal print error.
func WithHalt(fn func()) Option {
	return func(k *Kernel) {
		if fn != nil {
			k.halt = fn
		}
	}
}

func New(bus mmio.Bus, cfg Config, opts ...Option) *Kernel {
	cfg = cfg.withDefaults()
	k := &Kernel{
		cfg:   cfg,
		led:   gpio.Pin(cfg.LEDPin),
		delay: mmio.Spin,
		halt:  Halt,
	}
	for _, o := range opts {
		o(k)
	}
	k.pins = gpio.New(bus)
	k.uart = pl011.New(bus, k.pins)
	k.mon = monitor.New(k.uart, k.pins, bus, cfg.LEDPin)
	return k
}

func (k *Kernel) Config() Config { return k.cfg }

// Boot brings up the console, announces itself and makes the LED an
// output. Print and Println go to the UART from here on.
func (k *Kernel) Boot() {
	k.uart.Configure(pl011.Config{BaudRate: k.cfg.Baud, ClockHz: k.cfg.UARTClockHz})
	fmtx.DefaultOutput = k.uart
	halt = k.halt

	Println("%s", k.cfg.Banner)
	Println("mode %s, led gpio%d", k.cfg.Mode, k.cfg.LEDPin)
	k.pins.SetFunction(k.led, gpio.Output)
}

// Step runs one pass of the selected loop.
func (k *Kernel) Step() {
	switch k.cfg.Mode {
	case ModeBlink:
		k.blink()
	case ModeMonitor:
		k.mon.Step()
	default:
		k.echo()
	}
}

// Run boots and steps forever.
func (k *Kernel) Run() {
	k.Boot()
	for {
		k.Step()
	}
}

func (k *Kernel) blink() {
	k.pins.OutputSet(k.led)
	k.delay(k.cfg.BlinkTicks)
	k.pins.OutputClear(k.led)
	k.delay(k.cfg.BlinkTicks)
}

func (k *Kernel) echo() {
	c := k.uart.Getc()
	if c == '\r' {
		k.uart.Putc('\r')
		c = '\n'
	}
	k.uart.Putc(c)
}
