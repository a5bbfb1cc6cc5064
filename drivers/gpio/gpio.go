package gpio

import "pikernel-go/drivers/mmio"

// Controller is a handle on the GPIO block. It keeps no pin state; all
// state lives in the registers. Not safe for concurrent use: function
// select is a read-modify-write.
type Controller struct {
	bus  mmio.Bus
	wait func(cycles uint32)
}

// Option customises a Controller.
type Option func(*Controller)

// WithWait replaces the busy-wait used between pull-control steps.
func WithWait(fn func(cycles uint32)) Option {
	return func(c *Controller) {
		if fn != nil {
			c.wait = fn
		}
	}
}

func New(bus mmio.Bus, opts ...Option) *Controller {
	c := &Controller{bus: bus, wait: mmio.Spin}
	for _, o := range opts {
		o(c)
	}
	return c
}

// SetFunction programs every selected pin to f and leaves the rest alone.
// Each select register holding a selected pin is read once and written
// once; registers with no selected pin are not touched.
func (c *Controller) SetFunction(pins Pins, f Function) {
	pins &= Mask
	code := f.Code()
	for bank, reg := range fselBank {
		sel := uint32(pins>>(bank*pinsPerBank)) & (1<<pinsPerBank - 1)
		if sel == 0 {
			continue
		}
		v := c.bus.Read32(reg)
		for slot := 0; slot < pinsPerBank; slot++ {
			if sel&(1<<slot) == 0 {
				continue
			}
			shift := slot * slotBits
			v = v&^(slotMask<<shift) | code<<shift
		}
		c.bus.Write32(reg, v)
	}
}

// FunctionOf decodes the current function of pin n (one register read).
func (c *Controller) FunctionOf(n uint8) Function {
	if n >= NumPins {
		return Input
	}
	v := c.bus.Read32(fselBank[n/pinsPerBank])
	return functionFromCode(v >> (uint(n%pinsPerBank) * slotBits))
}

// OutputSet drives the selected pins high. Both GPSET registers are
// always written; zero bits are ignored by the hardware.
func (c *Controller) OutputSet(pins Pins) {
	c.bus.Write32(GPSET0, pins.low())
	c.bus.Write32(GPSET1, pins.high())
}

// OutputClear drives the selected pins low.
func (c *Controller) OutputClear(pins Pins) {
	c.bus.Write32(GPCLR0, pins.low())
	c.bus.Write32(GPCLR1, pins.high())
}

// Level returns the input level of the selected pins.
func (c *Controller) Level(pins Pins) Pins {
	lo := Pins(c.bus.Read32(GPLEV0))
	hi := Pins(c.bus.Read32(GPLEV1))
	return (lo | hi<<32) & pins & Mask
}

// SetPullMode latches mode into the pad control of the selected pins:
// write GPPUD, wait, clock the pins, wait, then remove control and clock.
func (c *Controller) SetPullMode(pins Pins, mode PullMode) {
	c.bus.Write32(GPPUD, mode.code())
	c.wait(pullWaitCycles)
	c.bus.Write32(GPPUDCLK0, pins.low())
	c.bus.Write32(GPPUDCLK1, pins.high())
	c.wait(pullWaitCycles)
	c.bus.Write32(GPPUD, 0)
	c.bus.Write32(GPPUDCLK0, 0)
	c.bus.Write32(GPPUDCLK1, 0)
}
