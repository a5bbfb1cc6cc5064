package sim

import (
	"pikernel-go/drivers/gpio"
	"pikernel-go/drivers/mmio"
)

// gpioBlock models function select, the output latch, input levels and
// the two-step pull latch.
type gpioBlock struct {
	fsel     [6]uint32
	out      gpio.Pins // output latch
	ext      gpio.Pins // external drive on inputs
	pud      uint32
	up, down gpio.Pins
}

func (g *gpioBlock) read(off mmio.Offset) uint32 {
	switch {
	case off >= gpio.GPFSEL0 && off <= gpio.GPFSEL5:
		return g.fsel[(off-gpio.GPFSEL0)/4]
	case off == gpio.GPLEV0:
		return uint32(g.levels())
	case off == gpio.GPLEV1:
		return uint32(g.levels() >> 32)
	case off == gpio.GPPUD:
		return g.pud
	}
	return 0
}

// write applies v and reports output pins whose level changed.
func (g *gpioBlock) write(off mmio.Offset, v uint32) (changed, level gpio.Pins) {
	before := g.out & g.outputs()
	switch off {
	case gpio.GPFSEL0, gpio.GPFSEL1, gpio.GPFSEL2, gpio.GPFSEL3, gpio.GPFSEL4, gpio.GPFSEL5:
		g.fsel[(off-gpio.GPFSEL0)/4] = v &^ (0b11 << 30)
	case gpio.GPSET0:
		g.out |= gpio.Pins(v)
	case gpio.GPSET1:
		g.out |= gpio.Pins(v) << 32 & gpio.Mask
	case gpio.GPCLR0:
		g.out &^= gpio.Pins(v)
	case gpio.GPCLR1:
		g.out &^= gpio.Pins(v) << 32
	case gpio.GPPUD:
		g.pud = v & 0b11
	case gpio.GPPUDCLK0:
		g.latchPull(gpio.Pins(v))
	case gpio.GPPUDCLK1:
		g.latchPull(gpio.Pins(v) << 32 & gpio.Mask)
	}
	after := g.out & g.outputs()
	return before ^ after, after
}

// latchPull clocks the current GPPUD control into the selected pads.
func (g *gpioBlock) latchPull(p gpio.Pins) {
	if p == 0 {
		return
	}
	g.up &^= p
	g.down &^= p
	switch g.pud {
	case 0b01:
		g.down |= p
	case 0b10:
		g.up |= p
	}
}

func (g *gpioBlock) function(n uint8) gpio.Function {
	if n >= gpio.NumPins {
		return gpio.Input
	}
	code := g.fsel[n/10] >> (uint(n%10) * 3) & 0b111
	for f := gpio.Input; f <= gpio.Func5; f++ {
		if f.Code() == code {
			return f
		}
	}
	return gpio.Input
}

func (g *gpioBlock) outputs() gpio.Pins {
	var p gpio.Pins
	for n := uint8(0); n < gpio.NumPins; n++ {
		if g.function(n) == gpio.Output {
			p |= gpio.Pin(n)
		}
	}
	return p
}

// levels: outputs read back their latch; an input is high when driven
// externally or pulled up.
func (g *gpioBlock) levels() gpio.Pins {
	outs := g.outputs()
	in := g.ext | g.up
	return (g.out&outs | in&^outs) & gpio.Mask
}
