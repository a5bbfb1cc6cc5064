// Package gpio drives the BCM2837 GPIO controller over an mmio.Bus.
//
// Pins are addressed as a 64-bit mask, bit i = GPIO i. Only GPIO 0..53
// exist; higher bits are discarded by every operation.
package gpio

import "pikernel-go/drivers/mmio"

// Base is the GPIO block offset inside the peripheral window.
const Base mmio.Offset = 0x00200000

const (
	GPFSEL0 = Base + 0x00 // pins 0..9
	GPFSEL1 = Base + 0x04 // pins 10..19
	GPFSEL2 = Base + 0x08 // pins 20..29
	GPFSEL3 = Base + 0x0C // pins 30..39
	GPFSEL4 = Base + 0x10 // pins 40..49
	GPFSEL5 = Base + 0x14 // pins 50..53

	GPSET0 = Base + 0x1C // W1S pins 0..31
	GPSET1 = Base + 0x20 // W1S pins 32..53
	GPCLR0 = Base + 0x28 // W1C pins 0..31
	GPCLR1 = Base + 0x2C // W1C pins 32..53
	GPLEV0 = Base + 0x34 // R pins 0..31
	GPLEV1 = Base + 0x38 // R pins 32..53

	GPPUD     = Base + 0x94 // pull control, bits 1:0
	GPPUDCLK0 = Base + 0x98 // pull clock pins 0..31
	GPPUDCLK1 = Base + 0x9C // pull clock pins 32..53
)

// NumPins is the number of GPIOs on the BCM2837.
const NumPins = 54

// Mask keeps only the bits of real pins.
const Mask Pins = 1<<NumPins - 1

// Ten 3-bit slots per select register; bits 30-31 are reserved.
const (
	pinsPerBank = 10
	slotBits    = 3
	slotMask    = 0b111
)

var fselBank = [...]mmio.Offset{GPFSEL0, GPFSEL1, GPFSEL2, GPFSEL3, GPFSEL4, GPFSEL5}

// The datasheet asks for 150 cycles of setup and hold around GPPUDCLK.
const pullWaitCycles = 150
