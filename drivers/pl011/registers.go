// Package pl011 provides a polled driver for the ARM PL011 UART (UART0 on
// the BCM2837), muxed to GPIO 14 (TXD0) and 15 (RXD0).
//
// Design notes (PL011 TRM / BCM2837 peripherals):
// • All interrupts are masked; every operation polls the flag register.
// • FIFOs enabled, 8N1. Baud is left to the firmware unless configured.
// • Putc/Getc spin without bound; there is no scheduler to yield to.
package pl011

import "pikernel-go/drivers/mmio"

// Base is the UART0 block offset inside the peripheral window.
const Base mmio.Offset = 0x00201000

const (
	regDR    = Base + 0x00 // data, low 8 bits
	regFR    = Base + 0x18 // flags (R)
	regIBRD  = Base + 0x24 // integer baud divisor
	regFBRD  = Base + 0x28 // fractional baud divisor, 6 bits
	regLCRH  = Base + 0x2C // line control
	regCR    = Base + 0x30 // control
	regIFLS  = Base + 0x34 // FIFO level select (unused)
	regIMSC  = Base + 0x38 // interrupt mask set/clear
	regRIS   = Base + 0x3C // raw interrupt status (unused)
	regMIS   = Base + 0x40 // masked interrupt status (unused)
	regICR   = Base + 0x44 // interrupt clear (W1C)
	regDMACR = Base + 0x48 // DMA control (unused)
)

// FR bits.
const (
	frCTS  = 1 << 0
	frBUSY = 1 << 3
	frRXFE = 1 << 4
	frTXFF = 1 << 5
	frRXFF = 1 << 6
	frTXFE = 1 << 7
)

// LCRH bits.
const (
	lcrhBRK   = 1 << 0
	lcrhPEN   = 1 << 1
	lcrhEPS   = 1 << 2
	lcrhSTP2  = 1 << 3
	lcrhFEN   = 1 << 4
	lcrhWLEN8 = 0b11 << 5
)

// CR bits.
const (
	crUARTEN = 1 << 0
	crLBE    = 1 << 7
	crTXE    = 1 << 8
	crRXE    = 1 << 9
)

// Interrupt bits, shared by IMSC/RIS/MIS/ICR.
const (
	intCTS = 1 << 1
	intRX  = 1 << 4
	intTX  = 1 << 5
	intRT  = 1 << 6
	intFE  = 1 << 7
	intPE  = 1 << 8
	intBE  = 1 << 9
	intOE  = 1 << 10

	// intAll covers every interrupt this driver knows about (0x7F2).
	intAll = intCTS | intRX | intTX | intRT | intFE | intPE | intBE | intOE
)
