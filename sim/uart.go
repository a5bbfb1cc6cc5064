package sim

import (
	"io"

	"pikernel-go/drivers/mmio"
	"pikernel-go/drivers/pl011"
	"pikernel-go/x/bytering"
)

// UART0 register offsets and bits, as seen from the device side.
const (
	uartDR   = pl011.Base + 0x00
	uartFR   = pl011.Base + 0x18
	uartIBRD = pl011.Base + 0x24
	uartFBRD = pl011.Base + 0x28
	uartLCRH = pl011.Base + 0x2C
	uartCR   = pl011.Base + 0x30
	uartIFLS = pl011.Base + 0x34
	uartIMSC = pl011.Base + 0x38
	uartRIS  = pl011.Base + 0x3C
	uartMIS  = pl011.Base + 0x40
	uartICR  = pl011.Base + 0x44

	frRXFE = 1 << 4
	frTXFE = 1 << 7

	crUARTEN = 1 << 0
	crTXE    = 1 << 8
	crRXE    = 1 << 9
)

// uartBlock transmits instantly, so TX is always empty and never busy.
// Receive data comes from the board's ring.
type uartBlock struct {
	tx  io.Writer
	err error

	cr, lcrh   uint32
	ibrd, fbrd uint32
	ifls, imsc uint32
	ris        uint32
}

func (u *uartBlock) rxOn() bool { return u.cr&(crUARTEN|crRXE) == crUARTEN|crRXE }
func (u *uartBlock) txOn() bool { return u.cr&(crUARTEN|crTXE) == crUARTEN|crTXE }

func (u *uartBlock) read(off mmio.Offset, rx *bytering.Ring) uint32 {
	switch off {
	case uartDR:
		if !u.rxOn() {
			return 0
		}
		b, _ := rx.TryGet()
		return uint32(b)
	case uartFR:
		fr := uint32(frTXFE)
		if !u.rxOn() || rx.Available() == 0 {
			fr |= frRXFE
		}
		return fr
	case uartIBRD:
		return u.ibrd
	case uartFBRD:
		return u.fbrd
	case uartLCRH:
		return u.lcrh
	case uartCR:
		return u.cr
	case uartIFLS:
		return u.ifls
	case uartIMSC:
		return u.imsc
	case uartRIS:
		return u.ris
	case uartMIS:
		return u.ris & u.imsc
	}
	return 0
}

func (u *uartBlock) write(off mmio.Offset, v uint32) {
	switch off {
	case uartDR:
		if !u.txOn() {
			return
		}
		one := [1]byte{byte(v)}
		if _, err := u.tx.Write(one[:]); err != nil && u.err == nil {
			u.err = err
		}
	case uartIBRD:
		u.ibrd = v & 0xFFFF
	case uartFBRD:
		u.fbrd = v & 0x3F
	case uartLCRH:
		u.lcrh = v & 0xFF
	case uartCR:
		u.cr = v
	case uartIFLS:
		u.ifls = v
	case uartIMSC:
		u.imsc = v & 0x7FF
	case uartICR:
		u.ris &^= v
	}
}
