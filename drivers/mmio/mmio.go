// Package mmio is the only code that touches peripheral physical addresses.
//
// Every access is a single 32-bit load or store at Base+offset. The
// accessors are never elided, merged or reordered against each other, so
// registers with read side effects (the PL011 data register) behave.
// No memory barriers are issued; callers talk to one peripheral at a time.
package mmio

import "unsafe"

// Base is the BCM2837 peripheral window as seen by the ARM cores.
// Other SoCs need a different value and a rebuild.
const Base uintptr = 0x3F000000

// Offset is a peripheral-bus offset from Base. It must be a multiple of 4.
type Offset uint32

// Bus performs single-word register accesses.
type Bus interface {
	Read32(off Offset) uint32
	Write32(off Offset, v uint32)
}

// Physical is the real register window. It holds no state.
type Physical struct{}

func (Physical) Read32(off Offset) uint32     { return load(reg(off)) }
func (Physical) Write32(off Offset, v uint32) { store(reg(off), v) }

// Read32 reads the register at Base+off.
func Read32(off Offset) uint32 { return load(reg(off)) }

// Write32 stores v at Base+off.
func Write32(off Offset, v uint32) { store(reg(off), v) }

func reg(off Offset) *uint32 {
	return (*uint32)(unsafe.Pointer(Base + uintptr(off)))
}

var _ Bus = Physical{}
