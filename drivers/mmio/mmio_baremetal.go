//go:build baremetal

package mmio

import (
	"device/arm64"
	"runtime/volatile"
)

func load(p *uint32) uint32     { return volatile.LoadUint32(p) }
func store(p *uint32, v uint32) { volatile.StoreUint32(p, v) }

// Spin burns roughly one CPU cycle per count.
func Spin(cycles uint32) {
	for i := uint32(0); i < cycles; i++ {
		arm64.Asm("nop")
	}
}
