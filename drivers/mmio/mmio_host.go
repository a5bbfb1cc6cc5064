//go:build !baremetal

package mmio

import "sync/atomic"

// Hosted builds have no runtime/volatile; atomic loads and stores give the
// same single, unmerged access.
func load(p *uint32) uint32     { return atomic.LoadUint32(p) }
func store(p *uint32, v uint32) { atomic.StoreUint32(p, v) }

var spins atomic.Uint32

// Spin burns roughly one CPU cycle per count.
func Spin(cycles uint32) {
	for i := uint32(0); i < cycles; i++ {
		spins.Add(1)
	}
}
