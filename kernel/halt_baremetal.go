//go:build baremetal

package kernel

import "device/arm64"

// Halt parks the core for good.
func Halt() {
	for {
		arm64.Asm("wfe")
	}
}
