//go:build !baremetal

package kernel

import "time"

// Halt blocks the calling goroutine for good.
func Halt() {
	for {
		time.Sleep(time.Hour)
	}
}
