//go:build baremetal

// Command kernel is the bare-metal image. The boot stub parks the
// secondary cores, sets up a stack and jumps to kernel_main.
//
//	tinygo build -tags baremetal -target <rpi3 target> ./cmd/kernel
//
// Mode and baud can be fixed at link time:
//
//	-ldflags "-X main.mode=monitor -X main.baud=115200"
package main

import (
	"pikernel-go/drivers/mmio"
	"pikernel-go/kernel"
	"pikernel-go/x/strconvx"
)

var (
	mode = "echo"
	baud = "0"
	led  = "4"
)

//export kernel_main
func kernelMain() {
	cfg := kernel.Config{}
	var err error
	if cfg.Mode, err = kernel.ParseMode(mode); err != nil {
		println("kernel: mode:", err.Error())
	}
	if v, err := strconvx.ParseUint(baud, 0, 32); err == nil {
		cfg.Baud = uint32(v)
	}
	if v, err := strconvx.ParseUint(led, 10, 8); err == nil {
		cfg.LEDPin = uint8(v)
	}
	kernel.New(mmio.Physical{}, cfg).Run()
}

func main() { kernelMain() }
