package kernel

import "pikernel-go/x/fmtx"

// halt is what Print calls on a format error. Boot points it at the
// kernel's halt routine.
var halt = Halt

// Print formats to the console. A format error is reported and halts.
func Print(format string, args ...any) {
	if _, err := fmtx.Printf(format, args...); err != nil {
		_, _ = fmtx.Printf("\r\npanic: %v\r\n", err)
		halt()
	}
}

// Println is Print followed by CRLF.
func Println(format string, args ...any) {
	Print(format, args...)
	Print("\r\n")
}
