// Package monitor is a line-oriented console for poking at the board.
//
// It reads one line at a time from the UART with local echo, splits it
// shell-style and runs a small command set against the GPIO controller
// and the raw register window. Failures are reported as error codes and
// never stop the loop.
package monitor

import (
	"github.com/google/shlex"
	"tinygo.org/x/drivers"

	"pikernel-go/drivers/gpio"
	"pikernel-go/drivers/mmio"
	"pikernel-go/errcode"
	"pikernel-go/x/fmtx"
)

// MaxLine is the longest command line accepted, excluding the terminator.
const MaxLine = 80

const (
	keyBS  = 0x08
	keyDEL = 0x7F
	keyCR  = '\r'
	keyLF  = '\n'
)

const prompt = "> "

type Monitor struct {
	con  drivers.UART
	pins *gpio.Controller
	bus  mmio.Bus
	led  gpio.Pins

	line [MaxLine]byte
	n    int
}

// New returns a monitor on con. led is the pin driven by "led on|off".
func New(con drivers.UART, pins *gpio.Controller, bus mmio.Bus, led uint8) *Monitor {
	return &Monitor{con: con, pins: pins, bus: bus, led: gpio.Pin(led)}
}

// Step prompts, reads one line and runs it. Errors are printed.
func (m *Monitor) Step() {
	m.puts(prompt)
	line, err := m.ReadLine()
	if err == nil {
		err = m.Exec(line)
	}
	if err != nil {
		m.printf("error: %s\r\n", errcode.Of(err))
	}
}

// ReadLine collects bytes up to CR or LF, echoing as it goes. Backspace
// and DEL erase one byte. A line longer than MaxLine is consumed to its
// end and rejected with LineTooLong.
func (m *Monitor) ReadLine() (string, error) {
	m.n = 0
	overflow := false
	var b [1]byte
	for {
		if _, err := m.con.Read(b[:]); err != nil {
			return "", errcode.Wrap(errcode.Error, "read", err)
		}
		switch c := b[0]; c {
		case keyCR, keyLF:
			m.puts("\r\n")
			if overflow {
				return "", errcode.LineTooLong
			}
			return string(m.line[:m.n]), nil
		case keyBS, keyDEL:
			if m.n > 0 {
				m.n--
				m.puts("\b \b")
			}
		default:
			if c < ' ' {
				continue
			}
			if m.n == len(m.line) {
				overflow = true
				continue
			}
			m.line[m.n] = c
			m.n++
			m.con.Write(b[:])
		}
	}
}

// Exec runs one command line. Blank lines do nothing.
func (m *Monitor) Exec(line string) error {
	args, err := shlex.Split(line)
	if err != nil {
		return errcode.Wrap(errcode.InvalidParams, "split", err)
	}
	if len(args) == 0 {
		return nil
	}
	for _, c := range commands {
		if c.name != args[0] {
			continue
		}
		if len(args)-1 < c.min || len(args)-1 > c.max {
			return &errcode.E{C: errcode.InvalidParams, Op: c.name, Msg: c.usage}
		}
		return c.run(m, args[1:])
	}
	return &errcode.E{C: errcode.UnknownCommand, Msg: args[0]}
}

func (m *Monitor) puts(s string) { m.printf("%s", s) }

// printf writes to the console. Format strings are all fixed.
func (m *Monitor) printf(format string, args ...any) {
	_, _ = fmtx.Fprintf(m.con, format, args...)
}
