// Command kernelsim runs the kernel against a simulated board, with
// UART0 wired to the controlling terminal. Ctrl-C quits.
package main

import (
	"flag"
	"io"
	"log"
	"os"
	"time"

	tty "github.com/mattn/go-tty"

	"pikernel-go/drivers/gpio"
	"pikernel-go/kernel"
	"pikernel-go/sim"
)

const ctrlC = 0x03

// idlePoll bounds how long an empty receive poll sleeps.
const idlePoll = 10 * time.Millisecond

func main() {
	mode := flag.String("mode", "echo", "echo, blink or monitor")
	led := flag.Uint("led", kernel.DefaultLEDPin, "LED GPIO (1..53)")
	blink := flag.Uint("blink", kernel.DefaultBlinkTicks, "blink delay in microseconds")
	baud := flag.Uint("baud", 0, "program the UART divisors for this baud (0 = leave)")
	banner := flag.String("banner", "", "boot banner")
	flag.Parse()

	m, err := kernel.ParseMode(*mode)
	if err != nil {
		log.Fatalf("kernelsim: %v", err)
	}
	cfg := kernel.Config{
		LEDPin:     uint8(min(*led, 255)),
		BlinkTicks: uint32(*blink),
		Mode:       m,
		Baud:       uint32(*baud),
		Banner:     *banner,
	}
	if err := run(cfg); err != nil {
		log.Fatalf("kernelsim: %v", err)
	}
}

func run(cfg kernel.Config) error {
	t, err := tty.Open()
	if err != nil {
		return err
	}
	defer t.Close()
	restore, err := t.Raw()
	if err != nil {
		return err
	}
	defer restore()

	// Raw mode: log lines need their own carriage return.
	log.SetOutput(crlf{os.Stderr})
	log.SetFlags(log.Ltime)
	log.SetPrefix("[sim] ")

	var board *sim.Board
	idle := func() {
		select {
		case <-board.RXReadable():
		case <-time.After(idlePoll):
		}
	}
	var led uint8
	board = sim.New(t.Output(), sim.WithIdle(idle), sim.WithOutputHook(func(changed, level gpio.Pins) {
		reportLED(led, changed, level)
	}))

	k := kernel.New(board, cfg, kernel.WithDelay(func(ticks uint32) {
		time.Sleep(time.Duration(ticks) * time.Microsecond)
	}))
	led = k.Config().LEDPin
	go k.Run()

	done := make(chan error, 1)
	go func() { done <- pump(t.Input(), board) }()
	err = <-done
	if txErr := board.TXErr(); txErr != nil {
		return txErr
	}
	return err
}

// pump copies terminal input onto the simulated RX line until Ctrl-C.
func pump(in io.Reader, board *sim.Board) error {
	var b [1]byte
	for {
		n, err := in.Read(b[:])
		if err != nil {
			return err
		}
		if n == 0 {
			continue
		}
		if b[0] == ctrlC {
			return nil
		}
		for board.Feed(b[:]) == 0 {
			select {
			case <-board.RXWritable():
			case <-time.After(idlePoll):
			}
		}
	}
}

// reportLED logs edges on the LED pin.
func reportLED(led uint8, changed, level gpio.Pins) {
	if !changed.Has(led) {
		return
	}
	if level.Has(led) {
		log.Printf("gpio%d high", led)
	} else {
		log.Printf("gpio%d low", led)
	}
}

// crlf turns each LF into CRLF.
type crlf struct{ w io.Writer }

func (c crlf) Write(p []byte) (int, error) {
	start := 0
	for i, b := range p {
		if b != '\n' {
			continue
		}
		if _, err := c.w.Write(p[start:i]); err != nil {
			return start, err
		}
		if _, err := c.w.Write([]byte("\r\n")); err != nil {
			return i, err
		}
		start = i + 1
	}
	if _, err := c.w.Write(p[start:]); err != nil {
		return start, err
	}
	return len(p), nil
}
