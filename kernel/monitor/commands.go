package monitor

import (
	"pikernel-go/drivers/gpio"
	"pikernel-go/drivers/mmio"
	"pikernel-go/errcode"
	"pikernel-go/x/strconvx"
)

type command struct {
	name     string
	usage    string
	min, max int
	run      func(m *Monitor, args []string) error
}

var commands []command

func init() {
	commands = []command{
		{"help", "help", 0, 0, (*Monitor).help},
		{"led", "led on|off", 1, 1, (*Monitor).ledCmd},
		{"set", "set <pin>", 1, 1, (*Monitor).setCmd},
		{"clr", "clr <pin>", 1, 1, (*Monitor).clrCmd},
		{"fsel", "fsel <pin> [in|out|alt0..alt5]", 1, 2, (*Monitor).fselCmd},
		{"pull", "pull <pin> off|up|down", 2, 2, (*Monitor).pullCmd},
		{"level", "level", 0, 0, (*Monitor).levelCmd},
		{"peek", "peek <offset>", 1, 1, (*Monitor).peekCmd},
		{"poke", "poke <offset> <value>", 2, 2, (*Monitor).pokeCmd},
	}
}

func (m *Monitor) help(_ []string) error {
	for _, c := range commands {
		m.printf("  %s\r\n", c.usage)
	}
	return nil
}

func (m *Monitor) ledCmd(args []string) error {
	switch args[0] {
	case "on":
		m.pins.OutputSet(m.led)
	case "off":
		m.pins.OutputClear(m.led)
	default:
		return &errcode.E{C: errcode.InvalidParams, Op: "led", Msg: args[0]}
	}
	return nil
}

func (m *Monitor) setCmd(args []string) error {
	n, err := parsePin(args[0])
	if err != nil {
		return err
	}
	m.pins.OutputSet(gpio.Pin(n))
	return nil
}

func (m *Monitor) clrCmd(args []string) error {
	n, err := parsePin(args[0])
	if err != nil {
		return err
	}
	m.pins.OutputClear(gpio.Pin(n))
	return nil
}

// fselCmd sets a pin function, or prints it when no function is given.
func (m *Monitor) fselCmd(args []string) error {
	n, err := parsePin(args[0])
	if err != nil {
		return err
	}
	if len(args) == 1 {
		m.printf("gpio%d: %s\r\n", n, m.pins.FunctionOf(n))
		return nil
	}
	f, ok := gpio.ParseFunction(args[1])
	if !ok {
		return &errcode.E{C: errcode.InvalidFunction, Op: "fsel", Msg: args[1]}
	}
	m.pins.SetFunction(gpio.Pin(n), f)
	return nil
}

func (m *Monitor) pullCmd(args []string) error {
	n, err := parsePin(args[0])
	if err != nil {
		return err
	}
	mode, ok := gpio.ParsePull(args[1])
	if !ok {
		return &errcode.E{C: errcode.InvalidPull, Op: "pull", Msg: args[1]}
	}
	m.pins.SetPullMode(gpio.Pin(n), mode)
	return nil
}

func (m *Monitor) levelCmd(_ []string) error {
	lv := m.pins.Level(gpio.Mask)
	m.printf("level %#014x\r\n", uint64(lv))
	return nil
}

func (m *Monitor) peekCmd(args []string) error {
	off, err := parseOffset(args[0])
	if err != nil {
		return err
	}
	m.printf("%#010x: %#010x\r\n", uint32(off), m.bus.Read32(off))
	return nil
}

func (m *Monitor) pokeCmd(args []string) error {
	off, err := parseOffset(args[0])
	if err != nil {
		return err
	}
	v, err := strconvx.ParseUint(args[1], 0, 32)
	if err != nil {
		return errcode.Wrap(errcode.InvalidParams, "poke", err)
	}
	m.bus.Write32(off, uint32(v))
	return nil
}

// ---- Argument parsing ----

func parsePin(s string) (uint8, error) {
	v, err := strconvx.ParseUint(s, 10, 8)
	if err != nil {
		return 0, errcode.Wrap(errcode.InvalidParams, "pin", err)
	}
	if v >= gpio.NumPins {
		return 0, &errcode.E{C: errcode.UnknownPin, Msg: s}
	}
	return uint8(v), nil
}

// parseOffset accepts a peripheral offset or an absolute address inside
// the peripheral window. Offsets must be word aligned.
func parseOffset(s string) (mmio.Offset, error) {
	v, err := strconvx.ParseUint(s, 0, 32)
	if err != nil {
		return 0, errcode.Wrap(errcode.InvalidParams, "offset", err)
	}
	if v >= uint64(mmio.Base) {
		v -= uint64(mmio.Base)
	}
	if v&3 != 0 || v >= windowSize {
		return 0, &errcode.E{C: errcode.BadOffset, Msg: s}
	}
	return mmio.Offset(v), nil
}

// windowSize is the extent of the peripheral window.
const windowSize = 0x01000000
