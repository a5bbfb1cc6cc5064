package gpio

import "strings"

// Pins is a set of GPIOs, bit i = pin i.
type Pins uint64

// Pin returns the mask for a single GPIO. Out-of-range numbers give 0.
func Pin(n uint8) Pins {
	if n >= NumPins {
		return 0
	}
	return 1 << n
}

// PinMask ORs the masks of several GPIOs.
func PinMask(ns ...uint8) Pins {
	var p Pins
	for _, n := range ns {
		p |= Pin(n)
	}
	return p
}

// Has reports whether pin n is in the set.
func (p Pins) Has(n uint8) bool { return n < NumPins && p&(1<<n) != 0 }

func (p Pins) low() uint32  { return uint32(p & Mask) }
func (p Pins) high() uint32 { return uint32((p & Mask) >> 32) }

// ---- Pin functions ----

// Function is a pin multiplexer setting.
type Function uint8

const (
	Input Function = iota
	Output
	Func0
	Func1
	Func2
	Func3
	Func4
	Func5
)

// Hardware codes. Func4 and Func5 are not in sequence on this part.
var functionCode = [...]uint32{
	Input:  0b000,
	Output: 0b001,
	Func0:  0b100,
	Func1:  0b101,
	Func2:  0b110,
	Func3:  0b111,
	Func4:  0b011,
	Func5:  0b010,
}

// Code returns the 3-bit GPFSEL value for f.
func (f Function) Code() uint32 {
	if int(f) >= len(functionCode) {
		return functionCode[Input]
	}
	return functionCode[f]
}

// functionFromCode is the inverse of Code.
func functionFromCode(c uint32) Function {
	for f, code := range functionCode {
		if code == c&slotMask {
			return Function(f)
		}
	}
	return Input
}

func (f Function) String() string {
	switch f {
	case Input:
		return "in"
	case Output:
		return "out"
	case Func0:
		return "alt0"
	case Func1:
		return "alt1"
	case Func2:
		return "alt2"
	case Func3:
		return "alt3"
	case Func4:
		return "alt4"
	case Func5:
		return "alt5"
	default:
		return "unknown"
	}
}

// ParseFunction accepts "in", "out", "alt0".."alt5" (case-insensitive);
// "input", "output" and "func0".."func5" are aliases.
func ParseFunction(s string) (Function, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "in", "input":
		return Input, true
	case "out", "output":
		return Output, true
	}
	for _, prefix := range []string{"alt", "func"} {
		if rest, ok := strings.CutPrefix(s, prefix); ok && len(rest) == 1 && rest[0] >= '0' && rest[0] <= '5' {
			return Func0 + Function(rest[0]-'0'), true
		}
	}
	return Input, false
}

// ---- Pull-up/down ----

// PullMode selects the pad resistor.
type PullMode uint8

const (
	Disabled PullMode = iota
	PullUp
	PullDown
)

// GPPUD encoding: 00 off, 01 down, 10 up.
func (m PullMode) code() uint32 {
	switch m {
	case PullDown:
		return 0b01
	case PullUp:
		return 0b10
	default:
		return 0b00
	}
}

func (m PullMode) String() string {
	switch m {
	case PullUp:
		return "up"
	case PullDown:
		return "down"
	default:
		return "off"
	}
}

// ParsePull accepts "off"/"none"/"disabled", "up"/"pullup", "down"/"pulldown".
func ParsePull(s string) (PullMode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "off", "none", "disabled":
		return Disabled, true
	case "up", "pullup":
		return PullUp, true
	case "down", "pulldown":
		return PullDown, true
	default:
		return Disabled, false
	}
}
