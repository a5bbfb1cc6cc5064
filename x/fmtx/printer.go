package fmtx

import (
	"io"
	"reflect"
	"unicode/utf8"

	"pikernel-go/x/conv"
)

// chunk is how many bytes are handed to the sink per Write.
const chunk = 64

type printer struct {
	w   io.Writer
	buf [chunk]byte
	n   int
	out int
	err error
}

type directive struct {
	minus, zero, sharp, plus bool
	width, prec              int
	hasPrec                  bool
}

func (p *printer) flush() {
	if p.n > 0 && p.w != nil {
		m, err := p.w.Write(p.buf[:p.n])
		p.out += m
		if err != nil && p.err == nil {
			p.err = err
		}
	}
	p.n = 0
}

func (p *printer) fail(err error) {
	if p.err == nil {
		p.err = err
	}
}

func (p *printer) byte(c byte) {
	if p.n == len(p.buf) {
		p.flush()
	}
	p.buf[p.n] = c
	p.n++
}

func (p *printer) str(s string) {
	for i := 0; i < len(s); i++ {
		p.byte(s[i])
	}
}

func (p *printer) bytes(b []byte) {
	for _, c := range b {
		p.byte(c)
	}
}

func (p *printer) pad(n int, c byte) {
	for ; n > 0; n-- {
		p.byte(c)
	}
}

// ---- Driver loops ----

func (p *printer) list(args []any) {
	for i, a := range args {
		if i > 0 {
			p.byte(' ')
		}
		p.arg(a, 'v', directive{})
		if p.err != nil {
			return
		}
	}
}

func (p *printer) printf(format string, args []any) {
	ai := 0
	for i := 0; i < len(format); {
		c := format[i]
		if c != '%' {
			p.byte(c)
			i++
			continue
		}
		i++
		var sp directive
	flags:
		for ; i < len(format); i++ {
			switch format[i] {
			case '-':
				sp.minus = true
			case '0':
				sp.zero = true
			case '#':
				sp.sharp = true
			case '+':
				sp.plus = true
			default:
				break flags
			}
		}
		i = parseNum(format, i, &sp.width)
		if i < len(format) && format[i] == '.' {
			sp.hasPrec = true
			i = parseNum(format, i+1, &sp.prec)
		}
		if i >= len(format) {
			p.fail(ErrBadVerb)
			return
		}
		verb := format[i]
		i++
		if verb == '%' {
			p.byte('%')
			continue
		}
		if ai >= len(args) {
			p.fail(ErrMissingArg)
			return
		}
		p.arg(args[ai], verb, sp)
		ai++
		if p.err != nil {
			return
		}
	}
	if ai < len(args) {
		p.fail(ErrExtraArg)
	}
}

func parseNum(s string, i int, out *int) int {
	n := 0
	for ; i < len(s) && '0' <= s[i] && s[i] <= '9'; i++ {
		n = n*10 + int(s[i]-'0')
	}
	*out = n
	return i
}

// ---- One operand ----

func (p *printer) arg(a any, verb byte, sp directive) {
	switch verb {
	case 'v', 's', 'q':
	case 'd', 'x', 'X', 'c', 't':
	default:
		p.fail(ErrBadVerb)
		return
	}

	switch v := a.(type) {
	case nil:
		if verb == 'v' || verb == 's' {
			p.text("<nil>", sp, false)
			return
		}
	case error:
		if verb == 'v' || verb == 's' || verb == 'q' {
			p.text(v.Error(), sp, verb == 'q')
			return
		}
	case Stringer:
		if verb == 'v' || verb == 's' || verb == 'q' {
			p.text(v.String(), sp, verb == 'q')
			return
		}
	case string:
		p.textArg(v, nil, verb, sp)
		return
	case []byte:
		p.textArg("", v, verb, sp)
		return
	case bool:
		if verb == 'v' || verb == 't' {
			if v {
				p.text("true", sp, false)
			} else {
				p.text("false", sp, false)
			}
			return
		}
	}

	if u, neg, ok := intArg(a); ok {
		switch verb {
		case 'v', 'd':
			p.integer(u, neg, 'd', sp)
		case 'x', 'X':
			p.integer(u, neg, verb, sp)
		case 'c':
			var rb [utf8.UTFMax]byte
			n := utf8.EncodeRune(rb[:], rune(u))
			p.field(rb[:n], sp)
		default:
			p.fail(ErrBadArg)
		}
		return
	}
	if rv := reflect.ValueOf(a); rv.Kind() == reflect.String {
		p.textArg(rv.String(), nil, verb, sp)
		return
	}
	p.fail(ErrBadArg)
}

func (p *printer) textArg(s string, b []byte, verb byte, sp directive) {
	switch verb {
	case 'v', 's':
		if b != nil {
			p.field(b, sp)
		} else {
			p.text(s, sp, false)
		}
	case 'q':
		if b != nil {
			p.text(string(b), sp, true)
		} else {
			p.text(s, sp, true)
		}
	case 'x', 'X':
		if b == nil {
			b = []byte(s)
		}
		p.hexBytes(b, verb == 'X')
	default:
		p.fail(ErrBadArg)
	}
}

// text writes s honouring width, precision and '-'. quoted applies %q.
func (p *printer) text(s string, sp directive, quoted bool) {
	if sp.hasPrec && sp.prec < len(s) {
		s = s[:sp.prec]
	}
	n := utf8.RuneCountInString(s)
	if quoted {
		n = quotedLen(s)
	}
	if !sp.minus {
		p.pad(sp.width-n, ' ')
	}
	if quoted {
		p.quote(s)
	} else {
		p.str(s)
	}
	if sp.minus {
		p.pad(sp.width-n, ' ')
	}
}

func (p *printer) field(b []byte, sp directive) {
	if sp.hasPrec && sp.prec < len(b) {
		b = b[:sp.prec]
	}
	n := utf8.RuneCount(b)
	if !sp.minus {
		p.pad(sp.width-n, ' ')
	}
	p.bytes(b)
	if sp.minus {
		p.pad(sp.width-n, ' ')
	}
}

func (p *printer) integer(u uint64, neg bool, verb byte, sp directive) {
	var scratch [24]byte
	var digits []byte
	switch verb {
	case 'x':
		digits = conv.Hex(scratch[:], u, false)
	case 'X':
		digits = conv.Hex(scratch[:], u, true)
	default:
		digits = conv.Utoa(scratch[:], u)
	}
	sign := ""
	switch {
	case neg:
		sign = "-"
	case sp.plus:
		sign = "+"
	}
	prefix := ""
	if sp.sharp && verb != 'd' {
		prefix = "0x"
		if verb == 'X' {
			prefix = "0X"
		}
	}
	fill := sp.width - len(sign) - len(prefix) - len(digits)
	switch {
	case sp.minus:
		p.str(sign)
		p.str(prefix)
		p.bytes(digits)
		p.pad(fill, ' ')
	case sp.zero:
		p.str(sign)
		p.str(prefix)
		p.pad(fill, '0')
		p.bytes(digits)
	default:
		p.pad(fill, ' ')
		p.str(sign)
		p.str(prefix)
		p.bytes(digits)
	}
}

func (p *printer) hexBytes(b []byte, upper bool) {
	digits := "0123456789abcdef"
	if upper {
		digits = "0123456789ABCDEF"
	}
	for _, c := range b {
		p.byte(digits[c>>4])
		p.byte(digits[c&0xF])
	}
}

// Minimal %q: escape backslash, quotes and common control bytes.
func (p *printer) quote(s string) {
	p.byte('"')
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\\', '"':
			p.byte('\\')
			p.byte(c)
		case '\n':
			p.str(`\n`)
		case '\r':
			p.str(`\r`)
		case '\t':
			p.str(`\t`)
		default:
			p.byte(c)
		}
	}
	p.byte('"')
}

func quotedLen(s string) int {
	n := 2
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\', '"', '\n', '\r', '\t':
			n += 2
		default:
			n++
		}
	}
	return n
}

// intArg extracts an integer of any width, including named integer types.
func intArg(a any) (u uint64, neg bool, ok bool) {
	switch v := a.(type) {
	case int:
		return signed(int64(v))
	case int8:
		return signed(int64(v))
	case int16:
		return signed(int64(v))
	case int32:
		return signed(int64(v))
	case int64:
		return signed(v)
	case uint:
		return uint64(v), false, true
	case uint8:
		return uint64(v), false, true
	case uint16:
		return uint64(v), false, true
	case uint32:
		return uint64(v), false, true
	case uint64:
		return v, false, true
	case uintptr:
		return uint64(v), false, true
	}
	rv := reflect.ValueOf(a)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return signed(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint(), false, true
	}
	return 0, false, false
}

func signed(v int64) (uint64, bool, bool) {
	if v < 0 {
		return uint64(-v), true, true
	}
	return uint64(v), false, true
}
