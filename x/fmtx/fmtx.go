// Package fmtx is a small printf for the kernel console.
//
// It formats into a fixed buffer on the stack and hands the sink one chunk
// at a time, so printing to the UART needs no heap. Signatures match fmt.
//
// Supported: %v %s %q %d %x %X %c %t %%, the flags '-' '0' '#' '+',
// width, and precision for strings. Unlike fmt, a bad verb, a missing or
// extra argument, or an argument of the wrong kind is returned as an error
// instead of being printed inline.
package fmtx

import (
	"errors"
	"io"
)

var (
	ErrBadVerb    = errors.New("fmtx: bad verb")
	ErrMissingArg = errors.New("fmtx: missing argument")
	ErrExtraArg   = errors.New("fmtx: extra argument")
	ErrBadArg     = errors.New("fmtx: wrong argument type")
)

// DefaultOutput is used by Print/Printf/Println.
// Set this from your platform bootstrap (e.g. a UART writer).
var DefaultOutput io.Writer = discard{}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

// Stringer matches fmt.Stringer.
type Stringer interface{ String() string }

// ---- Public API ----

func Fprintf(w io.Writer, format string, a ...any) (int, error) {
	var p printer
	p.w = w
	p.printf(format, a)
	p.flush()
	return p.out, p.err
}

func Printf(format string, a ...any) (int, error) {
	return Fprintf(DefaultOutput, format, a...)
}

// Fprint writes the operands separated by single spaces.
func Fprint(w io.Writer, a ...any) (int, error) {
	var p printer
	p.w = w
	p.list(a)
	p.flush()
	return p.out, p.err
}

func Print(a ...any) (int, error) { return Fprint(DefaultOutput, a...) }

// Fprintln is Fprint followed by a newline.
func Fprintln(w io.Writer, a ...any) (int, error) {
	var p printer
	p.w = w
	p.list(a)
	p.byte('\n')
	p.flush()
	return p.out, p.err
}

func Println(a ...any) (int, error) { return Fprintln(DefaultOutput, a...) }

// Sprintf formats into a new string. Formatting errors are dropped; the
// output stops where the error occurred.
func Sprintf(format string, a ...any) string {
	var b appender
	_, _ = Fprintf(&b, format, a...)
	return string(b)
}

func Sprint(a ...any) string {
	var b appender
	_, _ = Fprint(&b, a...)
	return string(b)
}

func Errorf(format string, a ...any) error {
	return &stringError{Sprintf(format, a...)}
}

type stringError struct{ s string }

func (e *stringError) Error() string { return e.s }

type appender []byte

func (b *appender) Write(p []byte) (int, error) {
	*b = append(*b, p...)
	return len(p), nil
}
