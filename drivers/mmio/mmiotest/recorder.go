// Package mmiotest provides a recording mmio.Bus for driver tests.
package mmiotest

import (
	"strconv"
	"strings"

	"pikernel-go/drivers/mmio"
)

type Op uint8

const (
	OpRead Op = iota
	OpWrite
)

// Access is one bus transaction. For reads Val is the value returned.
type Access struct {
	Op  Op
	Off mmio.Offset
	Val uint32
}

func Rd(off mmio.Offset, v uint32) Access { return Access{Op: OpRead, Off: off, Val: v} }
func Wr(off mmio.Offset, v uint32) Access { return Access{Op: OpWrite, Off: off, Val: v} }

func (a Access) String() string {
	op := "R"
	if a.Op == OpWrite {
		op = "W"
	}
	return op + " 0x" + strconv.FormatUint(uint64(a.Off), 16) + "=0x" + strconv.FormatUint(uint64(a.Val), 16)
}

// Recorder behaves as plain memory: reads return the last value written
// (or preset) unless a scripted value is queued for that offset.
// Every Read32/Write32 is appended to Trace in call order.
type Recorder struct {
	Trace []Access

	regs   map[mmio.Offset]uint32
	script map[mmio.Offset][]uint32
}

func New() *Recorder {
	return &Recorder{
		regs:   map[mmio.Offset]uint32{},
		script: map[mmio.Offset][]uint32{},
	}
}

// Preset stores v without recording an access.
func (r *Recorder) Preset(off mmio.Offset, v uint32) { r.regs[off] = v }

// Script queues values returned by the next reads of off, in order.
// Once drained, reads fall back to the stored value.
func (r *Recorder) Script(off mmio.Offset, vals ...uint32) {
	r.script[off] = append(r.script[off], vals...)
}

// Value returns the stored register value without recording an access.
func (r *Recorder) Value(off mmio.Offset) uint32 { return r.regs[off] }

// Reset drops the trace but keeps register contents and scripts.
func (r *Recorder) Reset() { r.Trace = r.Trace[:0] }

func (r *Recorder) Read32(off mmio.Offset) uint32 {
	v := r.regs[off]
	if q := r.script[off]; len(q) > 0 {
		v = q[0]
		r.script[off] = q[1:]
	}
	r.Trace = append(r.Trace, Rd(off, v))
	return v
}

func (r *Recorder) Write32(off mmio.Offset, v uint32) {
	r.regs[off] = v
	r.Trace = append(r.Trace, Wr(off, v))
}

// Count reports how many accesses of kind op hit off.
func (r *Recorder) Count(op Op, off mmio.Offset) int {
	n := 0
	for _, a := range r.Trace {
		if a.Op == op && a.Off == off {
			n++
		}
	}
	return n
}

// Diff returns "" when got equals want, otherwise a readable listing.
func Diff(got, want []Access) string {
	same := len(got) == len(want)
	for i := 0; same && i < len(got); i++ {
		same = got[i] == want[i]
	}
	if same {
		return ""
	}
	var b strings.Builder
	b.WriteString("got:\n")
	for _, a := range got {
		b.WriteString("  " + a.String() + "\n")
	}
	b.WriteString("want:\n")
	for _, a := range want {
		b.WriteString("  " + a.String() + "\n")
	}
	return b.String()
}

var _ mmio.Bus = (*Recorder)(nil)
