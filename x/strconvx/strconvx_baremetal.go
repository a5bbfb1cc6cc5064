//go:build baremetal

package strconvx

import "pikernel-go/x/conv"

// Same signatures as strconv, without the strconv error machinery.
// Bases 2..36. Base 0 takes 0x, 0o, 0b and a bare leading 0 as prefixes.

type parseError struct{ msg string }

func (e parseError) Error() string { return e.msg }

var (
	errSyntax = parseError{"invalid syntax"}
	errRange  = parseError{"value out of range"}
)

func Itoa(i int) string { return FormatInt(int64(i), 10) }

func Atoi(s string) (int, error) {
	v, err := ParseInt(s, 10, 0)
	return int(v), err
}

func FormatInt(i int64, base int) string {
	if i < 0 {
		return "-" + FormatUint(uint64(-i), base)
	}
	return FormatUint(uint64(i), base)
}

func FormatUint(u uint64, base int) string {
	var buf [64]byte
	switch base {
	case 10:
		return string(conv.Utoa(buf[:], u))
	case 16:
		return string(conv.Hex(buf[:], u, false))
	}
	if base < 2 || base > 36 {
		base = 10
	}
	const digits = "0123456789abcdefghijklmnopqrstuvwxyz"
	i := len(buf)
	b := uint64(base)
	for {
		i--
		buf[i] = digits[u%b]
		u /= b
		if u == 0 {
			break
		}
	}
	return string(buf[i:])
}

func ParseInt(s string, base, bitSize int) (int64, error) {
	neg := false
	if len(s) > 0 && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}
	if bitSize == 0 {
		bitSize = 64
	}
	u, err := ParseUint(s, base, 64)
	if err != nil {
		return 0, err
	}
	limit := uint64(1) << uint(bitSize-1)
	if neg {
		if u > limit {
			return 0, errRange
		}
		return -int64(u), nil
	}
	if u >= limit {
		return 0, errRange
	}
	return int64(u), nil
}

func ParseUint(s string, base, bitSize int) (uint64, error) {
	if len(s) == 0 {
		return 0, errSyntax
	}
	if base == 0 {
		base = detectBase(&s)
		if len(s) == 0 {
			return 0, errSyntax
		}
	}
	if base < 2 || base > 36 {
		return 0, errSyntax
	}
	if bitSize == 0 {
		bitSize = 64
	}
	max := uint64(1)<<uint(bitSize) - 1
	if bitSize == 64 {
		max = ^uint64(0)
	}
	var v uint64
	for i := 0; i < len(s); i++ {
		d := digit(s[i])
		if d >= base {
			return 0, errSyntax
		}
		if v > (max-uint64(d))/uint64(base) {
			return 0, errRange
		}
		v = v*uint64(base) + uint64(d)
	}
	return v, nil
}

func digit(c byte) int {
	switch {
	case '0' <= c && c <= '9':
		return int(c - '0')
	case 'a' <= c && c <= 'z':
		return int(c-'a') + 10
	case 'A' <= c && c <= 'Z':
		return int(c-'A') + 10
	}
	return 36
}

func detectBase(ps *string) int {
	s := *ps
	if len(s) < 2 || s[0] != '0' {
		return 10
	}
	switch s[1] {
	case 'x', 'X':
		*ps = s[2:]
		return 16
	case 'b', 'B':
		*ps = s[2:]
		return 2
	case 'o', 'O':
		*ps = s[2:]
		return 8
	}
	*ps = s[1:]
	return 8
}
