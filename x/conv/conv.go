// Package conv renders integers into caller-supplied buffers.
// No allocations; no fmt/strconv dependency. Digits are written at the end
// of buf and the used tail is returned, so buf must be large enough:
// 20 bytes for decimal uint64, 21 with sign, 16 for hex.
package conv

const (
	lowerHex = "0123456789abcdef"
	upperHex = "0123456789ABCDEF"
)

// Utoa writes the decimal form of n.
func Utoa(buf []byte, n uint64) []byte {
	i := len(buf)
	if i == 0 {
		return buf
	}
	for {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
		if n == 0 || i == 0 {
			break
		}
	}
	return buf[i:]
}

// Itoa writes the decimal form of n with a leading '-' when negative.
func Itoa(buf []byte, n int64) []byte {
	if n >= 0 {
		return Utoa(buf, uint64(n))
	}
	if len(buf) < 2 {
		return buf[:0]
	}
	// uint64(-n) is correct for MinInt64 too.
	d := Utoa(buf[1:], uint64(-n))
	i := len(buf) - len(d) - 1
	buf[i] = '-'
	return buf[i:]
}

// Hex writes n in base 16 without prefix or padding.
func Hex(buf []byte, n uint64, upper bool) []byte {
	digits := lowerHex
	if upper {
		digits = upperHex
	}
	i := len(buf)
	if i == 0 {
		return buf
	}
	for {
		i--
		buf[i] = digits[n&0xF]
		n >>= 4
		if n == 0 || i == 0 {
			break
		}
	}
	return buf[i:]
}
