package regmap

import (
	"fmt"
	"strconv"
	"strings"
)

// BitRange is an inclusive range of bit positions within a register byte.
// Hi is always >= Lo.
type BitRange struct {
	Hi uint8
	Lo uint8
}

// Bit returns the single-bit range [b, b].
func Bit(b uint8) BitRange {
	return BitRange{Hi: b, Lo: b}
}

// Bits returns the range covering a and b in either order.
func Bits(a, b uint8) BitRange {
	if a < b {
		a, b = b, a
	}
	return BitRange{Hi: a, Lo: b}
}

// ParseBitRange parses "b" or "a:b". Positions must be within 0-7; the larger
// position becomes Hi.
func ParseBitRange(s string) (BitRange, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) > 2 {
		return BitRange{}, fmt.Errorf("invalid bit range %q", s)
	}

	pos := make([]uint8, len(parts))
	for i, p := range parts {
		n, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
		if err != nil {
			return BitRange{}, fmt.Errorf("invalid bit range %q: %w", s, err)
		}
		if n > 7 {
			return BitRange{}, fmt.Errorf("invalid bit range %q: bit %d out of 0-7", s, n)
		}
		pos[i] = uint8(n)
	}

	if len(pos) == 1 {
		return Bit(pos[0]), nil
	}
	return Bits(pos[0], pos[1]), nil
}

// Width returns the number of bits in the range.
func (r BitRange) Width() uint8 {
	return r.Hi - r.Lo + 1
}

// Mask returns the byte mask covering the range in place.
func (r BitRange) Mask() byte {
	return byte((uint16(1)<<r.Width() - 1) << r.Lo)
}

// Max returns the largest value the range can hold.
func (r BitRange) Max() uint8 {
	return uint8(uint16(1)<<r.Width() - 1)
}

// Extract returns the field value held in b.
func (r BitRange) Extract(b byte) uint8 {
	return (b & r.Mask()) >> r.Lo
}

// Insert returns b with the range replaced by v. Bits of v beyond the range
// width are dropped.
func (r BitRange) Insert(b byte, v uint8) byte {
	return (b &^ r.Mask()) | ((v << r.Lo) & r.Mask())
}

// Overlaps reports whether two ranges share any bit.
func (r BitRange) Overlaps(o BitRange) bool {
	return r.Mask()&o.Mask() != 0
}

// String formats the range the way definition documents spell it.
func (r BitRange) String() string {
	if r.Hi == r.Lo {
		return strconv.Itoa(int(r.Hi))
	}
	return fmt.Sprintf("%d:%d", r.Hi, r.Lo)
}
