// Package nanos holds the packed 48-bit nanosecond timestamp used
// throughout a trace: events, durations, and bucket boundaries are all
// expressed in this unit.
package nanos

// Nanos is an unpacked nanosecond duration or absolute timestamp.
type Nanos = uint64

// packedLen is the number of bytes a Packed value occupies on the wire.
// 6 bytes covers roughly 3.26 days of nanoseconds, plenty for a single
// timeline session.
const packedLen = 6

// Packed is a 6-byte little-endian encoding of a Nanos value in
// [0, 2^48). Ordering, equality, and hashing are always defined on the
// unpacked integer, never on the raw bytes.
type Packed [packedLen]byte

// New truncates x to the low 48 bits and packs it. Values outside
// [0, 2^48) lose their high bits silently; callers that might exceed the
// range must clamp before calling New.
func New(x Nanos) Packed {
	var p Packed
	for i := range p {
		p[i] = byte(x >> (8 * uint(i)))
	}
	return p
}

// Unpack zero-extends the packed value back to a full 64-bit Nanos.
func (p Packed) Unpack() Nanos {
	var x Nanos
	for i := range p {
		x |= Nanos(p[i]) << (8 * uint(i))
	}
	return x
}

// Less reports whether p represents an earlier/smaller value than other.
func (p Packed) Less(other Packed) bool {
	return p.Unpack() < other.Unpack()
}

// Compare returns -1, 0, or 1 as p is less than, equal to, or greater
// than other, comparing unpacked values.
func (p Packed) Compare(other Packed) int {
	a, b := p.Unpack(), other.Unpack()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// String renders the unpacked value, for debugging and logging.
func (p Packed) String() string {
	return uitoa(p.Unpack())
}

func uitoa(x Nanos) string {
	if x == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for x > 0 {
		i--
		buf[i] = byte('0' + x%10)
		x /= 10
	}
	return string(buf[i:])
}
