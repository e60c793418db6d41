package wirecodec

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/exp/constraints"
)

// ByteOrder converts multi-byte integers to and from raw bytes.
// binary.LittleEndian and binary.BigEndian both satisfy it.
type ByteOrder interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

var (
	LE ByteOrder = binary.LittleEndian
	BE ByteOrder = binary.BigEndian
)

// Width is the byte size of a fixed-width integer: a primitive field or
// the length prefix of a string or sequence.
type Width uint8

const (
	W8  Width = 1
	W16 Width = 2
	W32 Width = 4
	W64 Width = 8
)

// Size returns the number of bytes the width occupies on the wire.
func (w Width) Size() int { return int(w) }

// Bits returns the width in bits.
func (w Width) Bits() int { return int(w) * 8 }

// Max returns the largest unsigned value representable in w.
func (w Width) Max() uint64 {
	if w == W64 {
		return ^uint64(0)
	}
	return 1<<w.Bits() - 1
}

func (w Width) valid() bool {
	switch w {
	case W8, W16, W32, W64:
		return true
	}
	return false
}

func (w Width) String() string {
	if !w.valid() {
		return fmt.Sprintf("Width(%d)", uint8(w))
	}
	return fmt.Sprintf("u%d", w.Bits())
}

// fits reports whether a non-negative length or count is representable in w.
func fits[T constraints.Integer](n T, w Width) bool {
	if n < 0 {
		return false
	}
	return uint64(n) <= w.Max()
}

// appendUint appends v as a w-wide integer. The caller guarantees v fits.
func appendUint(order ByteOrder, w Width, dst []byte, v uint64) []byte {
	switch w {
	case W8:
		return append(dst, uint8(v))
	case W16:
		return order.AppendUint16(dst, uint16(v))
	case W32:
		return order.AppendUint32(dst, uint32(v))
	default:
		return order.AppendUint64(dst, v)
	}
}

// getUint reads a w-wide integer from the front of src, which must hold at
// least w.Size() bytes.
func getUint(order ByteOrder, w Width, src []byte) uint64 {
	switch w {
	case W8:
		return uint64(src[0])
	case W16:
		return uint64(order.Uint16(src))
	case W32:
		return uint64(order.Uint32(src))
	default:
		return order.Uint64(src)
	}
}
