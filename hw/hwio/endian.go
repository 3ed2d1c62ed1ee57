package hwio

import (
	"encoding/binary"
	"fmt"
)

// GetBE decodes the first n bytes of buf, most significant byte first, into a
// zero-extended 32-bit value. n must be 1, 2 or 4 and buf at least n bytes long.
func GetBE(buf []byte, n int) uint32 {
	switch n {
	case 1:
		return uint32(buf[0])
	case 2:
		return uint32(binary.BigEndian.Uint16(buf))
	case 4:
		return binary.BigEndian.Uint32(buf)
	}
	panic(fmt.Sprintf("hwio: invalid access size %d", n))
}

// PutBE encodes the low n bytes of val into buf, most significant byte first.
// Upper bits of val that don't fit in n bytes are dropped.
func PutBE(buf []byte, n int, val uint32) {
	switch n {
	case 1:
		buf[0] = uint8(val)
	case 2:
		binary.BigEndian.PutUint16(buf, uint16(val))
	case 4:
		binary.BigEndian.PutUint32(buf, val)
	default:
		panic(fmt.Sprintf("hwio: invalid access size %d", n))
	}
}
