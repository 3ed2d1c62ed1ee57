package bus

import "strconv"

// Width is the size in bits of a bus access.
type Width uint8

const (
	Width8  Width = 8
	Width16 Width = 16
	Width32 Width = 32
)

// Bytes returns the number of bytes transferred by an access of width w.
func (w Width) Bytes() int { return int(w) / 8 }

func (w Width) Valid() bool {
	return w == Width8 || w == Width16 || w == Width32
}

func (w Width) String() string { return strconv.Itoa(int(w)) }
