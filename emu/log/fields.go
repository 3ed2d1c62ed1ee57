package log

import (
	"fmt"
	"strconv"
)

type FieldType uint8

const (
	FieldTypeUnknown FieldType = iota
	FieldTypeBool
	FieldTypeString
	FieldTypeHex32
	FieldTypeInt
	FieldTypeUint
	FieldTypeError
	FieldTypeStringer
)

// ZField is a single key/value pair of an EntryZ. Only the member matching
// Type is meaningful.
type ZField struct {
	Type FieldType
	Key  string

	Str      string
	Num      uint64
	Err      error
	Stringer fmt.Stringer
}

// Value renders the field value as logrus will print it.
func (f *ZField) Value() string {
	switch f.Type {
	case FieldTypeBool:
		return strconv.FormatBool(f.Num != 0)
	case FieldTypeString:
		return f.Str
	case FieldTypeHex32:
		return hex32(uint32(f.Num))
	case FieldTypeInt:
		return strconv.FormatInt(int64(f.Num), 10)
	case FieldTypeUint:
		return strconv.FormatUint(f.Num, 10)
	case FieldTypeError:
		if f.Err == nil {
			return "<nil>"
		}
		return f.Err.Error()
	case FieldTypeStringer:
		return f.Stringer.String()
	}
	return ""
}

// hex32 formats v the way bus addresses appear in traces: 0x followed by 8
// lowercase digits.
func hex32(v uint32) string {
	const hextable = "0123456789abcdef"
	var buf [10]byte
	buf[0], buf[1] = '0', 'x'
	for i := 9; i >= 2; i-- {
		buf[i] = hextable[v&0xf]
		v >>= 4
	}
	return string(buf[:])
}
