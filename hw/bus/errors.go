package bus

import (
	"errors"
	"fmt"
	"strings"
)

//go:generate go tool stringer -type=ErrorKind

// ErrorKind classifies the outcome of a bus operation.
type ErrorKind uint8

const (
	Ok ErrorKind = iota
	OutOfBounds
	ReadOnlyViolation
	Unmapped
	BusLimitExceeded
	TooManyRegions
	InvalidSize
	ReservedRange
	Overflow
	BadRead
	BadWrite
)

var descriptions = [...]string{
	Ok:                "no error",
	OutOfBounds:       "access outside region bounds",
	ReadOnlyViolation: "write to read-only region",
	Unmapped:          "address not mapped to any region",
	BusLimitExceeded:  "region exceeds bus limit",
	TooManyRegions:    "region table is full",
	InvalidSize:       "invalid size",
	ReservedRange:     "address in reserved range",
	Overflow:          "address overflow",
	BadRead:           "bad read",
	BadWrite:          "bad write",
}

// Description returns a human readable description of k.
func (k ErrorKind) Description() string {
	if int(k) < len(descriptions) {
		return descriptions[k]
	}
	return "unknown error"
}

// Error implements the error interface so that kinds can be used as
// errors.Is targets.
func (k ErrorKind) Error() string { return k.Description() }

// UnmarshalText decodes a kind from its name, case insensitively.
func (k *ErrorKind) UnmarshalText(text []byte) error {
	s := string(text)
	for i := range descriptions {
		if strings.EqualFold(ErrorKind(i).String(), s) {
			*k = ErrorKind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown error kind %q", s)
}

func (k ErrorKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// AccessError is returned by all failing bus operations.
type AccessError struct {
	Op    OpKind
	Addr  uint32 // faulting address
	Width Width  // zero for region registration
	Kind  ErrorKind
}

func (e *AccessError) Error() string {
	op := strings.ToLower(e.Op.String())
	if e.Width != 0 {
		op += e.Width.String()
	}
	return fmt.Sprintf("bus: %s at $%08X: %s", op, e.Addr, e.Kind.Description())
}

func (e *AccessError) Unwrap() error { return e.Kind }

// Class returns BadRead for failed reads, BadWrite for failed writes and
// moves, and the error kind itself for failed registrations.
func (e *AccessError) Class() ErrorKind {
	switch e.Op {
	case OpRead:
		return BadRead
	case OpWrite, OpMove:
		return BadWrite
	}
	return e.Kind
}

// KindOf returns the kind carried by err, Ok if err is nil. Errors that don't
// originate from the bus are classified as BadRead.
func KindOf(err error) ErrorKind {
	if err == nil {
		return Ok
	}
	var k ErrorKind
	if errors.As(err, &k) {
		return k
	}
	return BadRead
}
