package bus

import "errors"

// FaultState holds what a CPU core needs to deliver a bus error exception.
// The bus never fills it: it is up to the CPU (or any trap layer) to raise a
// fault, through a FaultLatch, from the errors returned by bus operations.
type FaultState struct {
	Active bool // a fault is pending
	Halt   bool // a fault was raised while another was pending

	Addr  uint32
	PC    uint32
	Width Width
	Count uint32 // number of faults raised since the last reset
	Kind  ErrorKind
	Op    OpKind
}

// FaultLatch tracks pending bus faults. As on a 68000, a fault raised while a
// previous one hasn't been acknowledged halts the processor.
type FaultLatch struct {
	state FaultState
}

// Raise latches the fault described by err, which occurred while executing
// the instruction at pc. It returns false, and does nothing, if err isn't an
// *AccessError.
func (l *FaultLatch) Raise(err error, pc uint32) bool {
	var aerr *AccessError
	if !errors.As(err, &aerr) {
		return false
	}

	l.state.Halt = l.state.Halt || l.state.Active
	l.state.Active = true
	l.state.Addr = aerr.Addr
	l.state.PC = pc
	l.state.Width = aerr.Width
	l.state.Kind = aerr.Kind
	l.state.Op = aerr.Op
	l.state.Count++
	return true
}

// Acknowledge clears the pending fault, once the trap handler has run.
func (l *FaultLatch) Acknowledge() { l.state.Active = false }

func (l *FaultLatch) Reset() { l.state = FaultState{} }

func (l *FaultLatch) State() FaultState { return l.state }
