package bus

//go:generate go tool stringer -type=OpKind -trimprefix=Op

// OpKind identifies the bus operation that produced an event or an error.
type OpKind uint8

const (
	OpMap OpKind = iota
	OpRead
	OpWrite
	OpMove
)

// Event describes a single bus operation, successful or not.
//
// Value holds the value read or written for OpRead and OpWrite, the byte count
// for OpMove and the region size for OpMap. Dest is the destination address
// for OpMove and the end address for OpMap.
type Event struct {
	Op     OpKind
	Addr   uint32
	Dest   uint32
	Width  Width
	Value  uint32
	Err    ErrorKind
	Region int // index of the region involved, -1 if none
}

// A Listener receives every event emitted by a bus. Listeners are called
// synchronously, from within the bus operation.
type Listener interface {
	BusEvent(Event)
}

// ListenerFunc adapts a function to the Listener interface.
type ListenerFunc func(Event)

func (f ListenerFunc) BusEvent(ev Event) { f(ev) }

// NopListener discards all events.
type NopListener struct{}

func (NopListener) BusEvent(Event) {}

// Recorder is a Listener capturing all events in order.
type Recorder struct {
	Events []Event
}

func (r *Recorder) BusEvent(ev Event) { r.Events = append(r.Events, ev) }

// Reset forgets all captured events.
func (r *Recorder) Reset() { r.Events = r.Events[:0] }

// Multi returns a Listener forwarding events to all ls, in order.
func Multi(ls ...Listener) Listener {
	return ListenerFunc(func(ev Event) {
		for _, l := range ls {
			l.BusEvent(ev)
		}
	})
}
