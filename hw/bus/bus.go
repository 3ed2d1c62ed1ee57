// Package bus simulates the address space seen by a 68000-class CPU: a 32-bit
// byte-addressable space backed by independently allocated memory regions.
//
// Multi-byte values are stored most significant byte first. Accesses never
// panic, failures are reported as *AccessError values carrying an ErrorKind,
// and every operation emits an Event to the installed Listener.
//
// A Bus is not safe for concurrent use.
package bus

import (
	"m68kmem/emu/log"
	"m68kmem/hw/hwio"
)

const (
	// DefaultExtent is the size of a 24-bit address bus.
	DefaultExtent = 0x1000000

	// FullExtent covers the whole 32-bit address space.
	FullExtent = 1 << 32

	DefaultMaxRegions = 10
)

type Config struct {
	Name string

	// Extent is the size of the address space. Addresses at or above Extent
	// belong to the reserved range and can't be mapped. Zero means
	// DefaultExtent; values above FullExtent are clamped.
	Extent uint64

	// MaxRegions caps the number of regions. Zero means DefaultMaxRegions.
	MaxRegions int
}

type Bus struct {
	name     string
	extent   uint64
	regions  regionTable
	listener Listener
}

func New(cfg Config) *Bus {
	if cfg.Extent == 0 {
		cfg.Extent = DefaultExtent
	}
	if cfg.Extent > FullExtent {
		cfg.Extent = FullExtent
	}
	if cfg.MaxRegions <= 0 {
		cfg.MaxRegions = DefaultMaxRegions
	}
	return &Bus{
		name:     cfg.Name,
		extent:   cfg.Extent,
		regions:  regionTable{max: cfg.MaxRegions},
		listener: NopListener{},
	}
}

func (b *Bus) Name() string   { return b.name }
func (b *Bus) Extent() uint64 { return b.extent }

// SetListener installs l as the receiver of bus events. A nil listener
// discards events.
func (b *Bus) SetListener(l Listener) {
	if l == nil {
		l = NopListener{}
	}
	b.listener = l
}

func (b *Bus) emit(ev Event) { b.listener.BusEvent(ev) }

// locate performs the checks common to all accesses and returns the region
// owning addr along with the offset of addr within it.
func (b *Bus) locate(addr uint32, w Width) (*Region, uint32, ErrorKind) {
	if !w.Valid() {
		return nil, 0, InvalidSize
	}
	if uint64(addr) >= b.extent {
		return nil, 0, ReservedRange
	}
	r := b.regions.search(addr)
	if r == nil {
		return nil, 0, Unmapped
	}
	return r, addr - r.base, Ok
}

func inBounds(r *Region, off uint32, w Width) bool {
	return uint64(off)+uint64(w.Bytes()) <= uint64(r.size)
}

// Read reads a w-bit value at addr. The value is zero-extended to 32 bits. On
// failure the returned value is always 0.
func (b *Bus) Read(addr uint32, w Width) (uint32, error) {
	val, r, kind := b.read(addr, w)
	b.emit(Event{Op: OpRead, Addr: addr, Width: w, Value: val, Err: kind, Region: r.id()})
	if kind != Ok {
		log.ModBus.DebugZ("bad read").
			String("bus", b.name).
			Hex32("addr", addr).
			Stringer("size", w).
			Stringer("err", kind).
			End()
		return 0, &AccessError{Op: OpRead, Addr: addr, Width: w, Kind: kind}
	}
	return val, nil
}

func (b *Bus) read(addr uint32, w Width) (uint32, *Region, ErrorKind) {
	r, off, kind := b.locate(addr, w)
	if kind != Ok {
		return 0, r, kind
	}
	if !inBounds(r, off, w) {
		r.stats.Violations++
		return 0, r, OutOfBounds
	}

	r.stats.Reads++
	r.stats.LastRead = addr
	r.stats.Accessed = true
	return hwio.GetBE(r.buf[off:], w.Bytes()), r, Ok
}

// Write writes the low w bits of val at addr. The permission check comes
// before the bounds check: an out of bounds write to a read-only region
// reports ReadOnlyViolation.
func (b *Bus) Write(addr uint32, w Width, val uint32) error {
	r, kind := b.write(addr, w, val)
	b.emit(Event{Op: OpWrite, Addr: addr, Width: w, Value: val, Err: kind, Region: r.id()})
	if kind != Ok {
		log.ModBus.DebugZ("bad write").
			String("bus", b.name).
			Hex32("addr", addr).
			Stringer("size", w).
			Hex32("val", val).
			Stringer("err", kind).
			End()
		return &AccessError{Op: OpWrite, Addr: addr, Width: w, Kind: kind}
	}
	return nil
}

func (b *Bus) write(addr uint32, w Width, val uint32) (*Region, ErrorKind) {
	r, off, kind := b.locate(addr, w)
	if kind != Ok {
		return r, kind
	}
	if !r.writable {
		r.stats.Violations++
		return r, ReadOnlyViolation
	}
	if !inBounds(r, off, w) {
		r.stats.Violations++
		return r, OutOfBounds
	}

	r.stats.Writes++
	r.stats.LastWrite = addr
	r.stats.Accessed = true
	hwio.PutBE(r.buf[off:], w.Bytes(), val)
	return r, Ok
}

// Peek reads a w-bit value at addr without side effects: statistics are left
// untouched and no event is emitted.
func (b *Bus) Peek(addr uint32, w Width) (uint32, error) {
	r, off, kind := b.locate(addr, w)
	if kind == Ok && !inBounds(r, off, w) {
		kind = OutOfBounds
	}
	if kind != Ok {
		return 0, &AccessError{Op: OpRead, Addr: addr, Width: w, Kind: kind}
	}
	return hwio.GetBE(r.buf[off:], w.Bytes()), nil
}

// Peek8 is a convenience function.
func (b *Bus) Peek8(addr uint32) (uint8, error) {
	val, err := b.Peek(addr, Width8)
	return uint8(val), err
}

func (b *Bus) Read8(addr uint32) (uint32, error)  { return b.Read(addr, Width8) }
func (b *Bus) Read16(addr uint32) (uint32, error) { return b.Read(addr, Width16) }
func (b *Bus) Read32(addr uint32) (uint32, error) { return b.Read(addr, Width32) }

func (b *Bus) Write8(addr uint32, val uint8) error   { return b.Write(addr, Width8, uint32(val)) }
func (b *Bus) Write16(addr uint32, val uint16) error { return b.Write(addr, Width16, uint32(val)) }
func (b *Bus) Write32(addr uint32, val uint32) error { return b.Write(addr, Width32, val) }
