package bus

import (
	"math"

	"m68kmem/emu/log"
)

// regionTable is an append-only, fixed capacity list of regions. Registration
// order is also the resolution order.
type regionTable struct {
	regions []*Region
	max     int
}

func (t *regionTable) full() bool { return len(t.regions) >= t.max }

func (t *regionTable) add(r *Region) {
	t.regions = append(t.regions, r)
}

// search returns the first region containing addr.
func (t *regionTable) search(addr uint32) *Region {
	for _, r := range t.regions {
		if r.Contains(addr) {
			return r
		}
	}
	return nil
}

func (t *regionTable) overlapping(base, end uint32) *Region {
	for _, r := range t.regions {
		if base <= r.End() && end >= r.base {
			return r
		}
	}
	return nil
}

// Map registers a new zero-filled region covering [base, end].
func (b *Bus) Map(base, end uint32, writable bool) (*Region, error) {
	return b.MapNamed("", base, end, writable)
}

// MapNamed is like Map but gives the region a name, used for diagnostics.
//
// Overlapping ranges are accepted, the region registered first takes priority
// for the shared addresses.
func (b *Bus) MapNamed(name string, base, end uint32, writable bool) (*Region, error) {
	r, kind := b.mapRegion(name, base, end, writable)

	ev := Event{Op: OpMap, Addr: base, Dest: end, Err: kind, Region: r.id()}
	if r != nil {
		ev.Value = r.size
	}
	b.emit(ev)

	if kind != Ok {
		log.ModBus.DebugZ("region registration failed").
			String("bus", b.name).
			String("name", name).
			Hex32("base", base).
			Hex32("end", end).
			Stringer("err", kind).
			End()
		return nil, &AccessError{Op: OpMap, Addr: base, Kind: kind}
	}
	return r, nil
}

func (b *Bus) mapRegion(name string, base, end uint32, writable bool) (*Region, ErrorKind) {
	switch {
	case b.regions.full():
		return nil, TooManyRegions
	case uint64(end) >= b.extent:
		return nil, BusLimitExceeded
	case end < base:
		return nil, InvalidSize
	case uint64(end)-uint64(base)+1 > math.MaxUint32:
		return nil, Overflow
	}

	if prev := b.regions.overlapping(base, end); prev != nil {
		log.ModBus.WarnZ("overlapping region, earlier one takes priority").
			String("bus", b.name).
			Hex32("base", base).
			Hex32("end", end).
			Int("prev", prev.index).
			End()
	}

	r := newRegion(name, len(b.regions.regions), base, end-base+1, writable)
	b.regions.add(r)

	log.ModBus.DebugZ("mapping region").
		String("bus", b.name).
		String("name", name).
		Hex32("base", base).
		Hex32("end", end).
		Bool("ro", !writable).
		End()
	return r, Ok
}

// Resolve returns the region owning addr, or nil if addr is unmapped.
func (b *Bus) Resolve(addr uint32) *Region {
	return b.regions.search(addr)
}

// Regions returns all regions, in registration order.
func (b *Bus) Regions() []*Region {
	return append([]*Region(nil), b.regions.regions...)
}
