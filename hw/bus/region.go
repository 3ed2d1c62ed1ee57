package bus

// UsageStats records how a region has been accessed. Counters only ever grow.
type UsageStats struct {
	Reads      uint64
	Writes     uint64
	Moves      uint64
	Violations uint64 // permission and bounds failures

	LastRead     uint32
	LastWrite    uint32
	LastMoveSrc  uint32
	LastMoveDest uint32

	// Accessed is set by the first successful read or write and stays set.
	Accessed bool
}

// Region is a contiguous span of the address space backed by its own memory
// buffer. Regions are created by Bus.Map and live as long as the bus.
type Region struct {
	name     string
	index    int
	base     uint32
	size     uint32
	writable bool
	buf      []byte
	stats    UsageStats
}

func newRegion(name string, index int, base, size uint32, writable bool) *Region {
	return &Region{
		name:     name,
		index:    index,
		base:     base,
		size:     size,
		writable: writable,
		buf:      make([]byte, size),
	}
}

func (r *Region) Name() string   { return r.name }
func (r *Region) Index() int     { return r.index }
func (r *Region) Base() uint32   { return r.base }
func (r *Region) End() uint32    { return r.base + r.size - 1 }
func (r *Region) Size() uint32   { return r.size }
func (r *Region) Writable() bool { return r.writable }

// Stats returns a copy of the region usage statistics.
func (r *Region) Stats() UsageStats { return r.stats }

// Contains reports whether addr falls within the region.
func (r *Region) Contains(addr uint32) bool {
	return addr >= r.base && uint64(addr) < uint64(r.base)+uint64(r.size)
}

// Load copies data into the region buffer, starting at offset off from the
// region base. It ignores permissions and leaves statistics untouched, which
// makes it suitable to preload ROM images.
func (r *Region) Load(off uint32, data []byte) error {
	if uint64(off)+uint64(len(data)) > uint64(r.size) {
		return &AccessError{Op: OpMap, Addr: r.base + off, Kind: OutOfBounds}
	}
	copy(r.buf[off:], data)
	return nil
}

// Contents returns a copy of the region buffer.
func (r *Region) Contents() []byte {
	return append([]byte(nil), r.buf...)
}

func (r *Region) id() int {
	if r == nil {
		return -1
	}
	return r.index
}
