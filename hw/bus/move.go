package bus

import (
	"math"

	"m68kmem/emu/log"
)

// Move copies count bytes from src to dest, as a sequence of w-bit reads and
// writes. count is always a byte count; when it isn't a multiple of the access
// size the last chunk is copied whole.
//
// Each chunk goes through Read and Write, so per-access checks, statistics and
// events apply to every chunk. The copy isn't atomic: a failing chunk stops
// the move and whatever was copied until then stays in place.
//
// A read-only destination is rejected before any chunk is copied.
func (b *Bus) Move(src, dest uint32, w Width, count uint32) error {
	ev := Event{Op: OpMove, Addr: src, Dest: dest, Width: w, Value: count, Region: -1}
	err := b.move(src, dest, w, count, &ev)
	ev.Err = KindOf(err)
	b.emit(ev)

	if err != nil {
		log.ModBus.DebugZ("bad move").
			String("bus", b.name).
			Hex32("src", src).
			Hex32("dest", dest).
			Stringer("size", w).
			Uint("count", uint64(count)).
			Error("err", err).
			End()
	}
	return err
}

func (b *Bus) move(src, dest uint32, w Width, count uint32, ev *Event) error {
	moveErr := func(addr uint32, kind ErrorKind) error {
		return &AccessError{Op: OpMove, Addr: addr, Width: w, Kind: kind}
	}

	rsrc, _, kind := b.locate(src, w)
	if kind != Ok {
		return moveErr(src, kind)
	}
	rdst, _, kind := b.locate(dest, w)
	if kind != Ok {
		return moveErr(dest, kind)
	}
	ev.Region = rsrc.index

	if !rdst.writable {
		rdst.stats.Violations++
		return moveErr(dest, ReadOnlyViolation)
	}

	step := uint64(w.Bytes())
	for i := uint64(0); i < uint64(count); i += step {
		s, d := uint64(src)+i, uint64(dest)+i
		if s > math.MaxUint32 {
			return moveErr(src, Overflow)
		}
		if d > math.MaxUint32 {
			return moveErr(dest, Overflow)
		}

		val, err := b.Read(uint32(s), w)
		if err != nil {
			return err
		}
		if err := b.Write(uint32(d), w, val); err != nil {
			return err
		}
	}

	rsrc.stats.Moves++
	rsrc.stats.LastMoveSrc = src
	rsrc.stats.LastMoveDest = dest
	if rdst != rsrc {
		rdst.stats.Moves++
		rdst.stats.LastMoveSrc = src
		rdst.stats.LastMoveDest = dest
	}
	return nil
}

func (b *Bus) Move8(src, dest, count uint32) error  { return b.Move(src, dest, Width8, count) }
func (b *Bus) Move16(src, dest, count uint32) error { return b.Move(src, dest, Width16, count) }
func (b *Bus) Move32(src, dest, count uint32) error { return b.Move(src, dest, Width32, count) }
