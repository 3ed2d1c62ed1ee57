package bus_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"m68kmem/hw/bus"
)

func TestReadWriteScenario(t *testing.T) {
	tb := newTestBus(t)
	tb.mustMap(0x1000, 0x1FFF, true)

	tb.write(0x1000, bus.Width8, 0xAA)
	tb.wantRead(0x1000, bus.Width8, 0xAA)

	tb.write(0x1010, bus.Width16, 0xBBCC)
	tb.wantRead(0x1010, bus.Width16, 0xBBCC)

	tb.write(0x1020, bus.Width32, 0x13400000)
	tb.wantRead(0x1020, bus.Width32, 0x13400000)

	val, err := tb.Read32(0xFFFFFFF0)
	if val != 0 {
		t.Errorf("Read32(FFFFFFF0) = %08X, want 0", val)
	}
	wantKind(t, err, bus.ReservedRange)
}

func TestBigEndianLayout(t *testing.T) {
	tb := newTestBus(t)
	r := tb.mustMap(0x100, 0x10F, true)

	tb.write(0x100, bus.Width32, 0x11223344)
	tb.write(0x104, bus.Width16, 0x5566)

	want := []byte{0x11, 0x22, 0x33, 0x44, 0x55, 0x66}
	if diff := cmp.Diff(want, r.Contents()[:6]); diff != "" {
		t.Errorf("buffer mismatch (-want +got):\n%s", diff)
	}

	tb.wantRead(0x101, bus.Width16, 0x2233)
	tb.wantRead(0x103, bus.Width8, 0x44)
	tb.wantRead(0x102, bus.Width32, 0x33445566)
}

func TestWriteTruncatesValue(t *testing.T) {
	tb := newTestBus(t)
	tb.mustMap(0x0, 0xF, true)

	tb.write(0x0, bus.Width8, 0x123456AA)
	tb.wantRead(0x0, bus.Width8, 0xAA)
	tb.wantRead(0x1, bus.Width8, 0x00)

	tb.write(0x4, bus.Width16, 0xDEADBEEF)
	tb.wantRead(0x4, bus.Width16, 0xBEEF)
	tb.wantRead(0x6, bus.Width8, 0x00)
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		w   bus.Width
		val uint32
	}{
		{bus.Width8, 0x00},
		{bus.Width8, 0x7F},
		{bus.Width8, 0xFF},
		{bus.Width16, 0x8001},
		{bus.Width16, 0xFFFF},
		{bus.Width32, 0x80000000},
		{bus.Width32, 0xFFFFFFFF},
		{bus.Width32, 0x01020304},
	}

	tb := newTestBus(t)
	tb.mustMap(0x4000, 0x40FF, true)
	for _, tt := range tests {
		for _, addr := range []uint32{0x4000, 0x4001, 0x4080, 0x4100 - uint32(tt.w.Bytes())} {
			tb.write(addr, tt.w, tt.val)
			tb.wantRead(addr, tt.w, tt.val)
		}
	}
}

func TestBoundary(t *testing.T) {
	for _, w := range []bus.Width{bus.Width16, bus.Width32} {
		t.Run("width"+w.String(), func(t *testing.T) {
			tb := newTestBus(t)
			r := tb.mustMap(0x2000, 0x20FF, true)

			last := r.Base() + r.Size() - uint32(w.Bytes())
			tb.write(last, w, 0xFFFF)
			tb.wantRead(last, w, 0xFFFF)

			val, err := tb.Read(last+1, w)
			if val != 0 {
				t.Errorf("Read%s(%08X) = %08X, want 0", w, last+1, val)
			}
			wantKind(t, err, bus.OutOfBounds)
			wantKind(t, tb.Write(last+1, w, 0x1234), bus.OutOfBounds)

			if got := r.Stats().Violations; got != 2 {
				t.Errorf("Violations = %d, want 2", got)
			}
		})
	}

	t.Run("width8", func(t *testing.T) {
		tb := newTestBus(t)
		r := tb.mustMap(0x2000, 0x20FF, true)
		tb.write(r.End(), bus.Width8, 0x42)
		tb.wantRead(r.End(), bus.Width8, 0x42)

		// One past the end is outside the region altogether.
		_, err := tb.Read8(r.End() + 1)
		wantKind(t, err, bus.Unmapped)
	})
}

func TestReadOnlyRegion(t *testing.T) {
	tb := newTestBus(t)
	r := tb.mustMap(0x8000, 0x80FF, false)
	if err := r.Load(0x10, []byte{0xCA, 0xFE}); err != nil {
		t.Fatal(err)
	}

	before := r.Contents()
	for _, w := range []bus.Width{bus.Width8, bus.Width16, bus.Width32} {
		err := tb.Write(0x8010, w, 0x12345678)
		wantKind(t, err, bus.ReadOnlyViolation)
	}
	if !bytes.Equal(before, r.Contents()) {
		t.Errorf("read-only region buffer was modified")
	}

	tb.wantRead(0x8010, bus.Width16, 0xCAFE)

	st := r.Stats()
	if st.Violations != 3 || st.Writes != 0 || st.Reads != 1 {
		t.Errorf("stats = %+v, want 3 violations, 0 writes, 1 read", st)
	}
}

func TestPermissionCheckedBeforeBounds(t *testing.T) {
	tb := newTestBus(t)
	r := tb.mustMap(0x8000, 0x80FF, false)

	// A 32-bit write at the last byte is both read-only and out of bounds.
	err := tb.Write32(r.End(), 0xFFFFFFFF)
	wantKind(t, err, bus.ReadOnlyViolation)
	if got := r.Stats().Violations; got != 1 {
		t.Errorf("Violations = %d, want 1", got)
	}
}

func TestUnmapped(t *testing.T) {
	tb := newTestBus(t)
	tb.mustMap(0x1000, 0x1FFF, true)
	tb.mustMap(0x3000, 0x3FFF, true)

	for _, addr := range []uint32{0x0, 0xFFF, 0x2000, 0x2FFF, 0x4000, 0xFFFFFF} {
		val, err := tb.Read32(addr)
		if val != 0 {
			t.Errorf("Read32(%08X) = %08X, want 0", addr, val)
		}
		wantKind(t, err, bus.Unmapped)
		wantKind(t, tb.Write8(addr, 0x12), bus.Unmapped)
	}
}

func TestReservedRange(t *testing.T) {
	tb := newTestBus(t)
	tb.mustMap(0x0, 0xFFFF, true)

	for _, addr := range []uint32{bus.DefaultExtent, bus.DefaultExtent + 1, 0xFFFFFFFF} {
		_, err := tb.Read8(addr)
		wantKind(t, err, bus.ReservedRange)
		wantKind(t, tb.Write16(addr, 0x1234), bus.ReservedRange)
	}
}

func TestInvalidWidth(t *testing.T) {
	tb := newTestBus(t)
	tb.mustMap(0x0, 0xFF, true)

	_, err := tb.Read(0x10, bus.Width(24))
	wantKind(t, err, bus.InvalidSize)
	wantKind(t, tb.Write(0x10, bus.Width(0), 1), bus.InvalidSize)
}

func TestStatistics(t *testing.T) {
	tb := newTestBus(t)
	r := tb.mustMap(0x1000, 0x1FFF, true)

	if r.Stats().Accessed {
		t.Fatalf("fresh region should not be accessed")
	}

	const K, M = 7, 5
	for i := range M {
		tb.write(0x1000+uint32(i)*4, bus.Width32, uint32(i))
	}
	for i := range K {
		tb.wantRead(0x1000+uint32(i%M)*4, bus.Width32, uint32(i%M))
	}

	// Failed accesses only count as violations.
	tb.Read32(0x1FFE)
	tb.Write16(0x1FFF, 0)

	want := bus.UsageStats{
		Reads:      K,
		Writes:     M,
		Violations: 2,
		LastRead:   0x1000 + uint32((K-1)%M)*4,
		LastWrite:  0x1000 + (M-1)*4,
		Accessed:   true,
	}
	if diff := cmp.Diff(want, r.Stats()); diff != "" {
		t.Errorf("stats mismatch (-want +got):\n%s", diff)
	}
}

func TestPeek(t *testing.T) {
	tb := newTestBus(t)
	r := tb.mustMap(0x1000, 0x10FF, true)
	tb.write(0x1000, bus.Width16, 0xABCD)
	tb.rec.Reset()

	got, err := tb.Peek8(0x1001)
	if err != nil || got != 0xCD {
		t.Errorf("Peek8(1001) = %02X, %v, want CD, nil", got, err)
	}
	_, err = tb.Peek(0x10FF, bus.Width16)
	wantKind(t, err, bus.OutOfBounds)

	st := r.Stats()
	if st.Reads != 0 || st.Violations != 0 {
		t.Errorf("Peek modified stats: %+v", st)
	}
	if len(tb.rec.Events) != 0 {
		t.Errorf("Peek emitted %d events", len(tb.rec.Events))
	}
}

func TestEvents(t *testing.T) {
	tb := newTestBus(t)
	tb.mustMap(0x1000, 0x1FFF, true)
	tb.write(0x1000, bus.Width8, 0xAA)
	tb.wantRead(0x1000, bus.Width8, 0xAA)
	tb.Read16(0x5000)

	want := []bus.Event{
		{Op: bus.OpMap, Addr: 0x1000, Dest: 0x1FFF, Value: 0x1000, Err: bus.Ok, Region: 0},
		{Op: bus.OpWrite, Addr: 0x1000, Width: bus.Width8, Value: 0xAA, Err: bus.Ok, Region: 0},
		{Op: bus.OpRead, Addr: 0x1000, Width: bus.Width8, Value: 0xAA, Err: bus.Ok, Region: 0},
		{Op: bus.OpRead, Addr: 0x5000, Width: bus.Width16, Err: bus.Unmapped, Region: -1},
	}
	if diff := cmp.Diff(want, tb.rec.Events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestSetNilListener(t *testing.T) {
	b := bus.New(bus.Config{})
	b.SetListener(nil)
	if _, err := b.Map(0, 0xF, true); err != nil {
		t.Fatal(err)
	}
	if err := b.Write8(0, 1); err != nil {
		t.Fatal(err)
	}
}

func TestAccessError(t *testing.T) {
	tb := newTestBus(t)
	_, err := tb.Read32(0x1234)

	var aerr *bus.AccessError
	if !errors.As(err, &aerr) {
		t.Fatalf("error %v is not an *AccessError", err)
	}
	want := bus.AccessError{Op: bus.OpRead, Addr: 0x1234, Width: bus.Width32, Kind: bus.Unmapped}
	if *aerr != want {
		t.Errorf("got %+v, want %+v", *aerr, want)
	}
	if aerr.Class() != bus.BadRead {
		t.Errorf("Class() = %s, want BadRead", aerr.Class())
	}
	const wantMsg = "bus: read32 at $00001234: address not mapped to any region"
	if err.Error() != wantMsg {
		t.Errorf("Error() = %q, want %q", err.Error(), wantMsg)
	}

	err = tb.Write8(0x1234, 0)
	if !errors.As(err, &aerr) || aerr.Class() != bus.BadWrite {
		t.Errorf("write error class = %v, want BadWrite", err)
	}
}

func TestMultiListener(t *testing.T) {
	var rec1, rec2 bus.Recorder
	var order []int
	b := bus.New(bus.Config{})
	b.SetListener(bus.Multi(
		&rec1,
		bus.ListenerFunc(func(bus.Event) { order = append(order, 1) }),
		&rec2,
		bus.ListenerFunc(func(bus.Event) { order = append(order, 2) }),
	))

	if _, err := b.Map(0x0, 0xF, true); err != nil {
		t.Fatal(err)
	}
	b.Write8(0x0, 0x11)

	if len(rec1.Events) != 2 {
		t.Fatalf("got %d events, want 2", len(rec1.Events))
	}
	if diff := cmp.Diff(rec1.Events, rec2.Events); diff != "" {
		t.Errorf("listeners saw different events (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff([]int{1, 2, 1, 2}, order); diff != "" {
		t.Errorf("call order mismatch (-want +got):\n%s", diff)
	}
}
