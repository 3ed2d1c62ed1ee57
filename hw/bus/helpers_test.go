package bus_test

import (
	"errors"
	"testing"

	"m68kmem/hw/bus"
)

type testBus struct {
	t testing.TB
	*bus.Bus
	rec bus.Recorder
}

func newTestBus(tb testing.TB) *testBus {
	tb.Helper()

	tbus := &testBus{t: tb, Bus: bus.New(bus.Config{Name: "test"})}
	tbus.SetListener(&tbus.rec)
	return tbus
}

func (tb *testBus) mustMap(base, end uint32, writable bool) *bus.Region {
	tb.t.Helper()

	r, err := tb.Map(base, end, writable)
	if err != nil {
		tb.t.Fatalf("Map(%08X, %08X) failed: %v", base, end, err)
	}
	return r
}

func (tb *testBus) wantRead(addr uint32, w bus.Width, want uint32) {
	tb.t.Helper()

	got, err := tb.Read(addr, w)
	if err != nil {
		tb.t.Errorf("Read%s(%08X) failed: %v", w, addr, err)
		return
	}
	if got != want {
		tb.t.Errorf("Read%s(%08X) = %08X, want %08X", w, addr, got, want)
	}
}

func (tb *testBus) write(addr uint32, w bus.Width, val uint32) {
	tb.t.Helper()

	if err := tb.Write(addr, w, val); err != nil {
		tb.t.Errorf("Write%s(%08X, %08X) failed: %v", w, addr, val, err)
	}
}

func wantKind(t testing.TB, err error, want bus.ErrorKind) {
	t.Helper()

	if !errors.Is(err, want) {
		t.Errorf("got error %v, want kind %s", err, want)
	}
	if got := bus.KindOf(err); got != want {
		t.Errorf("KindOf(%v) = %s, want %s", err, got, want)
	}
}
