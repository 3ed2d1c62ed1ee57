// Package trace renders bus events as text lines, one per event.
package trace

import (
	"io"
	"strconv"

	"m68kmem/hw/bus"
)

// Flags select the categories of trace output.
type Flags uint8

const (
	Basic   Flags = 1 << iota // one line per bus event
	Verbose                   // error details and region registrations

	All = Basic | Verbose
)

// Tag returns the one-letter code of an event: R/W for reads and writes, r/w
// for failed ones, M for region registrations and O for moves.
func Tag(ev bus.Event) byte {
	switch ev.Op {
	case bus.OpRead:
		if ev.Err != bus.Ok {
			return 'r'
		}
		return 'R'
	case bus.OpWrite:
		if ev.Err != bus.Ok {
			return 'w'
		}
		return 'W'
	case bus.OpMap:
		return 'M'
	case bus.OpMove:
		return 'O'
	}
	return '?'
}

// Tracer is a bus.Listener writing trace lines to an io.Writer.
type Tracer struct {
	w     io.Writer
	flags Flags
	buf   []byte
}

func New(w io.Writer, flags Flags) *Tracer {
	return &Tracer{w: w, flags: flags, buf: make([]byte, 0, 96)}
}

func (t *Tracer) Enable(f Flags) { t.flags |= f }
func (t *Tracer) Disable(f Flags) { t.flags &^= f }
func (t *Tracer) Enabled(f Flags) bool { return t.flags&f != 0 }
func (t *Tracer) BusEvent(ev bus.Event) { t.write(ev) }

func hexEncode(dst []byte, v byte) {
	const hextable = "0123456789abcdef"
	dst[0] = hextable[v>>4]
	dst[1] = hextable[v&0x0f]
}

func appendHex32(buf []byte, v uint32) []byte {
	var tmp [10]byte
	tmp[0], tmp[1] = '0', 'x'
	hexEncode(tmp[2:], byte(v>>24))
	hexEncode(tmp[4:], byte(v>>16))
	hexEncode(tmp[6:], byte(v>>8))
	hexEncode(tmp[8:], byte(v))
	return append(buf, tmp[:]...)
}

func (t *Tracer) write(ev bus.Event) {
	if t.Enabled(Basic) {
		buf := append(t.buf[:0], "[TRACE] "...)
		buf = append(buf, Tag(ev))
		buf = append(buf, " ADDR:"...)
		buf = appendHex32(buf, ev.Addr)
		buf = append(buf, " SIZE:"...)
		buf = strconv.AppendUint(buf, uint64(ev.Width), 10)
		buf = append(buf, " VALUE:"...)
		buf = appendHex32(buf, ev.Value)
		if ev.Op == bus.OpMove {
			buf = append(buf, " DEST:"...)
			buf = appendHex32(buf, ev.Dest)
		}
		buf = append(buf, '\n')
		t.w.Write(buf)
		t.buf = buf
	}

	if !t.Enabled(Verbose) {
		return
	}

	switch {
	case ev.Err != bus.Ok:
		buf := append(t.buf[:0], "[VERBOSE] "...)
		buf = append(buf, Tag(ev))
		buf = append(buf, " ADDR:"...)
		buf = appendHex32(buf, ev.Addr)
		buf = append(buf, " ERR:"...)
		buf = append(buf, ev.Err.String()...)
		buf = append(buf, " ("...)
		buf = append(buf, ev.Err.Description()...)
		buf = append(buf, ")\n"...)
		t.w.Write(buf)
		t.buf = buf
	case ev.Op == bus.OpMap:
		buf := append(t.buf[:0], "[VERBOSE] M region "...)
		buf = strconv.AppendInt(buf, int64(ev.Region), 10)
		buf = append(buf, " ["...)
		buf = appendHex32(buf, ev.Addr)
		buf = append(buf, '-')
		buf = appendHex32(buf, ev.Dest)
		buf = append(buf, "]\n"...)
		t.w.Write(buf)
		t.buf = buf
	}
}
