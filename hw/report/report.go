// Package report exports bus region statistics, as JSON or as text.
package report

import (
	"fmt"
	"io"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"

	"m68kmem/hw/bus"
)

type Region struct {
	Index    int
	Name     string
	Base     uint32
	End      uint32
	Size     uint32
	Writable bool
	Stats    bus.UsageStats
}

type Report struct {
	Bus     string
	Extent  uint64
	Regions []Region
}

// FromBus takes a snapshot of the statistics of b.
func FromBus(b *bus.Bus) Report {
	rep := Report{Bus: b.Name(), Extent: b.Extent()}
	for _, r := range b.Regions() {
		rep.Regions = append(rep.Regions, Region{
			Index:    r.Index(),
			Name:     r.Name(),
			Base:     r.Base(),
			End:      r.End(),
			Size:     r.Size(),
			Writable: r.Writable(),
			Stats:    r.Stats(),
		})
	}
	return rep
}

func (rep Report) Encode(e *jx.Encoder) {
	e.ObjStart()
	e.FieldStart("bus")
	e.Str(rep.Bus)
	e.FieldStart("extent")
	e.UInt64(rep.Extent)
	e.FieldStart("regions")
	e.ArrStart()
	for _, r := range rep.Regions {
		r.Encode(e)
	}
	e.ArrEnd()
	e.ObjEnd()
}

func (r Region) Encode(e *jx.Encoder) {
	e.ObjStart()
	e.FieldStart("index")
	e.Int(r.Index)
	e.FieldStart("name")
	e.Str(r.Name)
	e.FieldStart("base")
	e.UInt32(r.Base)
	e.FieldStart("end")
	e.UInt32(r.End)
	e.FieldStart("size")
	e.UInt32(r.Size)
	e.FieldStart("writable")
	e.Bool(r.Writable)
	e.FieldStart("reads")
	e.UInt64(r.Stats.Reads)
	e.FieldStart("writes")
	e.UInt64(r.Stats.Writes)
	e.FieldStart("moves")
	e.UInt64(r.Stats.Moves)
	e.FieldStart("violations")
	e.UInt64(r.Stats.Violations)
	e.FieldStart("last_read")
	e.UInt32(r.Stats.LastRead)
	e.FieldStart("last_write")
	e.UInt32(r.Stats.LastWrite)
	e.FieldStart("last_move_src")
	e.UInt32(r.Stats.LastMoveSrc)
	e.FieldStart("last_move_dest")
	e.UInt32(r.Stats.LastMoveDest)
	e.FieldStart("accessed")
	e.Bool(r.Stats.Accessed)
	e.ObjEnd()
}

func (rep *Report) Decode(d *jx.Decoder) error {
	return d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "bus":
			rep.Bus, err = d.Str()
		case "extent":
			rep.Extent, err = d.UInt64()
		case "regions":
			err = d.Arr(func(d *jx.Decoder) error {
				var r Region
				if err := r.Decode(d); err != nil {
					return err
				}
				rep.Regions = append(rep.Regions, r)
				return nil
			})
		default:
			err = d.Skip()
		}
		if err != nil {
			return errors.Wrap(err, key)
		}
		return nil
	})
}

func (r *Region) Decode(d *jx.Decoder) error {
	return d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "index":
			r.Index, err = d.Int()
		case "name":
			r.Name, err = d.Str()
		case "base":
			r.Base, err = d.UInt32()
		case "end":
			r.End, err = d.UInt32()
		case "size":
			r.Size, err = d.UInt32()
		case "writable":
			r.Writable, err = d.Bool()
		case "reads":
			r.Stats.Reads, err = d.UInt64()
		case "writes":
			r.Stats.Writes, err = d.UInt64()
		case "moves":
			r.Stats.Moves, err = d.UInt64()
		case "violations":
			r.Stats.Violations, err = d.UInt64()
		case "last_read":
			r.Stats.LastRead, err = d.UInt32()
		case "last_write":
			r.Stats.LastWrite, err = d.UInt32()
		case "last_move_src":
			r.Stats.LastMoveSrc, err = d.UInt32()
		case "last_move_dest":
			r.Stats.LastMoveDest, err = d.UInt32()
		case "accessed":
			r.Stats.Accessed, err = d.Bool()
		default:
			err = d.Skip()
		}
		if err != nil {
			return errors.Wrap(err, key)
		}
		return nil
	})
}

// WriteJSON writes rep as a single JSON document followed by a newline.
func (rep Report) WriteJSON(w io.Writer) error {
	var e jx.Encoder
	rep.Encode(&e)
	buf := append(e.Bytes(), '\n')
	if _, err := w.Write(buf); err != nil {
		return errors.Wrap(err, "write report")
	}
	return nil
}

// Parse decodes a report previously written by WriteJSON.
func Parse(data []byte) (Report, error) {
	var rep Report
	if err := rep.Decode(jx.DecodeBytes(data)); err != nil {
		return Report{}, errors.Wrap(err, "parse report")
	}
	return rep, nil
}

// WriteText writes a human readable summary of rep, one line per region.
func (rep Report) WriteText(w io.Writer) error {
	name := rep.Bus
	if name == "" {
		name = "bus"
	}
	if _, err := fmt.Fprintf(w, "%s: %d regions, extent $%X\n", name, len(rep.Regions), rep.Extent); err != nil {
		return err
	}
	for _, r := range rep.Regions {
		perm := "rw"
		if !r.Writable {
			perm = "ro"
		}
		_, err := fmt.Fprintf(w, "  #%d %-8s $%08X-$%08X %s  R:%d W:%d O:%d V:%d accessed:%t\n",
			r.Index, r.Name, r.Base, r.End, perm,
			r.Stats.Reads, r.Stats.Writes, r.Stats.Moves, r.Stats.Violations, r.Stats.Accessed)
		if err != nil {
			return err
		}
	}
	return nil
}
