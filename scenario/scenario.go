// Package scenario loads and runs bus validation scripts.
//
// A scenario is a TOML document listing regions to map, then steps to run
// against the resulting bus, each with an optional expected value and
// outcome:
//
//	name = "ram round trip"
//
//	[[region]]
//	base = 0x1000
//	end = 0x1FFF
//	writable = true
//
//	[[step]]
//	op = "write"
//	width = 16
//	addr = 0x1010
//	value = 0xBBCC
//
//	[[step]]
//	op = "read"
//	width = 16
//	addr = 0x1010
//	expect = 0xBBCC
package scenario

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-faster/errors"

	"m68kmem/hw/bus"
)

type File struct {
	Name    string   `toml:"name"`
	Bus     Bus      `toml:"bus"`
	Regions []Region `toml:"region"`
	Steps   []Step   `toml:"step"`
}

// Bus overrides the bus configuration. Zero fields keep the defaults.
type Bus struct {
	Extent     uint64 `toml:"extent"`
	MaxRegions int    `toml:"max_regions"`
}

type Region struct {
	Name     string `toml:"name"`
	Base     uint32 `toml:"base"`
	End      uint32 `toml:"end"`
	Writable bool   `toml:"writable"`

	// Data is loaded at the region base after mapping.
	Data []int `toml:"data"`

	// ExpectErr is the expected registration outcome.
	ExpectErr bus.ErrorKind `toml:"expect_err"`
}

// Step operations.
const (
	OpRead  = "read"
	OpWrite = "write"
	OpMove  = "move"
	OpPeek  = "peek"
)

type Step struct {
	Op    string `toml:"op"`
	Width int    `toml:"width"` // defaults to 8

	Addr  uint32 `toml:"addr"`
	Value uint32 `toml:"value"`

	Src   uint32 `toml:"src"`
	Dest  uint32 `toml:"dest"`
	Count uint32 `toml:"count"`

	// Expect is the value a read or peek must return.
	Expect    *uint32       `toml:"expect"`
	ExpectErr bus.ErrorKind `toml:"expect_err"`
}

// width returns the access width of s. Widths the bus doesn't support map to
// the zero Width, which the bus rejects with InvalidSize.
func (s Step) width() bus.Width {
	switch s.Width {
	case 0:
		return bus.Width8
	case 8, 16, 32:
		return bus.Width(s.Width)
	}
	return 0
}

func (s Step) String() string {
	w := s.width()
	switch s.Op {
	case OpWrite:
		return fmt.Sprintf("write%s $%08X <- $%X", w, s.Addr, s.Value)
	case OpMove:
		return fmt.Sprintf("move%s $%08X -> $%08X (%d bytes)", w, s.Src, s.Dest, s.Count)
	}
	return fmt.Sprintf("%s%s $%08X", s.Op, w, s.Addr)
}

// Load reads and validates the scenario file at path. When the file doesn't
// name the scenario, the file name is used.
func Load(path string) (*File, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "load scenario")
	}
	f, err := Parse(string(buf))
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	if f.Name == "" {
		f.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return f, nil
}

// Parse decodes and validates a scenario document. Unknown keys are rejected.
func Parse(doc string) (*File, error) {
	var f File
	md, err := toml.Decode(doc, &f)
	if err != nil {
		return nil, errors.Wrap(err, "decode scenario")
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		return nil, errors.Errorf("unknown key %q", undec[0].String())
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate checks that all steps are well-formed.
func (f *File) Validate() error {
	for i, r := range f.Regions {
		for j, v := range r.Data {
			if v < 0 || v > 0xFF {
				return errors.Errorf("region %d: data[%d] = %d is not a byte", i, j, v)
			}
		}
		if len(r.Data) > 0 && r.ExpectErr != bus.Ok {
			return errors.Errorf("region %d: data given for a region expected to fail", i)
		}
	}

	for i, s := range f.Steps {
		switch s.Op {
		case OpRead, OpWrite, OpMove, OpPeek:
		default:
			return errors.Errorf("step %d: unknown op %q", i, s.Op)
		}
		switch s.Width {
		case 0, 8, 16, 32:
		default:
			return errors.Errorf("step %d: invalid width %d", i, s.Width)
		}
		if s.Expect != nil && s.Op != OpRead && s.Op != OpPeek {
			return errors.Errorf("step %d: expect is only valid for reads", i)
		}
	}
	return nil
}

func (r Region) bytes() []byte {
	buf := make([]byte, len(r.Data))
	for i, v := range r.Data {
		buf[i] = byte(v)
	}
	return buf
}
