package main

import (
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/go-faster/errors"

	"m68kmem/hw/bus"
	"m68kmem/hw/trace"
)

type BusConfig struct {
	Extent     uint64 `toml:"extent"`
	MaxRegions int    `toml:"max_regions"`
}

type TraceConfig struct {
	Basic   bool `toml:"basic"`
	Verbose bool `toml:"verbose"`
}

type Config struct {
	Bus   BusConfig   `toml:"bus"`
	Trace TraceConfig `toml:"trace"`
}

var defaultConfig = Config{
	Bus: BusConfig{
		Extent:     bus.DefaultExtent,
		MaxRegions: bus.DefaultMaxRegions,
	},
	Trace: TraceConfig{
		Basic:   true,
		Verbose: false,
	},
}

// ConfigDir is the m68kmem directory in the user config directory, empty if
// the latter can't be determined.
var ConfigDir = sync.OnceValue(func() string {
	cfgdir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(cfgdir, "m68kmem")
})

const cfgFilename = "config.toml"

// LoadConfigOrDefault loads the configuration file at path or, if path is
// empty, from the m68kmem config directory. Settings missing from the file
// keep their default value. A missing file in the config directory isn't an
// error.
func LoadConfigOrDefault(path string) (Config, error) {
	cfg := defaultConfig

	explicit := path != ""
	if !explicit {
		if ConfigDir() == "" {
			return cfg, nil
		}
		path = filepath.Join(ConfigDir(), cfgFilename)
	}

	md, err := toml.DecodeFile(path, &cfg)
	switch {
	case errors.Is(err, fs.ErrNotExist) && !explicit:
		return defaultConfig, nil
	case err != nil:
		return defaultConfig, errors.Wrap(err, "load config")
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		return defaultConfig, errors.Errorf("%s: unknown key %q", path, undec[0].String())
	}
	return cfg, nil
}

func (c Config) busConfig(name string) bus.Config {
	return bus.Config{
		Name:       name,
		Extent:     c.Bus.Extent,
		MaxRegions: c.Bus.MaxRegions,
	}
}

func (c TraceConfig) flags(verbose bool) trace.Flags {
	var flags trace.Flags
	if c.Basic {
		flags |= trace.Basic
	}
	if c.Verbose || verbose {
		flags |= trace.Verbose
	}
	return flags
}
