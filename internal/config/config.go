// Package config loads the optional TOML file that overrides the default
// input and output paths.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/dendrascience/tidy-counts/columns"
	"github.com/dendrascience/tidy-counts/organize"
)

// DefaultPath is read when --config is not given. A missing default file is
// not an error.
const DefaultPath = "tidy-counts.toml"

type (
	Config struct {
		Dedupe   Dedupe   `toml:"dedupe"`
		Organize Organize `toml:"organize"`
	}
	Dedupe struct {
		Input  string `toml:"input"`
		Output string `toml:"output"`
		Column string `toml:"column"`
	}
	Organize struct {
		Source     string `toml:"source"`
		Target     string `toml:"target"`
		FirstMatch bool   `toml:"first_match"`
	}
)

// Default returns the compile-time defaults.
func Default() Config {
	return Config{
		Dedupe: Dedupe{
			Input:  columns.DefaultInput,
			Output: columns.DefaultOutput,
			Column: columns.DefaultColumn,
		},
		Organize: Organize{
			Source: organize.DefaultSource,
			Target: organize.DefaultTarget,
		},
	}
}

// Load reads path over the defaults. Keys missing from the file keep their
// default values. When required is false a missing file yields the defaults.
func Load(path string, required bool) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) && !required {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Default(), fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Default(), fmt.Errorf("unknown config key %q in %s", undecoded[0].String(), path)
	}
	return cfg, nil
}

// Policy returns the organize match policy the config selects.
func (o Organize) Policy() organize.MatchPolicy {
	if o.FirstMatch {
		return organize.FirstMatch
	}
	return organize.EveryMatch
}
