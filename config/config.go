// Package config handles bfm.toml run configuration.
package config

import (
	"errors"
	"os"

	"github.com/BurntSushi/toml"
)

// Config is a bfm run configuration. Flags given on the command line
// override it; it overrides the built-in defaults.
type Config struct {
	Trace     bool   `toml:"trace"`      // Per-step execution trace.
	StepLimit int    `toml:"step_limit"` // Abort after this many instructions (0 = unlimited).
	Input     string `toml:"input"`      // Program input source ("-" = stdin).
	Output    string `toml:"output"`     // Program output sink ("-" = stdout).
	Dump      string `toml:"dump"`       // Write the final machine snapshot here ("" = none).
}

// Default returns the built-in configuration.
func Default() (cfg *Config) {
	cfg = &Config{
		Input:  "-",
		Output: "-",
	}

	return
}

// Load parses a bfm.toml file. Fields the file does not set keep their
// default values.
func Load(path string) (cfg *Config, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		err = errors.Join(ErrConfigRead, err)
		return
	}

	cfg = Default()
	err = toml.Unmarshal(data, cfg)
	if err != nil {
		cfg = nil
		err = errors.Join(ErrConfigParse, err)
	}

	return
}
