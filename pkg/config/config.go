package config

import (
	"strings"

	"github.com/palchukovsky/logreader/pkg/errors"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ColorMode selects when diagnostics are colored
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// Config is the effective logreader configuration
type Config struct {
	Reader  Reader  `koanf:"reader" toml:"reader" yaml:"reader"`
	Mask    Mask    `koanf:"mask" toml:"mask" yaml:"mask"`
	Output  Output  `koanf:"output" toml:"output" yaml:"output"`
	Logging Logging `koanf:"logging" toml:"logging" yaml:"logging"`
}

// Reader configures record reading
type Reader struct {
	// BufferSize bounds the bytes copied per record, terminator included
	BufferSize int `koanf:"buffer_size" toml:"buffer_size" yaml:"buffer_size"`
}

// Mask configures mask compilation
type Mask struct {
	// MaxRules caps compiled sequences, 0 means unlimited
	MaxRules int `koanf:"max_rules" toml:"max_rules" yaml:"max_rules"`
}

// Output configures diagnostics
type Output struct {
	Color ColorMode `koanf:"color" toml:"color" yaml:"color"`
}

// Logging configures the log file
type Logging struct {
	File bool `koanf:"file" toml:"file" yaml:"file"`
}

// Validate checks value ranges
func (c *Config) Validate() error {
	if c.Reader.BufferSize < 1 {
		return errors.Newf(errors.ErrConfigValid, "reader.buffer_size must be at least 1, got %d", c.Reader.BufferSize).
			WithDetail("key", "reader.buffer_size")
	}
	if c.Mask.MaxRules < 0 {
		return errors.Newf(errors.ErrConfigValid, "mask.max_rules must not be negative, got %d", c.Mask.MaxRules).
			WithDetail("key", "mask.max_rules")
	}
	switch c.Output.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return errors.Newf(errors.ErrConfigValid, "output.color must be auto, always or never, got %q", c.Output.Color).
			WithDetail("key", "output.color")
	}
	return nil
}

// Marshal renders c as "toml" or "yaml"
func (c *Config) Marshal(format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "toml":
		data, err := toml.Marshal(c)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrInternal, "failed to marshal configuration as toml")
		}
		return data, nil
	case "yaml", "yml":
		data, err := yaml.Marshal(c)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrInternal, "failed to marshal configuration as yaml")
		}
		return data, nil
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown format %q", format).
			WithDetail("format", format)
	}
}
