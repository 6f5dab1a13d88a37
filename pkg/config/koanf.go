package config

import (
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/palchukovsky/logreader/pkg/errors"
	"github.com/palchukovsky/logreader/pkg/paths"
)

// EnvPrefix prefixes every configuration environment variable
const EnvPrefix = "LOGREADER_"

// LoadOptions selects the sources layered over the embedded defaults
type LoadOptions struct {
	// File is an explicit config file. It must exist. When empty the user
	// config file is used if present.
	File string
	// Overrides are applied last, keyed by dotted path ("reader.buffer_size")
	Overrides map[string]interface{}
}

// NewKoanf loads every configuration layer into a koanf instance
func NewKoanf(opts LoadOptions) (*koanf.Koanf, error) {
	k := koanf.New(".")

	// 1. Load embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	// 2. Load config file
	path := paths.ExpandHome(opts.File)
	if path == "" {
		path = UserConfigPath()
		if _, err := os.Stat(path); err != nil {
			path = ""
		}
	}
	if path != "" {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			code := errors.ErrConfigParse
			if os.IsNotExist(err) {
				code = errors.ErrConfigLoad
			}
			return nil, errors.Wrapf(err, code, "failed to load config from %s", path).
				WithDetail("path", path)
		}
	}

	// 3. Load env vars
	err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}

	// 4. Load overrides
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load overrides")
		}
	}

	return k, nil
}

// envKey maps LOGREADER_READER__BUFFER_SIZE to reader.buffer_size
func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
}

// UserConfigPath returns the default config file location
func UserConfigPath() string {
	return paths.ConfigFilePath()
}
