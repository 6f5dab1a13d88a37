package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/v2"
	"github.com/palchukovsky/logreader/pkg/errors"
)

// Load builds, decodes and validates the configuration
func Load(opts LoadOptions) (*Config, error) {
	k, err := NewKoanf(opts)
	if err != nil {
		return nil, err
	}

	cfg, err := unmarshal(k)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func unmarshal(k *koanf.Koanf) (*Config, error) {
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				stringToColorModeHookFunc(),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}
	return &cfg, nil
}

func stringToColorModeHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if t != reflect.TypeOf(ColorMode("")) {
			return data, nil
		}
		switch v := data.(type) {
		case string:
			return ColorMode(strings.ToLower(strings.TrimSpace(v))), nil
		case bool:
			// color = true / false in hand-written files
			if v {
				return ColorAlways, nil
			}
			return ColorNever, nil
		default:
			return nil, fmt.Errorf("cannot use %T as a color mode", data)
		}
	}
}
