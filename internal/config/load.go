package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// KeyDelimiter separates nested keys in the viper instance. Dots are left
// free for color tokens such as "highlight.bg".
const KeyDelimiter = "::"

// NewViper returns a viper instance using KeyDelimiter.
func NewViper() *viper.Viper {
	return viper.NewWithOptions(viper.KeyDelimiter(KeyDelimiter))
}

// Load decodes the settings read by v over Defaults and validates the result.
func Load(v *viper.Viper) (Config, error) {
	cfg := Defaults()
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
