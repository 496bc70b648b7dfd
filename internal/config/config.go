package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config holds all runtime configuration for a sunrise invocation.
// Values are populated from the optional config file and CLI flags.
type Config struct {
	Inline        bool          `mapstructure:"inline"`
	Verbose       bool          `mapstructure:"verbose"`
	Color         bool          `mapstructure:"color"`
	Hidden        bool          `mapstructure:"hidden"`
	Indent        int           `mapstructure:"indent"`
	WatchDebounce time.Duration `mapstructure:"watch_debounce"`
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file or flags.
func Load() (Config, error) {
	viper.SetDefault("inline", false)
	viper.SetDefault("verbose", false)
	viper.SetDefault("color", true)
	viper.SetDefault("hidden", false)
	viper.SetDefault("indent", 2)
	viper.SetDefault("watch_debounce", 150*time.Millisecond)

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.Indent < 1 {
		cfg.Indent = 2
	}
	return cfg, nil
}
