package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Stack   StackConfig
	Nested  NestedConfig
	Store   StoreConfig
	Logging LoggingConfig
}

// StackConfig holds overlay stacking settings.
type StackConfig struct {
	BaseZIndex int `mapstructure:"base_z_index"`
	Increment  int
}

// NestedConfig holds tree-selection settings.
type NestedConfig struct {
	Adapter   string
	Mandatory bool
}

// StoreConfig holds snapshot persistence settings.
type StoreConfig struct {
	Path string
}

// LoggingConfig holds slog settings.
type LoggingConfig struct {
	Level  string
	Format string
}

// Load reads configuration from file and env. Env var overrides use prefix GROVE_.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("stack.base_z_index", 2000)
	v.SetDefault("stack.increment", 10)
	v.SetDefault("nested.adapter", "classic")
	v.SetDefault("nested.mandatory", false)
	v.SetDefault("store.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "grove", "grove.db"))
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("GROVE_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "grove"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("GROVE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// Save writes the provided config to disk, creating the config directory if
// needed. Used by hosts that let users change the adapter or stacking
// settings at runtime.
func Save(cfg Config) error {
	path := os.Getenv("GROVE_CONFIG")
	if path == "" {
		path = filepath.Join(os.Getenv("HOME"), ".config", "grove", "config.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("stack.base_z_index", cfg.Stack.BaseZIndex)
	v.Set("stack.increment", cfg.Stack.Increment)
	v.Set("nested.adapter", cfg.Nested.Adapter)
	v.Set("nested.mandatory", cfg.Nested.Mandatory)
	v.Set("store.path", cfg.Store.Path)
	v.Set("logging.level", cfg.Logging.Level)
	v.Set("logging.format", cfg.Logging.Format)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
