package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	Huuto   HuutoConfig   `mapstructure:"huuto"`
	Search  SearchConfig  `mapstructure:"search"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// HuutoConfig holds the API connection details. Account credentials live in a
// separate INI file so the YAML config can be committed without secrets.
type HuutoConfig struct {
	URL             string        `mapstructure:"url"`
	CredentialsFile string        `mapstructure:"credentials_file"`
	Timeout         time.Duration `mapstructure:"timeout"`
}

// SearchConfig contains search settings and named filter presets
type SearchConfig struct {
	DefaultLimit int               `mapstructure:"default_limit"`
	Presets      map[string]string `mapstructure:"presets"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}
