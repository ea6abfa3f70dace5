// Package config loads c1parse settings from TOML files and the environment
package config

import (
	"os"

	"github.com/BurntSushi/toml"
	"github.com/raymyers/c1parse/pkg/logging"
	"github.com/raymyers/c1parse/pkg/parser"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cast"
	errors "gopkg.in/src-d/go-errors.v1"
)

// Environment variables that override file settings
const (
	EnvMaxDepth  = "C1PARSE_MAX_DEPTH"
	EnvLogLevel  = "C1PARSE_LOG_LEVEL"
	EnvLogFormat = "C1PARSE_LOG_FORMAT"
)

var (
	// ErrLoadConfig is returned when a config file cannot be read or decoded.
	ErrLoadConfig = errors.NewKind("cannot load config %s")
	// ErrInvalidConfig is returned when a setting is out of range.
	ErrInvalidConfig = errors.NewKind("invalid config: %s")
)

// Config holds the complete c1parse configuration
type Config struct {
	Parser ParserConfig `toml:"parser"`
	Log    LogConfig    `toml:"log"`
}

// ParserConfig holds recognizer limits
type ParserConfig struct {
	MaxDepth int `toml:"max_depth"`
}

// LogConfig holds logger settings
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Parser: ParserConfig{MaxDepth: parser.DefaultMaxDepth},
		Log: LogConfig{
			Level:  "warning",
			Format: logging.FormatText,
		},
	}
}

// Load reads path on top of the defaults, applies the environment and
// validates the result. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg, err := Read(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Read is Load without validation, for callers that still layer their own
// overrides on top and validate afterwards.
func Read(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, ErrLoadConfig.Wrap(err, path)
		}
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides settings from the C1PARSE_* variables found by lookup
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvMaxDepth); ok {
		depth, err := cast.ToIntE(v)
		if err != nil {
			return ErrInvalidConfig.Wrap(err, EnvMaxDepth+" is not an integer")
		}
		c.Parser.MaxDepth = depth
	}
	if v, ok := lookup(EnvLogLevel); ok {
		c.Log.Level = v
	}
	if v, ok := lookup(EnvLogFormat); ok {
		c.Log.Format = v
	}
	return nil
}

// Validate checks that every setting is usable
func (c *Config) Validate() error {
	if c.Parser.MaxDepth < 1 {
		return ErrInvalidConfig.New("parser.max_depth must be positive")
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return ErrInvalidConfig.Wrap(err, "log.level")
	}
	if _, err := logging.ParseFormat(c.Log.Format); err != nil {
		return ErrInvalidConfig.Wrap(err, "log.format")
	}
	return nil
}

// ParserOptions returns the parser options the configuration describes
func (c *Config) ParserOptions(log logrus.FieldLogger) []parser.Option {
	return []parser.Option{
		parser.WithMaxDepth(c.Parser.MaxDepth),
		parser.WithLogger(log),
	}
}
