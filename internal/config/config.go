// Package config loads the command line tool configuration from YAML.
package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/arloliu/bagobytes/compress"
)

// Config is the command line tool configuration.
type Config struct {
	LogLevel      string `yaml:"log_level"`      // zap level name (debug, info, warn, error)
	ChunkCapacity int    `yaml:"chunk_capacity"` // Intermediate buffer size in bytes
	Verify        bool   `yaml:"verify"`         // Decode the output again before writing it; encoding only
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		LogLevel:      "warn",
		ChunkCapacity: compress.DefaultChunkCapacity,
		Verify:        false,
	}
}

// Load reads a YAML configuration file. Keys missing from the file keep their
// default values.
func Load(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// Level returns the parsed log level.
func (c *Config) Level() (zapcore.Level, error) {
	return zapcore.ParseLevel(c.LogLevel)
}

// CodecOptions returns the codec options described by the configuration.
func (c *Config) CodecOptions() []compress.CodecOption {
	return []compress.CodecOption{compress.WithChunkCapacity(c.ChunkCapacity)}
}

// Validate checks every field and reports all problems at once.
func (c *Config) Validate() error {
	var errs *multierror.Error

	if _, err := c.Level(); err != nil {
		errs = multierror.Append(errs, fmt.Errorf("log_level: %w", err))
	}

	if c.ChunkCapacity < compress.MinChunkCapacity || c.ChunkCapacity > compress.MaxChunkCapacity {
		errs = multierror.Append(errs, fmt.Errorf("chunk_capacity must be between %d and %d, got %d",
			compress.MinChunkCapacity, compress.MaxChunkCapacity, c.ChunkCapacity))
	}

	return errs.ErrorOrNil()
}
