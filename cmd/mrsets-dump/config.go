package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// Config represents the mrsets-dump configuration file
// (~/.config/statmeta/config.yaml).
type Config struct {
	Format    string `yaml:"format"`
	Backend   string `yaml:"backend"`
	Lenient   *bool  `yaml:"lenient"`
	ChunkSize *int   `yaml:"chunk_size"`
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

func configPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "statmeta", "config.yaml")
}

// LoadConfig reads the config file at path. A missing file yields a zero
// Config; a file that exists but cannot be parsed is an error.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		return Config{}, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Config{}, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// apply copies config file values into opts for every flag that was not
// set on the command line or through the environment.
func (cfg Config) apply(c *cli.Command, opts *decodeOptions) {
	if cfg.Format != "" && !c.IsSet("format") {
		opts.format = cfg.Format
	}
	if cfg.Backend != "" && !c.IsSet("backend") {
		opts.backend = cfg.Backend
	}
	if cfg.Lenient != nil && !c.IsSet("lenient") {
		opts.lenient = *cfg.Lenient
	}
	if cfg.ChunkSize != nil && !c.IsSet("chunk-size") {
		opts.chunkSize = int64(*cfg.ChunkSize)
	}
	if cfg.LogLevel != "" && !c.IsSet("log-level") {
		opts.logLevel = cfg.LogLevel
	}
	if cfg.LogFormat != "" && !c.IsSet("log-format") {
		opts.logFormat = cfg.LogFormat
	}
}
