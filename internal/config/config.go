// Package config loads CLI defaults from a YAML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vegasq/parframe/join"
	"github.com/vegasq/parframe/output"
	"github.com/vegasq/parframe/selector"
)

// DefaultPath is read when no config file is given. It may be absent.
const DefaultPath = ".parframe.yaml"

// Config holds the defaults for command line flags.
type Config struct {
	Format   string `yaml:"format"`    // jsonl, csv or table
	Policy   string `yaml:"policy"`    // fail or skip, for select
	JoinMode string `yaml:"join_mode"` // default mode of the join command
	Limit    int    `yaml:"limit"`     // 0 means no limit
	Verbose  bool   `yaml:"verbose"`
}

// Default returns the built-in defaults.
func Default() *Config {
	return &Config{
		Format:   output.FormatJSONL,
		Policy:   selector.Fail.String(),
		JoinMode: join.Inner.String(),
	}
}

// LoadConfig reads the config file at path on top of the defaults. An empty
// path reads DefaultPath if it exists.
func LoadConfig(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by the user
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that every field holds a known value.
func (c *Config) Validate() error {
	if _, err := output.NewFormatter(c.Format, nil); err != nil {
		return err
	}
	if _, err := selector.ParsePolicy(c.Policy); err != nil {
		return err
	}
	if _, err := join.ParseMode(c.JoinMode); err != nil {
		return err
	}
	if c.Limit < 0 {
		return fmt.Errorf("limit must not be negative, got %d", c.Limit)
	}
	return nil
}
