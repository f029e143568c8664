// Package config loads the optional YAML configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-webslider2pdf/internal/fileutil"
	"github.com/alnah/go-webslider2pdf/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Config holds conversion settings from a YAML file. Zero values mean
// "not set"; the CLI fills remaining gaps from env vars and defaults.
type Config struct {
	Browser     string `yaml:"browser"`     // browser executable path (empty = auto-discover)
	SettleMs    int    `yaml:"settleMs"`    // pause after load before capture
	JPEGQuality int    `yaml:"jpegQuality"` // encoder quality 1-100
	Timeout     string `yaml:"timeout"`     // navigation timeout, Go duration syntax
}

// DefaultConfig returns an all-unset configuration.
func DefaultConfig() *Config {
	return &Config{}
}

// Validate checks parseable values; unset fields are fine.
func (c *Config) Validate() error {
	if c.SettleMs < 0 {
		return fmt.Errorf("%w: settleMs must not be negative", ErrInvalidValue)
	}
	if c.Timeout != "" {
		if _, err := time.ParseDuration(c.Timeout); err != nil {
			return fmt.Errorf("%w: timeout %q: %v", ErrInvalidValue, c.Timeout, err)
		}
	}
	return nil
}

// NavTimeout returns the parsed timeout, or zero when unset.
// Call Validate first; a malformed value is treated as unset here.
func (c *Config) NavTimeout() time.Duration {
	if c.Timeout == "" {
		return 0
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0
	}
	return d
}

// LoadConfig loads configuration from a file path or config name.
// A string containing a path separator is treated as a file path;
// otherwise it is searched as a name in standard locations.
// Returns an error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !strings.ContainsAny(nameOrPath, "/\\") {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/webslider2pdf/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "webslider2pdf", name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
