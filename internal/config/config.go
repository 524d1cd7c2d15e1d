// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lore Contributors

package config

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	lorerr "github.com/lore-dev/lore/pkg/errors"
)

// Config is the top-level Lore configuration.
type Config struct {
	DataDir string        `mapstructure:"data_dir"`
	Storage StorageConfig `mapstructure:"storage"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// StorageConfig selects the storage backend and engine tuning.
type StorageConfig struct {
	Backend             string `mapstructure:"backend"`
	EmbeddingDimensions int    `mapstructure:"embedding_dimensions"`
	Similarity          string `mapstructure:"similarity"`
	ScanBatchSize       int    `mapstructure:"scan_batch_size"`
}

// LoggingConfig controls structured log output.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DatabasePath returns the knowledge database path under the data dir.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "lore.db")
}

// Load reads configuration from the given path (or defaults) with
// environment variable overrides (prefix LORE_).
func Load(path string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("data_dir", defaultDataDir())
	v.SetDefault("storage.backend", "sqlite")
	v.SetDefault("storage.embedding_dimensions", 1536)
	v.SetDefault("storage.similarity", "auto")
	v.SetDefault("storage.scan_batch_size", 256)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")

	// Environment
	v.SetEnvPrefix("LORE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// File
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, lorerr.Errorf(lorerr.CodeConfigLoadReadFailure, "reading config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, lorerr.Errorf(lorerr.CodeConfigValidateInvalidValue, "unmarshalling config: %w", err)
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, lorerr.Errorf(lorerr.CodeConfigValidateInvalidValue, "validating config: %w", errors.Join(errs...))
	}

	return &cfg, nil
}

// Validate checks the configuration for logical errors. It returns a
// slice of all validation errors found, collecting all issues rather
// than stopping at the first one.
func (c *Config) Validate() []error {
	var errs []error

	errs = append(errs, c.validateStorage()...)
	errs = append(errs, c.validateLogging()...)

	return errs
}

func (c *Config) validateStorage() []error {
	var errs []error

	if c.Storage.Backend != "sqlite" {
		errs = append(errs, lorerr.Errorf(lorerr.CodeConfigValidateInvalidValue,
			"config: storage.backend must be \"sqlite\", got %q", c.Storage.Backend))
	}

	if c.Storage.EmbeddingDimensions <= 0 {
		errs = append(errs, lorerr.Errorf(lorerr.CodeConfigValidateInvalidValue,
			"config: storage.embedding_dimensions must be positive, got %d",
			c.Storage.EmbeddingDimensions))
	}

	validSimilarity := map[string]bool{"auto": true, "sqlite-vec": true, "none": true}
	if !validSimilarity[c.Storage.Similarity] {
		errs = append(errs, lorerr.Errorf(lorerr.CodeConfigValidateInvalidValue,
			"config: storage.similarity must be one of [auto, sqlite-vec, none], got %q",
			c.Storage.Similarity))
	}

	if c.Storage.ScanBatchSize <= 0 {
		errs = append(errs, lorerr.Errorf(lorerr.CodeConfigValidateInvalidValue,
			"config: storage.scan_batch_size must be positive, got %d",
			c.Storage.ScanBatchSize))
	}

	return errs
}

func (c *Config) validateLogging() []error {
	var errs []error

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		errs = append(errs, lorerr.Errorf(lorerr.CodeConfigValidateInvalidValue,
			"config: logging.level must be one of [debug, info, warn, error], got %q",
			c.Logging.Level))
	}

	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[c.Logging.Format] {
		errs = append(errs, lorerr.Errorf(lorerr.CodeConfigValidateInvalidValue,
			"config: logging.format must be one of [text, json], got %q",
			c.Logging.Format))
	}

	return errs
}
