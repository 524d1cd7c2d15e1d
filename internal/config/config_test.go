// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lore Contributors

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lore-dev/lore/internal/config"
)

func TestLoad_DefaultValues(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Storage.Backend)
	assert.Equal(t, 1536, cfg.Storage.EmbeddingDimensions)
	assert.Equal(t, "auto", cfg.Storage.Similarity)
	assert.Equal(t, 256, cfg.Storage.ScanBatchSize)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.NotEmpty(t, cfg.DataDir)
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "lore.yaml")

	content := `
data_dir: /var/lib/lore
storage:
  embedding_dimensions: 384
  similarity: none
logging:
  format: json
`
	err := os.WriteFile(cfgPath, []byte(content), 0o644)
	require.NoError(t, err)

	cfg, err := config.Load(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/lore", cfg.DataDir)
	assert.Equal(t, 384, cfg.Storage.EmbeddingDimensions)
	assert.Equal(t, "none", cfg.Storage.Similarity)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("LORE_STORAGE_SIMILARITY", "sqlite-vec")

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, "sqlite-vec", cfg.Storage.Similarity)
}

func TestLoad_ValidationCalledAtLoadTime(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "lore.yaml")

	content := `
storage:
  similarity: "hnsw"
`
	err := os.WriteFile(cfgPath, []byte(content), 0o644)
	require.NoError(t, err)

	_, err = config.Load(cfgPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "storage.similarity")
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := &config.Config{
		Storage: config.StorageConfig{
			Backend:             "postgres",
			EmbeddingDimensions: -1,
			Similarity:          "auto",
			ScanBatchSize:       256,
		},
		Logging: config.LoggingConfig{Level: "info", Format: "text"},
	}

	errs := cfg.Validate()
	assert.Len(t, errs, 2)
}

func TestBootstrapConfig_CreatesDefaultOnce(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := config.BootstrapConfig()
	require.Equal(t, filepath.Join(home, ".config", "lore", "lore.yaml"), path)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "storage:")

	// The bootstrapped file must load cleanly.
	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Storage.Backend)

	// An existing file is left alone.
	assert.Equal(t, "", config.BootstrapConfig())
}

func TestDatabasePath(t *testing.T) {
	cfg := &config.Config{DataDir: "/var/lib/lore"}
	assert.Equal(t, filepath.Join("/var/lib/lore", "lore.db"), cfg.DatabasePath())
}
