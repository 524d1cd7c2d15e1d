// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lore Contributors

package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/lore-dev/lore/internal/config"
	"github.com/lore-dev/lore/internal/store"
	_ "github.com/lore-dev/lore/internal/store/sqlite" // registers the sqlite backend
	lorerr "github.com/lore-dev/lore/pkg/errors"
)

// NewRootCmd creates the root lore command with all subcommands registered.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "lore",
		Short:         "Lore — local knowledge base with vector search",
		Long:          "Lore stores document chunks with embeddings in SQLite and retrieves them by cosine similarity.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringP("config", "c", "", "path to config file")
	root.PersistentFlags().String("data-dir", "", "path to data directory")
	root.PersistentFlags().BoolP("verbose", "v", false, "enable verbose output")

	root.AddCommand(
		newVersionCmd(),
		newStatsCmd(),
		newSearchCmd(),
		newIngestCmd(),
	)

	return root
}

// loadConfig resolves the effective configuration for a command,
// applying the persistent flag overrides, and installs the logger.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfgPath, _ := cmd.Flags().GetString("config")
	if cfgPath == "" {
		if defaultPath, err := config.DefaultConfigPath(); err == nil {
			if _, statErr := os.Stat(defaultPath); statErr == nil {
				cfgPath = defaultPath
			} else if written := config.BootstrapConfig(); written != "" {
				// First run: seed ~/.config/lore with the commented
				// default and load it like any other config file.
				cfgPath = written
			}
		}
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}

	if dataDir, _ := cmd.Flags().GetString("data-dir"); dataDir != "" {
		cfg.DataDir = dataDir
	}
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		cfg.Logging.Level = "debug"
	}

	setupLogging(cfg)
	return cfg, nil
}

// setupLogging installs the process-wide slog default per config.
func setupLogging(cfg *config.Config) {
	var level slog.Level
	switch cfg.Logging.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Logging.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}

// openKnowledgeBase creates the data directory if needed and opens the
// configured backend.
func openKnowledgeBase(cfg *config.Config) (store.KnowledgeBase, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o700); err != nil {
		return nil, lorerr.Errorf(lorerr.CodeCLISetupFailure, "creating data directory %s: %w", cfg.DataDir, err)
	}

	return store.NewKnowledgeBase(&store.StorageConfig{
		Backend:             cfg.Storage.Backend,
		EmbeddingDimensions: cfg.Storage.EmbeddingDimensions,
		Similarity:          store.SimilarityMode(cfg.Storage.Similarity),
		ScanBatchSize:       cfg.Storage.ScanBatchSize,
	}, cfg.DatabasePath())
}
