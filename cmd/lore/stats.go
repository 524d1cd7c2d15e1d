// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lore Contributors

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show knowledge base statistics",
		Long:  "Report source and chunk counts, the embedding dimension, and whether native vector search is active.",
		RunE:  runStats,
	}
}

func runStats(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	kb, err := openKnowledgeBase(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = kb.Close() }()

	stats, err := kb.Stats(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Database:            %s\n", cfg.DatabasePath())
	fmt.Fprintf(out, "Sources:             %d\n", stats.Sources)
	fmt.Fprintf(out, "Chunks:              %d\n", stats.Chunks)
	fmt.Fprintf(out, "Embedding dimension: %d\n", stats.EmbeddingDimension)
	search := "brute-force"
	if stats.ExtensionAvailable {
		search = "sqlite-vec"
	}
	fmt.Fprintf(out, "Search strategy:     %s\n", search)
	return nil
}
