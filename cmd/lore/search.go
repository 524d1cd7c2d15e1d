// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lore Contributors

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	lorerr "github.com/lore-dev/lore/pkg/errors"
)

func newSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search [embedding-json]",
		Short: "Search chunks by embedding similarity",
		Long: `Search the knowledge base for the chunks most similar to a query
embedding. The embedding is a JSON array of numbers, passed as an
argument or piped on stdin:

  lore search '[0.1, 0.2, 0.3]'
  embed-tool "what is lore" | lore search`,
		Args: cobra.MaximumNArgs(1),
		RunE: runSearch,
	}

	cmd.Flags().IntP("top-k", "k", 5, "maximum number of results")
	cmd.Flags().Bool("json", false, "emit results as JSON")

	return cmd
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	query, err := readQueryEmbedding(cmd, args)
	if err != nil {
		return err
	}

	topK, _ := cmd.Flags().GetInt("top-k")

	kb, err := openKnowledgeBase(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = kb.Close() }()

	hits, err := kb.SearchSimilar(cmd.Context(), query, topK)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		type hitJSON struct {
			ChunkID  string  `json:"chunk_id"`
			SourceID string  `json:"source_id"`
			Score    float64 `json:"score"`
			Text     string  `json:"text"`
		}
		encoded := make([]hitJSON, 0, len(hits))
		for _, h := range hits {
			encoded = append(encoded, hitJSON{
				ChunkID:  h.Chunk.ID,
				SourceID: h.Chunk.SourceID,
				Score:    h.Score,
				Text:     h.Chunk.Text,
			})
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(encoded)
	}

	if len(hits) == 0 {
		fmt.Fprintln(out, "No results.")
		return nil
	}
	for i, h := range hits {
		fmt.Fprintf(out, "%2d. %s (source %s, score %.4f)\n", i+1, h.Chunk.ID, h.Chunk.SourceID, h.Score)
		if text := strings.TrimSpace(h.Chunk.Text); text != "" {
			fmt.Fprintf(out, "    %s\n", truncate(text, 120))
		}
	}
	return nil
}

// readQueryEmbedding parses the query vector from the argument or,
// when absent, from stdin.
func readQueryEmbedding(cmd *cobra.Command, args []string) ([]float32, error) {
	var raw []byte
	if len(args) == 1 {
		raw = []byte(args[0])
	} else {
		stat, err := os.Stdin.Stat()
		if err != nil || stat.Mode()&os.ModeCharDevice != 0 {
			return nil, lorerr.New(lorerr.CodeCLIInputInvalid,
				"no embedding given: pass a JSON array argument or pipe one on stdin")
		}
		raw, err = io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, lorerr.Errorf(lorerr.CodeCLIInputInvalid, "reading embedding from stdin: %w", err)
		}
	}

	var query []float32
	if err := json.Unmarshal(raw, &query); err != nil {
		return nil, lorerr.Errorf(lorerr.CodeCLIInputInvalid, "parsing embedding JSON: %w", err)
	}
	if len(query) == 0 {
		return nil, lorerr.New(lorerr.CodeCLIInputInvalid, "embedding must not be empty")
	}
	return query, nil
}

// truncate shortens s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	cut := n
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
