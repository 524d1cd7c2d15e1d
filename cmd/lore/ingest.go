// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lore Contributors

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/lore-dev/lore/internal/store"
	lorerr "github.com/lore-dev/lore/pkg/errors"
)

// ingestDocument is the JSON shape accepted by `lore ingest`: one
// pre-embedded source and its chunks, typically produced by an
// external chunking and embedding pipeline.
type ingestDocument struct {
	Source struct {
		ID       string    `json:"id"`
		Path     string    `json:"path"`
		FileSize int64     `json:"file_size"`
		MIMEType string    `json:"mime_type"`
		ModTime  time.Time `json:"mod_time"`
		SHA256   string    `json:"sha256"`
	} `json:"source"`
	Chunks []struct {
		ID        string            `json:"id"`
		Text      string            `json:"text"`
		Metadata  map[string]string `json:"metadata"`
		Index     int               `json:"index"`
		StartChar int               `json:"start_char"`
		EndChar   int               `json:"end_char"`
		Embedding []float32         `json:"embedding"`
	} `json:"chunks"`
}

func newIngestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest <file.json> [file.json...]",
		Short: "Ingest pre-embedded documents",
		Long: `Ingest one or more JSON documents, each holding a source record and
its chunks with embeddings. Re-ingesting a document with the same
source ID replaces its metadata and chunks.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runIngest,
	}

	cmd.Flags().IntP("concurrency", "j", 4, "documents ingested in parallel")

	return cmd
}

func runIngest(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	kb, err := openKnowledgeBase(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = kb.Close() }()

	concurrency, _ := cmd.Flags().GetInt("concurrency")
	if concurrency < 1 {
		concurrency = 1
	}

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(concurrency)
	for _, path := range args {
		g.Go(func() error {
			return ingestFile(ctx, kb, path)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Ingested %d document(s).\n", len(args))
	return nil
}

func ingestFile(ctx context.Context, kb store.KnowledgeBase, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return lorerr.Errorf(lorerr.CodeCLIIngestFailure, "reading %s: %w", path, err)
	}

	var doc ingestDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return lorerr.Errorf(lorerr.CodeCLIInputInvalid, "parsing %s: %w", path, err)
	}

	src := &store.Source{
		ID:         doc.Source.ID,
		Path:       doc.Source.Path,
		FileSize:   doc.Source.FileSize,
		MIMEType:   doc.Source.MIMEType,
		ModTime:    doc.Source.ModTime,
		SHA256:     doc.Source.SHA256,
		ChunkCount: len(doc.Chunks),
	}
	if src.ID == "" {
		src.ID = uuid.NewString()
	}
	if src.Path == "" {
		src.Path = path
	}

	if err := kb.UpsertSource(ctx, src); err != nil {
		return lorerr.Wrap(err, lorerr.CodeCLIIngestFailure, "ingesting source",
			lorerr.Field("path", path))
	}

	embeddedAt := time.Now().UTC()
	for _, c := range doc.Chunks {
		chunk := &store.Chunk{
			ID:         c.ID,
			SourceID:   src.ID,
			Text:       c.Text,
			Metadata:   c.Metadata,
			Index:      c.Index,
			StartChar:  c.StartChar,
			EndChar:    c.EndChar,
			Embedding:  c.Embedding,
			EmbeddedAt: embeddedAt,
		}
		if chunk.ID == "" {
			chunk.ID = uuid.NewString()
		}
		if err := kb.UpsertChunk(ctx, chunk); err != nil {
			return lorerr.Wrap(err, lorerr.CodeCLIIngestFailure, "ingesting chunk",
				lorerr.Field("path", path), lorerr.FieldChunkID(chunk.ID))
		}
	}

	slog.Debug("ingested document", "path", path, "source_id", src.ID, "chunks", len(doc.Chunks))
	return nil
}
