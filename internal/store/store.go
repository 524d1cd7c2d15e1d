// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lore Contributors

package store

import "context"

// SourceStore manages document-level metadata.
type SourceStore interface {
	// UpsertSource inserts or fully overwrites a source by ID.
	// Repeated calls with the same ID are idempotent.
	UpsertSource(ctx context.Context, src *Source) error
	// GetSource returns nil (not an error) when the ID is absent.
	GetSource(ctx context.Context, id string) (*Source, error)
	// DeleteSource removes the source and, transactionally, every
	// chunk referencing it. A missing ID is a no-op.
	DeleteSource(ctx context.Context, id string) error
}

// ChunkStore manages fragment-level records including embeddings.
type ChunkStore interface {
	// UpsertChunk validates the embedding dimension before writing,
	// then inserts or replaces by chunk ID.
	UpsertChunk(ctx context.Context, chunk *Chunk) error
	// GetChunk returns nil (not an error) when the ID is absent.
	GetChunk(ctx context.Context, id string) (*Chunk, error)
	// GetSourceChunks returns the source's chunks ordered by chunk
	// index ascending. An unknown source yields an empty slice.
	GetSourceChunks(ctx context.Context, sourceID string) ([]*Chunk, error)
}

// SearchEngine answers top-k similarity queries.
type SearchEngine interface {
	// SearchSimilar returns at most topK hits ordered best-first.
	// Ties are broken by ascending chunk ID so repeated queries over
	// unchanged data are reproducible.
	SearchSimilar(ctx context.Context, query []float32, topK int) ([]SearchHit, error)
}

// StatsReporter aggregates row counts and capability flags.
type StatsReporter interface {
	Stats(ctx context.Context) (*Stats, error)
}

// KnowledgeBase is the full storage and retrieval engine surface.
type KnowledgeBase interface {
	SourceStore
	ChunkStore
	SearchEngine
	StatsReporter

	Close() error
}
