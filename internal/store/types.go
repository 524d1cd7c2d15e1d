// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lore Contributors

package store

import "time"

// --- Source types ---

// Source represents one ingested document.
type Source struct {
	ID       string
	Path     string
	FileSize int64
	MIMEType string
	ModTime  time.Time
	// SHA256 is the content hash supplied by the ingesting caller,
	// used by callers to detect unchanged content. The store persists
	// it verbatim and never compares hashes itself.
	SHA256 string
	// ChunkCount is a caller-maintained cache of how many chunks
	// belong to this source. The store never recomputes it; exact
	// counts come from Stats.
	ChunkCount int
}

// --- Chunk types ---

// Chunk represents a contiguous fragment of a source document,
// stored together with its embedding.
type Chunk struct {
	ID       string
	SourceID string
	Text     string
	// Metadata is an open key/value map, opaque to the store.
	Metadata map[string]string
	// Index is the chunk's position within its source. Unique per
	// source; used to reconstruct document order.
	Index     int
	StartChar int
	EndChar   int
	// Embedding always has exactly the store's configured embedding
	// dimension. Checked at write time.
	Embedding  []float32
	EmbeddedAt time.Time
}

// --- Search types ---

// SearchHit pairs a chunk with its similarity score. Higher scores
// mean more similar; an exact directional match scores 1.0.
type SearchHit struct {
	Chunk *Chunk
	Score float64
}

// --- Diagnostics ---

// Stats reports exact row counts and capability state at call time.
type Stats struct {
	Sources            int
	Chunks             int
	EmbeddingDimension int
	// ExtensionAvailable is true when the native similarity
	// capability is active, false when searches run brute-force.
	ExtensionAvailable bool
}
