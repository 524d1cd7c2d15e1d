// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lore Contributors

package store

// SimilarityMode selects how similarity queries are executed.
type SimilarityMode string

const (
	// SimilarityAuto probes for a native capability and silently
	// falls back to brute force when none is found.
	SimilarityAuto SimilarityMode = "auto"
	// SimilaritySQLiteVec requires the sqlite-vec extension; store
	// construction fails when it cannot be loaded.
	SimilaritySQLiteVec SimilarityMode = "sqlite-vec"
	// SimilarityNone forces brute-force search regardless of what is
	// available.
	SimilarityNone SimilarityMode = "none"
)

// StorageConfig controls which backend the store factory uses and how
// the engine is tuned.
type StorageConfig struct {
	Backend string // "sqlite" is the only supported backend for now.
	// EmbeddingDimensions is fixed for the lifetime of the store;
	// changing it requires a full re-embedding migration. 0 uses the
	// default (1536).
	EmbeddingDimensions int
	Similarity          SimilarityMode // Empty means SimilarityAuto.
	// ScanBatchSize bounds how many chunk rows the brute-force
	// strategy reads per batch. 0 uses the default (256).
	ScanBatchSize int
}
