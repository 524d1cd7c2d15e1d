// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lore Contributors

package store

import (
	"sync"

	lorerr "github.com/lore-dev/lore/pkg/errors"
)

// defaultEmbeddingDimensions matches OpenAI text-embedding-ada-002.
const defaultEmbeddingDimensions = 1536

// defaultScanBatchSize bounds the brute-force scan's per-batch row
// count when the config leaves it unset.
const defaultScanBatchSize = 256

// BackendFactory creates a knowledge base given a database path and
// the effective storage configuration.
type BackendFactory func(dbPath string, cfg *StorageConfig) (KnowledgeBase, error)

var (
	backendFactories = map[string]BackendFactory{}
	factoriesMu      sync.RWMutex
)

// RegisterBackend registers a factory function for a named storage
// backend. Backend packages call this from init(). Goroutine-safe.
func RegisterBackend(name string, factory BackendFactory) {
	factoriesMu.Lock()
	defer factoriesMu.Unlock()
	backendFactories[name] = factory
}

// resolveBackend returns the effective backend name, defaulting to "sqlite".
func resolveBackend(cfg *StorageConfig) string {
	if cfg.Backend == "" {
		return "sqlite"
	}
	return cfg.Backend
}

// NewKnowledgeBase creates the knowledge base for the configured
// backend, applying config defaults.
func NewKnowledgeBase(cfg *StorageConfig, dbPath string) (KnowledgeBase, error) {
	backend := resolveBackend(cfg)

	factoriesMu.RLock()
	factory, ok := backendFactories[backend]
	factoriesMu.RUnlock()
	if !ok {
		return nil, lorerr.Errorf(lorerr.CodeStoreBackendUnsupported, "unsupported storage backend: %q", backend)
	}

	effective := *cfg
	if effective.EmbeddingDimensions <= 0 {
		effective.EmbeddingDimensions = defaultEmbeddingDimensions
	}
	if effective.Similarity == "" {
		effective.Similarity = SimilarityAuto
	}
	if effective.ScanBatchSize <= 0 {
		effective.ScanBatchSize = defaultScanBatchSize
	}

	return factory(dbPath, &effective)
}
