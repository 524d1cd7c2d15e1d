// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lore Contributors

package sqlite

import (
	"context"

	"github.com/lore-dev/lore/internal/store"
	lorerr "github.com/lore-dev/lore/pkg/errors"
)

// similarity is a top-k retrieval strategy. Exactly one implementation
// is chosen when the store opens; SearchSimilar delegates to it without
// further capability checks.
type similarity interface {
	// Name identifies the strategy ("sqlite-vec" or "brute-force").
	Name() string
	Search(ctx context.Context, query []float32, topK int) ([]store.SearchHit, error)
}

// SearchSimilar returns up to topK chunks ranked by cosine similarity
// to the query embedding, highest first. Ties break by chunk ID
// ascending so results are deterministic.
func (s *Store) SearchSimilar(ctx context.Context, query []float32, topK int) ([]store.SearchHit, error) {
	if err := store.ValidateQueryEmbedding(query, s.dims); err != nil {
		return nil, err
	}
	if topK <= 0 {
		return nil, lorerr.Errorf(lorerr.CodeStoreValidationInvalid,
			"topK must be positive, got %d", topK)
	}
	return s.sim.Search(ctx, query, topK)
}

// selectSimilarity resolves the configured similarity mode to a
// concrete strategy. "sqlite-vec" demands the extension and fails hard
// when the probe does; "auto" (and empty) falls back to the in-process
// scan; "none" never probes at all.
func (s *Store) selectSimilarity(cfg *store.StorageConfig) (similarity, error) {
	batch := cfg.ScanBatchSize
	if batch <= 0 {
		batch = defaultScanBatch
	}
	brute := &bruteSimilarity{store: s, batch: batch}

	switch cfg.Similarity {
	case store.SimilarityNone:
		return brute, nil

	case store.SimilaritySQLiteVec:
		version, err := s.probeVec()
		if err != nil {
			return nil, lorerr.Wrapf(err, lorerr.CodeStoreCapabilityUnavailable,
				"similarity strategy %q requires the sqlite-vec extension", cfg.Similarity)
		}
		s.logger.Debug("using sqlite-vec similarity", "vec_version", version)
		return &nativeSimilarity{store: s}, nil

	case store.SimilarityAuto, "":
		version, err := s.probeVec()
		if err != nil {
			s.logger.Info("sqlite-vec extension unavailable, falling back to brute-force scan",
				"error", err)
			return brute, nil
		}
		s.logger.Debug("using sqlite-vec similarity", "vec_version", version)
		return &nativeSimilarity{store: s}, nil

	default:
		return nil, lorerr.Errorf(lorerr.CodeStoreCapabilityUnavailable,
			"unknown similarity strategy %q", cfg.Similarity)
	}
}

// probeVec asks the open database whether vec functions are loaded.
func (s *Store) probeVec() (string, error) {
	var version string
	if err := s.db.QueryRow(`SELECT vec_version()`).Scan(&version); err != nil {
		return "", err
	}
	return version, nil
}
