// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lore Contributors

package store

import (
	lorerr "github.com/lore-dev/lore/pkg/errors"
)

// ValidateSource checks a source for semantic violations before any
// write occurs.
func ValidateSource(src *Source) error {
	if src == nil {
		return lorerr.New(lorerr.CodeStoreValidationInvalid, "source must not be nil")
	}
	if src.ID == "" {
		return lorerr.New(lorerr.CodeStoreValidationInvalid, "source id must not be empty")
	}
	return nil
}

// ValidateChunk checks a chunk, including the embedding-dimension
// invariant, before any write occurs.
func ValidateChunk(chunk *Chunk, dimensions int) error {
	if chunk == nil {
		return lorerr.New(lorerr.CodeStoreValidationInvalid, "chunk must not be nil")
	}
	if chunk.ID == "" {
		return lorerr.New(lorerr.CodeStoreValidationInvalid, "chunk id must not be empty")
	}
	if chunk.SourceID == "" {
		return lorerr.New(lorerr.CodeStoreValidationInvalid, "chunk source id must not be empty",
			lorerr.FieldChunkID(chunk.ID))
	}
	if len(chunk.Embedding) != dimensions {
		return lorerr.Errorf(lorerr.CodeStoreValidationInvalid,
			"chunk %s embedding has %d dimensions, store expects %d",
			chunk.ID, len(chunk.Embedding), dimensions)
	}
	return nil
}

// ValidateQueryEmbedding checks a query vector against the store's
// configured dimension.
func ValidateQueryEmbedding(embedding []float32, dimensions int) error {
	if len(embedding) != dimensions {
		return lorerr.Errorf(lorerr.CodeStoreValidationInvalid,
			"query embedding has %d dimensions, store expects %d",
			len(embedding), dimensions)
	}
	return nil
}
