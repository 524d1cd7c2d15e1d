// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lore Contributors

package store_test

import (
	"testing"

	"github.com/lore-dev/lore/internal/store"
	lorerr "github.com/lore-dev/lore/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSource(t *testing.T) {
	assert.Error(t, store.ValidateSource(nil))
	assert.Error(t, store.ValidateSource(&store.Source{}))
	assert.NoError(t, store.ValidateSource(&store.Source{ID: "doc-1"}))
}

func TestValidateChunkDimensionMismatch(t *testing.T) {
	chunk := &store.Chunk{
		ID:        "c1",
		SourceID:  "doc-1",
		Embedding: []float32{1, 0},
	}

	err := store.ValidateChunk(chunk, 3)
	require.Error(t, err)
	assert.True(t, lorerr.IsInvalidInput(err))
	assert.Contains(t, err.Error(), "2 dimensions")
}

func TestValidateChunkMissingIDs(t *testing.T) {
	err := store.ValidateChunk(&store.Chunk{SourceID: "doc-1", Embedding: []float32{1, 0, 0}}, 3)
	require.Error(t, err)
	assert.True(t, lorerr.IsInvalidInput(err))

	err = store.ValidateChunk(&store.Chunk{ID: "c1", Embedding: []float32{1, 0, 0}}, 3)
	require.Error(t, err)
	assert.True(t, lorerr.IsInvalidInput(err))
}

func TestValidateChunkOK(t *testing.T) {
	chunk := &store.Chunk{ID: "c1", SourceID: "doc-1", Embedding: []float32{1, 0, 0}}
	assert.NoError(t, store.ValidateChunk(chunk, 3))
}

func TestValidateQueryEmbedding(t *testing.T) {
	err := store.ValidateQueryEmbedding([]float32{1, 0}, 3)
	require.Error(t, err)
	assert.True(t, lorerr.IsInvalidInput(err))

	assert.NoError(t, store.ValidateQueryEmbedding([]float32{1, 0, 0}, 3))
}
