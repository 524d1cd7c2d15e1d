// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lore Contributors

package sqlite_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lore-dev/lore/internal/store"
)

func TestStats_EmptyStore(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, "stats-empty", store.SimilarityNone)

	stats, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Sources)
	assert.Equal(t, 0, stats.Chunks)
	assert.Equal(t, 3, stats.EmbeddingDimension)
}

func TestStats_CountsRows(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, "stats-counts", store.SimilarityNone)

	seedSource(t, ctx, s, "src-1")
	seedSource(t, ctx, s, "src-2")
	seedChunk(t, ctx, s, "src-1", "chunk-1", 0, []float32{1, 0, 0})
	seedChunk(t, ctx, s, "src-1", "chunk-2", 1, []float32{0, 1, 0})
	seedChunk(t, ctx, s, "src-2", "chunk-3", 0, []float32{0, 0, 1})

	stats, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Sources)
	assert.Equal(t, 3, stats.Chunks)
}

func TestStats_TracksDeletes(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, "stats-deletes", store.SimilarityNone)

	seedSource(t, ctx, s, "src-1")
	seedChunk(t, ctx, s, "src-1", "chunk-1", 0, []float32{1, 0, 0})
	require.NoError(t, s.DeleteSource(ctx, "src-1"))

	stats, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Sources)
	assert.Equal(t, 0, stats.Chunks)
}

func TestStats_ExtensionFlagFollowsStrategy(t *testing.T) {
	ctx := context.Background()

	brute := newTestStore(t, "stats-brute", store.SimilarityNone)
	stats, err := brute.Stats(ctx)
	require.NoError(t, err)
	assert.False(t, stats.ExtensionAvailable)

	native := newTestStore(t, "stats-native", store.SimilaritySQLiteVec)
	stats, err = native.Stats(ctx)
	require.NoError(t, err)
	assert.True(t, stats.ExtensionAvailable)
}
