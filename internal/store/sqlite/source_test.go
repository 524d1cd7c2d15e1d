// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lore Contributors

package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lore-dev/lore/internal/store"
	lorerr "github.com/lore-dev/lore/pkg/errors"
)

func TestSourceStore_UpsertAndGet(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, "sources", store.SimilarityNone)

	mtime := time.Date(2026, 7, 14, 9, 30, 0, 123456789, time.UTC)
	src := &store.Source{
		ID:         "src-1",
		Path:       "/docs/guide.md",
		FileSize:   2048,
		MIMEType:   "text/markdown",
		ModTime:    mtime,
		SHA256:     "abc123",
		ChunkCount: 4,
	}
	require.NoError(t, s.UpsertSource(ctx, src))

	got, err := s.GetSource(ctx, "src-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "/docs/guide.md", got.Path)
	assert.Equal(t, int64(2048), got.FileSize)
	assert.Equal(t, "abc123", got.SHA256)
	assert.Equal(t, 4, got.ChunkCount)
	assert.True(t, mtime.Equal(got.ModTime))
}

func TestSourceStore_GetMissingReturnsNil(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, "sources-missing", store.SimilarityNone)

	got, err := s.GetSource(ctx, "no-such-source")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSourceStore_UpsertOverwrites(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, "sources-overwrite", store.SimilarityNone)

	seedSource(t, ctx, s, "src-1")
	require.NoError(t, s.UpsertSource(ctx, &store.Source{
		ID:       "src-1",
		Path:     "/docs/renamed.md",
		FileSize: 4096,
		SHA256:   "newhash",
	}))

	got, err := s.GetSource(ctx, "src-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "/docs/renamed.md", got.Path)
	assert.Equal(t, "newhash", got.SHA256)
}

func TestSourceStore_UpsertPreservesChunks(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, "sources-preserve", store.SimilarityNone)

	seedSource(t, ctx, s, "src-1")
	seedChunk(t, ctx, s, "src-1", "chunk-1", 0, []float32{1, 0, 0})
	seedChunk(t, ctx, s, "src-1", "chunk-2", 1, []float32{0, 1, 0})

	// Re-upserting the source must not disturb its chunks.
	seedSource(t, ctx, s, "src-1")

	chunks, err := s.GetSourceChunks(ctx, "src-1")
	require.NoError(t, err)
	assert.Len(t, chunks, 2)
}

func TestSourceStore_DeleteCascadesToChunks(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, "sources-delete", store.SimilarityNone)

	seedSource(t, ctx, s, "src-1")
	seedSource(t, ctx, s, "src-2")
	seedChunk(t, ctx, s, "src-1", "chunk-1", 0, []float32{1, 0, 0})
	seedChunk(t, ctx, s, "src-2", "chunk-2", 0, []float32{0, 1, 0})

	require.NoError(t, s.DeleteSource(ctx, "src-1"))

	got, err := s.GetSource(ctx, "src-1")
	require.NoError(t, err)
	assert.Nil(t, got)

	chunk, err := s.GetChunk(ctx, "chunk-1")
	require.NoError(t, err)
	assert.Nil(t, chunk)

	// The other source's chunk survives.
	chunk, err = s.GetChunk(ctx, "chunk-2")
	require.NoError(t, err)
	require.NotNil(t, chunk)
	assert.Equal(t, "src-2", chunk.SourceID)
}

func TestSourceStore_DeleteMissingIsNoop(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, "sources-delete-missing", store.SimilarityNone)

	require.NoError(t, s.DeleteSource(ctx, "no-such-source"))
}

func TestSourceStore_UpsertRejectsEmptyID(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, "sources-validate", store.SimilarityNone)

	err := s.UpsertSource(ctx, &store.Source{Path: "/docs/x.md"})
	require.Error(t, err)
	assert.True(t, lorerr.IsInvalidInput(err))
}
