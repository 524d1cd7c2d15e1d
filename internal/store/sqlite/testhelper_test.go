// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lore Contributors

package sqlite_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lore-dev/lore/internal/store"
	"github.com/lore-dev/lore/internal/store/sqlite"
)

// testDir creates a temp directory for a test and returns its path.
func testDir(t *testing.T) string {
	t.Helper()
	dir, err := os.MkdirTemp("", "lore-test-*")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })
	return dir
}

// testDBPath returns a temp SQLite database path.
func testDBPath(t *testing.T, name string) string {
	t.Helper()
	return filepath.Join(testDir(t), name+".db")
}

// newTestStore opens a store with 3-dimensional embeddings, small
// enough to reason about similarity by hand.
func newTestStore(t *testing.T, name string, mode store.SimilarityMode) *sqlite.Store {
	t.Helper()
	s, err := sqlite.New(testDBPath(t, name), &store.StorageConfig{
		EmbeddingDimensions: 3,
		Similarity:          mode,
		ScanBatchSize:       256,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// seedSource inserts a minimal source so chunks can reference it.
func seedSource(t *testing.T, ctx context.Context, s *sqlite.Store, id string) {
	t.Helper()
	require.NoError(t, s.UpsertSource(ctx, &store.Source{
		ID:       id,
		Path:     "/docs/" + id + ".md",
		FileSize: 1024,
		MIMEType: "text/markdown",
		ModTime:  time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		SHA256:   "deadbeef",
	}))
}

// seedChunk inserts one chunk with the given embedding.
func seedChunk(t *testing.T, ctx context.Context, s *sqlite.Store, sourceID, chunkID string, index int, embedding []float32) {
	t.Helper()
	require.NoError(t, s.UpsertChunk(ctx, &store.Chunk{
		ID:         chunkID,
		SourceID:   sourceID,
		Text:       fmt.Sprintf("chunk %s of %s", chunkID, sourceID),
		Index:      index,
		Embedding:  embedding,
		EmbeddedAt: time.Date(2026, 8, 1, 12, 30, 0, 0, time.UTC),
	}))
}
