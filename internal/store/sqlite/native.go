// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lore Contributors

package sqlite

import (
	"context"

	sqlite_vec "github.com/asg017/sqlite-vec-go-bindings/cgo"

	"github.com/lore-dev/lore/internal/store"
	lorerr "github.com/lore-dev/lore/pkg/errors"
)

// nativeSimilarity ranks inside SQLite using vec_distance_cosine, so
// candidate vectors never cross into Go. vec_distance_cosine returns a
// distance in [0, 2]; 1 - distance recovers the cosine similarity.
type nativeSimilarity struct {
	store *Store
}

func (n *nativeSimilarity) Name() string { return "sqlite-vec" }

func (n *nativeSimilarity) Search(ctx context.Context, query []float32, topK int) ([]store.SearchHit, error) {
	blob, err := sqlite_vec.SerializeFloat32(query)
	if err != nil {
		return nil, lorerr.Wrapf(err, lorerr.CodeStoreSearchFailure, "serializing query embedding")
	}

	const q = `SELECT ` + chunkColumns + `, 1.0 - vec_distance_cosine(embedding, ?) AS score
FROM chunks
ORDER BY score DESC, chunk_id ASC
LIMIT ?`

	rows, err := n.store.db.QueryContext(ctx, q, blob, topK)
	if err != nil {
		return nil, lorerr.Wrapf(err, lorerr.CodeStoreSearchFailure, "running vec similarity query")
	}
	defer func() { _ = rows.Close() }()

	hits := make([]store.SearchHit, 0, topK)
	for rows.Next() {
		var chunk store.Chunk
		var metaJSON, embeddedAt string
		var embBlob []byte
		var score float64

		err := rows.Scan(
			&chunk.ID, &chunk.SourceID, &chunk.Text, &metaJSON,
			&chunk.Index, &chunk.StartChar, &chunk.EndChar, &embBlob, &embeddedAt,
			&score,
		)
		if err != nil {
			return nil, lorerr.Wrapf(err, lorerr.CodeStoreSearchFailure, "scanning similarity row")
		}
		if err := unmarshalMetadata(metaJSON, &chunk); err != nil {
			return nil, lorerr.Wrap(err, lorerr.CodeStoreSearchFailure, "decoding chunk metadata",
				lorerr.FieldChunkID(chunk.ID))
		}
		chunk.Embedding = decodeEmbedding(embBlob)
		chunk.EmbeddedAt = parseTime(embeddedAt)
		hits = append(hits, store.SearchHit{Chunk: &chunk, Score: score})
	}
	if err := rows.Err(); err != nil {
		return nil, lorerr.Wrapf(err, lorerr.CodeStoreSearchFailure, "iterating similarity rows")
	}
	return hits, nil
}
