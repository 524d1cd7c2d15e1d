// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lore Contributors

package sqlite

import (
	"context"
	"math"
	"sort"
	"strings"

	"github.com/lore-dev/lore/internal/store"
	lorerr "github.com/lore-dev/lore/pkg/errors"
)

// defaultScanBatch is used when the store is constructed with a
// non-positive batch size. A LIMIT 0 scan would end on its first
// empty page and silently return nothing.
const defaultScanBatch = 256

// bruteSimilarity scans every stored embedding in Go and computes
// cosine similarity itself. It works on any SQLite build but is O(n)
// in the chunk count, so it exists for environments where the vec
// extension cannot load.
//
// The scan pages by chunk_id keyset so memory stays proportional to
// the batch size plus the candidate list, never the full corpus: only
// (id, score) pairs are retained until the winners are known.
type bruteSimilarity struct {
	store *Store
	batch int
}

func (b *bruteSimilarity) Name() string { return "brute-force" }

type scoredID struct {
	id    string
	score float64
}

func (b *bruteSimilarity) Search(ctx context.Context, query []float32, topK int) ([]store.SearchHit, error) {
	scored, err := b.scanScores(ctx, query)
	if err != nil {
		return nil, err
	}

	// Highest score first; equal scores rank by chunk ID ascending so
	// repeated queries return identical orderings.
	sort.Slice(scored, func(i, j int) bool {
		if scored[i].score != scored[j].score {
			return scored[i].score > scored[j].score
		}
		return scored[i].id < scored[j].id
	})
	if len(scored) > topK {
		scored = scored[:topK]
	}
	if len(scored) == 0 {
		return []store.SearchHit{}, nil
	}

	return b.fetchHits(ctx, scored)
}

// scanScores walks the chunks table in chunk_id order, scoring each
// embedding against the query.
func (b *bruteSimilarity) scanScores(ctx context.Context, query []float32) ([]scoredID, error) {
	const q = `SELECT chunk_id, embedding FROM chunks WHERE chunk_id > ? ORDER BY chunk_id ASC LIMIT ?`

	var scored []scoredID
	cursor := ""
	for {
		batch, last, err := b.scanPage(ctx, q, cursor, query)
		if err != nil {
			return nil, err
		}
		scored = append(scored, batch...)
		if last == "" {
			return scored, nil
		}
		cursor = last
	}
}

func (b *bruteSimilarity) scanPage(ctx context.Context, q, cursor string, query []float32) ([]scoredID, string, error) {
	rows, err := b.store.db.QueryContext(ctx, q, cursor, b.batch)
	if err != nil {
		return nil, "", lorerr.Wrapf(err, lorerr.CodeStoreSearchFailure, "scanning embeddings")
	}
	defer func() { _ = rows.Close() }()

	var page []scoredID
	last := ""
	for rows.Next() {
		var id string
		var blob []byte
		if err := rows.Scan(&id, &blob); err != nil {
			return nil, "", lorerr.Wrapf(err, lorerr.CodeStoreSearchFailure, "scanning embedding row")
		}
		page = append(page, scoredID{id: id, score: cosineSimilarity(query, decodeEmbedding(blob))})
		last = id
	}
	if err := rows.Err(); err != nil {
		return nil, "", lorerr.Wrapf(err, lorerr.CodeStoreSearchFailure, "iterating embedding rows")
	}
	if len(page) < b.batch {
		last = ""
	}
	return page, last, nil
}

// fetchHits loads the full chunk rows for the winning IDs and assembles
// hits in the already-determined rank order.
func (b *bruteSimilarity) fetchHits(ctx context.Context, scored []scoredID) ([]store.SearchHit, error) {
	placeholders := strings.Repeat("?,", len(scored))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]any, len(scored))
	for i, s := range scored {
		args[i] = s.id
	}

	rows, err := b.store.db.QueryContext(ctx,
		`SELECT `+chunkColumns+` FROM chunks WHERE chunk_id IN (`+placeholders+`)`, args...)
	if err != nil {
		return nil, lorerr.Wrapf(err, lorerr.CodeStoreSearchFailure, "fetching ranked chunks")
	}
	defer func() { _ = rows.Close() }()

	byID := make(map[string]*store.Chunk, len(scored))
	for rows.Next() {
		chunk, err := scanChunk(rows)
		if err != nil {
			return nil, lorerr.Wrapf(err, lorerr.CodeStoreSearchFailure, "scanning ranked chunk")
		}
		byID[chunk.ID] = chunk
	}
	if err := rows.Err(); err != nil {
		return nil, lorerr.Wrapf(err, lorerr.CodeStoreSearchFailure, "iterating ranked chunks")
	}

	hits := make([]store.SearchHit, 0, len(scored))
	for _, s := range scored {
		chunk, ok := byID[s.id]
		if !ok {
			// Deleted between scoring and fetch; skip rather than fail.
			continue
		}
		hits = append(hits, store.SearchHit{Chunk: chunk, Score: s.score})
	}
	return hits, nil
}

// cosineSimilarity accumulates in float64 to keep precision over long
// vectors. Zero-magnitude vectors score 0 rather than NaN.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
