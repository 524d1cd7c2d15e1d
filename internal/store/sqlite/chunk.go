// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lore Contributors

package sqlite

import (
	"context"
	"database/sql"
	"encoding/binary"
	"encoding/json"
	"errors"
	"math"

	sqlite_vec "github.com/asg017/sqlite-vec-go-bindings/cgo"

	"github.com/lore-dev/lore/internal/store"
	lorerr "github.com/lore-dev/lore/pkg/errors"
)

// chunkColumns is the select list every chunk read shares.
const chunkColumns = `chunk_id, source_id, text, metadata, chunk_index, start_char, end_char, embedding, embedded_at`

// UpsertChunk validates the embedding dimension before any write, then
// inserts or replaces by chunk ID. The chunk must reference an
// existing source; the foreign key rejects the write otherwise.
func (s *Store) UpsertChunk(ctx context.Context, chunk *store.Chunk) error {
	if err := store.ValidateChunk(chunk, s.dims); err != nil {
		return err
	}

	blob, err := sqlite_vec.SerializeFloat32(chunk.Embedding)
	if err != nil {
		return lorerr.Wrap(err, lorerr.CodeStoreIndexFailure, "serializing embedding",
			lorerr.FieldChunkID(chunk.ID))
	}

	metaJSON := []byte("{}")
	if len(chunk.Metadata) > 0 {
		metaJSON, err = json.Marshal(chunk.Metadata)
		if err != nil {
			return lorerr.Wrap(err, lorerr.CodeStoreIndexFailure, "marshalling chunk metadata",
				lorerr.FieldChunkID(chunk.ID))
		}
	}

	const q = `INSERT INTO chunks (chunk_id, source_id, text, metadata, chunk_index, start_char, end_char, embedding, embedded_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(chunk_id) DO UPDATE SET
	source_id = excluded.source_id,
	text = excluded.text,
	metadata = excluded.metadata,
	chunk_index = excluded.chunk_index,
	start_char = excluded.start_char,
	end_char = excluded.end_char,
	embedding = excluded.embedding,
	embedded_at = excluded.embedded_at`

	_, err = s.db.ExecContext(ctx, q,
		chunk.ID, chunk.SourceID, chunk.Text, string(metaJSON),
		chunk.Index, chunk.StartChar, chunk.EndChar, blob,
		formatTime(chunk.EmbeddedAt),
	)
	if err != nil {
		return lorerr.Wrap(err, lorerr.CodeStoreIndexFailure, "upserting chunk",
			lorerr.FieldChunkID(chunk.ID), lorerr.FieldSourceID(chunk.SourceID))
	}
	return nil
}

// GetChunk returns nil (not an error) when the ID is absent.
func (s *Store) GetChunk(ctx context.Context, id string) (*store.Chunk, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+chunkColumns+` FROM chunks WHERE chunk_id = ?`, id)

	chunk, err := scanChunk(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, lorerr.Wrap(err, lorerr.CodeStoreDatabaseFailure, "getting chunk",
			lorerr.FieldChunkID(id))
	}
	return chunk, nil
}

// GetSourceChunks returns the source's chunks ordered by chunk index
// ascending. An unknown source yields an empty slice, not an error.
func (s *Store) GetSourceChunks(ctx context.Context, sourceID string) ([]*store.Chunk, error) {
	const q = `SELECT ` + chunkColumns + ` FROM chunks WHERE source_id = ? ORDER BY chunk_index ASC`

	rows, err := s.db.QueryContext(ctx, q, sourceID)
	if err != nil {
		return nil, lorerr.Wrap(err, lorerr.CodeStoreDatabaseFailure, "listing source chunks",
			lorerr.FieldSourceID(sourceID))
	}
	defer func() { _ = rows.Close() }()

	chunks := make([]*store.Chunk, 0)
	for rows.Next() {
		chunk, err := scanChunk(rows)
		if err != nil {
			return nil, lorerr.Wrap(err, lorerr.CodeStoreDatabaseFailure, "scanning chunk row",
				lorerr.FieldSourceID(sourceID))
		}
		chunks = append(chunks, chunk)
	}
	if err := rows.Err(); err != nil {
		return nil, lorerr.Wrap(err, lorerr.CodeStoreDatabaseFailure, "iterating source chunks",
			lorerr.FieldSourceID(sourceID))
	}
	return chunks, nil
}

// rowScanner abstracts *sql.Row and *sql.Rows for chunk scans.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanChunk(row rowScanner) (*store.Chunk, error) {
	var chunk store.Chunk
	var metaJSON, embeddedAt string
	var blob []byte

	err := row.Scan(
		&chunk.ID, &chunk.SourceID, &chunk.Text, &metaJSON,
		&chunk.Index, &chunk.StartChar, &chunk.EndChar, &blob, &embeddedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := unmarshalMetadata(metaJSON, &chunk); err != nil {
		return nil, err
	}
	chunk.Embedding = decodeEmbedding(blob)
	chunk.EmbeddedAt = parseTime(embeddedAt)
	return &chunk, nil
}

func unmarshalMetadata(metaJSON string, chunk *store.Chunk) error {
	if metaJSON == "" || metaJSON == "{}" {
		return nil
	}
	return json.Unmarshal([]byte(metaJSON), &chunk.Metadata)
}

// decodeEmbedding converts a little-endian float32 blob (the layout
// sqlite-vec serializes) back to a vector.
func decodeEmbedding(blob []byte) []float32 {
	vector := make([]float32, len(blob)/4)
	for i := range vector {
		bits := binary.LittleEndian.Uint32(blob[i*4:])
		vector[i] = math.Float32frombits(bits)
	}
	return vector
}
