// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lore Contributors

package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lore-dev/lore/internal/store"
	lorerr "github.com/lore-dev/lore/pkg/errors"
)

// UpsertSource inserts or fully overwrites a source by ID.
//
// ON CONFLICT DO UPDATE rather than INSERT OR REPLACE: REPLACE is a
// delete-plus-insert, which would fire the foreign-key cascade and
// silently drop the source's chunks.
func (s *Store) UpsertSource(ctx context.Context, src *store.Source) error {
	if err := store.ValidateSource(src); err != nil {
		return err
	}

	const q = `INSERT INTO sources (source_id, path, file_size, mime_type, mtime, sha256_hash, chunk_count)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(source_id) DO UPDATE SET
	path = excluded.path,
	file_size = excluded.file_size,
	mime_type = excluded.mime_type,
	mtime = excluded.mtime,
	sha256_hash = excluded.sha256_hash,
	chunk_count = excluded.chunk_count`

	_, err := s.db.ExecContext(ctx, q,
		src.ID, src.Path, src.FileSize, src.MIMEType,
		formatTime(src.ModTime), src.SHA256, src.ChunkCount,
	)
	if err != nil {
		return lorerr.Wrap(err, lorerr.CodeStoreIndexFailure, "upserting source",
			lorerr.FieldSourceID(src.ID))
	}
	return nil
}

// GetSource returns nil (not an error) when the ID is absent.
func (s *Store) GetSource(ctx context.Context, id string) (*store.Source, error) {
	const q = `SELECT source_id, path, file_size, mime_type, mtime, sha256_hash, chunk_count
FROM sources WHERE source_id = ?`

	var src store.Source
	var mtime string
	err := s.db.QueryRowContext(ctx, q, id).Scan(
		&src.ID, &src.Path, &src.FileSize, &src.MIMEType,
		&mtime, &src.SHA256, &src.ChunkCount,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, lorerr.Wrap(err, lorerr.CodeStoreDatabaseFailure, "getting source",
			lorerr.FieldSourceID(id))
	}
	src.ModTime = parseTime(mtime)
	return &src, nil
}

// DeleteSource removes the source row; the ON DELETE CASCADE foreign
// key removes every chunk referencing it within the same transaction,
// so no orphaned chunks or partial deletions are observable. A missing
// ID is a no-op.
func (s *Store) DeleteSource(ctx context.Context, id string) error {
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `DELETE FROM sources WHERE source_id = ?`, id)
		return err
	})
	if err != nil {
		return lorerr.Wrap(err, lorerr.CodeStoreIndexFailure, "deleting source",
			lorerr.FieldSourceID(id))
	}
	return nil
}
