// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lore Contributors

package sqlite

import "database/sql"

// migrate creates the sources and chunks tables idempotently. The
// schema is a durable contract; other tools may inspect it directly.
func migrate(db *sql.DB) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS sources (
	source_id   TEXT PRIMARY KEY,
	path        TEXT NOT NULL DEFAULT '',
	file_size   INTEGER NOT NULL DEFAULT 0,
	mime_type   TEXT NOT NULL DEFAULT '',
	mtime       TEXT NOT NULL DEFAULT '',
	sha256_hash TEXT NOT NULL DEFAULT '',
	chunk_count INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS chunks (
	chunk_id    TEXT PRIMARY KEY,
	source_id   TEXT NOT NULL REFERENCES sources(source_id) ON DELETE CASCADE,
	text        TEXT NOT NULL DEFAULT '',
	metadata    TEXT NOT NULL DEFAULT '{}',
	chunk_index INTEGER NOT NULL,
	start_char  INTEGER NOT NULL DEFAULT 0,
	end_char    INTEGER NOT NULL DEFAULT 0,
	embedding   BLOB NOT NULL,
	embedded_at TEXT NOT NULL DEFAULT ''
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_chunks_source_index
	ON chunks(source_id, chunk_index);
`
	_, err := db.Exec(ddl)
	return err
}
