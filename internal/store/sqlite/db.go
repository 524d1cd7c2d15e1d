// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lore Contributors

package sqlite

import (
	"context"
	"database/sql"
	"log/slog"
	"runtime"

	sqlite_vec "github.com/asg017/sqlite-vec-go-bindings/cgo"
	sqlite3 "github.com/mattn/go-sqlite3"

	"github.com/lore-dev/lore/internal/store"
	lorerr "github.com/lore-dev/lore/pkg/errors"
)

// driverName is the registered driver carrying the connect hook below.
const driverName = "sqlite3_lore"

func init() {
	sqlite_vec.Auto()

	// temp_store has no DSN form in the driver, so the hook applies
	// it as each pooled connection opens.
	sql.Register(driverName, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			_, err := conn.Exec("PRAGMA temp_store = MEMORY", nil)
			return err
		},
	})
}

// Compile-time interface check.
var _ store.KnowledgeBase = (*Store)(nil)

// dsnParams applies per-connection tuning to every pooled connection:
// foreign-key enforcement, write-ahead logging, relaxed synchronous
// durability, and a 64 MiB page cache. Durability is traded for
// throughput; the store is a derived index, not a primary data source.
const dsnParams = "?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on&_synchronous=NORMAL&_cache_size=-65536"

// Store implements store.KnowledgeBase backed by a single SQLite
// database. The similarity strategy is fixed at construction; the
// query path never re-probes capabilities.
type Store struct {
	db     *sql.DB
	dims   int
	sim    similarity
	logger *slog.Logger
}

// New opens (or creates) a SQLite database at dbPath, ensures the
// sources and chunks tables exist, and selects the similarity strategy
// per cfg.Similarity.
func New(dbPath string, cfg *store.StorageConfig) (*Store, error) {
	db, err := sql.Open(driverName, dbPath+dsnParams)
	if err != nil {
		return nil, lorerr.Wrapf(err, lorerr.CodeStoreDatabaseFailure, "opening sqlite db")
	}

	// Each worker checks out its own pooled connection; connections
	// are never shared concurrently.
	db.SetMaxOpenConns(max(4, runtime.GOMAXPROCS(0)))

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, lorerr.Wrapf(err, lorerr.CodeStoreDatabaseFailure, "pinging sqlite db")
	}

	// Serialize migration across stores opened on the same path.
	mu := store.ScopeLock(dbPath)
	mu.Lock()
	err = migrate(db)
	mu.Unlock()
	if err != nil {
		_ = db.Close()
		return nil, lorerr.Wrapf(err, lorerr.CodeStoreDatabaseFailure, "migrating knowledge tables")
	}

	s := &Store{db: db, dims: cfg.EmbeddingDimensions, logger: slog.Default()}

	sim, err := s.selectSimilarity(cfg)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	s.sim = sim

	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// withTx runs fn inside a transaction. On error the transaction is
// rolled back and the error returned unmodified; on success it is
// committed.
func (s *Store) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return lorerr.Wrapf(err, lorerr.CodeStoreDatabaseFailure, "beginning transaction")
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return lorerr.Wrapf(err, lorerr.CodeStoreDatabaseFailure, "committing transaction")
	}
	return nil
}
