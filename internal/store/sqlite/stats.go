// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lore Contributors

package sqlite

import (
	"context"

	"github.com/lore-dev/lore/internal/store"
	lorerr "github.com/lore-dev/lore/pkg/errors"
)

// Stats reports row counts and the active search capability.
func (s *Store) Stats(ctx context.Context) (*store.Stats, error) {
	stats := &store.Stats{
		EmbeddingDimension: s.dims,
		ExtensionAvailable: s.sim.Name() == "sqlite-vec",
	}

	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sources`).Scan(&stats.Sources); err != nil {
		return nil, lorerr.Wrapf(err, lorerr.CodeStoreDatabaseFailure, "counting sources")
	}
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM chunks`).Scan(&stats.Chunks); err != nil {
		return nil, lorerr.Wrapf(err, lorerr.CodeStoreDatabaseFailure, "counting chunks")
	}
	return stats, nil
}
