// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lore Contributors

package sqlite

import "github.com/lore-dev/lore/internal/store"

func init() {
	store.RegisterBackend("sqlite", func(dbPath string, cfg *store.StorageConfig) (store.KnowledgeBase, error) {
		return New(dbPath, cfg)
	})
}
