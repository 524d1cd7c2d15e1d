// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lore Contributors

package store

import "sync"

// scopeLocks hands out one mutex per scope key (a database path),
// lazily created under a single master lock. Stores opening the same
// database concurrently use it to serialize schema migration.
var (
	scopeLocks   = map[string]*sync.Mutex{}
	scopeLocksMu sync.Mutex
)

// ScopeLock returns the dedicated mutex for the given scope key,
// creating it on first use. Callers lock and unlock it themselves.
func ScopeLock(key string) *sync.Mutex {
	scopeLocksMu.Lock()
	defer scopeLocksMu.Unlock()

	mu, ok := scopeLocks[key]
	if !ok {
		mu = &sync.Mutex{}
		scopeLocks[key] = mu
	}
	return mu
}
