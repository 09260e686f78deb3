// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

// Package store persists job results and fingerprints for the
// coordination-detection orchestrator.
package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by Get when no value exists for a key.
var ErrNotFound = errors.New("store: key not found")

// Store is the datastore contract the orchestrator depends on: atomic
// blob write, read, prefix listing, and expiry sweep.
type Store interface {
	// Put atomically writes value under key. ttl<=0 means no expiry.
	Put(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// List returns every key with the given prefix.
	List(ctx context.Context, prefix string) ([]string, error)
	// ExpireBefore deletes keys whose TTL has already elapsed as of
	// cutoff, returning the number removed.
	ExpireBefore(ctx context.Context, cutoff time.Time) (int, error)
	// Close releases underlying resources.
	Close() error
}
