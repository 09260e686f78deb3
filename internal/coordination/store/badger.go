// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
)

const stagingPrefix = "staging:"

// BadgerStore implements Store on an embedded BadgerDB, using a
// write-to-staging-key-then-rename pattern inside a single transaction for
// atomicity, and Badger's native per-key TTL for expiry.
type BadgerStore struct {
	db *badger.DB
}

// OpenBadgerStore opens (creating if absent) a BadgerDB at path. inMemory
// bypasses the filesystem entirely, for tests and ephemeral runs.
func OpenBadgerStore(path string, inMemory bool) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path)
	if inMemory {
		opts = opts.WithInMemory(true)
	}
	opts = opts.WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("opening badger store: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

func (s *BadgerStore) Put(_ context.Context, key string, value []byte, ttl time.Duration) error {
	return s.db.Update(func(txn *badger.Txn) error {
		staging := []byte(stagingPrefix + key)
		stage := badger.NewEntry(staging, value)
		if ttl > 0 {
			stage = stage.WithTTL(ttl)
		}
		if err := txn.SetEntry(stage); err != nil {
			return fmt.Errorf("stage %s: %w", key, err)
		}

		item, err := txn.Get(staging)
		if err != nil {
			return fmt.Errorf("read staged %s: %w", key, err)
		}
		return item.Value(func(v []byte) error {
			final := badger.NewEntry([]byte(key), append([]byte(nil), v...))
			if ttl > 0 {
				final = final.WithTTL(ttl)
			}
			if err := txn.SetEntry(final); err != nil {
				return fmt.Errorf("commit %s: %w", key, err)
			}
			return txn.Delete(staging)
		})
	})
}

func (s *BadgerStore) Get(_ context.Context, key string) ([]byte, error) {
	var out []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get %s: %w", key, err)
		}
		return item.Value(func(v []byte) error {
			out = append([]byte(nil), v...)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *BadgerStore) List(_ context.Context, prefix string) ([]string, error) {
	var keys []string
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		p := []byte(prefix)
		for it.Seek(p); it.ValidForPrefix(p); it.Next() {
			k := it.Item().KeyCopy(nil)
			if bytes.HasPrefix(k, []byte(stagingPrefix)) {
				continue
			}
			keys = append(keys, string(k))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", prefix, err)
	}
	return keys, nil
}

func (s *BadgerStore) ExpireBefore(_ context.Context, cutoff time.Time) (int, error) {
	var expired [][]byte
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		// The default iterator hides keys whose TTL has already elapsed, so
		// every version is walked and only the newest one of each key counts.
		opts.AllVersions = true
		it := txn.NewIterator(opts)
		defer it.Close()

		var last []byte
		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			if last != nil && bytes.Equal(item.Key(), last) {
				continue
			}
			last = item.KeyCopy(nil)
			expiresAt := item.ExpiresAt()
			if expiresAt != 0 && time.Unix(int64(expiresAt), 0).Before(cutoff) {
				expired = append(expired, last)
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("scan for expired keys: %w", err)
	}
	if len(expired) == 0 {
		return 0, nil
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		for _, k := range expired {
			if err := txn.Delete(k); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("deleting expired keys: %w", err)
	}
	return len(expired), nil
}

func (s *BadgerStore) Close() error {
	return s.db.Close()
}

var _ Store = (*BadgerStore)(nil)
