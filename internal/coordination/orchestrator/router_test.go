// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package orchestrator

import (
	"context"
	"testing"

	"github.com/tomtom215/coordination-detector/internal/coordination/store"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	s, err := store.OpenBadgerStore("", true)
	if err != nil {
		t.Fatalf("open in-memory store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })

	srv := &Server{
		Store:   s,
		Breaker: NewStoreBreaker(DefaultCircuitBreakerConfig("datastore")),
	}
	srv.Routes() // initializes perf monitor and read cache
	return srv
}

func TestStoreGetServesFromReadCache(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	if err := srv.storePut(ctx, "job:1", []byte("v1"), 0); err != nil {
		t.Fatalf("put: %v", err)
	}
	if _, err := srv.storeGet(ctx, "job:1"); err != nil {
		t.Fatalf("get: %v", err)
	}

	// Bypass the breaker/store and write directly, so only a stale cache
	// entry could make storeGet return the old value.
	if err := srv.Store.Put(ctx, "job:1", []byte("v2-direct"), 0); err != nil {
		t.Fatalf("direct put: %v", err)
	}

	got, err := srv.storeGet(ctx, "job:1")
	if err != nil {
		t.Fatalf("get after direct write: %v", err)
	}
	if string(got) != "v1" {
		t.Fatalf("expected cached value %q, got %q", "v1", got)
	}
}

func TestStorePutInvalidatesReadCache(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	if err := srv.storePut(ctx, "job:2", []byte("v1"), 0); err != nil {
		t.Fatalf("put: %v", err)
	}
	if _, err := srv.storeGet(ctx, "job:2"); err != nil {
		t.Fatalf("get: %v", err)
	}

	if err := srv.storePut(ctx, "job:2", []byte("v2"), 0); err != nil {
		t.Fatalf("put v2: %v", err)
	}

	got, err := srv.storeGet(ctx, "job:2")
	if err != nil {
		t.Fatalf("get after update: %v", err)
	}
	if string(got) != "v2" {
		t.Fatalf("expected updated value %q, got %q", "v2", got)
	}
}
