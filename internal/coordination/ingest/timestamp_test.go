// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package ingest

import (
	"errors"
	"testing"
)

func TestParseTimestampStripsZ(t *testing.T) {
	got, err := ParseTimestamp("2024-01-01T00:00:00Z")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 1704067200 {
		t.Fatalf("got %v, want 1704067200", got)
	}
}

func TestParseTimestampStripsOffset(t *testing.T) {
	got, err := ParseTimestamp("2024-01-01T00:00:00+05:00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// The offset is stripped, not applied, per spec.md §6.
	if got != 1704067200 {
		t.Fatalf("got %v, want 1704067200", got)
	}
}

func TestParseTimestampDateOnly(t *testing.T) {
	got, err := ParseTimestamp("2024-01-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 1704067200 {
		t.Fatalf("got %v, want 1704067200", got)
	}
}

func TestParseTimestampUnparseable(t *testing.T) {
	_, err := ParseTimestamp("not-a-date")
	if !errors.Is(err, ErrInputMalformed) {
		t.Fatalf("expected ErrInputMalformed, got %v", err)
	}
}
