// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package orchestrator

import (
	"strings"
	"testing"

	"github.com/tomtom215/coordination-detector/internal/coordination"
)

func TestEncodeEdgeTableIncludesHeaderAndRows(t *testing.T) {
	edges := []coordination.FinalEdge{
		{From: "alice", To: "bob", Entity: "e.com", Weight: 0.9, PostIDsFrom: []string{"p1"}, PostIDsTo: []string{"p2"}},
	}
	raw, err := encodeEdgeTable(edges)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	text := string(raw)
	if !strings.Contains(text, "From,To,Link,Weight,PostIDs_from,PostIDs_to") {
		t.Fatalf("missing header: %s", text)
	}
	if !strings.Contains(text, "alice,bob,e.com,0.9") {
		t.Fatalf("missing edge row: %s", text)
	}
}

func TestEncodeEdgeTableEmpty(t *testing.T) {
	raw, err := encodeEdgeTable(nil)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if strings.TrimSpace(string(raw)) != "From,To,Link,Weight,PostIDs_from,PostIDs_to" {
		t.Fatalf("expected header-only output, got %q", raw)
	}
}
