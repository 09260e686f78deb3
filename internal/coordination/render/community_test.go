// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package render

import (
	"testing"

	"github.com/tomtom215/coordination-detector/internal/coordination"
)

func TestGreedyModularityEmptyInput(t *testing.T) {
	result := GreedyModularity(nil, DefaultCommunityOptions())
	if len(result.Assignment) != 0 {
		t.Fatalf("expected empty assignment, got %v", result.Assignment)
	}
}

func TestGreedyModularitySeparatesDisconnectedPairs(t *testing.T) {
	edges := []coordination.FinalEdge{
		{From: "a", To: "b", Entity: "e1", Weight: 5},
		{From: "c", To: "d", Entity: "e2", Weight: 5},
	}
	result := GreedyModularity(edges, DefaultCommunityOptions())

	if result.Assignment["a"] != result.Assignment["b"] {
		t.Fatal("strongly connected pair a-b should land in the same community")
	}
	if result.Assignment["c"] != result.Assignment["d"] {
		t.Fatal("strongly connected pair c-d should land in the same community")
	}
	if result.Assignment["a"] == result.Assignment["c"] {
		t.Fatal("disconnected components should land in different communities")
	}
}

func TestGreedyModularityIsDeterministicAcrossRuns(t *testing.T) {
	edges := []coordination.FinalEdge{
		{From: "a", To: "b", Entity: "e1", Weight: 3},
		{From: "b", To: "c", Entity: "e1", Weight: 3},
		{From: "c", To: "a", Entity: "e1", Weight: 3},
		{From: "d", To: "e", Entity: "e2", Weight: 4},
	}
	opts := DefaultCommunityOptions()

	first := GreedyModularity(edges, opts)
	second := GreedyModularity(edges, opts)

	for node, comm := range first.Assignment {
		if second.Assignment[node] != comm {
			t.Fatalf("non-deterministic assignment for node %s: %d vs %d", node, comm, second.Assignment[node])
		}
	}
}
