// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package coordination

import "testing"

func TestCorrectNoNeighbourhoodLeavesWeightUnchanged(t *testing.T) {
	refined := []refinedEdge{
		{candidateEdge: candidateEdge{u1: 0, u2: 1, entity: 0}, weight: 0.8},
	}
	seb := []sebRecord{
		{user: 0, entity: 0, usage: 1},
		{user: 1, entity: 0, usage: 1},
	}
	entities := newIDMap()
	entities.intern("e0")

	out := correct(refined, seb, entities)
	if len(out) != 1 {
		t.Fatalf("expected 1 edge, got %d", len(out))
	}
	if out[0].weight != 0.8 {
		t.Fatalf("expected weight unchanged at 0.8 with no neighbourhood, got %v", out[0].weight)
	}
}

func TestCorrectDropsNonPositiveWeights(t *testing.T) {
	refined := []refinedEdge{
		{candidateEdge: candidateEdge{u1: 0, u2: 1, entity: 0}, weight: 0},
	}
	seb := []sebRecord{
		{user: 0, entity: 0, usage: 1},
		{user: 1, entity: 0, usage: 1},
	}
	entities := newIDMap()
	entities.intern("e0")

	out := correct(refined, seb, entities)
	if len(out) != 0 {
		t.Fatalf("expected weight <=0 rows to be dropped, got %d", len(out))
	}
}

func TestCorrectWithNeighbourhoodRescales(t *testing.T) {
	// u0,u1 share entities 0 and 1; u2 also sits on both and is weakly
	// connected to u0/u1, forming a one-member neighbourhood.
	refined := []refinedEdge{
		{candidateEdge: candidateEdge{u1: 0, u2: 1, entity: 0}, weight: 0.5},
		{candidateEdge: candidateEdge{u1: 0, u2: 1, entity: 1}, weight: 0.5},
		{candidateEdge: candidateEdge{u1: 0, u2: 2, entity: 0}, weight: 0.2},
	}
	seb := []sebRecord{
		{user: 0, entity: 0, usage: 1},
		{user: 1, entity: 0, usage: 1},
		{user: 0, entity: 1, usage: 1},
		{user: 1, entity: 1, usage: 1},
		{user: 2, entity: 0, usage: 1},
		{user: 2, entity: 1, usage: 1},
	}
	entities := newIDMap()
	entities.intern("e0")
	entities.intern("e1")

	out := correct(refined, seb, entities)
	if len(out) == 0 {
		t.Fatal("expected surviving edges")
	}
	for _, e := range out {
		if e.weight < 0 {
			t.Fatalf("expected non-negative weight, got %v", e.weight)
		}
	}
}
