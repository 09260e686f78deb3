// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package coordination

import "testing"

func TestGroupCandidatesByPairPreservesOrder(t *testing.T) {
	candidates := []candidateEdge{
		{u1: 0, u2: 1, entity: 0},
		{u1: 2, u2: 3, entity: 0},
		{u1: 0, u2: 1, entity: 1},
	}
	groups := groupCandidatesByPair(candidates)
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if groups[0].key != (pairKey{0, 1}) || len(groups[0].rows) != 2 {
		t.Fatalf("expected pair (0,1) with 2 rows first, got %+v", groups[0])
	}
}

func TestChunkPairGroupsNeverSplitsAPair(t *testing.T) {
	groups := []pairGroup{
		{key: pairKey{0, 1}, rows: make([]candidateEdge, 3)},
		{key: pairKey{2, 3}, rows: make([]candidateEdge, 3)},
	}
	chunks := chunkPairGroups(groups, 4)
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks given chunkSize=4, got %d", len(chunks))
	}
	for _, c := range chunks {
		if len(c) != 1 {
			t.Fatalf("expected each chunk to hold exactly one pair group, got %d", len(c))
		}
	}
}

func TestRefinePairGroupDropsSingleEntityPair(t *testing.T) {
	g := pairGroup{key: pairKey{0, 1}, rows: []candidateEdge{{u1: 0, u2: 1, entity: 0, beha1: 1, beha2: 1}}}
	out := refinePairGroup(g, tauIndex{}, defaultDTWShortcutThreshold)
	if out != nil {
		t.Fatalf("expected nil for a single-entity pair, got %v", out)
	}
}

func TestRefinePairGroupEmitsCoherentRows(t *testing.T) {
	g := pairGroup{
		key: pairKey{0, 1},
		rows: []candidateEdge{
			{u1: 0, u2: 1, entity: 0, beha1: 1.0, beha2: 1.0},
			{u1: 0, u2: 1, entity: 1, beha1: 0.9, beha2: 0.95},
			{u1: 0, u2: 1, entity: 2, beha1: 0.8, beha2: 0.85},
		},
	}
	idx := tauIndex{
		pairKey{0, 0}: {0.5, 0.6}, pairKey{1, 0}: {0.5, 0.6},
		pairKey{0, 1}: {0.4}, pairKey{1, 1}: {0.4},
		pairKey{0, 2}: {0.3}, pairKey{1, 2}: {0.3},
	}
	out := refinePairGroup(g, idx, defaultDTWShortcutThreshold)
	if len(out) == 0 {
		t.Fatal("expected at least one refined edge for coherent usage profiles")
	}
	for _, e := range out {
		if e.weight <= 0 || e.weight > 1 {
			t.Fatalf("expected weight in (0,1], got %v", e.weight)
		}
	}
}

func TestRefineConcatenatesAllChunks(t *testing.T) {
	candidates := []candidateEdge{
		{u1: 0, u2: 1, entity: 0, beha1: 1.0, beha2: 1.0},
		{u1: 0, u2: 1, entity: 1, beha1: 0.9, beha2: 0.95},
		{u1: 2, u2: 3, entity: 0, beha1: 1.0, beha2: 1.0},
		{u1: 2, u2: 3, entity: 1, beha1: 0.9, beha2: 0.95},
	}
	meb := []mebRecord{
		{user: 0, entity: 0, tau: 0.5}, {user: 1, entity: 0, tau: 0.5},
		{user: 0, entity: 1, tau: 0.4}, {user: 1, entity: 1, tau: 0.4},
		{user: 2, entity: 0, tau: 0.5}, {user: 3, entity: 0, tau: 0.5},
		{user: 2, entity: 1, tau: 0.4}, {user: 3, entity: 1, tau: 0.4},
	}
	opts := Options{WorkerThreads: 2, WorkerChunkSize: 2, DTWShortcutThreshold: defaultDTWShortcutThreshold}
	out := refine(candidates, meb, opts)
	pairs := map[pairKey]bool{}
	for _, e := range out {
		pairs[pairKey{e.u1, e.u2}] = true
	}
	if len(pairs) != 2 {
		t.Fatalf("expected refined edges for both pairs, got %d", len(pairs))
	}
}
