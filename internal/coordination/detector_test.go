// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package coordination

import "testing"

func TestMaxEntropyPartitionLengthEmpty(t *testing.T) {
	if m := maxEntropyPartitionLength(nil); m != 0 {
		t.Fatalf("expected 0 for empty input, got %d", m)
	}
}

func TestMaxEntropyPartitionLengthAllZero(t *testing.T) {
	if m := maxEntropyPartitionLength([]float64{0, 0, 0}); m != 0 {
		t.Fatalf("expected 0 for all-zero input, got %d", m)
	}
}

func TestMaxEntropyPartitionLengthUniform(t *testing.T) {
	// A uniform vector has maximal entropy at k=0 and k=n (the whole set);
	// the tail correction should keep more than a single trivial element.
	b := []float64{5, 5, 5, 5}
	m := maxEntropyPartitionLength(b)
	if m < 2 {
		t.Fatalf("expected a non-trivial group for a uniform vector, got m=%d", m)
	}
}

func TestMaxEntropyPartitionLengthSkewed(t *testing.T) {
	// One dominant user followed by a flat tail of five: the flat suffix has
	// the highest entropy (k*=1), so the kept prefix takes the suffix's
	// length (m=5) and stops short of the whole vector.
	b := []float64{100, 1, 1, 1, 1, 1}
	m := maxEntropyPartitionLength(b)
	if m < 1 || m >= len(b) {
		t.Fatalf("expected a prefix shorter than the whole vector, got m=%d", m)
	}
}

func TestDetectSkipsSingleUserEntities(t *testing.T) {
	seb := []sebRecord{
		{user: 0, entity: 0, usage: 5, postIDs: []string{"p1"}},
	}
	edges := detect(seb)
	if len(edges) != 0 {
		t.Fatalf("expected no candidate edges for a single-user entity, got %d", len(edges))
	}
}

func TestDetectEmitsOrderedPairs(t *testing.T) {
	seb := []sebRecord{
		{user: 2, entity: 0, usage: 10, postIDs: []string{"p1"}},
		{user: 0, entity: 0, usage: 9, postIDs: []string{"p2"}},
		{user: 1, entity: 0, usage: 8, postIDs: []string{"p3"}},
	}
	edges := detect(seb)
	if len(edges) == 0 {
		t.Fatal("expected at least one candidate edge")
	}
	for _, e := range edges {
		if e.u1 >= e.u2 {
			t.Fatalf("candidate edge not canonically ordered: u1=%d u2=%d", e.u1, e.u2)
		}
	}
}

func TestDetectMultipleEntitiesIndependent(t *testing.T) {
	seb := []sebRecord{
		{user: 0, entity: 0, usage: 10, postIDs: []string{"p1"}},
		{user: 1, entity: 0, usage: 9, postIDs: []string{"p2"}},
		{user: 2, entity: 1, usage: 4, postIDs: []string{"p3"}},
		{user: 3, entity: 1, usage: 4, postIDs: []string{"p4"}},
	}
	edges := detect(seb)
	seen := map[int]bool{}
	for _, e := range edges {
		seen[e.entity] = true
	}
	if len(seen) != 2 {
		t.Fatal("expected candidate edges across both entities")
	}
}
