// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package orchestrator

import "testing"

func TestTabularFingerprintIsStableAndSensitive(t *testing.T) {
	a := TabularJobDescriptor{InputFileHash: "abc", Speed: 3, ExclusionFileHash: "def"}
	b := TabularJobDescriptor{InputFileHash: "abc", Speed: 3, ExclusionFileHash: "def"}
	if a.Fingerprint() != b.Fingerprint() {
		t.Fatal("identical descriptors must fingerprint identically")
	}

	c := TabularJobDescriptor{InputFileHash: "abc", Speed: 2, ExclusionFileHash: "def"}
	if a.Fingerprint() == c.Fingerprint() {
		t.Fatal("different speed options must fingerprint differently")
	}
}

func TestSearchIndexFingerprintIgnoresExclusionOrder(t *testing.T) {
	a := SearchIndexJobDescriptor{Query: "q", IndexName: "posts", ExcludedEntity: []string{"b.com", "a.com"}, Speed: 3}
	b := SearchIndexJobDescriptor{Query: "q", IndexName: "posts", ExcludedEntity: []string{"a.com", "b.com"}, Speed: 3}

	fa, err := a.Fingerprint()
	if err != nil {
		t.Fatalf("fingerprint a: %v", err)
	}
	fb, err := b.Fingerprint()
	if err != nil {
		t.Fatalf("fingerprint b: %v", err)
	}
	if fa != fb {
		t.Fatal("exclusion-list order must not affect the fingerprint")
	}
}

func TestSearchIndexFingerprintSensitiveToQuery(t *testing.T) {
	a := SearchIndexJobDescriptor{Query: "q1", IndexName: "posts", Speed: 3}
	b := SearchIndexJobDescriptor{Query: "q2", IndexName: "posts", Speed: 3}

	fa, _ := a.Fingerprint()
	fb, _ := b.Fingerprint()
	if fa == fb {
		t.Fatal("different queries must fingerprint differently")
	}
}
