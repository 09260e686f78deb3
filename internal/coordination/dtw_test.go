// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package coordination

import "testing"

func TestDTWDistanceIdenticalSequencesIsZero(t *testing.T) {
	x := []float64{0.1, 0.2, 0.3}
	if d := dtwDistance(x, x); d != 0 {
		t.Fatalf("expected 0, got %v", d)
	}
}

func TestDTWSimilarityIdenticalSequencesIsOne(t *testing.T) {
	x := []float64{0.1, 0.2, 0.3}
	if s := dtwSimilarity(x, x, defaultDTWShortcutThreshold); s != 1.0 {
		t.Fatalf("expected similarity 1.0, got %v", s)
	}
}

func TestDTWSimilarityShortcutOnLongSequences(t *testing.T) {
	x := make([]float64, 1001)
	y := make([]float64, 1001)
	for i := range x {
		x[i] = float64(i)
		y[i] = float64(i) * 100
	}
	if s := dtwSimilarity(x, y, defaultDTWShortcutThreshold); s != 1.0 {
		t.Fatalf("expected shortcut similarity 1.0, got %v", s)
	}
}

func TestDTWSimilarityNoShortcutWhenOneSideShort(t *testing.T) {
	x := make([]float64, 1001)
	y := []float64{1, 2, 3}
	s := dtwSimilarity(x, y, defaultDTWShortcutThreshold)
	if s == 1.0 {
		t.Fatal("did not expect the shortcut to trigger when only one side exceeds the threshold")
	}
}

func TestDTWDistanceEmptySequence(t *testing.T) {
	if d := dtwDistance(nil, []float64{1, 2}); d != 0 {
		t.Fatalf("expected 0 for an empty input, got %v", d)
	}
}

func TestDTWDistanceSymmetric(t *testing.T) {
	x := []float64{1, 3, 5}
	y := []float64{2, 4}
	if dtwDistance(x, y) != dtwDistance(y, x) {
		t.Fatal("expected DTW distance to be symmetric")
	}
}
