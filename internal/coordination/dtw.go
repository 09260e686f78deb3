// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package coordination

import (
	"math"

	"github.com/tomtom215/coordination-detector/internal/metrics"
)

// defaultDTWShortcutThreshold guards against the quadratic blow-up of a full
// DTW matrix when both sequences are long; when both exceed it, similarity
// is assumed 1.0.
const defaultDTWShortcutThreshold = 1000

// dtwSimilarity computes a temporal similarity in (0, 1] between two
// tau-value sequences on a shared entity. Sequences longer than threshold
// on both sides skip the DTW matrix entirely.
func dtwSimilarity(x, y []float64, threshold int) float64 {
	if len(x) > threshold && len(y) > threshold {
		metrics.DTWShortcutsTaken.Inc()
		return 1.0
	}
	total := dtwDistance(x, y)
	return 1 / (1 + total)
}

// dtwDistance computes the standard dynamic-time-warping alignment cost
// between x and y under an absolute-difference local cost, with match,
// insert, and delete moves of equal cost.
func dtwDistance(x, y []float64) float64 {
	n, m := len(x), len(y)
	if n == 0 || m == 0 {
		return 0
	}

	prev := make([]float64, m+1)
	curr := make([]float64, m+1)
	for j := 1; j <= m; j++ {
		prev[j] = math.Inf(1)
	}

	for i := 1; i <= n; i++ {
		curr[0] = math.Inf(1)
		for j := 1; j <= m; j++ {
			cost := math.Abs(x[i-1] - y[j-1])
			best := prev[j-1]
			if prev[j] < best {
				best = prev[j]
			}
			if curr[j-1] < best {
				best = curr[j-1]
			}
			curr[j] = cost + best
		}
		prev, curr = curr, prev
	}

	return prev[m]
}
