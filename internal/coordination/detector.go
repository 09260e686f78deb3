// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package coordination

import (
	"math"
	"sort"
)

// maxEntropyPartitionLength finds the length m of the "heavy" prefix of
// a descending-sorted, non-negative usage vector b, per the max-entropy
// split (§4.4). Returns 0 if no meaningful partition exists.
func maxEntropyPartitionLength(b []float64) int {
	n := len(b)
	if n == 0 {
		return 0
	}

	var sum float64
	for _, v := range b {
		sum += v
	}
	if sum == 0 {
		return 0
	}

	p := make([]float64, n)
	for i, v := range b {
		p[i] = v / sum
	}

	// prefixH[k] = H(p[:k]), suffixH[k] = H(p[k:]), for k = 0..n,
	// built incrementally in O(n).
	prefixH := make([]float64, n+1)
	for k := 1; k <= n; k++ {
		prefixH[k] = updateEntropyIncremental(prefixH[k-1], p[:k-1], p[k-1])
	}
	suffixH := make([]float64, n+1)
	for k := n - 1; k >= 0; k-- {
		suffixH[k] = updateEntropyIncremental(suffixH[k+1], p[k+1:], p[k])
	}

	bestK := -1
	bestVal := -1.0
	bestH1Wins := false
	for k := 0; k <= n; k++ {
		h1, h2 := prefixH[k], suffixH[k]
		val := math.Max(h1, h2)
		if val > bestVal {
			bestVal = val
			bestK = k
			bestH1Wins = h1 > h2
		}
	}
	if bestK < 0 {
		return 0
	}

	m := bestK
	if !bestH1Wins {
		m = n - bestK
	}

	// Tail correction: if the partition consumed the whole vector,
	// shrink by one when the entropy change across dropping the last
	// element is smaller than the stdev change.
	if m == n && n > 1 {
		full := shannonEntropy(b)
		trimmed := shannonEntropy(b[:n-1])
		if math.Abs(full-trimmed) < math.Abs(stdev(b)-stdev(b[:n-1])) {
			m--
		}
	}

	return m
}

// detect implements the entity-level detector (§4.4): for each entity
// with >=2 users in the SEB, finds the max-entropy coordination group and
// emits candidate edges for every pair within it.
func detect(seb []sebRecord) []candidateEdge {
	byEntity := make(map[int][]sebRecord)
	for _, r := range seb {
		byEntity[r.entity] = append(byEntity[r.entity], r)
	}

	entityIDs := make([]int, 0, len(byEntity))
	for e := range byEntity {
		entityIDs = append(entityIDs, e)
	}
	sort.Ints(entityIDs)

	var candidates []candidateEdge
	for _, entityID := range entityIDs {
		rows := byEntity[entityID]
		if len(rows) < 2 {
			continue
		}

		sort.Slice(rows, func(i, j int) bool {
			if rows[i].usage != rows[j].usage {
				return rows[i].usage > rows[j].usage
			}
			return rows[i].user < rows[j].user
		})

		usages := make([]float64, len(rows))
		for i, r := range rows {
			usages[i] = r.usage
		}

		m := maxEntropyPartitionLength(usages)
		if m < 2 {
			continue
		}

		group := rows[:m]
		for i := 0; i < len(group); i++ {
			for j := i + 1; j < len(group); j++ {
				u1, u2 := group[i].user, group[j].user
				b1, b2 := group[i].usage, group[j].usage
				p1, p2 := group[i].postIDs, group[j].postIDs
				if u1 > u2 {
					u1, u2 = u2, u1
					b1, b2 = b2, b1
					p1, p2 = p2, p1
				}
				candidates = append(candidates, candidateEdge{
					u1:     u1,
					u2:     u2,
					entity: group[i].entity,
					beha1:  b1,
					beha2:  b2,
					posts1: p1,
					posts2: p2,
				})
			}
		}
	}

	return candidates
}
