// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package coordination

import (
	"math"
	"sort"
	"sync"
	"time"

	"github.com/tomtom215/coordination-detector/internal/metrics"
)

// pairKey identifies an ordered candidate pair.
type pairKey struct {
	u1, u2 int
}

// pairGroup is every candidate row for one ordered pair, in the order they
// were appended to the candidate table.
type pairGroup struct {
	key  pairKey
	rows []candidateEdge
}

// tauIndex answers "the sorted tau-values a user recorded on an entity" in
// O(1), built once from the MEB before refinement starts.
type tauIndex map[pairKey][]float64 // keyed by (user, entity)

func buildTauIndex(meb []mebRecord) tauIndex {
	raw := make(map[pairKey][]float64)
	for _, r := range meb {
		k := pairKey{r.user, r.entity}
		raw[k] = append(raw[k], r.tau)
	}
	for _, v := range raw {
		sort.Float64s(v)
	}
	return tauIndex(raw)
}

func (idx tauIndex) get(user, entity int) []float64 {
	return idx[pairKey{user, entity}]
}

// groupCandidatesByPair folds the candidate table into per-pair groups,
// preserving first-appearance order for deterministic chunking.
func groupCandidatesByPair(candidates []candidateEdge) []pairGroup {
	index := make(map[pairKey]int)
	var groups []pairGroup
	for _, c := range candidates {
		k := pairKey{c.u1, c.u2}
		if i, ok := index[k]; ok {
			groups[i].rows = append(groups[i].rows, c)
			continue
		}
		index[k] = len(groups)
		groups = append(groups, pairGroup{key: k, rows: []candidateEdge{c}})
	}
	return groups
}

// chunkPairGroups partitions pair groups into chunks of at most chunkSize
// candidate rows, never splitting a single pair's rows across a chunk
// boundary.
func chunkPairGroups(groups []pairGroup, chunkSize int) [][]pairGroup {
	if chunkSize <= 0 {
		chunkSize = defaultChunkSize
	}
	var chunks [][]pairGroup
	var current []pairGroup
	size := 0
	for _, g := range groups {
		if size > 0 && size+len(g.rows) > chunkSize {
			chunks = append(chunks, current)
			current = nil
			size = 0
		}
		current = append(current, g)
		size += len(g.rows)
	}
	if len(current) > 0 {
		chunks = append(chunks, current)
	}
	return chunks
}

const defaultChunkSize = 1000

// refine implements the pairwise DTW-based refiner (§4.5): for each
// candidate pair with >=2 shared entities, compute per-row DTW similarity,
// sort by usage-gap ascending, and grow a coherent prefix via the
// cosine/sum-of-squared-gaps ratio. Parallelised over pair-group chunks.
func refine(candidates []candidateEdge, meb []mebRecord, opts Options) []refinedEdge {
	groups := groupCandidatesByPair(candidates)
	if len(groups) == 0 {
		return nil
	}
	tau := buildTauIndex(meb)

	chunks := chunkPairGroups(groups, opts.WorkerChunkSize)
	results := make([][]refinedEdge, len(chunks))

	workers := opts.WorkerThreads
	if workers <= 0 {
		workers = 1
	}
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup

	for i, chunk := range chunks {
		wg.Add(1)
		sem <- struct{}{}
		metrics.WorkerPoolActiveWorkers.Inc()
		go func(i int, chunk []pairGroup) {
			defer wg.Done()
			defer metrics.WorkerPoolActiveWorkers.Dec()
			defer func() { <-sem }()
			started := time.Now()
			results[i] = refineChunk(chunk, tau, opts.DTWShortcutThreshold)
			metrics.RecordWorkerChunk(time.Since(started))
		}(i, chunk)
	}
	wg.Wait()

	var out []refinedEdge
	for _, r := range results {
		out = append(out, r...)
	}
	return out
}

func refineChunk(chunk []pairGroup, tau tauIndex, dtwThreshold int) []refinedEdge {
	var out []refinedEdge
	for _, g := range chunk {
		out = append(out, refinePairGroup(g, tau, dtwThreshold)...)
	}
	return out
}

// refineRow is one candidate row annotated with its usage-gap and DTW
// similarity, used while sorting and growing the coherent prefix.
type refineRow struct {
	edge candidateEdge
	d    float64
	s    float64
}

// refinePairGroup applies §4.5 steps 1-5 to a single pair's candidate rows.
func refinePairGroup(g pairGroup, tau tauIndex, dtwThreshold int) []refinedEdge {
	if len(g.rows) < 2 {
		return nil
	}

	rows := make([]refineRow, len(g.rows))
	for i, c := range g.rows {
		x := tau.get(g.key.u1, c.entity)
		y := tau.get(g.key.u2, c.entity)
		rows[i] = refineRow{
			edge: c,
			d:    math.Abs(c.beha1 - c.beha2),
			s:    dtwSimilarity(x, y, dtwThreshold),
		}
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].d < rows[j].d })

	k := len(rows)
	pivot := 2
	for pivot < k {
		c := coherenceRatio(rows[:pivot])
		if c >= 1 {
			pivot++
			continue
		}
		pivot--
		break
	}
	if pivot > k {
		pivot = k
	}

	if pivot <= 1 {
		return nil
	}

	out := make([]refinedEdge, 0, pivot)
	for i := 0; i < pivot; i++ {
		out = append(out, refinedEdge{
			candidateEdge: rows[i].edge,
			weight:        rows[i].s,
		})
	}
	return out
}

// coherenceRatio computes cosine(beta1[:pivot], beta2[:pivot]) / sum(d[:pivot]^2)
// over a slice of rows already sorted by usage-gap ascending.
func coherenceRatio(rows []refineRow) float64 {
	b1 := make([]float64, len(rows))
	b2 := make([]float64, len(rows))
	var sumSq float64
	for i, r := range rows {
		b1[i] = r.edge.beha1
		b2[i] = r.edge.beha2
		sumSq += r.d * r.d
	}
	if sumSq == 0 {
		sumSq = 1e-8
	}
	return cosineSimilarity(b1, b2) / sumSq
}

