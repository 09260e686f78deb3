// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

// Package render turns the core pipeline's edge list into the result
// renderer's output artifacts: community labels and the edge-graph JSON.
package render

import (
	"math/rand"

	"github.com/tomtom215/coordination-detector/internal/coordination"
)

// CommunityOptions configures the greedy modularity optimizer.
type CommunityOptions struct {
	// MaxIterations bounds the local-move passes. Default 100.
	MaxIterations int
	// ConvergenceThreshold stops early once a full pass improves
	// modularity by less than this. Default 1e-6.
	ConvergenceThreshold float64
	// Resolution trades off community granularity; 1.0 is standard
	// modularity. Default 1.0.
	Resolution float64
	// Seed drives the per-pass node visitation order so runs are
	// reproducible while still avoiding the pathological worst case of
	// always visiting nodes in the same fixed order.
	Seed int64
}

// DefaultCommunityOptions returns the spec's defaults.
func DefaultCommunityOptions() CommunityOptions {
	return CommunityOptions{
		MaxIterations:        100,
		ConvergenceThreshold: 1e-6,
		Resolution:           1.0,
		Seed:                 1,
	}
}

// CommunityResult is the detector's black-box output: a node-to-community
// assignment plus the achieved modularity score.
type CommunityResult struct {
	Assignment map[string]int `json:"assignment"`
	Modularity float64        `json:"modularity"`
}

// weightedGraph is an undirected, weighted adjacency list built by
// collapsing the core's per-entity edges into per-user-pair weights.
type weightedGraph struct {
	nodes     []string
	index     map[string]int
	adjacency []map[int]float64 // adjacency[i][j] = aggregated weight
	degree    []float64
	totalW    float64
}

func buildWeightedGraph(edges []coordination.FinalEdge) *weightedGraph {
	g := &weightedGraph{index: make(map[string]int)}

	nodeID := func(id string) int {
		if i, ok := g.index[id]; ok {
			return i
		}
		i := len(g.nodes)
		g.index[id] = i
		g.nodes = append(g.nodes, id)
		g.adjacency = append(g.adjacency, map[int]float64{})
		g.degree = append(g.degree, 0)
		return i
	}

	for _, e := range edges {
		i, j := nodeID(e.From), nodeID(e.To)
		if i == j {
			continue
		}
		g.adjacency[i][j] += e.Weight
		g.adjacency[j][i] += e.Weight
		g.degree[i] += e.Weight
		g.degree[j] += e.Weight
		g.totalW += e.Weight
	}
	return g
}

// GreedyModularity detects communities in the core's undirected weighted
// edge list by single-pass greedy local-move optimization: each node
// starts in its own community and repeatedly moves to whichever
// neighbouring community most improves modularity, until a full pass
// yields no improving move or MaxIterations is reached.
func GreedyModularity(edges []coordination.FinalEdge, opts CommunityOptions) CommunityResult {
	if opts.MaxIterations <= 0 {
		opts.MaxIterations = 100
	}
	if opts.ConvergenceThreshold <= 0 {
		opts.ConvergenceThreshold = 1e-6
	}
	if opts.Resolution <= 0 {
		opts.Resolution = 1.0
	}

	g := buildWeightedGraph(edges)
	if len(g.nodes) == 0 {
		return CommunityResult{Assignment: map[string]int{}}
	}

	community := make([]int, len(g.nodes))
	commDegreeSum := make([]float64, len(g.nodes))
	for i := range g.nodes {
		community[i] = i
		commDegreeSum[i] = g.degree[i]
	}

	if g.totalW > 0 {
		rng := rand.New(rand.NewSource(opts.Seed))
		order := make([]int, len(g.nodes))
		for i := range order {
			order[i] = i
		}

		prevQ := modularity(g, community, commDegreeSum, opts.Resolution)
		for iter := 0; iter < opts.MaxIterations; iter++ {
			rng.Shuffle(len(order), func(a, b int) { order[a], order[b] = order[b], order[a] })

			moved := false
			for _, node := range order {
				moveNodeToBestCommunity(g, community, commDegreeSum, node, opts.Resolution, &moved)
			}

			q := modularity(g, community, commDegreeSum, opts.Resolution)
			if !moved || q-prevQ < opts.ConvergenceThreshold {
				prevQ = q
				break
			}
			prevQ = q
		}
	}

	return CommunityResult{
		Assignment: denseLabel(g.nodes, community),
		Modularity: modularity(g, community, commDegreeSum, opts.Resolution),
	}
}

// moveNodeToBestCommunity evaluates moving node into each neighbouring
// community (or leaving it alone) and commits to whichever option
// maximizes modularity gain.
func moveNodeToBestCommunity(g *weightedGraph, community []int, commDegreeSum []float64, node int, resolution float64, moved *bool) {
	if g.totalW == 0 {
		return
	}
	current := community[node]
	ki := g.degree[node]

	weightToComm := map[int]float64{}
	for neighbor, w := range g.adjacency[node] {
		weightToComm[community[neighbor]] += w
	}

	commDegreeSum[current] -= ki
	bestComm := current
	bestGain := 0.0
	for comm, eic := range weightToComm {
		gain := eic/g.totalW - resolution*ki*commDegreeSum[comm]/(2*g.totalW*g.totalW)
		if gain > bestGain {
			bestGain = gain
			bestComm = comm
		}
	}
	commDegreeSum[bestComm] += ki

	if bestComm != current {
		community[node] = bestComm
		*moved = true
	}
}

// modularity computes Q = (1/2m) * sum_i,j [A_ij - resolution*k_i*k_j/2m] * delta(c_i,c_j),
// evaluated per community via the internal-edge-weight / degree-sum decomposition.
func modularity(g *weightedGraph, community []int, commDegreeSum []float64, resolution float64) float64 {
	if g.totalW == 0 {
		return 0
	}
	internal := map[int]float64{}
	for i, neighbors := range g.adjacency {
		ci := community[i]
		for j, w := range neighbors {
			if community[j] == ci {
				internal[ci] += w / 2 // each undirected edge counted from both endpoints
			}
		}
	}

	q := 0.0
	seen := map[int]bool{}
	for _, c := range community {
		if seen[c] {
			continue
		}
		seen[c] = true
		sumDeg := commDegreeSum[c]
		q += internal[c]/g.totalW - resolution*(sumDeg/(2*g.totalW))*(sumDeg/(2*g.totalW))
	}
	return q
}

// denseLabel renumbers raw community ids to 0..k-1 in first-appearance
// order over the node list (itself insertion-ordered), so the result is
// independent of the optimizer's internal integer choices.
func denseLabel(nodes []string, community []int) map[string]int {
	dense := map[int]int{}
	out := make(map[string]int, len(nodes))
	for i, raw := range community {
		id, ok := dense[raw]
		if !ok {
			id = len(dense)
			dense[raw] = id
		}
		out[nodes[i]] = id
	}
	return out
}
