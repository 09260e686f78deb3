// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

// Package coordination implements the coordinated-sharing-behaviour
// detection pipeline: bipartite graph construction with temporal decay,
// entropy-based partitioning, DTW-based pairwise refinement, and
// Jensen-Shannon-divergence group correction.
//
// The package never does I/O, never persists anything, and never renders
// community labels — it consumes a slice of Post and produces a slice of
// FinalEdge. Everything upstream (posts sources) and downstream (job
// orchestration, datastore, community rendering) lives in sibling
// packages.
package coordination

// Post is a single normalised post tuple as seen by the pipeline.
type Post struct {
	UserID   string
	Entity   string
	PostTime float64 // seconds since epoch
	PostID   string
}

// denseUserID and denseEntityID are dense integer ids assigned in
// first-seen order after pruning. They exist only for the duration of a
// single pipeline run.
type denseUserID int
type denseEntityID int

// idMap is a bijection between an opaque string id and a dense integer id.
type idMap struct {
	toDense  map[string]int
	toString []string
}

func newIDMap() *idMap {
	return &idMap{toDense: make(map[string]int)}
}

// intern returns the existing dense id for s, or assigns and returns a
// new one in first-seen order.
func (m *idMap) intern(s string) int {
	if id, ok := m.toDense[s]; ok {
		return id
	}
	id := len(m.toString)
	m.toDense[s] = id
	m.toString = append(m.toString, s)
	return id
}

func (m *idMap) lookup(s string) (int, bool) {
	id, ok := m.toDense[s]
	return id, ok
}

func (m *idMap) string(id int) string {
	return m.toString[id]
}

func (m *idMap) len() int {
	return len(m.toString)
}

// mebRecord is one row of the multi-edge bipartite graph:
// (user, entity, time-decay weight, post id).
type mebRecord struct {
	user   int
	entity int
	tau    float64
	postID string
}

// sebRecord is one row of the single-edge bipartite graph: one per
// (user, entity) pair, folding the MEB.
type sebRecord struct {
	user    int
	entity  int
	usage   float64
	count   int
	postIDs []string
}

// candidateEdge is a post-stage-4 unordered user pair on one entity.
type candidateEdge struct {
	u1, u2   int // u1 < u2
	entity   int
	beha1    float64
	beha2    float64
	posts1   []string
	posts2   []string
}

// refinedEdge is a candidateEdge plus a DTW-derived similarity weight.
type refinedEdge struct {
	candidateEdge
	weight float64
}

// FinalEdge is the post-stage-7 output row: dense ids mapped back to
// original identifiers, ready for rendering or persistence.
type FinalEdge struct {
	From        string
	To          string
	Entity      string
	Weight      float64
	PostIDsFrom []string
	PostIDsTo   []string
}

// Stats reports non-fatal counters accumulated across a pipeline run.
type Stats struct {
	EntitiesDropped int // excluded by the exclusion set or pruner
	UsersDropped    int // removed by the pruner
	PostsConsumed   int
	CandidateEdges  int
	RefinedEdges    int
	FinalEdges      int
}
