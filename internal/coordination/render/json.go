// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package render

import (
	"github.com/goccy/go-json"

	"github.com/tomtom215/coordination-detector/internal/coordination"
)

// GraphNode is one user in the edge-graph JSON, labeled with its detected
// community.
type GraphNode struct {
	ID        string `json:"id"`
	Community int    `json:"community"`
}

// GraphEdge mirrors a FinalEdge, minus the per-post identifiers the CSV
// table carries — the renderer's graph view is for visualization, not
// for provenance lookups.
type GraphEdge struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Entity string  `json:"entity"`
	Weight float64 `json:"weight"`
}

// Graph is the edge-graph JSON body spec.md §6 assigns to the result
// renderer: nodes labeled by community, plus the weighted edge list.
type Graph struct {
	Nodes []GraphNode `json:"nodes"`
	Edges []GraphEdge `json:"edges"`
}

// BuildGraph combines the core's final edges with a community assignment
// into the renderer's JSON output shape.
func BuildGraph(edges []coordination.FinalEdge, communities CommunityResult) Graph {
	seen := map[string]bool{}
	var nodes []GraphNode
	addNode := func(id string) {
		if seen[id] {
			return
		}
		seen[id] = true
		nodes = append(nodes, GraphNode{ID: id, Community: communities.Assignment[id]})
	}

	graphEdges := make([]GraphEdge, 0, len(edges))
	for _, e := range edges {
		addNode(e.From)
		addNode(e.To)
		graphEdges = append(graphEdges, GraphEdge{From: e.From, To: e.To, Entity: e.Entity, Weight: e.Weight})
	}

	return Graph{Nodes: nodes, Edges: graphEdges}
}

// ToJSON serializes the graph using goccy/go-json, the teacher's JSON
// library throughout the HTTP layer.
func (g Graph) ToJSON() ([]byte, error) {
	return json.Marshal(g)
}
