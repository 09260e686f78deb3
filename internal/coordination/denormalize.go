// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package coordination

import "sort"

// denormalize maps dense ids back to original identifiers and sorts the
// result by weight descending, ties broken by (from, to, entity).
func denormalize(edges []refinedEdge, users, entities *idMap) []FinalEdge {
	out := make([]FinalEdge, 0, len(edges))
	for _, e := range edges {
		out = append(out, FinalEdge{
			From:        users.string(e.u1),
			To:          users.string(e.u2),
			Entity:      entities.string(e.entity),
			Weight:      e.weight,
			PostIDsFrom: e.posts1,
			PostIDsTo:   e.posts2,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Weight != b.Weight {
			return a.Weight > b.Weight
		}
		if a.From != b.From {
			return a.From < b.From
		}
		if a.To != b.To {
			return a.To < b.To
		}
		return a.Entity < b.Entity
	})
	return out
}
