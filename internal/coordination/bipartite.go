// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package coordination

import (
	"math"
	"sort"
)

// buildIDMaps assigns dense integer ids to users and entities in
// first-seen order, after pruning.
func buildIDMaps(posts []normalizedPost) (*idMap, *idMap) {
	users := newIDMap()
	entities := newIDMap()
	for _, p := range posts {
		users.intern(p.user)
		entities.intern(p.entity)
	}
	return users, entities
}

// buildMEB computes the dataset-wide decay constant and emits the
// multi-edge bipartite graph, dropping records below the decay epsilon.
func buildMEB(posts []normalizedPost, users, entities *idMap, epsilon float64) []mebRecord {
	if len(posts) == 0 {
		return nil
	}

	type span struct {
		tMin, tMax float64
		seen       bool
	}
	spans := make(map[string]*span, entities.len())
	for _, p := range posts {
		s := spans[p.entity]
		if s == nil {
			s = &span{tMin: p.time, tMax: p.time, seen: true}
			spans[p.entity] = s
			continue
		}
		if p.time < s.tMin {
			s.tMin = p.time
		}
		if p.time > s.tMax {
			s.tMax = p.time
		}
	}

	var totalSpan float64
	var count int
	for _, s := range spans {
		totalSpan += s.tMax - s.tMin
		count++
	}

	var alpha float64
	degenerate := count == 0 || totalSpan == 0
	if !degenerate {
		alpha = math.Log(10000) / (totalSpan / float64(count))
	}

	out := make([]mebRecord, 0, len(posts))
	for _, p := range posts {
		var tau float64
		if degenerate {
			tau = 1.0
		} else {
			t0 := spans[p.entity].tMin
			tau = math.Exp(-alpha * (p.time - t0))
		}
		if tau <= epsilon {
			continue
		}
		out = append(out, mebRecord{
			user:   users.intern(p.user),
			entity: entities.intern(p.entity),
			tau:    tau,
			postID: p.postID,
		})
	}
	return out
}

// foldSEB folds the MEB by (user, entity) into the single-edge bipartite
// graph. The fold is commutative; post-id ordering is stable because meb
// preserves input order and the fold walks it in order.
func foldSEB(meb []mebRecord) []sebRecord {
	type key struct {
		user, entity int
	}
	index := make(map[key]int)
	var out []sebRecord

	for _, r := range meb {
		k := key{r.user, r.entity}
		if i, ok := index[k]; ok {
			out[i].usage += r.tau
			out[i].count++
			out[i].postIDs = append(out[i].postIDs, r.postID)
			continue
		}
		index[k] = len(out)
		out = append(out, sebRecord{
			user:    r.user,
			entity:  r.entity,
			usage:   r.tau,
			count:   1,
			postIDs: []string{r.postID},
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].entity != out[j].entity {
			return out[i].entity < out[j].entity
		}
		return out[i].user < out[j].user
	})
	return out
}
