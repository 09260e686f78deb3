// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package coordination

// prune recursively removes entities used by <=1 distinct user and users
// using <=1 distinct entity, repeating until a pass removes nothing.
func prune(posts []normalizedPost, stats *Stats) []normalizedPost {
	if len(posts) == 0 {
		return posts
	}

	for {
		entityUsers := make(map[string]map[string]struct{})
		userEntities := make(map[string]map[string]struct{})
		for _, p := range posts {
			if entityUsers[p.entity] == nil {
				entityUsers[p.entity] = make(map[string]struct{})
			}
			entityUsers[p.entity][p.user] = struct{}{}
			if userEntities[p.user] == nil {
				userEntities[p.user] = make(map[string]struct{})
			}
			userEntities[p.user][p.entity] = struct{}{}
		}

		deadEntities := make(map[string]struct{})
		for e, users := range entityUsers {
			if len(users) <= 1 {
				deadEntities[e] = struct{}{}
			}
		}
		deadUsers := make(map[string]struct{})
		for u, entities := range userEntities {
			if len(entities) <= 1 {
				deadUsers[u] = struct{}{}
			}
		}

		if len(deadEntities) == 0 && len(deadUsers) == 0 {
			return posts
		}

		kept := posts[:0:0]
		for _, p := range posts {
			if _, dead := deadEntities[p.entity]; dead {
				stats.EntitiesDropped++
				continue
			}
			if _, dead := deadUsers[p.user]; dead {
				stats.UsersDropped++
				continue
			}
			kept = append(kept, p)
		}
		posts = kept

		if len(posts) == 0 {
			return posts
		}
	}
}
