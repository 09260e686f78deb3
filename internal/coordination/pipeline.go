// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package coordination

import (
	"time"

	"github.com/tomtom215/coordination-detector/internal/metrics"
)

// Run executes the full coordination-detection pipeline over posts,
// respecting the configured speed cutoff. It performs no I/O: posts are
// supplied in memory and the result is returned in memory.
func Run(posts []Post, exclude ExclusionSet, opts Options) ([]FinalEdge, Stats, error) {
	if err := opts.validate(); err != nil {
		return nil, Stats{}, err
	}

	stats := Stats{}

	started := time.Now()
	normalized, err := normalize(posts, exclude, &stats)
	metrics.RecordStage("normalize", time.Since(started), len(normalized), err)
	if err != nil {
		return nil, stats, err
	}

	started = time.Now()
	pruned := prune(normalized, &stats)
	metrics.RecordStage("prune", time.Since(started), len(pruned), nil)
	if len(pruned) == 0 {
		return nil, stats, nil
	}

	started = time.Now()
	users, entities := buildIDMaps(pruned)
	meb := buildMEB(pruned, users, entities, opts.DecayEpsilon)
	seb := foldSEB(meb)
	metrics.RecordStage("bipartite", time.Since(started), len(seb), nil)

	started = time.Now()
	candidates := detect(seb)
	stats.CandidateEdges = len(candidates)
	metrics.RecordStage("detect", time.Since(started), len(candidates), nil)

	if opts.Speed == SpeedDetectorOnly {
		edges := speedOneEdges(candidates)
		final := denormalize(edges, users, entities)
		stats.FinalEdges = len(final)
		return final, stats, nil
	}

	started = time.Now()
	refined := refine(candidates, meb, opts)
	stats.RefinedEdges = len(refined)
	metrics.RecordStage("refine", time.Since(started), len(refined), nil)

	if opts.Speed == SpeedRefinerOnly {
		final := denormalize(refined, users, entities)
		stats.FinalEdges = len(final)
		return final, stats, nil
	}

	started = time.Now()
	corrected := correct(refined, seb, entities)
	metrics.RecordStage("correct", time.Since(started), len(corrected), nil)

	started = time.Now()
	final := denormalize(corrected, users, entities)
	stats.FinalEdges = len(final)
	metrics.RecordStage("denormalize", time.Since(started), len(final), nil)
	return final, stats, nil
}

// speedOneEdges implements the speed=1 cutoff: stop after the entity-level
// detector, keep only pairs coordinated on >=2 entities, and weight each
// surviving row by the smaller of the two usages on that entity.
func speedOneEdges(candidates []candidateEdge) []refinedEdge {
	groups := groupCandidatesByPair(candidates)

	var out []refinedEdge
	for _, g := range groups {
		distinctEntities := make(map[int]struct{}, len(g.rows))
		for _, r := range g.rows {
			distinctEntities[r.entity] = struct{}{}
		}
		if len(distinctEntities) < 2 {
			continue
		}
		for _, r := range g.rows {
			w := r.beha1
			if r.beha2 < w {
				w = r.beha2
			}
			out = append(out, refinedEdge{candidateEdge: r, weight: w})
		}
	}
	return out
}
