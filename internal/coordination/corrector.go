// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package coordination

// indicatorMatrix is the sparse user-entity indicator I[u,e] (§4.6 step 1),
// keyed by user for neighbourhood membership tests.
type indicatorMatrix map[int]map[int]bool

func buildIndicatorMatrix(seb []sebRecord, numEntities int) indicatorMatrix {
	m := make(indicatorMatrix)
	for _, r := range seb {
		if m[r.user] == nil {
			m[r.user] = make(map[int]bool, numEntities)
		}
		m[r.user][r.entity] = true
	}
	return m
}

// row returns a dense {0,1} row for user u across 0..numEntities-1.
func (m indicatorMatrix) row(u, numEntities int) []float64 {
	out := make([]float64, numEntities)
	for e := range m[u] {
		out[e] = 1
	}
	return out
}

// pairAgg is the aggregate over a pair's refined edges: the set of shared
// entities and the summed weight across them.
type pairAgg struct {
	entities map[int]bool
	total    float64
}

func aggregateByPair(refined []refinedEdge) map[pairKey]*pairAgg {
	agg := make(map[pairKey]*pairAgg)
	for _, e := range refined {
		k := pairKey{e.u1, e.u2}
		a := agg[k]
		if a == nil {
			a = &pairAgg{entities: make(map[int]bool)}
			agg[k] = a
		}
		a.entities[e.entity] = true
		a.total += e.weight
	}
	return agg
}

// correct implements the group corrector (§4.6): for each pair surviving
// refinement, estimates a neighbourhood of similarly-positioned users and
// rescales the pair's edge weights by how distinctive their coordination is
// relative to that neighbourhood.
func correct(refined []refinedEdge, seb []sebRecord, entities *idMap) []refinedEdge {
	if len(refined) == 0 {
		return nil
	}

	numEntities := entities.len()
	indicator := buildIndicatorMatrix(seb, numEntities)
	agg := aggregateByPair(refined)

	scale := make(map[pairKey]float64, len(agg))
	for key, a := range agg {
		scale[key] = correctionScale(key, a, indicator, numEntities, agg)
	}

	out := make([]refinedEdge, 0, len(refined))
	for _, e := range refined {
		f := scale[pairKey{e.u1, e.u2}]
		w := e.weight * f
		if w <= 0 {
			continue
		}
		e.weight = w
		out = append(out, e)
	}
	return out
}

// correctionScale computes the multiplicative rescale factor for one pair's
// edges: f such that w' = w*(1-S/|N|) + w*delta*(S/|N|), or 1 if |N|=0.
func correctionScale(key pairKey, a *pairAgg, indicator indicatorMatrix, numEntities int, agg map[pairKey]*pairAgg) float64 {
	wMax := a.total
	if wMax == 0 {
		return 1
	}

	neighbourhood := neighboursSharingAllEntities(key, a.entities, indicator)
	trimmed := trimNeighbourhood(neighbourhood, key, wMax, agg)
	if len(trimmed) == 0 {
		return 1
	}

	weights := make(map[int]float64, len(trimmed))
	var s float64
	for _, v := range trimmed {
		x := maxEdgeWeightBetween(v, key, agg)
		omega := (wMax - x) / wMax
		weights[v] = omega
		s += omega
	}
	if s <= 0 {
		return 1
	}

	centroid := make([]float64, numEntities)
	for v, omega := range weights {
		row := indicator.row(v, numEntities)
		for i, x := range row {
			centroid[i] += omega * x
		}
	}
	for i := range centroid {
		centroid[i] /= s
	}

	i1 := indicator.row(key.u1, numEntities)
	i2 := indicator.row(key.u2, numEntities)
	j1 := jsd(i1, centroid)
	j2 := jsd(i2, centroid)
	j3 := jsd(i1, i2)

	minJ := j1
	if j2 < minJ {
		minJ = j2
	}
	delta := minJ - j3

	ratio := s / float64(len(trimmed))
	return (1 - ratio) + delta*ratio
}

// neighboursSharingAllEntities finds every user (other than the pair) who
// has an indicator entry for every entity in shared.
func neighboursSharingAllEntities(key pairKey, shared map[int]bool, indicator indicatorMatrix) []int {
	var out []int
	for v, row := range indicator {
		if v == key.u1 || v == key.u2 {
			continue
		}
		all := true
		for e := range shared {
			if !row[e] {
				all = false
				break
			}
		}
		if all {
			out = append(out, v)
		}
	}
	return out
}

// trimNeighbourhood excludes any candidate whose aggregated weight to
// either pair member already meets or exceeds the pair's own weight.
func trimNeighbourhood(candidates []int, key pairKey, wMax float64, agg map[pairKey]*pairAgg) []int {
	var out []int
	for _, v := range candidates {
		if maxEdgeWeightBetween(v, key, agg) >= wMax {
			continue
		}
		out = append(out, v)
	}
	return out
}

// maxEdgeWeightBetween returns the larger of v's aggregated weight to u1
// and to u2, or 0 if v has no aggregated edge to either.
func maxEdgeWeightBetween(v int, key pairKey, agg map[pairKey]*pairAgg) float64 {
	var best float64
	for _, u := range [2]int{key.u1, key.u2} {
		lo, hi := v, u
		if lo > hi {
			lo, hi = hi, lo
		}
		if a, ok := agg[pairKey{lo, hi}]; ok && a.total > best {
			best = a.total
		}
	}
	return best
}
