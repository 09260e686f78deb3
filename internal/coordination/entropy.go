// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package coordination

import "math"

// shannonEntropy computes H(x) = -sum xi/||x|| * log(xi/||x||) over the
// non-zero elements of x. H(empty) = 0.
func shannonEntropy(x []float64) float64 {
	var sum float64
	for _, v := range x {
		sum += v
	}
	if sum <= 0 {
		return 0
	}
	var h float64
	for _, v := range x {
		if v <= 0 {
			continue
		}
		p := v / sum
		h -= p * math.Log(p)
	}
	return h
}

// updateEntropyIncremental returns the entropy of a vector Y+[m] given
// h1, the entropy of Y, and the values of Y (needed for their sum).
// This mirrors the incremental update used by the original max-entropy
// partition sweep: H(Y ++ [m]) expressed in terms of H(Y) without
// rescanning Y.
func updateEntropyIncremental(h1 float64, y []float64, m float64) float64 {
	var s float64
	for _, v := range y {
		s += v
	}
	if s+m <= 0 {
		return 0
	}
	if s == 0 {
		return 0
	}
	p1 := s / (s + m)
	p2 := m / (s + m)

	switch {
	case p1 == 0 && p2 == 0:
		return 0
	case p1 == 0:
		return -p2 * math.Log(p2)
	case p2 == 0:
		return p1*h1 - p1*math.Log(p1)
	default:
		return p1*h1 - p1*math.Log(p1) - p2*math.Log(p2)
	}
}

// stdev returns the population standard deviation of x.
func stdev(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	var mean float64
	for _, v := range x {
		mean += v
	}
	mean /= float64(len(x))
	var sq float64
	for _, v := range x {
		d := v - mean
		sq += d * d
	}
	return math.Sqrt(sq / float64(len(x)))
}

// cosineSimilarity computes the cosine similarity between two equal
// length vectors, returning 0 if either norm is zero.
func cosineSimilarity(a, b []float64) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	normProduct := math.Sqrt(na) * math.Sqrt(nb)
	if normProduct == 0 {
		return 0
	}
	return dot / normProduct
}

// jsd computes the Jensen-Shannon divergence between two non-negative
// vectors p and q (not necessarily normalised; each is normalised by its
// own sum internally).
func jsd(p, q []float64) float64 {
	var sp, sq float64
	for _, v := range p {
		sp += v
	}
	for _, v := range q {
		sq += v
	}
	if sp == 0 || sq == 0 {
		return 0
	}

	mix := make([]float64, len(p))
	for i := range p {
		mix[i] = 0.5 * (p[i]/sp + q[i]/sq)
	}

	pn := make([]float64, len(p))
	qn := make([]float64, len(q))
	for i := range p {
		pn[i] = p[i] / sp
	}
	for i := range q {
		qn[i] = q[i] / sq
	}

	return shannonEntropy(mix) - 0.5*shannonEntropy(pn) - 0.5*shannonEntropy(qn)
}
