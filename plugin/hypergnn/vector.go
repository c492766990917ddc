// Package hypergnn implements neural-style message passing over a
// hypergraph: node features are aggregated into each hyperedge, hyperedge
// vectors are aggregated back into each node, and a linear projection plus
// nonlinearity produces the next embedding.
//
// The computation is pure: layers never mutate the store. Callers apply the
// returned embedding map via hypergraph.ApplyEmbeddings. All operations
// assume a store validated at its own boundary and do not re-validate
// membership invariants.
package hypergnn

import "math"

func addInto(dst, src []float64) {
	for i := range src {
		dst[i] += src[i]
	}
}

func scale(v []float64, s float64) {
	for i := range v {
		v[i] *= s
	}
}

func dot(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

func maxInto(dst, src []float64) {
	for i := range src {
		if src[i] > dst[i] {
			dst[i] = src[i]
		}
	}
}

// matVec computes W·x for a row-major weight matrix of shape out×in.
func matVec(w [][]float64, x []float64) []float64 {
	out := make([]float64, len(w))
	for i, row := range w {
		out[i] = dot(row, x)
	}
	return out
}

func relu(v []float64) {
	for i := range v {
		if v[i] < 0 {
			v[i] = 0
		}
	}
}

// softmax normalizes scores in place to positive weights summing to one,
// subtracting the maximum first for numerical stability.
func softmax(scores []float64) {
	maxScore := math.Inf(-1)
	for _, s := range scores {
		if s > maxScore {
			maxScore = s
		}
	}
	var sum float64
	for i, s := range scores {
		scores[i] = math.Exp(s - maxScore)
		sum += scores[i]
	}
	for i := range scores {
		scores[i] /= sum
	}
}
