package hypergnn

import "math/rand"

// Attention scores each member of a hyperedge by a learned projection and
// softmax-normalizes the scores into positive weights summing to one. The
// projection is shared across every hyperedge a layer processes; there are
// no per-edge parameters.
type Attention struct {
	score []float64
}

// NewAttention initializes the score projection for the given input
// dimension from the supplied source of randomness.
func NewAttention(dim int, rng *rand.Rand) *Attention {
	score := make([]float64, dim)
	for i := range score {
		score[i] = rng.NormFloat64() * 0.1
	}
	return &Attention{score: score}
}

// Dim returns the input dimension the score projection expects.
func (a *Attention) Dim() int { return len(a.score) }

// Weights returns the normalized attention weight per vector. With all
// scores equal the weights are uniform and attention reduces to a mean.
func (a *Attention) Weights(vectors [][]float64) []float64 {
	scores := make([]float64, len(vectors))
	for i, v := range vectors {
		scores[i] = dot(a.score, v)
	}
	softmax(scores)
	return scores
}

// Aggregate produces the attention-weighted sum of the vectors.
func (a *Attention) Aggregate(vectors [][]float64) []float64 {
	weights := a.Weights(vectors)
	out := make([]float64, len(vectors[0]))
	for i, v := range vectors {
		for j := range v {
			out[j] += v[j] * weights[i]
		}
	}
	return out
}
