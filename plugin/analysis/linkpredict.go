package analysis

import (
	"math"

	"github.com/juridex/lexgraph/plugin/hypergraph"
)

// Weights blends the three link-prediction factors. The coefficients are a
// modelling choice, not a calibrated constant, so they are configurable.
type Weights struct {
	Cosine    float64
	Distance  float64
	Neighbors float64
}

// DefaultWeights is the blend used when the caller has no preference.
var DefaultWeights = Weights{
	Cosine:    0.5,
	Distance:  0.2,
	Neighbors: 0.3,
}

// PredictLink scores the plausibility of an unobserved relationship between
// two nodes as a weighted sum of embedding cosine similarity, normalized
// Euclidean proximity, and the Jaccard overlap of their neighbor sets.
// Higher is more plausible. The score is symmetric in its arguments, and
// nodes without neighbors contribute a zero overlap term rather than an
// error.
func PredictLink(g *hypergraph.Hypergraph, embeddings map[string][]float64, a, b string, w Weights) (float64, error) {
	embA, okA := embeddings[a]
	embB, okB := embeddings[b]
	var missing []string
	if !okA {
		missing = append(missing, a)
	}
	if !okB {
		missing = append(missing, b)
	}
	if len(missing) > 0 {
		return 0, &hypergraph.UnknownNodeError{IDs: missing}
	}

	neighborsA, err := g.Neighbors(a)
	if err != nil {
		return 0, err
	}
	neighborsB, err := g.Neighbors(b)
	if err != nil {
		return 0, err
	}

	cosine := CosineSimilarity(embA, embB)
	proximity := 1 / (1 + math.Sqrt(squaredDistance(embA, embB)))
	overlap := jaccard(neighborsA, neighborsB)

	return w.Cosine*cosine + w.Distance*proximity + w.Neighbors*overlap, nil
}

// CosineSimilarity computes the cosine of the angle between two vectors,
// returning 0 when either has zero norm.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// jaccard computes |A∩B| / |A∪B|, with empty-over-empty defined as 0.
func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	var intersection int
	for id := range a {
		if _, ok := b[id]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}
