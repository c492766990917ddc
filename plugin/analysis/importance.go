package analysis

import (
	"math"

	"github.com/juridex/lexgraph/plugin/hypergraph"
)

// ImportanceWeights blends the two node-importance factors.
type ImportanceWeights struct {
	Degree    float64
	Magnitude float64
}

// DefaultImportanceWeights weighs structural position and embedding
// magnitude evenly.
var DefaultImportanceWeights = ImportanceWeights{Degree: 0.5, Magnitude: 0.5}

// NodeImportance scores every node by a blend of its degree relative to the
// densest node and its embedding magnitude relative to the largest. Scores
// fall in [0, 1]; a graph with no edges and zero embeddings scores all
// zeros.
func NodeImportance(g *hypergraph.Hypergraph, embeddings map[string][]float64, w ImportanceWeights) map[string]float64 {
	ids := g.NodeIDs()
	scores := make(map[string]float64, len(ids))
	if len(ids) == 0 {
		return scores
	}

	maxDegree := 0
	maxNorm := 0.0
	norms := make(map[string]float64, len(ids))
	for _, id := range ids {
		d, _ := g.Degree(id)
		if d > maxDegree {
			maxDegree = d
		}
		if emb, ok := embeddings[id]; ok {
			n := math.Sqrt(dotSelf(emb))
			norms[id] = n
			if n > maxNorm {
				maxNorm = n
			}
		}
	}

	for _, id := range ids {
		var score float64
		if maxDegree > 0 {
			d, _ := g.Degree(id)
			score += w.Degree * float64(d) / float64(maxDegree)
		}
		if maxNorm > 0 {
			score += w.Magnitude * norms[id] / maxNorm
		}
		scores[id] = score
	}
	return scores
}

func dotSelf(v []float64) float64 {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	return sum
}
