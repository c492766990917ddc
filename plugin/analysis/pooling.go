// Package analysis provides the graph analytics that consume propagation
// embeddings: graph-level pooling, community detection, link prediction,
// node importance and hierarchical coarsening.
//
// Operations assume a well-formed store validated at the store boundary and
// embeddings of uniform dimension; they do not re-validate on every call.
package analysis

import (
	"fmt"
	"sort"

	"github.com/juridex/lexgraph/plugin/hypergnn"
)

// Pool collapses a node embedding map into a single graph-level vector using
// the given aggregation strategy. Attention pooling requires a configured
// attention; the other strategies ignore it.
func Pool(embeddings map[string][]float64, agg hypergnn.Aggregation, attn *hypergnn.Attention) ([]float64, error) {
	if len(embeddings) == 0 {
		return nil, fmt.Errorf("no embeddings to pool")
	}
	if agg == hypergnn.AggAttention && attn == nil {
		return nil, fmt.Errorf("attention pooling needs an attention instance")
	}

	ids := make([]string, 0, len(embeddings))
	for id := range embeddings {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	dim := len(embeddings[ids[0]])
	vectors := make([][]float64, 0, len(ids))
	for _, id := range ids {
		v := embeddings[id]
		if len(v) != dim {
			return nil, fmt.Errorf("embedding for %q has dimension %d, expected %d", id, len(v), dim)
		}
		vectors = append(vectors, v)
	}

	switch agg {
	case hypergnn.AggSum:
		out := make([]float64, dim)
		for _, v := range vectors {
			for i := range v {
				out[i] += v[i]
			}
		}
		return out, nil
	case hypergnn.AggMax:
		out := make([]float64, dim)
		copy(out, vectors[0])
		for _, v := range vectors[1:] {
			for i := range v {
				if v[i] > out[i] {
					out[i] = v[i]
				}
			}
		}
		return out, nil
	case hypergnn.AggAttention:
		if attn.Dim() != dim {
			return nil, &hypergnn.DimensionMismatchError{ID: ids[0], Got: dim, Want: attn.Dim()}
		}
		return attn.Aggregate(vectors), nil
	default:
		out := make([]float64, dim)
		for _, v := range vectors {
			for i := range v {
				out[i] += v[i]
			}
		}
		for i := range out {
			out[i] /= float64(len(vectors))
		}
		return out, nil
	}
}
