package hypergnn

import "fmt"

// Aggregation selects how a set of vectors is combined into one.
type Aggregation string

const (
	AggMean      Aggregation = "mean"
	AggSum       Aggregation = "sum"
	AggMax       Aggregation = "max"
	AggAttention Aggregation = "attention"
)

// ParseAggregation validates an aggregation tag.
func ParseAggregation(s string) (Aggregation, error) {
	switch Aggregation(s) {
	case AggMean, AggSum, AggMax, AggAttention:
		return Aggregation(s), nil
	case "":
		return AggMean, nil
	}
	return "", fmt.Errorf("unknown aggregation strategy %q", s)
}

// aggregate combines vectors by the given strategy. The attention parameter
// is only consulted for AggAttention. Vectors must be non-empty and share
// one dimension; the caller has already validated both.
func aggregate(vectors [][]float64, agg Aggregation, attn *Attention) []float64 {
	switch agg {
	case AggSum:
		out := make([]float64, len(vectors[0]))
		for _, v := range vectors {
			addInto(out, v)
		}
		return out
	case AggMax:
		out := make([]float64, len(vectors[0]))
		copy(out, vectors[0])
		for _, v := range vectors[1:] {
			maxInto(out, v)
		}
		return out
	case AggAttention:
		return attn.Aggregate(vectors)
	default: // AggMean
		out := make([]float64, len(vectors[0]))
		for _, v := range vectors {
			addInto(out, v)
		}
		scale(out, 1/float64(len(vectors)))
		return out
	}
}

// weightedMean combines vectors with per-vector weights, falling back to a
// plain mean when the weights sum to zero.
func weightedMean(vectors [][]float64, weights []float64) []float64 {
	out := make([]float64, len(vectors[0]))
	var total float64
	for _, w := range weights {
		total += w
	}
	if total == 0 {
		for _, v := range vectors {
			addInto(out, v)
		}
		scale(out, 1/float64(len(vectors)))
		return out
	}
	for i, v := range vectors {
		for j := range v {
			out[j] += v[j] * weights[i]
		}
	}
	scale(out, 1/total)
	return out
}
