package hypergnn

import (
	"math/rand"

	"github.com/juridex/lexgraph/plugin/hypergraph"
)

// Layer is one round of hypergraph message passing: node → hyperedge
// aggregation, hyperedge → node aggregation, then a linear projection into
// the output dimensionality followed by a rectified-linear nonlinearity.
type Layer struct {
	InputDim  int
	OutputDim int
	Agg       Aggregation

	// w is the projection matrix, OutputDim x InputDim row-major.
	w    [][]float64
	bias []float64
	attn *Attention
}

// NewLayer creates a layer with weights drawn from the supplied source of
// randomness. A fixed seed gives fixed weights and therefore a fully
// deterministic forward pass.
func NewLayer(inputDim, outputDim int, agg Aggregation, rng *rand.Rand) *Layer {
	w := make([][]float64, outputDim)
	for i := range w {
		w[i] = make([]float64, inputDim)
		for j := range w[i] {
			w[i][j] = rng.NormFloat64() * 0.1
		}
	}
	return &Layer{
		InputDim:  inputDim,
		OutputDim: outputDim,
		Agg:       agg,
		w:         w,
		bias:      make([]float64, outputDim),
		attn:      NewAttention(inputDim, rng),
	}
}

// Forward computes the next embedding for every node and returns a new map;
// the input map and the store are left untouched. Nodes and edges are
// visited in sorted id order so the result is deterministic.
//
// Every embedding in the input map must have length InputDim; the first
// offender produces a *DimensionMismatchError.
func (l *Layer) Forward(g *hypergraph.Hypergraph, embeddings map[string][]float64) (map[string][]float64, error) {
	for _, id := range g.NodeIDs() {
		emb, ok := embeddings[id]
		if !ok {
			continue
		}
		if len(emb) != l.InputDim {
			return nil, &DimensionMismatchError{ID: id, Got: len(emb), Want: l.InputDim}
		}
	}

	// Node → hyperedge: one vector per edge from its members' embeddings.
	// The store guarantees at least two members per edge, so the strategies
	// never see an empty set and mean never divides by zero.
	edgeVectors := make(map[string][]float64, g.NumEdges())
	for _, edgeID := range g.EdgeIDs() {
		edge := g.Edge(edgeID)
		members := edge.MemberIDs()
		vectors := make([][]float64, 0, len(members))
		for _, m := range members {
			if emb, ok := embeddings[m]; ok {
				vectors = append(vectors, emb)
			}
		}
		if len(vectors) == 0 {
			continue
		}
		edgeVectors[edgeID] = aggregate(vectors, l.Agg, l.attn)
	}

	// Hyperedge → node: combine incident edge vectors weighted by edge
	// weight, project, rectify.
	next := make(map[string][]float64, g.NumNodes())
	for _, nodeID := range g.NodeIDs() {
		incident, err := g.IncidentEdges(nodeID)
		if err != nil {
			return nil, err
		}
		vectors := make([][]float64, 0, len(incident))
		weights := make([]float64, 0, len(incident))
		for _, edgeID := range incident {
			if v, ok := edgeVectors[edgeID]; ok {
				vectors = append(vectors, v)
				weights = append(weights, g.Edge(edgeID).Weight)
			}
		}

		if len(vectors) == 0 {
			// A node in no hyperedge passes through unchanged when the
			// dimensions line up, and is projected otherwise so the output
			// map stays dimensionally uniform. Never an error.
			if emb, ok := embeddings[nodeID]; ok {
				if l.InputDim == l.OutputDim {
					out := make([]float64, l.OutputDim)
					copy(out, emb)
					next[nodeID] = out
				} else {
					out := matVec(l.w, emb)
					addInto(out, l.bias)
					relu(out)
					next[nodeID] = out
				}
			} else {
				next[nodeID] = make([]float64, l.OutputDim)
			}
			continue
		}

		var combined []float64
		switch l.Agg {
		case AggSum, AggMax, AggAttention:
			combined = aggregate(vectors, l.Agg, l.attn)
		default:
			combined = weightedMean(vectors, weights)
		}
		out := matVec(l.w, combined)
		addInto(out, l.bias)
		relu(out)
		next[nodeID] = out
	}
	return next, nil
}
