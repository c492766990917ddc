package hypergnn

import (
	"fmt"
	"hash/fnv"
	"math/rand"

	"github.com/juridex/lexgraph/plugin/hypergraph"
)

// LayerConfig configures one layer of the stack.
type LayerConfig struct {
	// Dim is the layer's output dimensionality.
	Dim int
	// Agg is the aggregation strategy; empty means mean.
	Agg Aggregation
}

// Config configures a multi-layer model.
type Config struct {
	// InputDim is the dimensionality of the initial node embeddings.
	InputDim int
	// Layers lists the stacked layers in order. Output of layer k feeds
	// layer k+1.
	Layers []LayerConfig
	// Seed fixes the weight initialization; the forward pass contains no
	// other randomness, so equal seeds give equal outputs.
	Seed int64
}

// DefaultConfig returns a two-layer mean-aggregation model, the shape used
// by the CLI when nothing else is configured.
func DefaultConfig(inputDim int) Config {
	return Config{
		InputDim: inputDim,
		Layers: []LayerConfig{
			{Dim: inputDim / 2, Agg: AggMean},
			{Dim: inputDim / 2, Agg: AggMean},
		},
		Seed: 1,
	}
}

// Model composes propagation layers so stacked rounds of message passing
// capture multi-hop relationships.
type Model struct {
	layers []*Layer
	cfg    Config
}

// NewModel builds the layer stack from the configuration.
func NewModel(cfg Config) (*Model, error) {
	if cfg.InputDim <= 0 {
		return nil, fmt.Errorf("input dimension must be positive, got %d", cfg.InputDim)
	}
	if len(cfg.Layers) == 0 {
		return nil, fmt.Errorf("model needs at least one layer")
	}
	rng := rand.New(rand.NewSource(cfg.Seed))
	layers := make([]*Layer, 0, len(cfg.Layers))
	in := cfg.InputDim
	for i, lc := range cfg.Layers {
		if lc.Dim <= 0 {
			return nil, fmt.Errorf("layer %d: dimension must be positive, got %d", i, lc.Dim)
		}
		agg := lc.Agg
		if agg == "" {
			agg = AggMean
		}
		layers = append(layers, NewLayer(in, lc.Dim, agg, rng))
		in = lc.Dim
	}
	return &Model{layers: layers, cfg: cfg}, nil
}

// OutputDim returns the dimensionality of the final layer.
func (m *Model) OutputDim() int {
	return m.layers[len(m.layers)-1].OutputDim
}

// NumLayers returns the depth of the stack.
func (m *Model) NumLayers() int {
	return len(m.layers)
}

// Forward runs every layer in order and returns the final embedding map.
// The input map is not modified; apply the result to the store with
// hypergraph.ApplyEmbeddings if the new embeddings should stick.
func (m *Model) Forward(g *hypergraph.Hypergraph, embeddings map[string][]float64) (map[string][]float64, error) {
	current := embeddings
	for i, layer := range m.layers {
		next, err := layer.Forward(g, current)
		if err != nil {
			return nil, fmt.Errorf("layer %d: %w", i, err)
		}
		current = next
	}
	return current, nil
}

// InitEmbeddings returns an initial embedding for every node that does not
// already carry one, derived deterministically from the node id, alongside
// the embeddings already present. Two graphs with the same node ids always
// get the same initialization. When any node already carries an embedding,
// its dimension overrides dim so the returned map is uniform.
func InitEmbeddings(g *hypergraph.Hypergraph, dim int) map[string][]float64 {
	for _, id := range g.NodeIDs() {
		if existing := g.Node(id).Embedding; existing != nil {
			dim = len(existing)
			break
		}
	}
	out := make(map[string][]float64, g.NumNodes())
	for _, id := range g.NodeIDs() {
		if existing := g.Node(id).Embedding; existing != nil {
			out[id] = existing
			continue
		}
		h := fnv.New64a()
		_, _ = h.Write([]byte(id))
		rng := rand.New(rand.NewSource(int64(h.Sum64())))
		emb := make([]float64, dim)
		for i := range emb {
			emb[i] = rng.NormFloat64() * 0.1
		}
		out[id] = emb
	}
	return out
}
