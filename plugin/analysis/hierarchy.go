package analysis

import (
	"fmt"
	"sort"
	"strings"

	"github.com/juridex/lexgraph/plugin/hypergnn"
	"github.com/juridex/lexgraph/plugin/hypergraph"
)

// Hierarchy is an ordered sequence of hypergraphs: level 0 is the original
// graph, each subsequent level a coarsened version where a community of
// level-k nodes becomes a single level-k+1 node. Levels are immutable once
// built; rebuilding produces a fresh Hierarchy.
type Hierarchy struct {
	levels []*hypergraph.Hypergraph
}

// HierarchyOptions controls the coarsening loop.
type HierarchyOptions struct {
	// Community bounds the clustering runs at each level.
	Community CommunityOptions
	// EmbeddingDim is used to seed embeddings for levels whose nodes have
	// none; values below 1 default to 16.
	EmbeddingDim int
}

// BuildHierarchy coarsens the base graph until numLevels levels exist or the
// graph can shrink no further. The cluster count is halved at each step.
func BuildHierarchy(base *hypergraph.Hypergraph, numLevels int, opts HierarchyOptions) (*Hierarchy, error) {
	if numLevels < 1 {
		return nil, fmt.Errorf("hierarchy needs at least 1 level, got %d", numLevels)
	}
	if opts.EmbeddingDim < 1 {
		opts.EmbeddingDim = 16
	}
	if opts.Community.MaxIterations < 1 {
		opts.Community = DefaultCommunityOptions()
	}

	h := &Hierarchy{levels: []*hypergraph.Hypergraph{base}}
	clusters := base.NumNodes() / 2
	for level := 1; level < numLevels; level++ {
		current := h.levels[len(h.levels)-1]
		if current.NumNodes() <= 1 || clusters < 1 {
			break
		}
		coarse := coarsen(current, clusters, level, opts)
		if coarse.NumNodes() >= current.NumNodes() {
			break
		}
		h.levels = append(h.levels, coarse)
		clusters /= 2
	}
	return h, nil
}

// coarsen groups the graph's nodes into communities and re-expresses every
// hyperedge over community identities. Edges collapsing onto fewer than two
// distinct communities are dropped; duplicates over the same community set
// are merged with their multiplicity preserved as edge weight.
func coarsen(g *hypergraph.Hypergraph, numClusters, level int, opts HierarchyOptions) *hypergraph.Hypergraph {
	embeddings := g.Embeddings()
	if len(embeddings) < g.NumNodes() {
		embeddings = hypergnn.InitEmbeddings(g, opts.EmbeddingDim)
	}
	communities := DetectCommunities(embeddings, numClusters, opts.Community)

	coarse := hypergraph.New()

	// One node per non-empty community; its embedding is the member mean.
	memberLists := make(map[int][]string)
	for _, id := range g.NodeIDs() {
		c, ok := communities[id]
		if !ok {
			continue
		}
		memberLists[c] = append(memberLists[c], id)
	}
	communityIdx := make([]int, 0, len(memberLists))
	for c := range memberLists {
		communityIdx = append(communityIdx, c)
	}
	sort.Ints(communityIdx)

	clusterID := make(map[int]string, len(communityIdx))
	for _, c := range communityIdx {
		id := fmt.Sprintf("l%d_c%d", level, c)
		clusterID[c] = id
		node, _ := coarse.AddNode(id, hypergraph.NodeTypeOther, nil)
		node.Embedding = meanEmbedding(memberLists[c], embeddings)
	}

	// Re-express edges over cluster ids, merging duplicates by weight.
	type merged struct {
		members []string
		typ     hypergraph.RelationType
		weight  float64
	}
	groups := make(map[string]*merged)
	for _, edgeID := range g.EdgeIDs() {
		edge := g.Edge(edgeID)
		clusterSet := make(map[string]struct{})
		for _, m := range edge.MemberIDs() {
			if c, ok := communities[m]; ok {
				clusterSet[clusterID[c]] = struct{}{}
			}
		}
		if len(clusterSet) < 2 {
			continue
		}
		members := make([]string, 0, len(clusterSet))
		for id := range clusterSet {
			members = append(members, id)
		}
		sort.Strings(members)
		key := string(edge.Type) + "|" + strings.Join(members, "|")
		if existing, ok := groups[key]; ok {
			existing.weight += edge.Weight
		} else {
			groups[key] = &merged{members: members, typ: edge.Type, weight: edge.Weight}
		}
	}

	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for i, k := range keys {
		grp := groups[k]
		// Member clusters exist by construction, so this cannot fail.
		_, _ = coarse.AddEdge(fmt.Sprintf("l%d_e%d", level, i), grp.typ, grp.members, grp.weight)
	}
	return coarse
}

func meanEmbedding(ids []string, embeddings map[string][]float64) []float64 {
	var out []float64
	var count int
	for _, id := range ids {
		emb, ok := embeddings[id]
		if !ok {
			continue
		}
		if out == nil {
			out = make([]float64, len(emb))
		}
		for i := range emb {
			out[i] += emb[i]
		}
		count++
	}
	for i := range out {
		out[i] /= float64(count)
	}
	return out
}

// NumLevels returns the number of built levels.
func (h *Hierarchy) NumLevels() int { return len(h.levels) }

// Level returns the graph at the given level, level 0 being the base.
func (h *Hierarchy) Level(i int) *hypergraph.Hypergraph { return h.levels[i] }

// LevelStats describes one hierarchy level.
type LevelStats struct {
	Level       int     `json:"level"`
	NumNodes    int     `json:"num_nodes"`
	NumEdges    int     `json:"num_edges"`
	AvgEdgeSize float64 `json:"avg_edge_size"`
}

// Statistics returns per-level structure summaries.
func (h *Hierarchy) Statistics() []LevelStats {
	stats := make([]LevelStats, len(h.levels))
	for i, g := range h.levels {
		s := g.Statistics()
		stats[i] = LevelStats{
			Level:       i,
			NumNodes:    s.NumNodes,
			NumEdges:    s.NumEdges,
			AvgEdgeSize: s.AvgEdgeSize,
		}
	}
	return stats
}
