package hypergraph

import "sort"

// Hypergraph is an in-memory store of nodes and hyperedges with an
// incrementally maintained adjacency index for O(1) neighbor lookup.
//
// A Hypergraph value is not safe for concurrent mutation; callers sharing an
// instance across goroutines must synchronize externally.
type Hypergraph struct {
	nodes       map[string]*Node
	edges       map[string]*Hyperedge
	nodeToEdges map[string]map[string]struct{}
}

// New creates an empty hypergraph.
func New() *Hypergraph {
	return &Hypergraph{
		nodes:       make(map[string]*Node),
		edges:       make(map[string]*Hyperedge),
		nodeToEdges: make(map[string]map[string]struct{}),
	}
}

// AddNode inserts a node. It fails with *DuplicateNodeError if the id is
// already present.
func (g *Hypergraph) AddNode(id string, typ NodeType, attrs map[string]AttrValue) (*Node, error) {
	if _, ok := g.nodes[id]; ok {
		return nil, &DuplicateNodeError{ID: id}
	}
	n := &Node{ID: id, Type: typ, Attrs: attrs, Community: -1}
	g.nodes[id] = n
	g.nodeToEdges[id] = make(map[string]struct{})
	return n, nil
}

// AddEdge inserts a hyperedge over the given member ids. Referential
// integrity is checked here, not lazily: every member must already exist.
// Duplicate member ids are collapsed before the size check.
func (g *Hypergraph) AddEdge(id string, typ RelationType, memberIDs []string, weight float64) (*Hyperedge, error) {
	if _, ok := g.edges[id]; ok {
		return nil, &DuplicateEdgeError{ID: id}
	}
	members := make(map[string]struct{}, len(memberIDs))
	var missing []string
	for _, m := range memberIDs {
		if _, ok := g.nodes[m]; !ok {
			missing = append(missing, m)
			continue
		}
		members[m] = struct{}{}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, &UnknownNodeError{IDs: missing}
	}
	if len(members) < 2 {
		return nil, &InvalidEdgeError{ID: id, Members: len(members)}
	}
	if weight == 0 {
		weight = 1.0
	}
	e := &Hyperedge{ID: id, Type: typ, Members: members, Weight: weight}
	g.edges[id] = e
	for m := range members {
		g.nodeToEdges[m][id] = struct{}{}
	}
	return e, nil
}

// RemoveEdge deletes a hyperedge and its adjacency entries.
func (g *Hypergraph) RemoveEdge(id string) error {
	e, ok := g.edges[id]
	if !ok {
		return &UnknownEdgeError{ID: id}
	}
	for m := range e.Members {
		delete(g.nodeToEdges[m], id)
	}
	delete(g.edges, id)
	return nil
}

// RemoveNode deletes a node and cascades: the node is dropped from every
// hyperedge's member set, and any edge whose membership falls below two is
// deleted entirely.
func (g *Hypergraph) RemoveNode(id string) error {
	if _, ok := g.nodes[id]; !ok {
		return &UnknownNodeError{IDs: []string{id}}
	}
	for _, edgeID := range sortedKeys(g.nodeToEdges[id]) {
		e := g.edges[edgeID]
		delete(e.Members, id)
		if len(e.Members) < 2 {
			// The error path is unreachable: the edge id came from the index.
			_ = g.RemoveEdge(edgeID)
		}
	}
	delete(g.nodeToEdges, id)
	delete(g.nodes, id)
	return nil
}

// Node returns the node with the given id, or nil if absent.
func (g *Hypergraph) Node(id string) *Node {
	return g.nodes[id]
}

// Edge returns the hyperedge with the given id, or nil if absent.
func (g *Hypergraph) Edge(id string) *Hyperedge {
	return g.edges[id]
}

// NodeIDs returns all node ids in sorted order.
func (g *Hypergraph) NodeIDs() []string {
	ids := make([]string, 0, len(g.nodes))
	for id := range g.nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// EdgeIDs returns all edge ids in sorted order.
func (g *Hypergraph) EdgeIDs() []string {
	ids := make([]string, 0, len(g.edges))
	for id := range g.edges {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// NumNodes returns the node count.
func (g *Hypergraph) NumNodes() int { return len(g.nodes) }

// NumEdges returns the hyperedge count.
func (g *Hypergraph) NumEdges() int { return len(g.edges) }

// IncidentEdges returns the ids of every hyperedge containing the node, in
// sorted order, straight from the adjacency index.
func (g *Hypergraph) IncidentEdges(id string) ([]string, error) {
	edges, ok := g.nodeToEdges[id]
	if !ok {
		return nil, &UnknownNodeError{IDs: []string{id}}
	}
	return sortedKeys(edges), nil
}

// Degree returns the number of hyperedges containing the node.
func (g *Hypergraph) Degree(id string) (int, error) {
	edges, ok := g.nodeToEdges[id]
	if !ok {
		return 0, &UnknownNodeError{IDs: []string{id}}
	}
	return len(edges), nil
}

// Neighbors returns the set of node ids co-occurring with the node in any
// hyperedge. The result is derived from the adjacency index rather than a
// scan of the full edge set.
func (g *Hypergraph) Neighbors(id string) (map[string]struct{}, error) {
	edges, ok := g.nodeToEdges[id]
	if !ok {
		return nil, &UnknownNodeError{IDs: []string{id}}
	}
	neighbors := make(map[string]struct{})
	for edgeID := range edges {
		for m := range g.edges[edgeID].Members {
			if m != id {
				neighbors[m] = struct{}{}
			}
		}
	}
	return neighbors, nil
}

// ApplyEmbeddings replaces node embeddings from a propagation output map.
// Ids absent from the store are ignored; the propagation layers are pure and
// the store is the single place embeddings are written.
func (g *Hypergraph) ApplyEmbeddings(embeddings map[string][]float64) {
	for id, emb := range embeddings {
		if n, ok := g.nodes[id]; ok {
			n.Embedding = emb
		}
	}
}

// Embeddings returns a copy of the current node embedding map. Nodes without
// an embedding are omitted.
func (g *Hypergraph) Embeddings() map[string][]float64 {
	out := make(map[string][]float64, len(g.nodes))
	for id, n := range g.nodes {
		if n.Embedding != nil {
			out[id] = n.Embedding
		}
	}
	return out
}

// Stats summarizes the structure of a hypergraph.
type Stats struct {
	NumNodes    int                  `json:"num_nodes"`
	NumEdges    int                  `json:"num_edges"`
	AvgDegree   float64              `json:"avg_degree"`
	MaxDegree   int                  `json:"max_degree"`
	AvgEdgeSize float64              `json:"avg_edge_size"`
	MaxEdgeSize int                  `json:"max_edge_size"`
	NodesByType map[NodeType]int     `json:"nodes_by_type"`
	EdgesByType map[RelationType]int `json:"edges_by_type"`
}

// Statistics computes structural statistics for the graph.
func (g *Hypergraph) Statistics() Stats {
	s := Stats{
		NumNodes:    len(g.nodes),
		NumEdges:    len(g.edges),
		NodesByType: make(map[NodeType]int),
		EdgesByType: make(map[RelationType]int),
	}
	var degreeSum int
	for id, n := range g.nodes {
		s.NodesByType[n.Type]++
		d := len(g.nodeToEdges[id])
		degreeSum += d
		if d > s.MaxDegree {
			s.MaxDegree = d
		}
	}
	var sizeSum int
	for _, e := range g.edges {
		s.EdgesByType[e.Type]++
		sizeSum += len(e.Members)
		if len(e.Members) > s.MaxEdgeSize {
			s.MaxEdgeSize = len(e.Members)
		}
	}
	if len(g.nodes) > 0 {
		s.AvgDegree = float64(degreeSum) / float64(len(g.nodes))
	}
	if len(g.edges) > 0 {
		s.AvgEdgeSize = float64(sizeSum) / float64(len(g.edges))
	}
	return s
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
