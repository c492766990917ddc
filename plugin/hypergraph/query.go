package hypergraph

import (
	"regexp"

	"github.com/pkg/errors"
)

// QueryResult is the subgraph-extraction output shape consumed by reporting
// and visualization collaborators: matched nodes, the edges traversed to
// reach them, and free-form metadata about the query.
type QueryResult struct {
	Nodes    []*Node           `json:"nodes"`
	Edges    []*Hyperedge      `json:"edges,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Len returns the number of matched nodes.
func (r *QueryResult) Len() int { return len(r.Nodes) }

// NodeFilter selects nodes for QueryNodes. Zero-value fields are ignored.
type NodeFilter struct {
	Type      NodeType
	IDPattern string // regexp matched against the node id
	Attrs     map[string]AttrValue
}

// QueryNodes returns all nodes matching the filter, in id order.
func (g *Hypergraph) QueryNodes(filter NodeFilter) (*QueryResult, error) {
	var idRe *regexp.Regexp
	if filter.IDPattern != "" {
		var err error
		idRe, err = regexp.Compile(filter.IDPattern)
		if err != nil {
			return nil, errors.Wrap(err, "compile id pattern")
		}
	}

	result := &QueryResult{Metadata: map[string]string{"query": "nodes"}}
	for _, id := range g.NodeIDs() {
		n := g.nodes[id]
		if filter.Type != "" && n.Type != filter.Type {
			continue
		}
		if idRe != nil && !idRe.MatchString(n.ID) {
			continue
		}
		if !attrsMatch(n.Attrs, filter.Attrs) {
			continue
		}
		result.Nodes = append(result.Nodes, n)
	}
	return result, nil
}

func attrsMatch(attrs, want map[string]AttrValue) bool {
	for k, v := range want {
		got, ok := attrs[k]
		if !ok || !got.Equal(v) {
			return false
		}
	}
	return true
}

// Conflict is one pair of nodes joined by a conflicts hyperedge. An edge
// with more than two members yields one Conflict per member pair.
type Conflict struct {
	A      string `json:"a"`
	B      string `json:"b"`
	EdgeID string `json:"edge_id"`
}

// Conflicts enumerates every pair of nodes joined by a conflicts relation,
// in edge id order with members sorted within each pair.
func (g *Hypergraph) Conflicts() []Conflict {
	var out []Conflict
	for _, edgeID := range g.EdgeIDs() {
		e := g.edges[edgeID]
		if e.Type != RelationConflicts {
			continue
		}
		members := e.MemberIDs()
		for i := 0; i < len(members); i++ {
			for j := i + 1; j < len(members); j++ {
				out = append(out, Conflict{A: members[i], B: members[j], EdgeID: edgeID})
			}
		}
	}
	return out
}

// NeighborOptions controls QueryNeighbors traversal.
type NeighborOptions struct {
	// MaxHops bounds the traversal depth; values below 1 mean 1.
	MaxHops int
	// Relation restricts traversal to edges of one relation type when set.
	Relation RelationType
}

// QueryNeighbors returns the nodes reachable from the start node within the
// hop bound, together with the hyperedges traversed.
func (g *Hypergraph) QueryNeighbors(id string, opts NeighborOptions) (*QueryResult, error) {
	if _, ok := g.nodes[id]; !ok {
		return nil, &UnknownNodeError{IDs: []string{id}}
	}
	maxHops := opts.MaxHops
	if maxHops < 1 {
		maxHops = 1
	}

	visited := map[string]struct{}{id: {}}
	edgeSeen := make(map[string]struct{})
	result := &QueryResult{Metadata: map[string]string{"query": "neighbors", "source": id}}

	frontier := []string{id}
	for hop := 0; hop < maxHops && len(frontier) > 0; hop++ {
		var next []string
		for _, current := range frontier {
			for _, edgeID := range sortedKeys(g.nodeToEdges[current]) {
				e := g.edges[edgeID]
				if opts.Relation != "" && e.Type != opts.Relation {
					continue
				}
				if _, ok := edgeSeen[edgeID]; !ok {
					edgeSeen[edgeID] = struct{}{}
					result.Edges = append(result.Edges, e)
				}
				for _, m := range e.MemberIDs() {
					if _, ok := visited[m]; ok {
						continue
					}
					visited[m] = struct{}{}
					result.Nodes = append(result.Nodes, g.nodes[m])
					next = append(next, m)
				}
			}
		}
		frontier = next
	}
	return result, nil
}

// QueryPath finds a shortest path between two nodes through shared
// hyperedges using breadth-first search. An empty result (with
// metadata["path_found"] = "false") means no path exists within maxDepth.
func (g *Hypergraph) QueryPath(sourceID, targetID string, maxDepth int) (*QueryResult, error) {
	var missing []string
	if _, ok := g.nodes[sourceID]; !ok {
		missing = append(missing, sourceID)
	}
	if _, ok := g.nodes[targetID]; !ok {
		missing = append(missing, targetID)
	}
	if len(missing) > 0 {
		return nil, &UnknownNodeError{IDs: missing}
	}
	if maxDepth < 1 {
		maxDepth = 5
	}

	type step struct {
		nodeID string
		path   []string
		edges  []*Hyperedge
	}
	queue := []step{{nodeID: sourceID, path: []string{sourceID}}}
	visited := map[string]struct{}{sourceID: {}}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if current.nodeID == targetID {
			result := &QueryResult{
				Edges: current.edges,
				Metadata: map[string]string{
					"query":      "path",
					"source":     sourceID,
					"target":     targetID,
					"path_found": "true",
				},
			}
			for _, id := range current.path {
				result.Nodes = append(result.Nodes, g.nodes[id])
			}
			return result, nil
		}
		if len(current.path) > maxDepth {
			continue
		}

		for _, edgeID := range sortedKeys(g.nodeToEdges[current.nodeID]) {
			e := g.edges[edgeID]
			for _, m := range e.MemberIDs() {
				if _, ok := visited[m]; ok {
					continue
				}
				visited[m] = struct{}{}
				queue = append(queue, step{
					nodeID: m,
					path:   append(append([]string{}, current.path...), m),
					edges:  append(append([]*Hyperedge{}, current.edges...), e),
				})
			}
		}
	}

	return &QueryResult{
		Metadata: map[string]string{"query": "path", "path_found": "false"},
	}, nil
}
