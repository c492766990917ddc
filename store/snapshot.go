// Package store persists hypergraph snapshots. A snapshot is a stable
// value-type representation of a graph, suitable for serialization; the live
// Hypergraph is always rebuilt from it through the validated operations, so
// a corrupted snapshot cannot smuggle an inconsistent graph back in.
package store

import (
	"time"

	"github.com/google/uuid"

	"github.com/juridex/lexgraph/plugin/hypergraph"
)

// NodeRecord is the serializable form of a node.
type NodeRecord struct {
	ID        string                          `json:"id"`
	Type      hypergraph.NodeType             `json:"type"`
	Attrs     map[string]hypergraph.AttrValue `json:"attrs,omitempty"`
	Embedding []float64                       `json:"embedding,omitempty"`
}

// EdgeRecord is the serializable form of a hyperedge.
type EdgeRecord struct {
	ID      string                  `json:"id"`
	Type    hypergraph.RelationType `json:"type"`
	Members []string                `json:"members"`
	Weight  float64                 `json:"weight"`
}

// GraphSnapshot is a point-in-time copy of a hypergraph.
type GraphSnapshot struct {
	ID        string            `json:"id"`
	CreatedAt time.Time         `json:"created_at"`
	Nodes     []NodeRecord      `json:"nodes"`
	Edges     []EdgeRecord      `json:"edges"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// FromGraph captures the graph into a fresh snapshot with a generated id.
// Nodes and edges are recorded in sorted id order so two snapshots of the
// same graph are byte-comparable.
func FromGraph(g *hypergraph.Hypergraph, metadata map[string]string) *GraphSnapshot {
	snapshot := &GraphSnapshot{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Metadata:  metadata,
	}

	for _, id := range g.NodeIDs() {
		n := g.Node(id)
		snapshot.Nodes = append(snapshot.Nodes, NodeRecord{
			ID:        n.ID,
			Type:      n.Type,
			Attrs:     n.Attrs,
			Embedding: n.Embedding,
		})
	}
	for _, id := range g.EdgeIDs() {
		e := g.Edge(id)
		snapshot.Edges = append(snapshot.Edges, EdgeRecord{
			ID:      e.ID,
			Type:    e.Type,
			Members: e.MemberIDs(),
			Weight:  e.Weight,
		})
	}
	return snapshot
}

// ToGraph rebuilds a live hypergraph from the snapshot. Every record goes
// through the validated insert path, so a snapshot with dangling edge
// members is rejected rather than loaded.
func (s *GraphSnapshot) ToGraph() (*hypergraph.Hypergraph, error) {
	g := hypergraph.New()
	for _, n := range s.Nodes {
		node, err := g.AddNode(n.ID, n.Type, n.Attrs)
		if err != nil {
			return nil, err
		}
		node.Embedding = n.Embedding
	}
	for _, e := range s.Edges {
		if _, err := g.AddEdge(e.ID, e.Type, e.Members, e.Weight); err != nil {
			return nil, err
		}
	}
	return g, nil
}
