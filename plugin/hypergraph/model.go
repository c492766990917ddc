// Package hypergraph provides the multi-way relationship store used by the
// case analytics engine. A hyperedge connects a set of two or more nodes,
// which lets a single relationship span cases, principles, agents, evidence
// and statutes at once.
package hypergraph

// NodeType classifies an entity node.
type NodeType string

const (
	NodeTypeCase      NodeType = "case"
	NodeTypePrinciple NodeType = "principle"
	NodeTypeAgent     NodeType = "agent"
	NodeTypeEvidence  NodeType = "evidence"
	NodeTypeDocument  NodeType = "document"
	NodeTypeStatute   NodeType = "statute"
	NodeTypeOther     NodeType = "other"
)

// ParseNodeType maps a free-form tag onto the closed enumeration. Unknown
// tags become NodeTypeOther so ingestion never fails on a new entity kind.
func ParseNodeType(s string) NodeType {
	switch NodeType(s) {
	case NodeTypeCase, NodeTypePrinciple, NodeTypeAgent, NodeTypeEvidence,
		NodeTypeDocument, NodeTypeStatute:
		return NodeType(s)
	}
	return NodeTypeOther
}

// RelationType classifies a hyperedge.
type RelationType string

const (
	RelationCites       RelationType = "cites"
	RelationApplies     RelationType = "applies"
	RelationSupports    RelationType = "supports"
	RelationConflicts   RelationType = "conflicts"
	RelationRepresents  RelationType = "represents"
	RelationAdjudicates RelationType = "adjudicates"
	RelationDerivesFrom RelationType = "derives_from"
	RelationOther       RelationType = "other"
)

// ParseRelationType maps a free-form tag onto the closed enumeration.
func ParseRelationType(s string) RelationType {
	switch RelationType(s) {
	case RelationCites, RelationApplies, RelationSupports, RelationConflicts,
		RelationRepresents, RelationAdjudicates, RelationDerivesFrom:
		return RelationType(s)
	}
	return RelationOther
}

// Node represents an entity in the hypergraph.
type Node struct {
	ID    string               `json:"id"`
	Type  NodeType             `json:"type"`
	Attrs map[string]AttrValue `json:"attrs,omitempty"`

	// Embedding is the node's current feature vector. It is replaced
	// wholesale by ApplyEmbeddings after each propagation round, never
	// mutated element-wise by callers.
	Embedding []float64 `json:"embedding,omitempty"`

	// Community and Centrality are attached by the analysis operations.
	Community  int     `json:"community"`
	Centrality float64 `json:"centrality"`
}

// Hyperedge represents a relationship over a set of two or more nodes.
type Hyperedge struct {
	ID      string               `json:"id"`
	Type    RelationType         `json:"type"`
	Members map[string]struct{}  `json:"-"`
	Weight  float64              `json:"weight"`
	Attrs   map[string]AttrValue `json:"attrs,omitempty"`
}

// Size returns the number of member nodes.
func (e *Hyperedge) Size() int {
	return len(e.Members)
}

// Contains reports whether the node is a member of the edge.
func (e *Hyperedge) Contains(nodeID string) bool {
	_, ok := e.Members[nodeID]
	return ok
}

// MemberIDs returns the member node ids in sorted order. Sorted order keeps
// every computation that walks an edge deterministic.
func (e *Hyperedge) MemberIDs() []string {
	return sortedKeys(e.Members)
}
