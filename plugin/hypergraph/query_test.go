package hypergraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildQueryGraph(t *testing.T) *Hypergraph {
	t.Helper()
	g := New()
	for _, n := range []struct {
		id  string
		typ NodeType
	}{
		{"case_alpha", NodeTypeCase},
		{"case_beta", NodeTypeCase},
		{"principle_pacta", NodeTypePrinciple},
		{"statute_15", NodeTypeStatute},
		{"agent_smith", NodeTypeAgent},
	} {
		_, err := g.AddNode(n.id, n.typ, map[string]AttrValue{"jurisdiction": String("za")})
		require.NoError(t, err)
	}
	_, err := g.AddEdge("applies_1", RelationApplies, []string{"case_alpha", "principle_pacta", "statute_15"}, 1.0)
	require.NoError(t, err)
	_, err = g.AddEdge("cites_1", RelationCites, []string{"case_beta", "statute_15"}, 1.0)
	require.NoError(t, err)
	return g
}

func TestQueryNodes(t *testing.T) {
	g := buildQueryGraph(t)

	t.Run("by type", func(t *testing.T) {
		res, err := g.QueryNodes(NodeFilter{Type: NodeTypeCase})
		require.NoError(t, err)
		require.Equal(t, 2, res.Len())
		assert.Equal(t, "case_alpha", res.Nodes[0].ID)
	})

	t.Run("by id pattern", func(t *testing.T) {
		res, err := g.QueryNodes(NodeFilter{IDPattern: "^statute_"})
		require.NoError(t, err)
		require.Equal(t, 1, res.Len())
	})

	t.Run("by attribute", func(t *testing.T) {
		res, err := g.QueryNodes(NodeFilter{Attrs: map[string]AttrValue{"jurisdiction": String("za")}})
		require.NoError(t, err)
		assert.Equal(t, 5, res.Len())

		res, err = g.QueryNodes(NodeFilter{Attrs: map[string]AttrValue{"jurisdiction": String("uk")}})
		require.NoError(t, err)
		assert.Zero(t, res.Len())
	})

	t.Run("bad pattern", func(t *testing.T) {
		_, err := g.QueryNodes(NodeFilter{IDPattern: "["})
		require.Error(t, err)
	})
}

func TestQueryNeighbors(t *testing.T) {
	g := buildQueryGraph(t)

	res, err := g.QueryNeighbors("case_alpha", NeighborOptions{MaxHops: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Len()) // principle_pacta, statute_15
	assert.Len(t, res.Edges, 1)

	// Second hop reaches case_beta through statute_15.
	res, err = g.QueryNeighbors("case_alpha", NeighborOptions{MaxHops: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Len())
	assert.Len(t, res.Edges, 2)

	// Relation filter excludes the applies edge.
	res, err = g.QueryNeighbors("case_alpha", NeighborOptions{MaxHops: 2, Relation: RelationCites})
	require.NoError(t, err)
	assert.Zero(t, res.Len())

	_, err = g.QueryNeighbors("nobody", NeighborOptions{})
	var unknown *UnknownNodeError
	require.ErrorAs(t, err, &unknown)
}

func TestQueryPath(t *testing.T) {
	g := buildQueryGraph(t)

	res, err := g.QueryPath("case_alpha", "case_beta", 5)
	require.NoError(t, err)
	assert.Equal(t, "true", res.Metadata["path_found"])
	require.Equal(t, 3, res.Len())
	assert.Equal(t, "case_alpha", res.Nodes[0].ID)
	assert.Equal(t, "case_beta", res.Nodes[2].ID)
	assert.Len(t, res.Edges, 2)

	// agent_smith is isolated, so no path exists.
	res, err = g.QueryPath("case_alpha", "agent_smith", 5)
	require.NoError(t, err)
	assert.Equal(t, "false", res.Metadata["path_found"])
	assert.Zero(t, res.Len())

	_, err = g.QueryPath("case_alpha", "nobody", 5)
	var unknown *UnknownNodeError
	require.ErrorAs(t, err, &unknown)
}

func TestConflicts(t *testing.T) {
	g := buildQueryGraph(t)
	assert.Empty(t, g.Conflicts())

	_, err := g.AddEdge("conflict_1", RelationConflicts,
		[]string{"case_alpha", "case_beta", "principle_pacta"}, 1.0)
	require.NoError(t, err)
	_, err = g.AddEdge("conflict_2", RelationConflicts,
		[]string{"statute_15", "case_alpha"}, 1.0)
	require.NoError(t, err)

	// Three pairs from the ternary edge, one from the binary, in edge id
	// order with members sorted within each edge.
	assert.Equal(t, []Conflict{
		{A: "case_alpha", B: "case_beta", EdgeID: "conflict_1"},
		{A: "case_alpha", B: "principle_pacta", EdgeID: "conflict_1"},
		{A: "case_beta", B: "principle_pacta", EdgeID: "conflict_1"},
		{A: "case_alpha", B: "statute_15", EdgeID: "conflict_2"},
	}, g.Conflicts())
}

func TestAttrValueVariant(t *testing.T) {
	nested := Map(map[string]AttrValue{"court": String("GP"), "year": Number(2025)})

	s, ok := String("x").AsString()
	assert.True(t, ok)
	assert.Equal(t, "x", s)

	n, ok := Number(1.5).AsNumber()
	assert.True(t, ok)
	assert.Equal(t, 1.5, n)

	_, ok = Number(1.5).AsString()
	assert.False(t, ok)

	m, ok := nested.AsMap()
	require.True(t, ok)
	assert.True(t, m["court"].Equal(String("GP")))
	assert.True(t, nested.Equal(Map(map[string]AttrValue{"year": Number(2025), "court": String("GP")})))
	assert.False(t, nested.Equal(String("GP")))
}

func TestAttrValueJSONRoundTrip(t *testing.T) {
	original := Map(map[string]AttrValue{
		"name":   String("pacta sunt servanda"),
		"weight": Number(0.9),
		"active": Bool(true),
	})
	data, err := original.MarshalJSON()
	require.NoError(t, err)

	var decoded AttrValue
	require.NoError(t, decoded.UnmarshalJSON(data))
	assert.True(t, original.Equal(decoded))
}
