package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juridex/lexgraph/plugin/hypergraph"
)

func sampleGraph(t *testing.T) *hypergraph.Hypergraph {
	t.Helper()
	g := hypergraph.New()
	for _, id := range []string{"case_alpha", "principle_pacta", "agent_smith"} {
		_, err := g.AddNode(id, hypergraph.NodeTypeCase, map[string]hypergraph.AttrValue{
			"label": hypergraph.String(id),
		})
		require.NoError(t, err)
	}
	_, err := g.AddEdge("applies_1", hypergraph.RelationApplies,
		[]string{"case_alpha", "principle_pacta", "agent_smith"}, 0.8)
	require.NoError(t, err)
	g.ApplyEmbeddings(map[string][]float64{"case_alpha": {0.1, 0.2}})
	return g
}

func TestSnapshotRoundTrip(t *testing.T) {
	g := sampleGraph(t)

	snapshot := FromGraph(g, map[string]string{"source": "test"})
	require.NotEmpty(t, snapshot.ID)
	require.Len(t, snapshot.Nodes, 3)
	require.Len(t, snapshot.Edges, 1)
	assert.Equal(t, []string{"agent_smith", "case_alpha", "principle_pacta"},
		snapshot.Edges[0].Members)

	restored, err := snapshot.ToGraph()
	require.NoError(t, err)
	assert.Equal(t, g.NodeIDs(), restored.NodeIDs())
	assert.Equal(t, g.EdgeIDs(), restored.EdgeIDs())
	assert.Equal(t, []float64{0.1, 0.2}, restored.Node("case_alpha").Embedding)
	assert.Equal(t, 0.8, restored.Edge("applies_1").Weight)
}

func TestSnapshotIDsAreUnique(t *testing.T) {
	g := sampleGraph(t)
	a := FromGraph(g, nil)
	b := FromGraph(g, nil)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestToGraphRejectsDanglingMembers(t *testing.T) {
	snapshot := &GraphSnapshot{
		ID:    "bad",
		Nodes: []NodeRecord{{ID: "a", Type: hypergraph.NodeTypeCase}},
		Edges: []EdgeRecord{{ID: "e", Type: hypergraph.RelationCites, Members: []string{"a", "ghost"}, Weight: 1}},
	}
	_, err := snapshot.ToGraph()
	var unknown *hypergraph.UnknownNodeError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, []string{"ghost"}, unknown.IDs)
}

func TestMemoryStoreCRUD(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_, err := s.Get(ctx, "missing")
	require.Error(t, err)

	older := &GraphSnapshot{ID: "older", CreatedAt: time.Now().Add(-time.Hour)}
	newer := &GraphSnapshot{ID: "newer", CreatedAt: time.Now()}
	require.NoError(t, s.Save(ctx, older))
	require.NoError(t, s.Save(ctx, newer))

	got, err := s.Get(ctx, "older")
	require.NoError(t, err)
	assert.Equal(t, older, got)

	ids, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"newer", "older"}, ids, "newest first")

	require.NoError(t, s.Delete(ctx, "older"))
	require.Error(t, s.Delete(ctx, "older"))

	ids, err = s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"newer"}, ids)

	require.Error(t, s.Save(ctx, &GraphSnapshot{}))
}
