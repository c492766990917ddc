package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juridex/lexgraph/internal/profile"
	"github.com/juridex/lexgraph/plugin/ai"
	"github.com/juridex/lexgraph/plugin/hypergraph"
	"github.com/juridex/lexgraph/store"
)

func testProfile() *profile.Profile {
	return &profile.Profile{
		Mode:          "dev",
		Version:       "test",
		EmbeddingDim:  16,
		HiddenDim:     8,
		NumLayers:     2,
		MaxKMeansIter: 25,
	}
}

func TestAnalyzeFileEndToEnd(t *testing.T) {
	path := writeCaseFile(t, sampleCaseJSON)
	snapshots := store.NewMemoryStore()

	report, err := analyzeFile(context.Background(), path, testProfile(),
		ai.NewLocalEmbedder(16), nil, snapshots)
	require.NoError(t, err)

	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, "case.json", report.File)
	assert.Equal(t, "Alpha v. Beta", report.Title)
	assert.Equal(t, 4, report.Stats.NumNodes)
	assert.Equal(t, 3, report.Stats.NumEdges)
	assert.Len(t, report.Communities, 4)
	assert.Len(t, report.Importance, 4)
	assert.Len(t, report.GraphEmbedding, 8, "pooled vector has the output dimension")
	assert.NotEmpty(t, report.Evolution, "timestamped relation produces evolution points")
	assert.Empty(t, report.Annotation)

	// The run's snapshot is retrievable and restores a matching graph.
	snapshot, err := snapshots.Get(context.Background(), report.SnapshotID)
	require.NoError(t, err)
	restored, err := snapshot.ToGraph()
	require.NoError(t, err)
	assert.Equal(t, 4, restored.NumNodes())
	assert.Equal(t, report.RunID, snapshot.Metadata["run"])
}

func TestAnalyzeFileDeterministic(t *testing.T) {
	path := writeCaseFile(t, sampleCaseJSON)

	a, err := analyzeFile(context.Background(), path, testProfile(),
		ai.NewLocalEmbedder(16), nil, store.NewMemoryStore())
	require.NoError(t, err)
	b, err := analyzeFile(context.Background(), path, testProfile(),
		ai.NewLocalEmbedder(16), nil, store.NewMemoryStore())
	require.NoError(t, err)

	assert.Equal(t, a.Communities, b.Communities)
	assert.Equal(t, a.Importance, b.Importance)
	assert.Equal(t, a.GraphEmbedding, b.GraphEmbedding)
	assert.NotEqual(t, a.RunID, b.RunID)
}

func TestPredictMissingLinks(t *testing.T) {
	g := hypergraph.New()
	for _, id := range []string{"a", "b", "c"} {
		_, err := g.AddNode(id, hypergraph.NodeTypeCase, nil)
		require.NoError(t, err)
	}
	_, err := g.AddEdge("e", hypergraph.RelationCites, []string{"a", "b"}, 1)
	require.NoError(t, err)

	embeddings := map[string][]float64{
		"a": {1, 0}, "b": {1, 0.1}, "c": {1, 0.05},
	}

	predictions, err := predictMissingLinks(g, embeddings, 0)
	require.NoError(t, err)
	// a-b are adjacent, so only the two pairs involving c are scored.
	require.Len(t, predictions, 2)
	for _, pr := range predictions {
		assert.True(t, pr.A == "c" || pr.B == "c")
	}

	// A cutoff above every score filters everything out.
	none, err := predictMissingLinks(g, embeddings, 2.0)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestBuildAIServicesLocalFallback(t *testing.T) {
	embedder, generator, err := buildAIServices(testProfile())
	require.NoError(t, err)
	assert.Nil(t, generator)
	assert.Equal(t, 16, embedder.Dimensions())
}

func TestAnnotationPrompt(t *testing.T) {
	r := &Report{
		Title:       "Alpha v. Beta",
		Stats:       hypergraph.Stats{NumNodes: 4, NumEdges: 3, AvgEdgeSize: 2.0},
		Communities: map[string]int{"a": 0, "b": 0, "c": 1},
		Predictions: []Prediction{{A: "a", B: "c", Score: 0.91}},
	}
	prompt := annotationPrompt(r)
	assert.Contains(t, prompt, "Alpha v. Beta")
	assert.Contains(t, prompt, "2 communities")
	assert.Contains(t, prompt, "a and c")
	assert.Equal(t, 2, countCommunities(r.Communities))
}
