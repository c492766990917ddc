package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juridex/lexgraph/plugin/hypergraph"
)

const sampleCaseJSON = `{
  "title": "Alpha v. Beta",
  "entities": [
    {"id": "case_alpha", "type": "case", "confidence": 0.9, "domain": "contract",
     "attrs": {"name": "Alpha v. Beta", "content": "breach of a supply contract"}},
    {"id": "principle_pacta", "type": "principle"},
    {"id": "judge_rex", "type": "agent"},
    {"id": "exhibit_1", "type": "artifact"}
  ],
  "relations": [
    {"id": "applies_1", "type": "applies", "members": ["principle_pacta", "case_alpha"], "weight": 0.8},
    {"type": "adjudicates", "members": ["judge_rex", "case_alpha"]},
    {"id": "supports_1", "type": "supports", "members": ["exhibit_1", "case_alpha"],
     "timestamp": "2024-03-01T00:00:00Z"}
  ]
}`

func writeCaseFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "case.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadCaseFile(t *testing.T) {
	path := writeCaseFile(t, sampleCaseJSON)

	cf, err := LoadCaseFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Alpha v. Beta", cf.Title)
	assert.Len(t, cf.Entities, 4)
	assert.Len(t, cf.Relations, 3)
	require.NotNil(t, cf.Entities[0].Confidence)
	assert.Equal(t, 0.9, *cf.Entities[0].Confidence)
}

func TestLoadCaseFileErrors(t *testing.T) {
	_, err := LoadCaseFile(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)

	_, err = LoadCaseFile(writeCaseFile(t, "{not json"))
	require.Error(t, err)

	_, err = LoadCaseFile(writeCaseFile(t, `{"title": "empty"}`))
	require.Error(t, err)
}

func TestBuildGraph(t *testing.T) {
	cf, err := LoadCaseFile(writeCaseFile(t, sampleCaseJSON))
	require.NoError(t, err)

	tg, err := BuildGraph(cf)
	require.NoError(t, err)
	g := tg.Hypergraph

	assert.Equal(t, 4, g.NumNodes())
	assert.Equal(t, 3, g.NumEdges())

	// Unknown entity types land in the catch-all bucket.
	assert.Equal(t, hypergraph.NodeTypeOther, g.Node("exhibit_1").Type)
	assert.Equal(t, hypergraph.NodeTypeCase, g.Node("case_alpha").Type)

	// Confidence and domain ride along as attributes.
	conf, ok := g.Node("case_alpha").Attrs["confidence"].AsNumber()
	require.True(t, ok)
	assert.Equal(t, 0.9, conf)

	// A relation without an id gets a generated one.
	neighbors, err := g.Neighbors("judge_rex")
	require.NoError(t, err)
	assert.Contains(t, neighbors, "case_alpha")

	// The timestamped relation is on the temporal log; the others are not.
	events := tg.Events()
	require.Len(t, events, 1)
	assert.Equal(t, "supports_1", events[0].EdgeID)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), events[0].Timestamp)

	// Default edge weight is 1.
	assert.Equal(t, 1.0, g.Edge("supports_1").Weight)
	assert.Equal(t, 0.8, g.Edge("applies_1").Weight)
}

func TestBuildGraphRejectsDanglingMembers(t *testing.T) {
	cf := &CaseFile{
		Entities:  []Entity{{ID: "a", Type: "case"}},
		Relations: []Relation{{ID: "e", Type: "cites", Members: []string{"a", "ghost"}}},
	}
	_, err := BuildGraph(cf)
	require.Error(t, err)
	var unknown *hypergraph.UnknownNodeError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, []string{"ghost"}, unknown.IDs)
}
