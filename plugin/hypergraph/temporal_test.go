package hypergraph

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ts(sec int) time.Time {
	return time.Unix(int64(sec), 0).UTC()
}

func buildTemporal(t *testing.T) *TemporalHypergraph {
	t.Helper()
	tg := NewTemporal()
	for _, id := range []string{"a", "b", "c", "d"} {
		_, err := tg.AddNode(id, NodeTypeAgent, nil)
		require.NoError(t, err)
	}
	return tg
}

func TestTemporalSnapshot(t *testing.T) {
	tg := buildTemporal(t)

	_, err := tg.AddTemporalEdge("collab_1", RelationRepresents, []string{"a", "b", "c"}, 1.0, ts(5))
	require.NoError(t, err)
	_, err = tg.AddTemporalEdge("collab_2", RelationRepresents, []string{"c", "d"}, 1.0, ts(10))
	require.NoError(t, err)
	require.NoError(t, tg.RemoveTemporalEdge("collab_1", ts(15)))

	tests := []struct {
		at   time.Time
		want []string
	}{
		{ts(1), nil},
		{ts(5), []string{"collab_1"}}, // inclusive boundary
		{ts(7), []string{"collab_1"}},
		{ts(12), []string{"collab_1", "collab_2"}},
		{ts(20), []string{"collab_2"}},
	}
	for _, tt := range tests {
		snap := tg.SnapshotAt(tt.at)
		var got []string
		if snap.NumEdges() > 0 {
			got = snap.EdgeIDs()
		}
		assert.Equal(t, tt.want, got, "snapshot at %v", tt.at)
		assert.Equal(t, 4, snap.NumNodes())
	}
}

func TestSnapshotIsDerivedView(t *testing.T) {
	tg := buildTemporal(t)
	_, err := tg.AddTemporalEdge("e1", RelationCites, []string{"a", "b"}, 1.0, ts(1))
	require.NoError(t, err)

	snap := tg.SnapshotAt(ts(2))
	require.NoError(t, snap.RemoveEdge("e1"))

	// The temporal graph and later snapshots are untouched.
	assert.NotNil(t, tg.Edge("e1"))
	assert.Equal(t, 1, tg.SnapshotAt(ts(2)).NumEdges())
}

func TestSnapshotMonotonicGrowth(t *testing.T) {
	tg := buildTemporal(t)
	_, err := tg.AddTemporalEdge("e1", RelationCites, []string{"a", "b"}, 1.0, ts(1))
	require.NoError(t, err)
	_, err = tg.AddTemporalEdge("e2", RelationCites, []string{"b", "c"}, 1.0, ts(3))
	require.NoError(t, err)
	_, err = tg.AddTemporalEdge("e3", RelationCites, []string{"c", "d"}, 1.0, ts(6))
	require.NoError(t, err)

	// Purely additive log: every earlier snapshot's edge set is a subset of
	// every later one.
	for t1 := 0; t1 <= 7; t1++ {
		for t2 := t1; t2 <= 7; t2++ {
			earlier := tg.SnapshotAt(ts(t1))
			later := tg.SnapshotAt(ts(t2))
			for _, id := range earlier.EdgeIDs() {
				assert.NotNil(t, later.Edge(id), "edge %s visible at t=%d but not t=%d", id, t1, t2)
			}
		}
	}
}

func TestEvolutionSummary(t *testing.T) {
	tg := buildTemporal(t)
	_, err := tg.AddTemporalEdge("e1", RelationCites, []string{"a", "b"}, 1.0, ts(1))
	require.NoError(t, err)
	_, err = tg.AddTemporalEdge("e2", RelationCites, []string{"b", "c"}, 1.0, ts(4))
	require.NoError(t, err)
	require.NoError(t, tg.RemoveTemporalEdge("e1", ts(9)))

	points := tg.EvolutionSummary()
	require.Len(t, points, 3)
	assert.Equal(t, EvolutionPoint{Timestamp: ts(1), EdgeCount: 1, Kind: EventAdded}, points[0])
	assert.Equal(t, EvolutionPoint{Timestamp: ts(4), EdgeCount: 2, Kind: EventAdded}, points[1])
	assert.Equal(t, EvolutionPoint{Timestamp: ts(9), EdgeCount: 1, Kind: EventRemoved}, points[2])
}

func TestEvolutionSummaryCollapsesEqualTimestamps(t *testing.T) {
	tg := buildTemporal(t)
	_, err := tg.AddTemporalEdge("e1", RelationCites, []string{"a", "b"}, 1.0, ts(3))
	require.NoError(t, err)
	_, err = tg.AddTemporalEdge("e2", RelationCites, []string{"b", "c"}, 1.0, ts(3))
	require.NoError(t, err)
	require.NoError(t, tg.RemoveTemporalEdge("e1", ts(7)))

	// One point per distinct timestamp, reflecting every event at that
	// instant.
	points := tg.EvolutionSummary()
	require.Len(t, points, 2)
	assert.Equal(t, EvolutionPoint{Timestamp: ts(3), EdgeCount: 2, Kind: EventAdded}, points[0])
	assert.Equal(t, EvolutionPoint{Timestamp: ts(7), EdgeCount: 1, Kind: EventRemoved}, points[1])
}

func TestEqualTimestampsKeepInsertionOrder(t *testing.T) {
	tg := buildTemporal(t)
	_, err := tg.AddTemporalEdge("e1", RelationCites, []string{"a", "b"}, 1.0, ts(5))
	require.NoError(t, err)
	require.NoError(t, tg.RemoveTemporalEdge("e1", ts(5)))

	// Add then remove at the same instant: the later insertion wins.
	snap := tg.SnapshotAt(ts(5))
	assert.Zero(t, snap.NumEdges())

	events := tg.Events()
	require.Len(t, events, 2)
	assert.Equal(t, EventAdded, events[0].Kind)
	assert.Equal(t, EventRemoved, events[1].Kind)
}

func TestRemoveTemporalEdgeUnknown(t *testing.T) {
	tg := buildTemporal(t)
	err := tg.RemoveTemporalEdge("ghost", ts(1))
	var unknown *UnknownEdgeError
	require.ErrorAs(t, err, &unknown)
}
