package hypergraph

import (
	"sort"
	"time"
)

// EventKind is the lifecycle state recorded for a temporal edge event.
type EventKind string

const (
	EventAdded   EventKind = "added"
	EventRemoved EventKind = "removed"
)

// EdgeEvent is one entry in the append-only temporal log.
type EdgeEvent struct {
	EdgeID    string    `json:"edge_id"`
	Timestamp time.Time `json:"timestamp"`
	Kind      EventKind `json:"kind"`

	// seq preserves insertion order among events with equal timestamps.
	seq int
}

// TemporalHypergraph wraps a hypergraph with a timestamped edge lifecycle
// log, so the graph state at any past instant can be reconstructed. Events
// are appended only, never mutated or reordered.
type TemporalHypergraph struct {
	*Hypergraph
	events []EdgeEvent
}

// NewTemporal creates an empty temporal hypergraph.
func NewTemporal() *TemporalHypergraph {
	return &TemporalHypergraph{Hypergraph: New()}
}

// AddTemporalEdge performs a normal AddEdge and appends an `added` event at
// the given time.
func (t *TemporalHypergraph) AddTemporalEdge(id string, typ RelationType, memberIDs []string, weight float64, at time.Time) (*Hyperedge, error) {
	e, err := t.AddEdge(id, typ, memberIDs, weight)
	if err != nil {
		return nil, err
	}
	t.appendEvent(id, at, EventAdded)
	return e, nil
}

// RemoveTemporalEdge appends a `removed` event. The edge stays in the
// working graph; the log is what snapshots replay.
func (t *TemporalHypergraph) RemoveTemporalEdge(id string, at time.Time) error {
	if _, ok := t.edges[id]; !ok {
		return &UnknownEdgeError{ID: id}
	}
	t.appendEvent(id, at, EventRemoved)
	return nil
}

func (t *TemporalHypergraph) appendEvent(id string, at time.Time, kind EventKind) {
	t.events = append(t.events, EdgeEvent{
		EdgeID:    id,
		Timestamp: at,
		Kind:      kind,
		seq:       len(t.events),
	})
}

// Events returns a copy of the event log in chronological order, with
// insertion order breaking timestamp ties.
func (t *TemporalHypergraph) Events() []EdgeEvent {
	events := make([]EdgeEvent, len(t.events))
	copy(events, t.events)
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].Timestamp.Equal(events[j].Timestamp) {
			return events[i].seq < events[j].seq
		}
		return events[i].Timestamp.Before(events[j].Timestamp)
	})
	return events
}

// SnapshotAt replays the event log up to and including the given time and
// returns a fresh hypergraph containing all nodes and exactly the edges
// whose most recent event at or before that time is `added`. The snapshot is
// a pure derived view; mutating it never affects the temporal graph.
func (t *TemporalHypergraph) SnapshotAt(at time.Time) *Hypergraph {
	latest := make(map[string]EventKind)
	for _, ev := range t.Events() {
		if ev.Timestamp.After(at) {
			break
		}
		latest[ev.EdgeID] = ev.Kind
	}

	snapshot := New()
	for _, id := range t.NodeIDs() {
		n := t.nodes[id]
		// Node attributes and embeddings are shared; snapshot edges are
		// rebuilt through the validated path.
		added, _ := snapshot.AddNode(n.ID, n.Type, n.Attrs)
		added.Embedding = n.Embedding
	}
	for _, id := range t.EdgeIDs() {
		if latest[id] != EventAdded {
			continue
		}
		e := t.edges[id]
		// Members reference nodes copied above, so this cannot fail.
		_, _ = snapshot.AddEdge(e.ID, e.Type, e.MemberIDs(), e.Weight)
	}
	return snapshot
}

// EvolutionPoint is one step of the temporal evolution summary.
type EvolutionPoint struct {
	Timestamp time.Time `json:"timestamp"`
	EdgeCount int       `json:"edge_count"`
	Kind      EventKind `json:"kind"`
}

// EvolutionSummary returns one point per distinct event timestamp in
// chronological order, carrying the number of live edges once every event
// at that instant has applied and the kind of the last such event.
func (t *TemporalHypergraph) EvolutionSummary() []EvolutionPoint {
	live := make(map[string]struct{})
	var points []EvolutionPoint
	for _, ev := range t.Events() {
		switch ev.Kind {
		case EventAdded:
			live[ev.EdgeID] = struct{}{}
		case EventRemoved:
			delete(live, ev.EdgeID)
		}
		point := EvolutionPoint{
			Timestamp: ev.Timestamp,
			EdgeCount: len(live),
			Kind:      ev.Kind,
		}
		if n := len(points); n > 0 && points[n-1].Timestamp.Equal(ev.Timestamp) {
			points[n-1] = point
			continue
		}
		points = append(points, point)
	}
	return points
}
