package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/juridex/lexgraph/plugin/analysis"
	"github.com/juridex/lexgraph/plugin/hypergraph"
)

// Report is the JSON output of one analysis run.
type Report struct {
	RunID       string    `json:"run_id"`
	File        string    `json:"file"`
	Title       string    `json:"title,omitempty"`
	GeneratedAt time.Time `json:"generated_at"`
	Version     string    `json:"version"`

	Stats          hypergraph.Stats            `json:"stats"`
	Communities    map[string]int              `json:"communities"`
	Importance     map[string]float64          `json:"importance"`
	Predictions    []Prediction                `json:"predictions,omitempty"`
	GraphEmbedding []float64                   `json:"graph_embedding"`
	Hierarchy      []analysis.LevelStats       `json:"hierarchy,omitempty"`
	Evolution      []hypergraph.EvolutionPoint `json:"evolution,omitempty"`

	SnapshotID string `json:"snapshot_id"`
	Annotation string `json:"annotation,omitempty"`
}

// Prediction is one suggested missing link.
type Prediction struct {
	A     string  `json:"a"`
	B     string  `json:"b"`
	Score float64 `json:"score"`
}

// annotationPrompt renders the structural findings as a prompt for the
// optional LLM annotation.
func annotationPrompt(r *Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Summarize the following legal case graph analysis in two or three sentences.\n")
	fmt.Fprintf(&b, "Case: %s\n", r.Title)
	fmt.Fprintf(&b, "Entities: %d, relationships: %d, average relationship size: %.1f.\n",
		r.Stats.NumNodes, r.Stats.NumEdges, r.Stats.AvgEdgeSize)
	fmt.Fprintf(&b, "Detected %d communities.\n", countCommunities(r.Communities))
	if len(r.Predictions) > 0 {
		fmt.Fprintf(&b, "Top suggested missing link: %s and %s (score %.2f).\n",
			r.Predictions[0].A, r.Predictions[0].B, r.Predictions[0].Score)
	}
	return b.String()
}

func countCommunities(communities map[string]int) int {
	seen := make(map[int]struct{})
	for _, c := range communities {
		seen[c] = struct{}{}
	}
	return len(seen)
}
