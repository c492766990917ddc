package main

import (
	"encoding/json"
	"os"
	"time"

	"github.com/lithammer/shortuuid/v4"
	"github.com/pkg/errors"

	"github.com/juridex/lexgraph/plugin/hypergraph"
)

// CaseFile is the ingestion format: a bundle of entities and the
// relationships among them, as exported by upstream case-management tools.
type CaseFile struct {
	Title     string     `json:"title"`
	Entities  []Entity   `json:"entities"`
	Relations []Relation `json:"relations"`
}

// Entity is one node-to-be. Unknown types are accepted and mapped to the
// catch-all type, since upstream vocabularies grow faster than ours.
type Entity struct {
	ID         string                          `json:"id"`
	Type       string                          `json:"type"`
	Attrs      map[string]hypergraph.AttrValue `json:"attrs,omitempty"`
	Confidence *float64                        `json:"confidence,omitempty"`
	Domain     string                          `json:"domain,omitempty"`
}

// Relation is one hyperedge-to-be. An empty id gets a generated one, and an
// optional timestamp routes the edge through the temporal log.
type Relation struct {
	ID        string     `json:"id,omitempty"`
	Type      string     `json:"type"`
	Members   []string   `json:"members"`
	Weight    *float64   `json:"weight,omitempty"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
}

// LoadCaseFile reads and decodes one case file.
func LoadCaseFile(path string) (*CaseFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read case file %s", path)
	}
	var cf CaseFile
	if err := json.Unmarshal(data, &cf); err != nil {
		return nil, errors.Wrapf(err, "decode case file %s", path)
	}
	if len(cf.Entities) == 0 {
		return nil, errors.Errorf("case file %s has no entities", path)
	}
	return &cf, nil
}

// BuildGraph turns a case file into a temporal hypergraph. All inserts go
// through the validated store operations, so a malformed file surfaces as a
// typed error naming the offending ids.
func BuildGraph(cf *CaseFile) (*hypergraph.TemporalHypergraph, error) {
	g := hypergraph.NewTemporal()

	for _, entity := range cf.Entities {
		attrs := entity.Attrs
		if entity.Confidence != nil || entity.Domain != "" {
			if attrs == nil {
				attrs = map[string]hypergraph.AttrValue{}
			}
			if entity.Confidence != nil {
				attrs["confidence"] = hypergraph.Number(*entity.Confidence)
			}
			if entity.Domain != "" {
				attrs["domain"] = hypergraph.String(entity.Domain)
			}
		}
		if _, err := g.AddNode(entity.ID, hypergraph.ParseNodeType(entity.Type), attrs); err != nil {
			return nil, errors.Wrapf(err, "entity %s", entity.ID)
		}
	}

	for _, rel := range cf.Relations {
		id := rel.ID
		if id == "" {
			id = shortuuid.New()
		}
		weight := 1.0
		if rel.Weight != nil {
			weight = *rel.Weight
		}
		typ := hypergraph.ParseRelationType(rel.Type)

		var err error
		if rel.Timestamp != nil {
			_, err = g.AddTemporalEdge(id, typ, rel.Members, weight, *rel.Timestamp)
		} else {
			_, err = g.AddEdge(id, typ, rel.Members, weight)
		}
		if err != nil {
			return nil, errors.Wrapf(err, "relation %s", id)
		}
	}

	return g, nil
}
